// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	docsvc "github.com/doctajus/lexhub/internal/app/documents"
	docfeature "github.com/doctajus/lexhub/internal/app/features/documents"
	healthfeature "github.com/doctajus/lexhub/internal/app/features/health"
	"github.com/doctajus/lexhub/internal/app/store/clientes"
	docstore "github.com/doctajus/lexhub/internal/app/store/documents"
	"github.com/doctajus/lexhub/internal/app/store/expedientes"
	"github.com/doctajus/lexhub/internal/app/store/history"
	"github.com/doctajus/lexhub/internal/app/store/permissions"
	"github.com/doctajus/lexhub/internal/app/store/users"
	"github.com/doctajus/lexhub/internal/app/store/versions"
	"github.com/doctajus/lexhub/internal/app/system/auditlog"
	"github.com/doctajus/lexhub/internal/app/system/identity"
	"github.com/doctajus/lexhub/internal/app/system/indexer"
	"github.com/doctajus/lexhub/internal/app/system/txn"
)

// backgroundIndexer is started in BuildHandler and stopped in Shutdown.
var backgroundIndexer *indexer.Indexer

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. LexHub wires the stores, the blob
// store, the background indexer and the lifecycle service here, then
// mounts the document API, the health endpoint and the file server.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	files, err := newBlobProvider(appCfg)
	if err != nil {
		logger.Error("blob store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	docs := docstore.New(db)
	hist := history.New(db)

	backgroundIndexer = indexer.New(docs, logger, appCfg.IndexerConcurrency, appCfg.IndexerQueueSize)
	backgroundIndexer.Start()

	svc := docsvc.New(docsvc.Deps{
		Documents:   docs,
		Versions:    versions.New(db),
		Permissions: permissions.New(db),
		History:     hist,
		Expedientes: expedientes.New(db),
		Clientes:    clientes.New(db),
		Users:       users.New(db),
		Files:       files,
		Indexer:     backgroundIndexer,
		Audit:       auditlog.New(hist, logger, auditlog.Config{Mode: appCfg.AuditLogMode}),
		Txn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return txn.WithTransaction(ctx, deps.MongoClient, fn)
		},
		Logger: logger,
	})

	r := chi.NewRouter()

	// The upstream gateway authenticates callers; the middleware only
	// lifts the forwarded identity headers into the request context.
	r.Use(identity.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Document API
	docHandler := docfeature.NewHandler(svc, logger)
	r.Route("/api/documentos", docHandler.MountRoutes)

	// Stored files with pre-compressed file support (gzip/brotli). With
	// S3 storage the download URLs point at the bucket instead.
	if appCfg.StorageType != "s3" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	return r, nil
}
