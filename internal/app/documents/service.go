// Package documents implements the document lifecycle: creation with an
// initial version, permission-gated reads, versioned updates, and the
// audit trail. Handlers stay thin; every rule lives here.
package documents

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	docstore "github.com/doctajus/lexhub/internal/app/store/documents"
	"github.com/doctajus/lexhub/internal/app/system/auditlog"
	"github.com/doctajus/lexhub/internal/app/system/blob"
	"github.com/doctajus/lexhub/internal/app/system/indexer"
	"github.com/doctajus/lexhub/internal/domain/models"
)

// DocumentStore is the slice of the documents store the service uses.
type DocumentStore interface {
	Insert(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error)
	Find(ctx context.Context, filter docstore.Filter) ([]models.Document, error)
	UpdateMetadata(ctx context.Context, id primitive.ObjectID, mut docstore.MetadataUpdate) error
	ApplyNewVersion(ctx context.Context, id primitive.ObjectID, expectedVersion int, upd docstore.VersionUpdate) error
	UpdateEstado(ctx context.Context, id primitive.ObjectID, estado string, modificadoPor primitive.ObjectID) error
	UpdateDestacado(ctx context.Context, id primitive.ObjectID, destacado bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// VersionStore persists immutable revision rows.
type VersionStore interface {
	Insert(ctx context.Context, v *models.DocumentVersion) error
	GetByID(ctx context.Context, docID, versionID primitive.ObjectID) (models.DocumentVersion, error)
	ListByDocumento(ctx context.Context, docID primitive.ObjectID) ([]models.DocumentVersion, error)
	DeleteByDocumento(ctx context.Context, docID primitive.ObjectID) (int64, error)
}

// PermissionStore persists per-document grants.
type PermissionStore interface {
	Upsert(ctx context.Context, perm models.DocumentPermission) error
	Get(ctx context.Context, docID, userID primitive.ObjectID) (models.DocumentPermission, error)
	ListByDocumento(ctx context.Context, docID primitive.ObjectID) ([]models.DocumentPermission, error)
	ListByUsuarioForDocuments(ctx context.Context, userID primitive.ObjectID, docIDs []primitive.ObjectID) ([]models.DocumentPermission, error)
	Delete(ctx context.Context, docID, userID primitive.ObjectID) (bool, error)
	DeleteByDocumento(ctx context.Context, docID primitive.ObjectID) (int64, error)
}

// HistoryStore persists audit rows written inside transactions. Events
// outside transactions go through the auditlog.Logger instead.
type HistoryStore interface {
	Insert(ctx context.Context, entry *models.DocumentHistory) error
	ListByDocumento(ctx context.Context, docID primitive.ObjectID, limit int64) ([]models.DocumentHistory, error)
}

// ExpedienteStore reads case records for reference validation.
type ExpedienteStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Expediente, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Expediente, error)
}

// ClienteStore reads client records for reference validation.
type ClienteStore interface {
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Cliente, error)
}

// UserStore resolves user records for grants and display names.
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Usuario, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Usuario, error)
}

// Enqueuer receives freshly stored files for background text extraction.
type Enqueuer interface {
	Enqueue(job indexer.Job)
}

// TxnRunner executes fn atomically. Production wires txn.WithTransaction;
// tests pass a runner that simply calls fn.
type TxnRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Service owns the document lifecycle rules.
type Service struct {
	docs        DocumentStore
	versions    VersionStore
	permissions PermissionStore
	history     HistoryStore
	expedientes ExpedienteStore
	clientes    ClienteStore
	users       UserStore

	files   blob.Store
	indexer Enqueuer
	audit   *auditlog.Logger
	runTxn  TxnRunner
	log     *zap.Logger
}

// Deps collects the service's collaborators.
type Deps struct {
	Documents   DocumentStore
	Versions    VersionStore
	Permissions PermissionStore
	History     HistoryStore
	Expedientes ExpedienteStore
	Clientes    ClienteStore
	Users       UserStore

	Files   blob.Store
	Indexer Enqueuer
	Audit   *auditlog.Logger
	Txn     TxnRunner
	Logger  *zap.Logger
}

// New creates the lifecycle service.
func New(d Deps) *Service {
	return &Service{
		docs:        d.Documents,
		versions:    d.Versions,
		permissions: d.Permissions,
		history:     d.History,
		expedientes: d.Expedientes,
		clientes:    d.Clientes,
		users:       d.Users,
		files:       d.Files,
		indexer:     d.Indexer,
		audit:       d.Audit,
		runTxn:      d.Txn,
		log:         d.Logger,
	}
}

// FileUpload is the raw uploaded file as the handler received it.
type FileUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// formatFromMime derives the stored file format: the mime subtype when
// present, otherwise the filename extension.
func formatFromMime(contentType, filename string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if i := strings.IndexByte(mt, '/'); i >= 0 && i+1 < len(mt) {
			return strings.ToLower(mt[i+1:])
		}
	}
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToLower(ext)
}

// cleanEtiquetas trims tags and drops empties, preserving order.
func cleanEtiquetas(in []string) []string {
	out := make([]string, 0, len(in))
	for _, tag := range in {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
