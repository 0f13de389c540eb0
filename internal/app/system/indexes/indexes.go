// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureDocumentos(ctx, db); err != nil {
		problems = append(problems, "documentos: "+err.Error())
	}
	if err := ensureVersiones(ctx, db); err != nil {
		problems = append(problems, "documento_versiones: "+err.Error())
	}
	if err := ensurePermisos(ctx, db); err != nil {
		problems = append(problems, "documento_permisos: "+err.Error())
	}
	if err := ensureHistorial(ctx, db); err != nil {
		problems = append(problems, "documento_historial: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureIndexSet creates each desired index by name, reusing any that
// already exist. Indexes are matched on name, so renaming an index in
// code recreates it under the new name on next startup.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing := map[string]bool{}
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		for cur.Next(ctx) {
			var idx struct {
				Name string `bson:"name"`
			}
			if err := cur.Decode(&idx); err != nil {
				continue
			}
			existing[idx.Name] = true
		}
		cur.Close(ctx)
	}

	var errs []string
	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if existing[name] {
			continue
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			// Same keys under a different name count as present.
			if strings.Contains(err.Error(), "IndexOptionsConflict") ||
				strings.Contains(err.Error(), "already exists") {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", name))
				continue
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Error(err))
			errs = append(errs, coll.Name()+"("+name+"): "+err.Error())
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureDocumentos(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("documentos")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Full-text search over name, description and extracted file content.
		// Name matches dominate, then description, then file text.
		{
			Keys: bson.D{
				{Key: "nombre", Value: "text"},
				{Key: "descripcion", Value: "text"},
				{Key: "contenido_indexado", Value: "text"},
			},
			Options: options.Index().
				SetName("texto_documento").
				SetWeights(bson.D{
					{Key: "nombre", Value: 10},
					{Key: "descripcion", Value: 5},
					{Key: "contenido_indexado", Value: 1},
				}),
		},

		// Case screens list a case's documents newest-first.
		{
			Keys:    bson.D{{Key: "expediente_id", Value: 1}, {Key: "fecha_creacion", Value: -1}},
			Options: options.Index().SetName("idx_docs_expediente_fecha"),
		},
		// Same for client screens.
		{
			Keys:    bson.D{{Key: "cliente_id", Value: 1}, {Key: "fecha_creacion", Value: -1}},
			Options: options.Index().SetName("idx_docs_cliente_fecha"),
		},
		// "My documents" lookups.
		{
			Keys:    bson.D{{Key: "creado_por_id", Value: 1}, {Key: "fecha_creacion", Value: -1}},
			Options: options.Index().SetName("idx_docs_creador_fecha"),
		},
		// Status and type filters on list pages.
		{
			Keys:    bson.D{{Key: "estado", Value: 1}, {Key: "fecha_creacion", Value: -1}},
			Options: options.Index().SetName("idx_docs_estado_fecha"),
		},
		{
			Keys:    bson.D{{Key: "tipo", Value: 1}},
			Options: options.Index().SetName("idx_docs_tipo"),
		},
	})
}

func ensureVersiones(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("documento_versiones")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Version numbers are dense per document; duplicates mean a lost
		// concurrency race and must be rejected by the database too.
		{
			Keys:    bson.D{{Key: "documento_id", Value: 1}, {Key: "numero_version", Value: -1}},
			Options: options.Index().SetUnique(true).SetName("uniq_version_doc_numero"),
		},
	})
}

func ensurePermisos(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("documento_permisos")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One grant per (document, user); changing a level updates the doc.
		{
			Keys:    bson.D{{Key: "documento_id", Value: 1}, {Key: "usuario_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_permiso_doc_usuario"),
		},
		// List-filtering loads all grants a user holds.
		{
			Keys:    bson.D{{Key: "usuario_id", Value: 1}},
			Options: options.Index().SetName("idx_permisos_usuario"),
		},
	})
}

func ensureHistorial(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("documento_historial")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Audit trail reads newest-first per document.
		{
			Keys:    bson.D{{Key: "documento_id", Value: 1}, {Key: "fecha_accion", Value: -1}},
			Options: options.Index().SetName("idx_historial_doc_fecha"),
		},
		// Per-user activity views.
		{
			Keys:    bson.D{{Key: "usuario_id", Value: 1}, {Key: "fecha_accion", Value: -1}},
			Options: options.Index().SetName("idx_historial_usuario_fecha"),
		},
	})
}
