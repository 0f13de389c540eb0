// internal/app/store/permissions/permissionstore.go
package permissions

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctajus/lexhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documento_permisos")}
}

// Upsert grants a permission level, updating the existing row when the
// (document, user) pair already holds one. The unique index makes the
// race between two concurrent first grants resolve to a single row.
func (s *Store) Upsert(ctx context.Context, perm models.DocumentPermission) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"documento_id": perm.DocumentoID, "usuario_id": perm.UsuarioID},
		bson.M{
			"$set": bson.M{
				"tipo_permiso":       perm.TipoPermiso,
				"otorgado_por_id":    perm.OtorgadoPorID,
				"fecha_modificacion": now,
			},
			"$setOnInsert": bson.M{
				"_id":            primitive.NewObjectID(),
				"documento_id":   perm.DocumentoID,
				"usuario_id":     perm.UsuarioID,
				"fecha_creacion": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Get returns the grant one user holds on one document.
func (s *Store) Get(ctx context.Context, docID, userID primitive.ObjectID) (models.DocumentPermission, error) {
	var perm models.DocumentPermission
	err := s.c.FindOne(ctx, bson.M{"documento_id": docID, "usuario_id": userID}).Decode(&perm)
	if err != nil {
		return models.DocumentPermission{}, err
	}
	return perm, nil
}

// ListByDocumento returns every grant on a document.
func (s *Store) ListByDocumento(ctx context.Context, docID primitive.ObjectID) ([]models.DocumentPermission, error) {
	cursor, err := s.c.Find(ctx, bson.M{"documento_id": docID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.DocumentPermission
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUsuarioForDocuments returns the grants a user holds on any of the
// given documents. List-filtering uses it to avoid one query per document.
func (s *Store) ListByUsuarioForDocuments(ctx context.Context, userID primitive.ObjectID, docIDs []primitive.ObjectID) ([]models.DocumentPermission, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}
	cursor, err := s.c.Find(ctx, bson.M{
		"usuario_id":   userID,
		"documento_id": bson.M{"$in": docIDs},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.DocumentPermission
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete revokes a user's grant. It reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, docID, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"documento_id": docID, "usuario_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteByDocumento removes all grants on a deleted document.
func (s *Store) DeleteByDocumento(ctx context.Context, docID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"documento_id": docID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
