// internal/app/store/versions/versionstore.go
package versions

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctajus/lexhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateVersion surfaces the unique (documento_id, numero_version)
// index. Hitting it means a concurrency race the caller should retry.
var ErrDuplicateVersion = errors.New("version number already exists for this document")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documento_versiones")}
}

// Insert stores a new immutable revision row.
func (s *Store) Insert(ctx context.Context, v *models.DocumentVersion) error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	if v.FechaCreacion.IsZero() {
		v.FechaCreacion = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, v)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateVersion
		}
		return err
	}
	return nil
}

// GetByID returns one revision, scoped to its document.
func (s *Store) GetByID(ctx context.Context, docID, versionID primitive.ObjectID) (models.DocumentVersion, error) {
	var v models.DocumentVersion
	err := s.c.FindOne(ctx, bson.M{"_id": versionID, "documento_id": docID}).Decode(&v)
	if err != nil {
		return models.DocumentVersion{}, err
	}
	return v, nil
}

// ListByDocumento returns all revisions of a document, newest first.
func (s *Store) ListByDocumento(ctx context.Context, docID primitive.ObjectID) ([]models.DocumentVersion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "numero_version", Value: -1}})
	cursor, err := s.c.Find(ctx, bson.M{"documento_id": docID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.DocumentVersion
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByDocumento removes all revision rows of a deleted document.
func (s *Store) DeleteByDocumento(ctx context.Context, docID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"documento_id": docID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
