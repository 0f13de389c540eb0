// internal/app/store/history/historystore.go
package history

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
	return &Store{c: db.Collection("documento_historial")}
}

// Insert appends one audit row. Rows are never updated or deleted; the
// trail outlives the documents it describes.
func (s *Store) Insert(ctx context.Context, entry *models.DocumentHistory) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.FechaAccion.IsZero() {
		entry.FechaAccion = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, entry)
	return err
}

// ListByDocumento returns a document's audit rows, newest first.
func (s *Store) ListByDocumento(ctx context.Context, docID primitive.ObjectID, limit int64) ([]models.DocumentHistory, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "fecha_accion", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, bson.M{"documento_id": docID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.DocumentHistory
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUsuario returns a user's recent actions across all documents.
func (s *Store) ListByUsuario(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.DocumentHistory, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "fecha_accion", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, bson.M{"usuario_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.DocumentHistory
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
