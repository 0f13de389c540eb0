// internal/app/store/clientes/clientestore.go
package clientes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctajus/lexhub/internal/domain/models"
)

// Store reads the clientes collection owned by the client subsystem.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("clientes")}
}

// Exists reports whether the client record is present.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByIDs returns the clients for a set of IDs, for display resolution.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Cliente, error) {
	out := make(map[primitive.ObjectID]models.Cliente, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var cl models.Cliente
		if err := cursor.Decode(&cl); err != nil {
			return nil, err
		}
		out[cl.ID] = cl
	}
	return out, cursor.Err()
}
