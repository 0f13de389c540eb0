// internal/app/store/expedientes/expedientestore.go
package expedientes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctajus/lexhub/internal/domain/models"
)

// Store reads the expedientes collection owned by the case subsystem.
// The document core never writes to it.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("expedientes")}
}

// GetByID returns the case record, including the responsible lawyer and
// the client the case belongs to.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Expediente, error) {
	var exp models.Expediente
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&exp)
	if err != nil {
		return models.Expediente{}, err
	}
	return exp, nil
}

// GetByIDs returns the cases for a set of IDs, for display resolution.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Expediente, error) {
	out := make(map[primitive.ObjectID]models.Expediente, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var exp models.Expediente
		if err := cursor.Decode(&exp); err != nil {
			return nil, err
		}
		out[exp.ID] = exp
	}
	return out, cursor.Err()
}
