// internal/app/store/users/userstore.go
package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctajus/lexhub/internal/domain/models"
)

// Store reads the usuarios collection. User management lives upstream;
// the document core only resolves display names and roles.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("usuarios")}
}

// GetByID returns one user record.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Usuario, error) {
	var u models.Usuario
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.Usuario{}, err
	}
	return u, nil
}

// GetByIDs returns the users for a set of IDs, keyed by ID.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Usuario, error) {
	out := make(map[primitive.ObjectID]models.Usuario, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var u models.Usuario
		if err := cursor.Decode(&u); err != nil {
			return nil, err
		}
		out[u.ID] = u
	}
	return out, cursor.Err()
}
