package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. RolAdmin bypasses per-document permission checks entirely.
const (
	RolAdmin   = "admin"
	RolAbogado = "abogado"
)

// Usuario is a user of the practice. Authentication happens upstream; the
// document core only resolves names and checks the global admin role.
type Usuario struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre   string             `bson:"nombre" json:"nombre"`
	Apellido string             `bson:"apellido,omitempty" json:"apellido,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Rol      string             `bson:"rol" json:"rol"`

	FechaCreacion time.Time `bson:"fecha_creacion" json:"fechaCreacion"`
}
