package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cliente is a party record (person or organization). Like Expediente it is
// external to the document core and read only for reference validation and
// display names.
type Cliente struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	Apellido    string             `bson:"apellido,omitempty" json:"apellido,omitempty"`
	RazonSocial string             `bson:"razon_social,omitempty" json:"razonSocial,omitempty"`
	Email       string             `bson:"email,omitempty" json:"email,omitempty"`

	FechaCreacion     time.Time `bson:"fecha_creacion" json:"fechaCreacion"`
	FechaModificacion time.Time `bson:"fecha_modificacion" json:"fechaModificacion"`
}
