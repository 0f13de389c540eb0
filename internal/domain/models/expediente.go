package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expediente is a legal matter record. The document core only reads it:
// existence checks, the responsible lawyer for creation-time grants, and
// numero/titulo for display resolution. The expediente subsystem owns the
// rest of its lifecycle.
type Expediente struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Numero string             `bson:"numero" json:"numero"`
	Titulo string             `bson:"titulo" json:"titulo"`
	Estado string             `bson:"estado,omitempty" json:"estado,omitempty"`

	ClienteID *primitive.ObjectID `bson:"cliente_id,omitempty" json:"clienteId,omitempty"`
	AbogadoID primitive.ObjectID  `bson:"abogado_id" json:"abogadoId"`

	FechaCreacion     time.Time `bson:"fecha_creacion" json:"fechaCreacion"`
	FechaModificacion time.Time `bson:"fecha_modificacion" json:"fechaModificacion"`
}
