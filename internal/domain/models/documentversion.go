package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentVersion is one immutable revision of a document's file content.
// Version numbers for a document form a dense sequence starting at 1; rows
// are never mutated or deleted.
type DocumentVersion struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentoID   primitive.ObjectID `bson:"documento_id" json:"documentoId"`
	NumeroVersion int                `bson:"numero_version" json:"numeroVersion"`

	ArchivoURL     string `bson:"archivo_url" json:"archivoUrl"`
	ArchivoNombre  string `bson:"archivo_nombre" json:"archivoNombre"`
	ArchivoTamanio int64  `bson:"archivo_tamanio" json:"archivoTamanio"`
	ArchivoFormato string `bson:"archivo_formato" json:"archivoFormato"`

	DescripcionCambios string `bson:"descripcion_cambios,omitempty" json:"descripcionCambios,omitempty"`

	CreadoPorID   primitive.ObjectID `bson:"creado_por_id" json:"creadoPorId"`
	FechaCreacion time.Time          `bson:"fecha_creacion" json:"fechaCreacion"`
}
