package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission levels, ordered by power: lectura < escritura < administrador.
// A grant carries exactly one level; levels do not imply one another.
const (
	PermisoLectura       = "lectura"
	PermisoEscritura     = "escritura"
	PermisoAdministrador = "administrador"
)

// IsValidPermiso reports whether tipo is a known permission level.
func IsValidPermiso(tipo string) bool {
	return tipo == PermisoLectura || tipo == PermisoEscritura || tipo == PermisoAdministrador
}

// DocumentPermission assigns one user one capability level on one document.
// The (documento_id, usuario_id) pair is unique; re-granting updates the
// existing row's level instead of inserting a duplicate.
type DocumentPermission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentoID primitive.ObjectID `bson:"documento_id" json:"documentoId"`
	UsuarioID   primitive.ObjectID `bson:"usuario_id" json:"usuarioId"`
	TipoPermiso string             `bson:"tipo_permiso" json:"tipoPermiso"`

	OtorgadoPorID primitive.ObjectID `bson:"otorgado_por_id" json:"otorgadoPorId"`

	FechaCreacion     time.Time `bson:"fecha_creacion" json:"fechaCreacion"`
	FechaModificacion time.Time `bson:"fecha_modificacion" json:"fechaModificacion"`
}
