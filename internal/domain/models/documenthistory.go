package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit action kinds ("tipo de acción") recorded against a document.
const (
	AccionCreacion       = "creacion"
	AccionModificacion   = "modificacion"
	AccionCambioEstado   = "cambio_estado"
	AccionNuevaVersion   = "nueva_version"
	AccionDescarga       = "descarga"
	AccionCambioPermisos = "cambio_permisos"
	AccionEliminacion    = "eliminacion"
	AccionRestauracion   = "restauracion"
	AccionVisualizacion  = "visualizacion"
)

// DocumentHistory is one append-only audit row describing an action taken
// on a document. Rows are immutable once written and ordered by FechaAccion.
type DocumentHistory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DocumentoID primitive.ObjectID `bson:"documento_id" json:"documentoId"`
	UsuarioID   primitive.ObjectID `bson:"usuario_id" json:"usuarioId"`
	TipoAccion  string             `bson:"tipo_accion" json:"tipoAccion"`

	Detalles  string            `bson:"detalles,omitempty" json:"detalles,omitempty"`
	Metadatos map[string]string `bson:"metadatos,omitempty" json:"metadatos,omitempty"`

	IPCliente string `bson:"ip_cliente,omitempty" json:"ipCliente,omitempty"`
	UserAgent string `bson:"user_agent,omitempty" json:"userAgent,omitempty"`

	FechaAccion time.Time `bson:"fecha_accion" json:"fechaAccion"`
}
