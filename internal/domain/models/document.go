package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document categories ("tipo") used across the practice.
const (
	TipoContrato     = "contrato"
	TipoDemanda      = "demanda"
	TipoContestacion = "contestacion"
	TipoApelacion    = "apelacion"
	TipoRecurso      = "recurso"
	TipoPoder        = "poder"
	TipoSentencia    = "sentencia"
	TipoResolucion   = "resolucion"
	TipoPericia      = "pericia"
	TipoFactura      = "factura"
	TipoOtro         = "otro"
)

// Document statuses ("estado").
const (
	EstadoBorrador          = "borrador"
	EstadoFinalizado        = "finalizado"
	EstadoArchivado         = "archivado"
	EstadoPendienteRevision = "pendiente_revision"
	EstadoAprobado          = "aprobado"
)

var documentTipos = map[string]bool{
	TipoContrato: true, TipoDemanda: true, TipoContestacion: true,
	TipoApelacion: true, TipoRecurso: true, TipoPoder: true,
	TipoSentencia: true, TipoResolucion: true, TipoPericia: true,
	TipoFactura: true, TipoOtro: true,
}

var documentEstados = map[string]bool{
	EstadoBorrador: true, EstadoFinalizado: true, EstadoArchivado: true,
	EstadoPendienteRevision: true, EstadoAprobado: true,
}

// IsValidTipo reports whether tipo is a known document category.
func IsValidTipo(tipo string) bool { return documentTipos[tipo] }

// IsValidEstado reports whether estado is a known document status.
func IsValidEstado(estado string) bool { return documentEstados[estado] }

// Document is the canonical metadata record for one uploaded file and its
// version history. The stored file itself lives in blob storage; ArchivoURL
// points at it. VersionActual always equals the highest version number in
// the versiones collection for this document.
type Document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre      string             `bson:"nombre" json:"nombre"`
	Descripcion string             `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	Tipo        string             `bson:"tipo" json:"tipo"`
	Estado      string             `bson:"estado" json:"estado"`

	ExpedienteID *primitive.ObjectID `bson:"expediente_id,omitempty" json:"expedienteId,omitempty"`
	ClienteID    *primitive.ObjectID `bson:"cliente_id,omitempty" json:"clienteId,omitempty"`

	ArchivoURL     string `bson:"archivo_url" json:"archivoUrl"`
	ArchivoNombre  string `bson:"archivo_nombre" json:"archivoNombre"`
	ArchivoTamanio int64  `bson:"archivo_tamanio" json:"archivoTamanio"`
	ArchivoFormato string `bson:"archivo_formato" json:"archivoFormato"`

	Etiquetas []string `bson:"etiquetas" json:"etiquetas"`
	Destacado bool     `bson:"destacado" json:"destacado"`
	EsPublico bool     `bson:"es_publico" json:"esPublico"`

	VersionActual int `bson:"version_actual" json:"versionActual"`

	IndexadoParaBusqueda bool   `bson:"indexado_para_busqueda" json:"indexadoParaBusqueda"`
	ContenidoIndexado    string `bson:"contenido_indexado,omitempty" json:"contenidoIndexado,omitempty"`

	CreadoPorID     primitive.ObjectID  `bson:"creado_por_id" json:"creadoPorId"`
	ModificadoPorID *primitive.ObjectID `bson:"modificado_por_id,omitempty" json:"modificadoPorId,omitempty"`

	FechaCreacion     time.Time `bson:"fecha_creacion" json:"fechaCreacion"`
	FechaModificacion time.Time `bson:"fecha_modificacion" json:"fechaModificacion"`
}
