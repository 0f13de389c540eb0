// internal/app/store/documents/documentstore.go
package documents

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctajus/lexhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

// ErrVersionConflict means another writer bumped the document's version
// between our read and our update.
var ErrVersionConflict = errors.New("document version changed concurrently")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("documentos")}
}

// Filter narrows List queries. Nil/zero fields are ignored.
type Filter struct {
	ExpedienteID *primitive.ObjectID
	ClienteID    *primitive.ObjectID
	CreadoPorID  *primitive.ObjectID
	Tipo         string
	Estado       string
	Etiquetas    []string // any listed tag matches
	Destacado    *bool
	Texto        string // full-text search over the texto_documento index
	FechaDesde   *time.Time
	FechaHasta   *time.Time

	Limit  int64
	Offset int64
}

// Insert stores a new document, assigning ID and timestamps when unset.
func (s *Store) Insert(ctx context.Context, doc *models.Document) error {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if doc.FechaCreacion.IsZero() {
		doc.FechaCreacion = now
	}
	if doc.FechaModificacion.IsZero() {
		doc.FechaModificacion = doc.FechaCreacion
	}
	if doc.Etiquetas == nil {
		doc.Etiquetas = []string{}
	}
	_, err := s.c.InsertOne(ctx, doc)
	return err
}

// GetByID returns a document by its ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var doc models.Document
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

// Find returns documents matching the filter, newest first.
func (s *Store) Find(ctx context.Context, filter Filter) ([]models.Document, error) {
	query := bson.M{}
	if filter.ExpedienteID != nil {
		query["expediente_id"] = *filter.ExpedienteID
	}
	if filter.ClienteID != nil {
		query["cliente_id"] = *filter.ClienteID
	}
	if filter.CreadoPorID != nil {
		query["creado_por_id"] = *filter.CreadoPorID
	}
	if filter.Tipo != "" {
		query["tipo"] = filter.Tipo
	}
	if filter.Estado != "" {
		query["estado"] = filter.Estado
	}
	switch len(filter.Etiquetas) {
	case 0:
	case 1:
		query["etiquetas"] = filter.Etiquetas[0]
	default:
		query["etiquetas"] = bson.M{"$in": filter.Etiquetas}
	}
	if filter.Destacado != nil {
		query["destacado"] = *filter.Destacado
	}
	if filter.Texto != "" {
		query["$text"] = bson.M{"$search": filter.Texto}
	}
	if filter.FechaDesde != nil || filter.FechaHasta != nil {
		rango := bson.M{}
		if filter.FechaDesde != nil {
			rango["$gte"] = *filter.FechaDesde
		}
		if filter.FechaHasta != nil {
			rango["$lte"] = *filter.FechaHasta
		}
		query["fecha_creacion"] = rango
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "fecha_modificacion", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// MetadataUpdate holds the mutable descriptive fields. Nil pointers leave
// the stored value untouched.
type MetadataUpdate struct {
	Nombre      *string
	Descripcion *string
	Tipo        *string
	Etiquetas   *[]string
	EsPublico   *bool

	ModificadoPorID primitive.ObjectID
}

// UpdateMetadata modifies descriptive fields and refreshes FechaModificacion.
func (s *Store) UpdateMetadata(ctx context.Context, id primitive.ObjectID, mut MetadataUpdate) error {
	set := bson.M{
		"modificado_por_id":  mut.ModificadoPorID,
		"fecha_modificacion": time.Now().UTC(),
	}
	if mut.Nombre != nil {
		set["nombre"] = *mut.Nombre
	}
	if mut.Descripcion != nil {
		set["descripcion"] = *mut.Descripcion
	}
	if mut.Tipo != nil {
		set["tipo"] = *mut.Tipo
	}
	if mut.Etiquetas != nil {
		set["etiquetas"] = *mut.Etiquetas
	}
	if mut.EsPublico != nil {
		set["es_publico"] = *mut.EsPublico
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// VersionUpdate carries the file fields of a freshly stored revision.
type VersionUpdate struct {
	ArchivoURL      string
	ArchivoNombre   string
	ArchivoTamanio  int64
	ArchivoFormato  string
	ModificadoPorID primitive.ObjectID
}

// ApplyNewVersion bumps VersionActual from expectedVersion to
// expectedVersion+1 and swaps the file pointer. The filter includes the
// old version number, so a concurrent bump makes this return
// ErrVersionConflict instead of silently skipping a number.
func (s *Store) ApplyNewVersion(ctx context.Context, id primitive.ObjectID, expectedVersion int, upd VersionUpdate) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "version_actual": expectedVersion},
		bson.M{"$set": bson.M{
			"version_actual":         expectedVersion + 1,
			"archivo_url":            upd.ArchivoURL,
			"archivo_nombre":         upd.ArchivoNombre,
			"archivo_tamanio":        upd.ArchivoTamanio,
			"archivo_formato":        upd.ArchivoFormato,
			"modificado_por_id":      upd.ModificadoPorID,
			"fecha_modificacion":     time.Now().UTC(),
			"indexado_para_busqueda": false,
			"contenido_indexado":     "",
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

// MarkIndexed records extracted text and flips the searchable flag.
func (s *Store) MarkIndexed(ctx context.Context, id primitive.ObjectID, contenido string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"indexado_para_busqueda": true,
		"contenido_indexado":     contenido,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateEstado sets the document status.
func (s *Store) UpdateEstado(ctx context.Context, id primitive.ObjectID, estado string, modificadoPor primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"estado":             estado,
		"modificado_por_id":  modificadoPor,
		"fecha_modificacion": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateDestacado sets the featured flag. FechaModificacion stays
// untouched so pinning does not reorder lists.
func (s *Store) UpdateDestacado(ctx context.Context, id primitive.ObjectID, destacado bool) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"destacado": destacado,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the document record.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
