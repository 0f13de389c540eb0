package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	docstore "github.com/doctajus/lexhub/internal/app/store/documents"
	"github.com/doctajus/lexhub/internal/app/system/apperr"
	"github.com/doctajus/lexhub/internal/app/system/htmlsanitize"
	"github.com/doctajus/lexhub/internal/app/system/identity"
	"github.com/doctajus/lexhub/internal/app/system/indexer"
	"github.com/doctajus/lexhub/internal/domain/models"
)

// CreateInput carries everything needed to register a document.
type CreateInput struct {
	Nombre      string
	Descripcion string
	Tipo        string
	Estado      string

	ExpedienteID *primitive.ObjectID
	ClienteID    *primitive.ObjectID

	Etiquetas []string
	EsPublico bool

	File FileUpload
}

// Create registers a new document: file first, then one atomic write
// group for the record, its initial version, the creator's grant, the
// case lawyer's grant and the creation audit row. Text extraction is
// queued afterwards and never blocks the caller. The returned document
// carries its references resolved, like Get.
func (s *Service) Create(ctx context.Context, actor identity.Actor, in CreateInput) (Detail, error) {
	nombre := htmlsanitize.Strip(in.Nombre)
	if nombre == "" {
		return Detail{}, apperr.Validation("el nombre del documento es obligatorio")
	}
	if !models.IsValidTipo(in.Tipo) {
		return Detail{}, apperr.Validation("tipo de documento inválido")
	}
	estado := in.Estado
	if estado == "" {
		estado = models.EstadoBorrador
	}
	if !models.IsValidEstado(estado) {
		return Detail{}, apperr.Validation("estado de documento inválido")
	}
	if len(in.File.Data) == 0 {
		return Detail{}, apperr.Validation("el archivo es obligatorio")
	}

	// Reference checks happen before the upload so a bad id costs nothing.
	var expediente *models.Expediente
	clienteID := in.ClienteID
	if in.ExpedienteID != nil {
		// A lookup failure reads the same as a missing id; callers cannot
		// tell a dangling reference from an unreachable store.
		exp, err := s.expedientes.GetByID(ctx, *in.ExpedienteID)
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				s.log.Warn("expediente lookup failed", zap.Error(err))
			}
			return Detail{}, apperr.Reference("el expediente indicado no existe")
		}
		expediente = &exp
		// A document filed under a case belongs to the case's client
		// unless the caller says otherwise.
		if clienteID == nil && exp.ClienteID != nil {
			clienteID = exp.ClienteID
		}
	}
	// The adopted id gets the same existence check as an explicit one.
	if clienteID != nil {
		ok, err := s.clientes.Exists(ctx, *clienteID)
		if err != nil {
			s.log.Warn("cliente lookup failed", zap.Error(err))
		}
		if !ok {
			return Detail{}, apperr.Reference("el cliente indicado no existe")
		}
	}

	stored, err := s.files.Store(ctx, in.File.Data, in.File.ContentType, in.File.Filename, "documentos")
	if err != nil {
		return Detail{}, fmt.Errorf("store file: %w", err)
	}

	now := time.Now().UTC()
	doc := models.Document{
		ID:                primitive.NewObjectID(),
		Nombre:            nombre,
		Descripcion:       htmlsanitize.Sanitize(in.Descripcion),
		Tipo:              in.Tipo,
		Estado:            estado,
		ExpedienteID:      in.ExpedienteID,
		ClienteID:         clienteID,
		ArchivoURL:        stored.URL,
		ArchivoNombre:     in.File.Filename,
		ArchivoTamanio:    int64(len(in.File.Data)),
		ArchivoFormato:    formatFromMime(in.File.ContentType, in.File.Filename),
		Etiquetas:         cleanEtiquetas(in.Etiquetas),
		EsPublico:         in.EsPublico,
		VersionActual:     1,
		CreadoPorID:       actor.UserID,
		ModificadoPorID:   &actor.UserID,
		FechaCreacion:     now,
		FechaModificacion: now,
	}

	err = s.runTxn(ctx, func(ctx context.Context) error {
		if err := s.docs.Insert(ctx, &doc); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}

		v := &models.DocumentVersion{
			DocumentoID:        doc.ID,
			NumeroVersion:      1,
			ArchivoURL:         stored.URL,
			ArchivoNombre:      doc.ArchivoNombre,
			ArchivoTamanio:     doc.ArchivoTamanio,
			ArchivoFormato:     doc.ArchivoFormato,
			DescripcionCambios: "Versión inicial",
			CreadoPorID:        actor.UserID,
			FechaCreacion:      now,
		}
		if err := s.versions.Insert(ctx, v); err != nil {
			return fmt.Errorf("insert initial version: %w", err)
		}

		if err := s.permissions.Upsert(ctx, models.DocumentPermission{
			DocumentoID:   doc.ID,
			UsuarioID:     actor.UserID,
			TipoPermiso:   models.PermisoAdministrador,
			OtorgadoPorID: actor.UserID,
		}); err != nil {
			return fmt.Errorf("grant creator: %w", err)
		}

		// The case's responsible lawyer can edit documents filed under it.
		if expediente != nil && expediente.AbogadoID != actor.UserID {
			if err := s.permissions.Upsert(ctx, models.DocumentPermission{
				DocumentoID:   doc.ID,
				UsuarioID:     expediente.AbogadoID,
				TipoPermiso:   models.PermisoEscritura,
				OtorgadoPorID: actor.UserID,
			}); err != nil {
				return fmt.Errorf("grant case lawyer: %w", err)
			}
		}

		if err := s.history.Insert(ctx, &models.DocumentHistory{
			DocumentoID: doc.ID,
			UsuarioID:   actor.UserID,
			TipoAccion:  models.AccionCreacion,
			Detalles:    "Documento creado",
			IPCliente:   actor.IP,
			UserAgent:   actor.UserAgent,
			FechaAccion: now,
		}); err != nil {
			return fmt.Errorf("insert creation audit: %w", err)
		}
		return nil
	})
	if err != nil {
		// The stored file stays behind; a sweep can reclaim it later.
		s.log.Error("document creation transaction failed",
			zap.String("documento_id", doc.ID.Hex()),
			zap.Error(err))
		return Detail{}, apperr.Transaction("no se pudo registrar el documento", err)
	}

	s.indexer.Enqueue(indexer.Job{
		DocumentoID: doc.ID,
		Data:        in.File.Data,
		ContentType: in.File.ContentType,
	})

	details, err := s.resolve(ctx, []models.Document{doc})
	if err != nil {
		return Detail{}, fmt.Errorf("resolve references: %w", err)
	}
	return details[0], nil
}

// UpdateInput carries metadata changes and, optionally, a replacement
// file. Nil pointers leave fields unchanged.
type UpdateInput struct {
	Nombre      *string
	Descripcion *string
	Tipo        *string
	Etiquetas   *[]string
	EsPublico   *bool

	File               *FileUpload
	DescripcionCambios string
}

// Update edits a document's metadata and, when a file is attached,
// registers it as the next version. Requires escritura.
func (s *Service) Update(ctx context.Context, actor identity.Actor, docID primitive.ObjectID, in UpdateInput) (models.Document, error) {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return models.Document{}, err
	}
	if err := s.requireWrite(ctx, actor, doc); err != nil {
		return models.Document{}, err
	}

	if in.Nombre != nil {
		clean := htmlsanitize.Strip(*in.Nombre)
		if clean == "" {
			return models.Document{}, apperr.Validation("el nombre del documento no puede quedar vacío")
		}
		in.Nombre = &clean
	}
	if in.Descripcion != nil {
		clean := htmlsanitize.Sanitize(*in.Descripcion)
		in.Descripcion = &clean
	}
	if in.Tipo != nil && !models.IsValidTipo(*in.Tipo) {
		return models.Document{}, apperr.Validation("tipo de documento inválido")
	}
	if in.Etiquetas != nil {
		clean := cleanEtiquetas(*in.Etiquetas)
		in.Etiquetas = &clean
	}

	var stored *FileUpload
	var storedURL string
	if in.File != nil && len(in.File.Data) > 0 {
		res, err := s.files.Store(ctx, in.File.Data, in.File.ContentType, in.File.Filename, "documentos")
		if err != nil {
			return models.Document{}, fmt.Errorf("store file: %w", err)
		}
		stored = in.File
		storedURL = res.URL
	}

	descripcionCambios := in.DescripcionCambios
	if descripcionCambios == "" {
		descripcionCambios = "Actualización de documento"
	}

	now := time.Now().UTC()
	err = s.runTxn(ctx, func(ctx context.Context) error {
		mut := docstore.MetadataUpdate{
			Nombre:          in.Nombre,
			Descripcion:     in.Descripcion,
			Tipo:            in.Tipo,
			Etiquetas:       in.Etiquetas,
			EsPublico:       in.EsPublico,
			ModificadoPorID: actor.UserID,
		}
		if err := s.docs.UpdateMetadata(ctx, docID, mut); err != nil {
			return fmt.Errorf("update metadata: %w", err)
		}

		if stored != nil {
			// The filter on the old version number turns a concurrent
			// bump into ErrVersionConflict; the driver retries the txn
			// and we recompute from a fresh read.
			if err := s.docs.ApplyNewVersion(ctx, docID, doc.VersionActual, docstore.VersionUpdate{
				ArchivoURL:      storedURL,
				ArchivoNombre:   stored.Filename,
				ArchivoTamanio:  int64(len(stored.Data)),
				ArchivoFormato:  formatFromMime(stored.ContentType, stored.Filename),
				ModificadoPorID: actor.UserID,
			}); err != nil {
				return fmt.Errorf("apply version: %w", err)
			}

			if err := s.versions.Insert(ctx, &models.DocumentVersion{
				DocumentoID:        docID,
				NumeroVersion:      doc.VersionActual + 1,
				ArchivoURL:         storedURL,
				ArchivoNombre:      stored.Filename,
				ArchivoTamanio:     int64(len(stored.Data)),
				ArchivoFormato:     formatFromMime(stored.ContentType, stored.Filename),
				DescripcionCambios: descripcionCambios,
				CreadoPorID:        actor.UserID,
				FechaCreacion:      now,
			}); err != nil {
				return fmt.Errorf("insert version: %w", err)
			}
		}

		accion := models.AccionModificacion
		metadatos := map[string]string{}
		if stored != nil {
			accion = models.AccionNuevaVersion
			metadatos["numero_version"] = fmt.Sprintf("%d", doc.VersionActual+1)
		} else if campos := changedFields(in); len(campos) > 0 {
			metadatos["cambios"] = strings.Join(campos, ",")
		}
		if err := s.history.Insert(ctx, &models.DocumentHistory{
			DocumentoID: docID,
			UsuarioID:   actor.UserID,
			TipoAccion:  accion,
			Detalles:    descripcionCambios,
			Metadatos:   metadatos,
			IPCliente:   actor.IP,
			UserAgent:   actor.UserAgent,
			FechaAccion: now,
		}); err != nil {
			return fmt.Errorf("insert audit: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("document update transaction failed",
			zap.String("documento_id", docID.Hex()),
			zap.Error(err))
		return models.Document{}, apperr.Transaction("no se pudo actualizar el documento", err)
	}

	if stored != nil {
		s.indexer.Enqueue(indexer.Job{
			DocumentoID: docID,
			Data:        stored.Data,
			ContentType: stored.ContentType,
		})
	}

	updated, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return models.Document{}, fmt.Errorf("reload document: %w", err)
	}
	return updated, nil
}

// changedFields names the metadata fields an update touches, for the
// modificacion audit row.
func changedFields(in UpdateInput) []string {
	var out []string
	if in.Nombre != nil {
		out = append(out, "nombre")
	}
	if in.Descripcion != nil {
		out = append(out, "descripcion")
	}
	if in.Tipo != nil {
		out = append(out, "tipo")
	}
	if in.Etiquetas != nil {
		out = append(out, "etiquetas")
	}
	if in.EsPublico != nil {
		out = append(out, "esPublico")
	}
	return out
}

// ChangeStatus moves a document to a new estado. Requires escritura.
func (s *Service) ChangeStatus(ctx context.Context, actor identity.Actor, docID primitive.ObjectID, estado string) (models.Document, error) {
	if !models.IsValidEstado(estado) {
		return models.Document{}, apperr.Validation("estado de documento inválido")
	}

	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return models.Document{}, err
	}
	if err := s.requireWrite(ctx, actor, doc); err != nil {
		return models.Document{}, err
	}
	if doc.Estado == estado {
		return doc, nil
	}

	if err := s.docs.UpdateEstado(ctx, docID, estado, actor.UserID); err != nil {
		return models.Document{}, fmt.Errorf("update estado: %w", err)
	}

	s.audit.StatusChanged(ctx, actor, docID, doc.Estado, estado)

	doc.Estado = estado
	return doc, nil
}

// ToggleDestacado flips the featured flag and returns the new value.
// Pinning is a personal convenience, so any grant suffices and the
// action is not audited.
func (s *Service) ToggleDestacado(ctx context.Context, actor identity.Actor, docID primitive.ObjectID) (bool, error) {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return false, err
	}
	if err := s.requireRead(ctx, actor, doc); err != nil {
		return false, err
	}

	next := !doc.Destacado
	if err := s.docs.UpdateDestacado(ctx, docID, next); err != nil {
		return false, fmt.Errorf("update destacado: %w", err)
	}
	return next, nil
}

// Delete removes a document, its versions and its grants. The audit row
// is written first so the trail records who deleted what; history rows
// survive the document. Requires administrador.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, docID primitive.ObjectID) error {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return err
	}
	if err := s.requireAdmin(ctx, actor, doc); err != nil {
		return err
	}

	s.audit.Deleted(ctx, actor, docID, doc.Nombre)

	err = s.runTxn(ctx, func(ctx context.Context) error {
		if _, err := s.versions.DeleteByDocumento(ctx, docID); err != nil {
			return fmt.Errorf("delete versions: %w", err)
		}
		if _, err := s.permissions.DeleteByDocumento(ctx, docID); err != nil {
			return fmt.Errorf("delete grants: %w", err)
		}
		if err := s.docs.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("document delete transaction failed",
			zap.String("documento_id", docID.Hex()),
			zap.Error(err))
		return apperr.Transaction("no se pudo eliminar el documento", err)
	}

	// File removal is best effort; records are already gone.
	if _, err := s.files.Delete(ctx, doc.ArchivoURL); err != nil {
		s.log.Warn("failed to delete stored file",
			zap.String("documento_id", docID.Hex()),
			zap.String("url", doc.ArchivoURL),
			zap.Error(err))
	}
	return nil
}

// loadDocument maps a missing record to the not-found kind.
func (s *Service) loadDocument(ctx context.Context, docID primitive.ObjectID) (models.Document, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Document{}, apperr.NotFound("documento no encontrado")
	}
	if err != nil {
		return models.Document{}, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}
