package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	docstore "github.com/doctajus/lexhub/internal/app/store/documents"
	"github.com/doctajus/lexhub/internal/app/system/apperr"
	"github.com/doctajus/lexhub/internal/app/system/identity"
	"github.com/doctajus/lexhub/internal/domain/models"
)

// UsuarioRef is the display form of a user reference.
type UsuarioRef struct {
	ID       primitive.ObjectID `json:"id"`
	Nombre   string             `json:"nombre"`
	Apellido string             `json:"apellido,omitempty"`
}

// ExpedienteRef is the display form of a case reference.
type ExpedienteRef struct {
	ID     primitive.ObjectID `json:"id"`
	Numero string             `json:"numero"`
	Titulo string             `json:"titulo"`
}

// ClienteRef is the display form of a client reference.
type ClienteRef struct {
	ID          primitive.ObjectID `json:"id"`
	Nombre      string             `json:"nombre"`
	Apellido    string             `json:"apellido,omitempty"`
	RazonSocial string             `json:"razonSocial,omitempty"`
}

// Detail is a document with its references resolved for display.
type Detail struct {
	models.Document

	Expediente    *ExpedienteRef `json:"expediente,omitempty"`
	Cliente       *ClienteRef    `json:"cliente,omitempty"`
	CreadoPor     *UsuarioRef    `json:"creadoPor,omitempty"`
	ModificadoPor *UsuarioRef    `json:"modificadoPor,omitempty"`
}

// Get returns one document with references resolved. Every successful
// read leaves a visualizacion row in the trail.
func (s *Service) Get(ctx context.Context, actor identity.Actor, docID primitive.ObjectID) (Detail, error) {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return Detail{}, err
	}
	if err := s.requireRead(ctx, actor, doc); err != nil {
		return Detail{}, err
	}

	details, err := s.resolve(ctx, []models.Document{doc})
	if err != nil {
		return Detail{}, err
	}

	s.audit.Viewed(ctx, actor, docID)
	return details[0], nil
}

// ListFilter narrows List. Texto runs a full-text search over names,
// descriptions and extracted file content.
type ListFilter struct {
	ExpedienteID *primitive.ObjectID
	ClienteID    *primitive.ObjectID
	CreadoPorID  *primitive.ObjectID
	Tipo         string
	Estado       string
	Etiquetas    []string
	Destacado    *bool
	Texto        string
	FechaDesde   *time.Time
	FechaHasta   *time.Time

	Limit  int64
	Offset int64
}

// ListResult is a page of visible documents. Total counts what the actor
// can see, not what matched in storage.
type ListResult struct {
	Documentos []Detail `json:"documentos"`
	Total      int      `json:"total"`
}

// List returns the documents matching the filter that the actor is
// allowed to see. Visibility is decided per document after the storage
// query: public, own, or granted.
func (s *Service) List(ctx context.Context, actor identity.Actor, filter ListFilter) (ListResult, error) {
	docs, err := s.docs.Find(ctx, docstore.Filter{
		ExpedienteID: filter.ExpedienteID,
		ClienteID:    filter.ClienteID,
		CreadoPorID:  filter.CreadoPorID,
		Tipo:         filter.Tipo,
		Estado:       filter.Estado,
		Etiquetas:    filter.Etiquetas,
		Destacado:    filter.Destacado,
		Texto:        filter.Texto,
		FechaDesde:   filter.FechaDesde,
		FechaHasta:   filter.FechaHasta,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	})
	if err != nil {
		return ListResult{}, fmt.Errorf("find documents: %w", err)
	}

	visible := docs
	if !actor.IsAdmin {
		ids := make([]primitive.ObjectID, len(docs))
		for i, d := range docs {
			ids[i] = d.ID
		}
		grants, err := s.permissions.ListByUsuarioForDocuments(ctx, actor.UserID, ids)
		if err != nil {
			return ListResult{}, fmt.Errorf("load grants: %w", err)
		}
		granted := make(map[primitive.ObjectID]bool, len(grants))
		for _, g := range grants {
			granted[g.DocumentoID] = true
		}

		visible = visible[:0]
		for _, d := range docs {
			if d.EsPublico || d.CreadoPorID == actor.UserID || granted[d.ID] {
				visible = append(visible, d)
			}
		}
	}

	details, err := s.resolve(ctx, visible)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Documentos: details, Total: len(details)}, nil
}

// Versions returns a document's revisions, newest first. Readable by
// anyone who can read the document.
func (s *Service) Versions(ctx context.Context, actor identity.Actor, docID primitive.ObjectID) ([]models.DocumentVersion, error) {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := s.requireRead(ctx, actor, doc); err != nil {
		return nil, err
	}

	list, err := s.versions.ListByDocumento(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	return list, nil
}

// History returns a document's audit rows, newest first.
func (s *Service) History(ctx context.Context, actor identity.Actor, docID primitive.ObjectID, limit int64) ([]models.DocumentHistory, error) {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if err := s.requireRead(ctx, actor, doc); err != nil {
		return nil, err
	}

	list, err := s.history.ListByDocumento(ctx, docID, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return list, nil
}

// DownloadInfo points the caller at the stored file.
type DownloadInfo struct {
	URL            string `json:"url"`
	ArchivoNombre  string `json:"archivoNombre"`
	ArchivoTamanio int64  `json:"archivoTamanio"`
	ArchivoFormato string `json:"archivoFormato"`
	NumeroVersion  int    `json:"numeroVersion,omitempty"`
}

// Download returns the file URL exactly as stored; no signing or
// rewriting happens here. The request is audited as a descarga.
func (s *Service) Download(ctx context.Context, actor identity.Actor, docID primitive.ObjectID) (DownloadInfo, error) {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return DownloadInfo{}, err
	}
	if err := s.requireRead(ctx, actor, doc); err != nil {
		return DownloadInfo{}, err
	}

	s.audit.Downloaded(ctx, actor, docID, doc.ArchivoNombre)
	return DownloadInfo{
		URL:            doc.ArchivoURL,
		ArchivoNombre:  doc.ArchivoNombre,
		ArchivoTamanio: doc.ArchivoTamanio,
		ArchivoFormato: doc.ArchivoFormato,
	}, nil
}

// DownloadVersion returns the file of one historical revision. Read
// access on the document suffices; the download is audited like any
// other descarga.
func (s *Service) DownloadVersion(ctx context.Context, actor identity.Actor, docID, versionID primitive.ObjectID) (DownloadInfo, error) {
	doc, err := s.loadDocument(ctx, docID)
	if err != nil {
		return DownloadInfo{}, err
	}
	if err := s.requireRead(ctx, actor, doc); err != nil {
		return DownloadInfo{}, err
	}

	v, err := s.versions.GetByID(ctx, docID, versionID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return DownloadInfo{}, apperr.NotFound("versión no encontrada")
	}
	if err != nil {
		return DownloadInfo{}, fmt.Errorf("load version: %w", err)
	}

	s.audit.Downloaded(ctx, actor, docID, v.ArchivoNombre)
	return DownloadInfo{
		URL:            v.ArchivoURL,
		ArchivoNombre:  v.ArchivoNombre,
		ArchivoTamanio: v.ArchivoTamanio,
		ArchivoFormato: v.ArchivoFormato,
		NumeroVersion:  v.NumeroVersion,
	}, nil
}

// resolve attaches display references for a batch of documents using one
// lookup per collection.
func (s *Service) resolve(ctx context.Context, docs []models.Document) ([]Detail, error) {
	expIDs := make([]primitive.ObjectID, 0, len(docs))
	cliIDs := make([]primitive.ObjectID, 0, len(docs))
	userIDs := make([]primitive.ObjectID, 0, len(docs)*2)
	for _, d := range docs {
		if d.ExpedienteID != nil {
			expIDs = append(expIDs, *d.ExpedienteID)
		}
		if d.ClienteID != nil {
			cliIDs = append(cliIDs, *d.ClienteID)
		}
		userIDs = append(userIDs, d.CreadoPorID)
		if d.ModificadoPorID != nil {
			userIDs = append(userIDs, *d.ModificadoPorID)
		}
	}

	expedientes, err := s.expedientes.GetByIDs(ctx, expIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve expedientes: %w", err)
	}
	clientes, err := s.clientes.GetByIDs(ctx, cliIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve clientes: %w", err)
	}
	usuarios, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve usuarios: %w", err)
	}

	details := make([]Detail, len(docs))
	for i, d := range docs {
		det := Detail{Document: d}
		if d.ExpedienteID != nil {
			if exp, ok := expedientes[*d.ExpedienteID]; ok {
				det.Expediente = &ExpedienteRef{ID: exp.ID, Numero: exp.Numero, Titulo: exp.Titulo}
			}
		}
		if d.ClienteID != nil {
			if cl, ok := clientes[*d.ClienteID]; ok {
				det.Cliente = &ClienteRef{ID: cl.ID, Nombre: cl.Nombre, Apellido: cl.Apellido, RazonSocial: cl.RazonSocial}
			}
		}
		if u, ok := usuarios[d.CreadoPorID]; ok {
			det.CreadoPor = &UsuarioRef{ID: u.ID, Nombre: u.Nombre, Apellido: u.Apellido}
		}
		if d.ModificadoPorID != nil {
			if u, ok := usuarios[*d.ModificadoPorID]; ok {
				det.ModificadoPor = &UsuarioRef{ID: u.ID, Nombre: u.Nombre, Apellido: u.Apellido}
			}
		}
		details[i] = det
	}
	return details, nil
}
