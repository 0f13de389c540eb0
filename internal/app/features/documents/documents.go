// internal/app/features/documents/documents.go
package documents

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	docsvc "github.com/doctajus/lexhub/internal/app/documents"
	"github.com/doctajus/lexhub/internal/app/system/identity"
)

// maxUploadBytes bounds the in-memory part of a multipart parse.
const maxUploadBytes = 32 << 20

// requireActor rejects anonymous requests.
func (h *Handler) requireActor(w http.ResponseWriter, r *http.Request) (identity.Actor, bool) {
	actor, ok := identity.FromRequest(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "no autenticado"})
	}
	return actor, ok
}

// docID parses the {id} route parameter.
func docID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
}

// parseDocumentForm reads the create/update form. Plain forms carry
// metadata only; multipart forms may also carry the "archivo" file part.
func parseDocumentForm(r *http.Request) (url.Values, *docsvc.FileUpload, error) {
	err := r.ParseMultipartForm(maxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		if err := r.ParseForm(); err != nil {
			return nil, nil, err
		}
		return r.PostForm, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	values := url.Values(r.MultipartForm.Value)
	file, header, err := r.FormFile("archivo")
	if errors.Is(err, http.ErrMissingFile) {
		return values, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}
	return values, &docsvc.FileUpload{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

// optionalID parses a form value as an ObjectID when present.
func optionalID(values url.Values, key string) (*primitive.ObjectID, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// optionalDate parses a query value as a date when present. Both bare
// dates and full RFC 3339 timestamps are accepted.
func optionalDate(values url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date")
}

// splitEtiquetas turns a comma-separated form value into tags.
func splitEtiquetas(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// Create handles POST /api/documentos.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	values, file, err := parseDocumentForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "solicitud inválida"})
		return
	}

	in := docsvc.CreateInput{
		Nombre:      values.Get("nombre"),
		Descripcion: values.Get("descripcion"),
		Tipo:        values.Get("tipo"),
		Estado:      values.Get("estado"),
		Etiquetas:   splitEtiquetas(values.Get("etiquetas")),
		EsPublico:   values.Get("esPublico") == "true",
	}
	if in.ExpedienteID, err = optionalID(values, "expedienteId"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "expedienteId inválido"})
		return
	}
	if in.ClienteID, err = optionalID(values, "clienteId"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "clienteId inválido"})
		return
	}
	if file != nil {
		in.File = *file
	}

	doc, err := h.Svc.Create(r.Context(), actor, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// List handles GET /api/documentos.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}

	filter := docsvc.ListFilter{
		Tipo:      query.Get(r, "tipo"),
		Estado:    query.Get(r, "estado"),
		Etiquetas: splitEtiquetas(query.Get(r, "etiquetas")),
		Texto:     query.Get(r, "q"),
	}

	q := r.URL.Query()
	var err error
	if filter.ExpedienteID, err = optionalID(q, "expedienteId"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "expedienteId inválido"})
		return
	}
	if filter.ClienteID, err = optionalID(q, "clienteId"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "clienteId inválido"})
		return
	}
	if filter.CreadoPorID, err = optionalID(q, "creadoPor"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "creadoPor inválido"})
		return
	}
	if raw := query.Get(r, "destacado"); raw != "" {
		v := raw == "true"
		filter.Destacado = &v
	}
	if filter.FechaDesde, err = optionalDate(q, "fechaDesde"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "fechaDesde inválida"})
		return
	}
	if filter.FechaHasta, err = optionalDate(q, "fechaHasta"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "fechaHasta inválida"})
		return
	}
	if raw := query.Get(r, "limit"); raw != "" {
		filter.Limit, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := query.Get(r, "offset"); raw != "" {
		filter.Offset, _ = strconv.ParseInt(raw, 10, 64)
	}

	res, err := h.Svc.List(r.Context(), actor, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Get handles GET /api/documentos/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	detail, err := h.Svc.Get(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Update handles PUT /api/documentos/{id}. Only the fields present in the
// form change; attaching an "archivo" part registers a new version.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	values, file, err := parseDocumentForm(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "solicitud inválida"})
		return
	}

	var in docsvc.UpdateInput
	if v, present := values["nombre"]; present && len(v) > 0 {
		in.Nombre = &v[0]
	}
	if v, present := values["descripcion"]; present && len(v) > 0 {
		in.Descripcion = &v[0]
	}
	if v, present := values["tipo"]; present && len(v) > 0 {
		in.Tipo = &v[0]
	}
	if v, present := values["etiquetas"]; present && len(v) > 0 {
		tags := splitEtiquetas(v[0])
		in.Etiquetas = &tags
	}
	if v, present := values["esPublico"]; present && len(v) > 0 {
		b := v[0] == "true"
		in.EsPublico = &b
	}
	in.DescripcionCambios = values.Get("descripcionCambios")
	in.File = file

	doc, err := h.Svc.Update(r.Context(), actor, id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ChangeStatus handles PATCH /api/documentos/{id}/estado.
func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	var body struct {
		Estado string `json:"estado"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cuerpo JSON inválido"})
		return
	}

	doc, err := h.Svc.ChangeStatus(r.Context(), actor, id, body.Estado)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// ToggleDestacado handles PATCH /api/documentos/{id}/destacado.
func (h *Handler) ToggleDestacado(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	destacado, err := h.Svc.ToggleDestacado(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"destacado": destacado})
}

// Download handles GET /api/documentos/{id}/descargar. The response
// points at the file server; the bytes are not proxied through here.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	info, err := h.Svc.Download(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// DownloadVersion handles GET /api/documentos/{id}/versiones/{versionId}/descargar.
func (h *Handler) DownloadVersion(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}
	versionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "versionId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "versionId inválido"})
		return
	}

	info, err := h.Svc.DownloadVersion(r.Context(), actor, id, versionID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Versions handles GET /api/documentos/{id}/versiones.
func (h *Handler) Versions(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	versions, err := h.Svc.Versions(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// History handles GET /api/documentos/{id}/historial.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	var limit int64
	if raw := query.Get(r, "limit"); raw != "" {
		limit, _ = strconv.ParseInt(raw, 10, 64)
	}

	rows, err := h.Svc.History(r.Context(), actor, id, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Permissions handles GET /api/documentos/{id}/permisos.
func (h *Handler) Permissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	perms, err := h.Svc.Permissions(r.Context(), actor, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, perms)
}

// Grant handles POST /api/documentos/{id}/permisos.
func (h *Handler) Grant(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	var body struct {
		UsuarioID   string `json:"usuarioId"`
		TipoPermiso string `json:"tipoPermiso"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cuerpo JSON inválido"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(body.UsuarioID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "usuarioId inválido"})
		return
	}

	if err := h.Svc.Grant(r.Context(), actor, id, userID, body.TipoPermiso); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Revoke handles DELETE /api/documentos/{id}/permisos/{usuarioId}.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "usuarioId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "usuarioId inválido"})
		return
	}

	if err := h.Svc.Revoke(r.Context(), actor, id, userID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/documentos/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	id, err := docID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "id inválido"})
		return
	}

	if err := h.Svc.Delete(r.Context(), actor, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
