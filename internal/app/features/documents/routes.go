// internal/app/features/documents/routes.go
package documents

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the document API on the given router. Every route
// requires an authenticated actor in the request context.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/estado", h.ChangeStatus)
	r.Patch("/{id}/destacado", h.ToggleDestacado)
	r.Get("/{id}/descargar", h.Download)
	r.Get("/{id}/versiones", h.Versions)
	r.Get("/{id}/versiones/{versionId}/descargar", h.DownloadVersion)
	r.Get("/{id}/historial", h.History)
	r.Get("/{id}/permisos", h.Permissions)
	r.Post("/{id}/permisos", h.Grant)
	r.Delete("/{id}/permisos/{usuarioId}", h.Revoke)
}
