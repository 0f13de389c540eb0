// internal/app/features/documents/respond.go
package documents

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/doctajus/lexhub/internal/app/system/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to an HTTP status. Classified errors
// carry a user-safe message; anything else becomes an opaque 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		h.Log.Error("unhandled error", zap.Error(err), zap.String("path", r.URL.Path))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "error interno"})
		return
	}

	var appErr *apperr.Error
	_ = errors.As(err, &appErr)

	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindReference:
		status = http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindTransaction, apperr.KindIndexing:
		h.Log.Error("operation failed", zap.Error(err), zap.String("path", r.URL.Path))
	}
	writeJSON(w, status, errorResponse{Error: appErr.Message})
}
