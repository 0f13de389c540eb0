// internal/app/features/documents/handler.go
package documents

import (
	"go.uber.org/zap"

	docsvc "github.com/doctajus/lexhub/internal/app/documents"
)

// Handler owns all document API handlers.
type Handler struct {
	Svc *docsvc.Service
	Log *zap.Logger
}

// NewHandler constructs a documents Handler.
func NewHandler(svc *docsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Svc: svc,
		Log: logger,
	}
}
