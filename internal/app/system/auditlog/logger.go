// Package auditlog records document lifecycle events outside of storage
// transactions. Creation and version rows are written by the lifecycle
// service inside its transaction; everything else goes through here.
package auditlog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/doctajus/lexhub/internal/app/system/identity"
	"github.com/doctajus/lexhub/internal/domain/models"
)

// HistoryWriter persists audit rows. The history store implements it.
type HistoryWriter interface {
	Insert(ctx context.Context, entry *models.DocumentHistory) error
}

// Config holds audit logging configuration.
type Config struct {
	// Mode controls where document events go.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Mode string
}

// Logger writes document audit events to MongoDB and structured logs.
type Logger struct {
	store  HistoryWriter
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store HistoryWriter, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

func (l *Logger) logToZap(entry *models.DocumentHistory) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("documento_id", entry.DocumentoID.Hex()),
		zap.String("accion", entry.TipoAccion),
		zap.String("usuario_id", entry.UsuarioID.Hex()),
		zap.String("ip", entry.IPCliente),
	}
	for k, v := range entry.Metadatos {
		fields = append(fields, zap.String("detalle_"+k, v))
	}
	l.zapLog.Info("audit event", fields...)
}

// Log records an audit event based on configuration.
// A nil logger is a no-op, which lets tests skip audit wiring.
func (l *Logger) Log(ctx context.Context, entry *models.DocumentHistory) {
	if l == nil {
		return
	}
	if l.config.Mode == "off" {
		return
	}

	if entry.FechaAccion.IsZero() {
		entry.FechaAccion = time.Now().UTC()
	}

	if l.config.Mode == "all" || l.config.Mode == "log" {
		l.logToZap(entry)
	}
	if l.config.Mode == "all" || l.config.Mode == "db" {
		if err := l.store.Insert(ctx, entry); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("accion", entry.TipoAccion),
				zap.String("documento_id", entry.DocumentoID.Hex()),
			)
		}
	}
}

func (l *Logger) event(ctx context.Context, actor identity.Actor, docID primitive.ObjectID, accion string, metadatos map[string]string) {
	l.Log(ctx, &models.DocumentHistory{
		ID:          primitive.NewObjectID(),
		DocumentoID: docID,
		UsuarioID:   actor.UserID,
		TipoAccion:  accion,
		Metadatos:   metadatos,
		IPCliente:   actor.IP,
		UserAgent:   actor.UserAgent,
		FechaAccion: time.Now().UTC(),
	})
}

// Viewed logs a document read.
func (l *Logger) Viewed(ctx context.Context, actor identity.Actor, docID primitive.ObjectID) {
	l.event(ctx, actor, docID, models.AccionVisualizacion, nil)
}

// Downloaded logs a download URL request.
func (l *Logger) Downloaded(ctx context.Context, actor identity.Actor, docID primitive.ObjectID, archivoNombre string) {
	l.event(ctx, actor, docID, models.AccionDescarga, map[string]string{
		"archivo_nombre": archivoNombre,
	})
}

// StatusChanged logs a document state transition.
func (l *Logger) StatusChanged(ctx context.Context, actor identity.Actor, docID primitive.ObjectID, anterior, nuevo string) {
	l.event(ctx, actor, docID, models.AccionCambioEstado, map[string]string{
		"estado_anterior": anterior,
		"estado_nuevo":    nuevo,
	})
}

// PermissionsChanged logs a grant or revocation on a document.
func (l *Logger) PermissionsChanged(ctx context.Context, actor identity.Actor, docID, targetUserID primitive.ObjectID, permiso, cambio string) {
	l.event(ctx, actor, docID, models.AccionCambioPermisos, map[string]string{
		"usuario_objetivo": targetUserID.Hex(),
		"permiso":          permiso,
		"cambio":           cambio,
	})
}

// Deleted logs a document removal. The row is written before the hard
// delete so the action survives the document.
func (l *Logger) Deleted(ctx context.Context, actor identity.Actor, docID primitive.ObjectID, nombre string) {
	l.event(ctx, actor, docID, models.AccionEliminacion, map[string]string{
		"nombre": nombre,
	})
}
