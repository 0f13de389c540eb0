package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctajus/lexhub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUsuario creates a test user with the given role.
func (f *Fixtures) CreateUsuario(ctx context.Context, nombre, apellido, rol string) models.Usuario {
	f.t.Helper()

	u := models.Usuario{
		ID:            primitive.NewObjectID(),
		Nombre:        nombre,
		Apellido:      apellido,
		Email:         nombre + "@test.com",
		Rol:           rol,
		FechaCreacion: time.Now().UTC(),
	}
	if _, err := f.db.Collection("usuarios").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test usuario: %v", err)
	}
	return u
}

// CreateCliente creates a test client.
func (f *Fixtures) CreateCliente(ctx context.Context, nombre, apellido string) models.Cliente {
	f.t.Helper()

	now := time.Now().UTC()
	cl := models.Cliente{
		ID:                primitive.NewObjectID(),
		Nombre:            nombre,
		Apellido:          apellido,
		FechaCreacion:     now,
		FechaModificacion: now,
	}
	if _, err := f.db.Collection("clientes").InsertOne(ctx, cl); err != nil {
		f.t.Fatalf("failed to create test cliente: %v", err)
	}
	return cl
}

// CreateExpediente creates a test case assigned to the given lawyer and,
// optionally, a client.
func (f *Fixtures) CreateExpediente(ctx context.Context, numero string, abogadoID primitive.ObjectID, clienteID *primitive.ObjectID) models.Expediente {
	f.t.Helper()

	now := time.Now().UTC()
	exp := models.Expediente{
		ID:                primitive.NewObjectID(),
		Numero:            numero,
		Titulo:            "Expediente " + numero,
		Estado:            "abierto",
		ClienteID:         clienteID,
		AbogadoID:         abogadoID,
		FechaCreacion:     now,
		FechaModificacion: now,
	}
	if _, err := f.db.Collection("expedientes").InsertOne(ctx, exp); err != nil {
		f.t.Fatalf("failed to create test expediente: %v", err)
	}
	return exp
}

// CreateDocumento creates a minimal stored document owned by creadoPor.
func (f *Fixtures) CreateDocumento(ctx context.Context, nombre string, creadoPor primitive.ObjectID) models.Document {
	f.t.Helper()

	now := time.Now().UTC()
	doc := models.Document{
		ID:                primitive.NewObjectID(),
		Nombre:            nombre,
		Tipo:              models.TipoOtro,
		Estado:            models.EstadoBorrador,
		ArchivoURL:        "/uploads/documentos/test/" + nombre,
		ArchivoNombre:     nombre,
		ArchivoTamanio:    64,
		ArchivoFormato:    "pdf",
		Etiquetas:         []string{},
		VersionActual:     1,
		CreadoPorID:       creadoPor,
		FechaCreacion:     now,
		FechaModificacion: now,
	}
	if _, err := f.db.Collection("documentos").InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to create test documento: %v", err)
	}
	return doc
}
