package permissions_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctajus/lexhub/internal/app/store/permissions"
	"github.com/doctajus/lexhub/internal/domain/models"
	"github.com/doctajus/lexhub/internal/testutil"
)

func TestStore_UpsertAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := permissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	docID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	otorgante := primitive.NewObjectID()

	err := store.Upsert(ctx, models.DocumentPermission{
		DocumentoID:   docID,
		UsuarioID:     userID,
		TipoPermiso:   models.PermisoLectura,
		OtorgadoPorID: otorgante,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	perm, err := store.Get(ctx, docID, userID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if perm.TipoPermiso != models.PermisoLectura {
		t.Errorf("tipo: got %q", perm.TipoPermiso)
	}
	if perm.FechaCreacion.IsZero() {
		t.Error("fecha creacion not set")
	}
}

func TestStore_Upsert_UpdatesExistingRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := permissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	docID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	otorgante := primitive.NewObjectID()

	for _, tipo := range []string{models.PermisoLectura, models.PermisoEscritura} {
		err := store.Upsert(ctx, models.DocumentPermission{
			DocumentoID:   docID,
			UsuarioID:     userID,
			TipoPermiso:   tipo,
			OtorgadoPorID: otorgante,
		})
		if err != nil {
			t.Fatalf("Upsert(%s) failed: %v", tipo, err)
		}
	}

	list, err := store.ListByDocumento(ctx, docID)
	if err != nil {
		t.Fatalf("ListByDocumento failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected a single row after re-grant, got %d", len(list))
	}
	if list[0].TipoPermiso != models.PermisoEscritura {
		t.Errorf("tipo: got %q, want escritura", list[0].TipoPermiso)
	}
}

func TestStore_ListByUsuarioForDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := permissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	otorgante := primitive.NewObjectID()
	docA := primitive.NewObjectID()
	docB := primitive.NewObjectID()
	docC := primitive.NewObjectID()

	for _, docID := range []primitive.ObjectID{docA, docB} {
		err := store.Upsert(ctx, models.DocumentPermission{
			DocumentoID:   docID,
			UsuarioID:     userID,
			TipoPermiso:   models.PermisoLectura,
			OtorgadoPorID: otorgante,
		})
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	list, err := store.ListByUsuarioForDocuments(ctx, userID, []primitive.ObjectID{docA, docC})
	if err != nil {
		t.Fatalf("ListByUsuarioForDocuments failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 grant, got %d", len(list))
	}
	if list[0].DocumentoID != docA {
		t.Error("wrong grant returned")
	}

	empty, err := store.ListByUsuarioForDocuments(ctx, userID, nil)
	if err != nil {
		t.Fatalf("empty query failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no grants for empty id list, got %d", len(empty))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := permissions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	docID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	err := store.Upsert(ctx, models.DocumentPermission{
		DocumentoID:   docID,
		UsuarioID:     userID,
		TipoPermiso:   models.PermisoLectura,
		OtorgadoPorID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	found, err := store.Delete(ctx, docID, userID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !found {
		t.Error("expected Delete to remove the grant")
	}

	found, err = store.Delete(ctx, docID, userID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if found {
		t.Error("expected second Delete to find nothing")
	}

	if _, err := store.Get(ctx, docID, userID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments after delete, got %v", err)
	}
}
