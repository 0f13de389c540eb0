package versions_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/doctajus/lexhub/internal/app/store/versions"
	"github.com/doctajus/lexhub/internal/app/system/indexes"
	"github.com/doctajus/lexhub/internal/domain/models"
	"github.com/doctajus/lexhub/internal/testutil"
)

func TestStore_InsertAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := versions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	docID := primitive.NewObjectID()
	creador := primitive.NewObjectID()

	for i := 1; i <= 3; i++ {
		v := &models.DocumentVersion{
			DocumentoID:   docID,
			NumeroVersion: i,
			ArchivoURL:    "/uploads/x.pdf",
			ArchivoNombre: "x.pdf",
			CreadoPorID:   creador,
		}
		if err := store.Insert(ctx, v); err != nil {
			t.Fatalf("Insert v%d failed: %v", i, err)
		}
	}

	list, err := store.ListByDocumento(ctx, docID)
	if err != nil {
		t.Fatalf("ListByDocumento failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 versions, got %d", len(list))
	}
	// Newest first.
	for i, want := range []int{3, 2, 1} {
		if list[i].NumeroVersion != want {
			t.Errorf("position %d: got version %d, want %d", i, list[i].NumeroVersion, want)
		}
	}
}

func TestStore_GetByID_ScopedToDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := versions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	docID := primitive.NewObjectID()
	v := &models.DocumentVersion{DocumentoID: docID, NumeroVersion: 1, CreadoPorID: primitive.NewObjectID()}
	if err := store.Insert(ctx, v); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, docID, v.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.NumeroVersion != 1 {
		t.Errorf("numero: got %d, want 1", got.NumeroVersion)
	}

	// The same version id under another document must not resolve.
	if _, err := store.GetByID(ctx, primitive.NewObjectID(), v.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for foreign document, got %v", err)
	}
}

func TestStore_Insert_DuplicateNumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The unique index is what rejects the duplicate.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := versions.New(db)
	docID := primitive.NewObjectID()

	v1 := &models.DocumentVersion{DocumentoID: docID, NumeroVersion: 1, CreadoPorID: primitive.NewObjectID()}
	if err := store.Insert(ctx, v1); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	dup := &models.DocumentVersion{DocumentoID: docID, NumeroVersion: 1, CreadoPorID: primitive.NewObjectID()}
	if err := store.Insert(ctx, dup); !errors.Is(err, versions.ErrDuplicateVersion) {
		t.Errorf("expected ErrDuplicateVersion, got %v", err)
	}
}

func TestStore_DeleteByDocumento(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := versions.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	docID := primitive.NewObjectID()
	for i := 1; i <= 2; i++ {
		v := &models.DocumentVersion{DocumentoID: docID, NumeroVersion: i, CreadoPorID: primitive.NewObjectID()}
		if err := store.Insert(ctx, v); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	n, err := store.DeleteByDocumento(ctx, docID)
	if err != nil {
		t.Fatalf("DeleteByDocumento failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deletions, got %d", n)
	}

	list, err := store.ListByDocumento(ctx, docID)
	if err != nil {
		t.Fatalf("ListByDocumento failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no versions, got %d", len(list))
	}
}
