package documents_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/doctajus/lexhub/internal/app/documents"
	docstore "github.com/doctajus/lexhub/internal/app/store/documents"
	"github.com/doctajus/lexhub/internal/app/system/apperr"
	"github.com/doctajus/lexhub/internal/app/system/auditlog"
	"github.com/doctajus/lexhub/internal/app/system/blob"
	"github.com/doctajus/lexhub/internal/app/system/indexer"
	"github.com/doctajus/lexhub/internal/domain/models"
	"github.com/doctajus/lexhub/internal/testutil"
)

/* ---------------------------- in-memory fakes ---------------------------- */

type fakeDocs struct {
	mu        sync.Mutex
	docs      map[primitive.ObjectID]models.Document
	insertErr error
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{docs: make(map[primitive.ObjectID]models.Document)}
}

func (f *fakeDocs) Insert(ctx context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	f.docs[doc.ID] = *doc
	return nil
}

func (f *fakeDocs) GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return models.Document{}, mongo.ErrNoDocuments
	}
	return doc, nil
}

func (f *fakeDocs) Find(ctx context.Context, filter docstore.Filter) ([]models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Document
	for _, d := range f.docs {
		if filter.ExpedienteID != nil && (d.ExpedienteID == nil || *d.ExpedienteID != *filter.ExpedienteID) {
			continue
		}
		if filter.Tipo != "" && d.Tipo != filter.Tipo {
			continue
		}
		if filter.Estado != "" && d.Estado != filter.Estado {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaModificacion.After(out[j].FechaModificacion) })
	return out, nil
}

func (f *fakeDocs) UpdateMetadata(ctx context.Context, id primitive.ObjectID, mut docstore.MetadataUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if mut.Nombre != nil {
		d.Nombre = *mut.Nombre
	}
	if mut.Descripcion != nil {
		d.Descripcion = *mut.Descripcion
	}
	if mut.Tipo != nil {
		d.Tipo = *mut.Tipo
	}
	if mut.Etiquetas != nil {
		d.Etiquetas = *mut.Etiquetas
	}
	if mut.EsPublico != nil {
		d.EsPublico = *mut.EsPublico
	}
	d.ModificadoPorID = &mut.ModificadoPorID
	f.docs[id] = d
	return nil
}

func (f *fakeDocs) ApplyNewVersion(ctx context.Context, id primitive.ObjectID, expectedVersion int, upd docstore.VersionUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok || d.VersionActual != expectedVersion {
		return docstore.ErrVersionConflict
	}
	d.VersionActual = expectedVersion + 1
	d.ArchivoURL = upd.ArchivoURL
	d.ArchivoNombre = upd.ArchivoNombre
	d.ArchivoTamanio = upd.ArchivoTamanio
	d.ArchivoFormato = upd.ArchivoFormato
	d.ModificadoPorID = &upd.ModificadoPorID
	d.IndexadoParaBusqueda = false
	d.ContenidoIndexado = ""
	f.docs[id] = d
	return nil
}

func (f *fakeDocs) UpdateEstado(ctx context.Context, id primitive.ObjectID, estado string, modificadoPor primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	d.Estado = estado
	d.ModificadoPorID = &modificadoPor
	f.docs[id] = d
	return nil
}

func (f *fakeDocs) UpdateDestacado(ctx context.Context, id primitive.ObjectID, destacado bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	d.Destacado = destacado
	f.docs[id] = d
	return nil
}

func (f *fakeDocs) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(f.docs, id)
	return nil
}

type fakeVersions struct {
	mu   sync.Mutex
	rows []models.DocumentVersion
}

func (f *fakeVersions) Insert(ctx context.Context, v *models.DocumentVersion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	f.rows = append(f.rows, *v)
	return nil
}

func (f *fakeVersions) GetByID(ctx context.Context, docID, versionID primitive.ObjectID) (models.DocumentVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.rows {
		if v.ID == versionID && v.DocumentoID == docID {
			return v, nil
		}
	}
	return models.DocumentVersion{}, mongo.ErrNoDocuments
}

func (f *fakeVersions) ListByDocumento(ctx context.Context, docID primitive.ObjectID) ([]models.DocumentVersion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentVersion
	for _, v := range f.rows {
		if v.DocumentoID == docID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NumeroVersion > out[j].NumeroVersion })
	return out, nil
}

func (f *fakeVersions) DeleteByDocumento(ctx context.Context, docID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []models.DocumentVersion
	var n int64
	for _, v := range f.rows {
		if v.DocumentoID == docID {
			n++
			continue
		}
		kept = append(kept, v)
	}
	f.rows = kept
	return n, nil
}

type permKey struct {
	doc, user primitive.ObjectID
}

type fakePerms struct {
	mu     sync.Mutex
	grants map[permKey]models.DocumentPermission
}

func newFakePerms() *fakePerms {
	return &fakePerms{grants: make(map[permKey]models.DocumentPermission)}
}

func (f *fakePerms) Upsert(ctx context.Context, perm models.DocumentPermission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if perm.ID.IsZero() {
		perm.ID = primitive.NewObjectID()
	}
	f.grants[permKey{perm.DocumentoID, perm.UsuarioID}] = perm
	return nil
}

func (f *fakePerms) Get(ctx context.Context, docID, userID primitive.ObjectID) (models.DocumentPermission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	perm, ok := f.grants[permKey{docID, userID}]
	if !ok {
		return models.DocumentPermission{}, mongo.ErrNoDocuments
	}
	return perm, nil
}

func (f *fakePerms) ListByDocumento(ctx context.Context, docID primitive.ObjectID) ([]models.DocumentPermission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentPermission
	for k, p := range f.grants {
		if k.doc == docID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePerms) ListByUsuarioForDocuments(ctx context.Context, userID primitive.ObjectID, docIDs []primitive.ObjectID) ([]models.DocumentPermission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentPermission
	for _, id := range docIDs {
		if p, ok := f.grants[permKey{id, userID}]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePerms) Delete(ctx context.Context, docID, userID primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := permKey{docID, userID}
	if _, ok := f.grants[k]; !ok {
		return false, nil
	}
	delete(f.grants, k)
	return true, nil
}

func (f *fakePerms) DeleteByDocumento(ctx context.Context, docID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.grants {
		if k.doc == docID {
			delete(f.grants, k)
			n++
		}
	}
	return n, nil
}

type fakeHistory struct {
	mu   sync.Mutex
	rows []models.DocumentHistory
}

func (f *fakeHistory) Insert(ctx context.Context, entry *models.DocumentHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	f.rows = append(f.rows, *entry)
	return nil
}

func (f *fakeHistory) ListByDocumento(ctx context.Context, docID primitive.ObjectID, limit int64) ([]models.DocumentHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DocumentHistory
	for _, h := range f.rows {
		if h.DocumentoID == docID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaAccion.After(out[j].FechaAccion) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// actions returns the tipo_accion values recorded for a document, in
// insertion order.
func (f *fakeHistory) actions(docID primitive.ObjectID) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, h := range f.rows {
		if h.DocumentoID == docID {
			out = append(out, h.TipoAccion)
		}
	}
	return out
}

type fakeExpedientes struct {
	rows   map[primitive.ObjectID]models.Expediente
	getErr error
}

func (f *fakeExpedientes) GetByID(ctx context.Context, id primitive.ObjectID) (models.Expediente, error) {
	if f.getErr != nil {
		return models.Expediente{}, f.getErr
	}
	exp, ok := f.rows[id]
	if !ok {
		return models.Expediente{}, mongo.ErrNoDocuments
	}
	return exp, nil
}

func (f *fakeExpedientes) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Expediente, error) {
	out := make(map[primitive.ObjectID]models.Expediente)
	for _, id := range ids {
		if exp, ok := f.rows[id]; ok {
			out[id] = exp
		}
	}
	return out, nil
}

type fakeClientes struct {
	rows map[primitive.ObjectID]models.Cliente
}

func (f *fakeClientes) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeClientes) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Cliente, error) {
	out := make(map[primitive.ObjectID]models.Cliente)
	for _, id := range ids {
		if cl, ok := f.rows[id]; ok {
			out[id] = cl
		}
	}
	return out, nil
}

type fakeUsers struct {
	rows map[primitive.ObjectID]models.Usuario
}

func (f *fakeUsers) GetByID(ctx context.Context, id primitive.ObjectID) (models.Usuario, error) {
	u, ok := f.rows[id]
	if !ok {
		return models.Usuario{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUsers) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Usuario, error) {
	out := make(map[primitive.ObjectID]models.Usuario)
	for _, id := range ids {
		if u, ok := f.rows[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakeBlob struct {
	mu      sync.Mutex
	stored  []string
	deleted []string
	err     error
}

func (f *fakeBlob) Store(ctx context.Context, data []byte, contentType, originalName, folder string) (blob.Stored, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return blob.Stored{}, f.err
	}
	url := "/uploads/" + folder + "/" + originalName
	f.stored = append(f.stored, url)
	return blob.Stored{URL: url, Filename: originalName}, nil
}

func (f *fakeBlob) Delete(ctx context.Context, url string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return true, nil
}

type fakeEnqueuer struct {
	mu   sync.Mutex
	jobs []indexer.Job
}

func (f *fakeEnqueuer) Enqueue(job indexer.Job) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
}

func (f *fakeEnqueuer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

/* ------------------------------- harness --------------------------------- */

type fixture struct {
	svc         *documents.Service
	docs        *fakeDocs
	versions    *fakeVersions
	permissions *fakePerms
	history     *fakeHistory
	expedientes *fakeExpedientes
	clientes    *fakeClientes
	users       *fakeUsers
	files       *fakeBlob
	indexer     *fakeEnqueuer
}

func newFixture() *fixture {
	f := &fixture{
		docs:        newFakeDocs(),
		versions:    &fakeVersions{},
		permissions: newFakePerms(),
		history:     &fakeHistory{},
		expedientes: &fakeExpedientes{rows: make(map[primitive.ObjectID]models.Expediente)},
		clientes:    &fakeClientes{rows: make(map[primitive.ObjectID]models.Cliente)},
		users:       &fakeUsers{rows: make(map[primitive.ObjectID]models.Usuario)},
		files:       &fakeBlob{},
		indexer:     &fakeEnqueuer{},
	}
	f.svc = documents.New(documents.Deps{
		Documents:   f.docs,
		Versions:    f.versions,
		Permissions: f.permissions,
		History:     f.history,
		Expedientes: f.expedientes,
		Clientes:    f.clientes,
		Users:       f.users,
		Files:       f.files,
		Indexer:     f.indexer,
		Audit:       auditlog.New(f.history, zap.NewNop(), auditlog.Config{Mode: "db"}),
		Txn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
		Logger: zap.NewNop(),
	})
	return f
}

func (f *fixture) addUser(rol string) models.Usuario {
	u := models.Usuario{ID: primitive.NewObjectID(), Nombre: "Ana", Apellido: "García", Rol: rol}
	f.users.rows[u.ID] = u
	return u
}

func pdfUpload() documents.FileUpload {
	return documents.FileUpload{
		Data:        []byte("%PDF-1.4 contenido"),
		Filename:    "demanda.pdf",
		ContentType: "application/pdf",
	}
}

func validCreateInput() documents.CreateInput {
	return documents.CreateInput{
		Nombre: "Demanda laboral",
		Tipo:   models.TipoDemanda,
		File:   pdfUpload(),
	}
}

/* -------------------------------- create --------------------------------- */

func TestCreate_HappyPath(t *testing.T) {
	f := newFixture()
	creator := f.addUser(models.RolAbogado)
	actor := testutil.AbogadoActor()
	actor.UserID = creator.ID
	ctx := context.Background()

	doc, err := f.svc.Create(ctx, actor, validCreateInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if doc.VersionActual != 1 {
		t.Errorf("version: got %d, want 1", doc.VersionActual)
	}
	if doc.Estado != models.EstadoBorrador {
		t.Errorf("estado: got %q, want borrador", doc.Estado)
	}
	if doc.ArchivoFormato != "pdf" {
		t.Errorf("formato: got %q, want pdf", doc.ArchivoFormato)
	}
	if doc.ArchivoTamanio != int64(len(pdfUpload().Data)) {
		t.Errorf("tamanio: got %d", doc.ArchivoTamanio)
	}
	if doc.IndexadoParaBusqueda {
		t.Error("new documents must start unindexed")
	}
	if doc.ModificadoPorID == nil || *doc.ModificadoPorID != creator.ID {
		t.Error("creation must record the creator as last modifier")
	}
	if doc.CreadoPor == nil || doc.CreadoPor.ID != creator.ID {
		t.Error("creadoPor reference must come back resolved")
	}

	// Initial version row.
	vs, _ := f.versions.ListByDocumento(ctx, doc.ID)
	if len(vs) != 1 {
		t.Fatalf("expected 1 version row, got %d", len(vs))
	}
	if vs[0].NumeroVersion != 1 || vs[0].DescripcionCambios != "Versión inicial" {
		t.Errorf("version row: %+v", vs[0])
	}

	// Creator's administrador grant.
	perm, err := f.permissions.Get(ctx, doc.ID, creator.ID)
	if err != nil {
		t.Fatal("creator grant missing")
	}
	if perm.TipoPermiso != models.PermisoAdministrador {
		t.Errorf("creator grant: got %q", perm.TipoPermiso)
	}

	// Creation audit row.
	rows, _ := f.history.ListByDocumento(ctx, doc.ID, 0)
	if len(rows) != 1 || rows[0].TipoAccion != models.AccionCreacion {
		t.Fatalf("history: got %+v", rows)
	}
	if rows[0].Detalles != "Documento creado" {
		t.Errorf("creation detalles: got %q", rows[0].Detalles)
	}

	// Extraction queued.
	if f.indexer.count() != 1 {
		t.Errorf("expected 1 indexing job, got %d", f.indexer.count())
	}
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*documents.CreateInput)
	}{
		{"missing nombre", func(in *documents.CreateInput) { in.Nombre = "  " }},
		{"nombre only markup", func(in *documents.CreateInput) { in.Nombre = "<script>x()</script>" }},
		{"invalid tipo", func(in *documents.CreateInput) { in.Tipo = "oficio" }},
		{"invalid estado", func(in *documents.CreateInput) { in.Estado = "publicado" }},
		{"missing file", func(in *documents.CreateInput) { in.File = documents.FileUpload{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreateInput()
			tt.mutate(&in)
			_, err := f.svc.Create(ctx, actor, in)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if len(f.files.stored) != 0 {
		t.Error("validation failures must not store files")
	}
}

func TestCreate_UnknownExpediente(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()

	in := validCreateInput()
	badID := primitive.NewObjectID()
	in.ExpedienteID = &badID

	_, err := f.svc.Create(context.Background(), actor, in)
	if !apperr.Is(err, apperr.KindReference) {
		t.Fatalf("expected reference error, got %v", err)
	}
	if len(f.files.stored) != 0 {
		t.Error("reference failures must not store files")
	}
}

func TestCreate_ExpedienteLookupFailure(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()
	f.expedientes.getErr = errors.New("store unreachable")

	in := validCreateInput()
	expID := primitive.NewObjectID()
	in.ExpedienteID = &expID

	// An unreachable store reads the same as a missing expediente.
	_, err := f.svc.Create(context.Background(), actor, in)
	if !apperr.Is(err, apperr.KindReference) {
		t.Fatalf("expected reference error, got %v", err)
	}
	if len(f.files.stored) != 0 {
		t.Error("reference failures must not store files")
	}
}

func TestCreate_AdoptsCaseClient(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()
	ctx := context.Background()

	clienteID := primitive.NewObjectID()
	f.clientes.rows[clienteID] = models.Cliente{ID: clienteID, Nombre: "Pérez"}
	exp := models.Expediente{
		ID:        primitive.NewObjectID(),
		Numero:    "EXP-2026-001",
		ClienteID: &clienteID,
		AbogadoID: actor.UserID,
	}
	f.expedientes.rows[exp.ID] = exp

	in := validCreateInput()
	in.ExpedienteID = &exp.ID

	doc, err := f.svc.Create(ctx, actor, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if doc.ClienteID == nil || *doc.ClienteID != clienteID {
		t.Error("document must adopt the case's client")
	}
	if doc.Cliente == nil || doc.Cliente.ID != clienteID {
		t.Error("adopted client must come back resolved")
	}
}

func TestCreate_AdoptedClientDangling(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()

	// The case points at a client that no longer exists; the adopted id
	// must fail the same existence check an explicit one gets.
	missing := primitive.NewObjectID()
	exp := models.Expediente{
		ID:        primitive.NewObjectID(),
		Numero:    "EXP-2026-002",
		ClienteID: &missing,
		AbogadoID: actor.UserID,
	}
	f.expedientes.rows[exp.ID] = exp

	in := validCreateInput()
	in.ExpedienteID = &exp.ID

	_, err := f.svc.Create(context.Background(), actor, in)
	if !apperr.Is(err, apperr.KindReference) {
		t.Fatalf("expected reference error, got %v", err)
	}
	if len(f.files.stored) != 0 {
		t.Error("reference failures must not store files")
	}
}

func TestCreate_GrantsCaseLawyer(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()
	ctx := context.Background()

	abogado := f.addUser(models.RolAbogado)
	exp := models.Expediente{ID: primitive.NewObjectID(), Numero: "EXP-1", AbogadoID: abogado.ID}
	f.expedientes.rows[exp.ID] = exp

	in := validCreateInput()
	in.ExpedienteID = &exp.ID

	doc, err := f.svc.Create(ctx, actor, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	perm, err := f.permissions.Get(ctx, doc.ID, abogado.ID)
	if err != nil {
		t.Fatal("case lawyer grant missing")
	}
	if perm.TipoPermiso != models.PermisoEscritura {
		t.Errorf("case lawyer grant: got %q, want escritura", perm.TipoPermiso)
	}
}

func TestCreate_NoSelfDuplicateGrant(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()
	ctx := context.Background()

	// The creator is also the case's lawyer; the administrador grant
	// must not be downgraded to escritura.
	exp := models.Expediente{ID: primitive.NewObjectID(), Numero: "EXP-2", AbogadoID: actor.UserID}
	f.expedientes.rows[exp.ID] = exp

	in := validCreateInput()
	in.ExpedienteID = &exp.ID

	doc, err := f.svc.Create(ctx, actor, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	perm, err := f.permissions.Get(ctx, doc.ID, actor.UserID)
	if err != nil {
		t.Fatal("creator grant missing")
	}
	if perm.TipoPermiso != models.PermisoAdministrador {
		t.Errorf("creator grant: got %q, want administrador", perm.TipoPermiso)
	}
}

func TestCreate_TransactionFailure(t *testing.T) {
	f := newFixture()
	f.docs.insertErr = errors.New("write conflict")
	actor := testutil.AbogadoActor()

	_, err := f.svc.Create(context.Background(), actor, validCreateInput())
	if !apperr.Is(err, apperr.KindTransaction) {
		t.Fatalf("expected transaction error, got %v", err)
	}
	if f.indexer.count() != 0 {
		t.Error("failed creations must not queue indexing")
	}
}

func TestCreate_FormatFallsBackToExtension(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()

	in := validCreateInput()
	in.File = documents.FileUpload{
		Data:        []byte("data"),
		Filename:    "escrito.DOCX",
		ContentType: "",
	}

	doc, err := f.svc.Create(context.Background(), actor, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if doc.ArchivoFormato != "docx" {
		t.Errorf("formato: got %q, want docx", doc.ArchivoFormato)
	}
}

func TestCreate_CleansEtiquetas(t *testing.T) {
	f := newFixture()
	actor := testutil.AbogadoActor()

	in := validCreateInput()
	in.Etiquetas = []string{" urgente ", "", "laboral"}

	doc, err := f.svc.Create(context.Background(), actor, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(doc.Etiquetas) != 2 || doc.Etiquetas[0] != "urgente" || doc.Etiquetas[1] != "laboral" {
		t.Errorf("etiquetas: got %v", doc.Etiquetas)
	}
}
