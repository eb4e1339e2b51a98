package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/thsteixeira/precatorios/internal/adapters/storage"
	"github.com/thsteixeira/precatorios/internal/models"
)

func filesRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Post("/precatorios/{cnj}/arquivo", h.UploadArquivo)
	r.Get("/precatorios/{cnj}/arquivo", h.DownloadArquivo)
	r.Delete("/precatorios/{cnj}/arquivo", h.DeleteArquivo)
	return r
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestArquivoLifecycle(t *testing.T) {
	precatorios := newFakePrecatorios()
	precatorios.byCNJ[testCNJ] = &models.Precatorio{CNJ: testCNJ, Orcamento: 2020}

	h := newTestHandlers()
	h.Precatorios = precatorios
	h.Storage = storage.NewLocalStorage(t.TempDir())
	router := filesRouter(h)

	body, ct := multipartBody(t, "arquivo", "sentenca.pdf", "%PDF-1.4 conteudo")
	req := httptest.NewRequest(http.MethodPost, "/precatorios/"+testCNJ+"/arquivo", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: status = %d; body %s", rec.Code, rec.Body.String())
	}
	if precatorios.byCNJ[testCNJ].Arquivo == nil {
		t.Fatal("arquivo metadata not stored")
	}
	if precatorios.byCNJ[testCNJ].Arquivo.Nome != "sentenca.pdf" {
		t.Fatalf("nome = %q", precatorios.byCNJ[testCNJ].Arquivo.Nome)
	}

	// local backend cannot presign, so download streams the object
	rec = doJSON(t, router, http.MethodGet, "/precatorios/"+testCNJ+"/arquivo", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download: status = %d", rec.Code)
	}
	if rec.Body.String() != "%PDF-1.4 conteudo" {
		t.Fatalf("download body = %q", rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="sentenca.pdf"` {
		t.Fatalf("content-disposition = %q", cd)
	}

	rec = doJSON(t, router, http.MethodDelete, "/precatorios/"+testCNJ+"/arquivo", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status = %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/precatorios/"+testCNJ+"/arquivo", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("download after delete: status = %d, want 404", rec.Code)
	}
}

func TestUploadArquivo_rejectsExtension(t *testing.T) {
	precatorios := newFakePrecatorios()
	precatorios.byCNJ[testCNJ] = &models.Precatorio{CNJ: testCNJ, Orcamento: 2020}

	h := newTestHandlers()
	h.Precatorios = precatorios
	h.Storage = storage.NewLocalStorage(t.TempDir())

	body, ct := multipartBody(t, "arquivo", "script.exe", "MZ")
	req := httptest.NewRequest(http.MethodPost, "/precatorios/"+testCNJ+"/arquivo", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	filesRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestUploadArquivo_unknownPrecatorio(t *testing.T) {
	h := newTestHandlers()
	h.Precatorios = newFakePrecatorios()
	h.Storage = storage.NewLocalStorage(t.TempDir())

	body, ct := multipartBody(t, "arquivo", "doc.pdf", "x")
	req := httptest.NewRequest(http.MethodPost, "/precatorios/"+testCNJ+"/arquivo", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	filesRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
