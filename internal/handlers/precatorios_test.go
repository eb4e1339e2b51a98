package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thsteixeira/precatorios/internal/models"
)

func precatoriosRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Post("/precatorios", h.CreatePrecatorio)
	r.Get("/precatorios/{cnj}", h.GetPrecatorio)
	r.Delete("/precatorios/{cnj}", h.DeletePrecatorio)
	r.Post("/precatorios/{cnj}/clientes", h.LinkCliente)
	r.Delete("/precatorios/{cnj}/clientes/{cpf}", h.UnlinkCliente)
	return r
}

func TestCreatePrecatorio(t *testing.T) {
	h := newTestHandlers()
	h.Precatorios = newFakePrecatorios()

	rec := doJSON(t, precatoriosRouter(h), http.MethodPost, "/precatorios", map[string]any{
		"cnj":       testCNJ,
		"orcamento": 2020,
		"origem":    "TJSP",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["cnj"] != testCNJ {
		t.Fatalf("cnj = %v, want %s", body["cnj"], testCNJ)
	}
	// omitted statuses default to pendente
	if body["credito_principal"] != models.StatusPendente {
		t.Fatalf("credito_principal = %v, want pendente", body["credito_principal"])
	}
}

func TestCreatePrecatorio_rejects(t *testing.T) {
	pct := 45.0
	cases := []struct {
		name string
		req  map[string]any
	}{
		{"bad cnj", map[string]any{"cnj": "12345", "orcamento": 2020}},
		{"orcamento out of range", map[string]any{"cnj": testCNJ, "orcamento": 1980}},
		{"bad status", map[string]any{"cnj": testCNJ, "orcamento": 2020, "credito_principal": "pago"}},
		{"percentual out of range", map[string]any{"cnj": testCNJ, "orcamento": 2020, "percentual_sucumbenciais": pct}},
		{"bad date", map[string]any{"cnj": testCNJ, "orcamento": 2020, "data_ultima_atualizacao": "10/03/2020"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandlers()
			h.Precatorios = newFakePrecatorios()
			rec := doJSON(t, precatoriosRouter(h), http.MethodPost, "/precatorios", tc.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreatePrecatorio_duplicado(t *testing.T) {
	h := newTestHandlers()
	h.Precatorios = newFakePrecatorios()
	router := precatoriosRouter(h)

	req := map[string]any{"cnj": testCNJ, "orcamento": 2020}
	if rec := doJSON(t, router, http.MethodPost, "/precatorios", req); rec.Code != http.StatusCreated {
		t.Fatalf("first create: status = %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/precatorios", req); rec.Code != http.StatusConflict {
		t.Fatalf("second create: status = %d, want 409", rec.Code)
	}
}

func TestGetPrecatorio_notFound(t *testing.T) {
	h := newTestHandlers()
	h.Precatorios = newFakePrecatorios()

	rec := doJSON(t, precatoriosRouter(h), http.MethodGet, "/precatorios/"+testCNJ, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestLinkUnlinkCliente(t *testing.T) {
	precatorios := newFakePrecatorios()
	clientes := newFakeClientes()
	precatorios.byCNJ[testCNJ] = &models.Precatorio{CNJ: testCNJ, Orcamento: 2020}
	clientes.byCPF[testCPF] = &models.Cliente{
		CPF:        testCPF,
		Nome:       "João Souza",
		Nascimento: time.Date(1950, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	h := newTestHandlers()
	h.Precatorios = precatorios
	h.Clientes = clientes
	router := precatoriosRouter(h)

	link := map[string]string{"cpf": testCPF}

	rec := doJSON(t, router, http.MethodPost, "/precatorios/"+testCNJ+"/clientes", link)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first link: status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}

	// idempotent second link
	rec = doJSON(t, router, http.MethodPost, "/precatorios/"+testCNJ+"/clientes", link)
	if rec.Code != http.StatusOK {
		t.Fatalf("second link: status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["criado"] != false {
		t.Fatalf("criado = %v, want false", body["criado"])
	}

	rec = doJSON(t, router, http.MethodDelete, "/precatorios/"+testCNJ+"/clientes/"+testCPF, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("unlink: status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/precatorios/"+testCNJ+"/clientes/"+testCPF, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unlink again: status = %d, want 404", rec.Code)
	}
}

func TestLinkCliente_unknownCliente(t *testing.T) {
	precatorios := newFakePrecatorios()
	precatorios.byCNJ[testCNJ] = &models.Precatorio{CNJ: testCNJ, Orcamento: 2020}

	h := newTestHandlers()
	h.Precatorios = precatorios
	h.Clientes = newFakeClientes()

	rec := doJSON(t, precatoriosRouter(h), http.MethodPost, "/precatorios/"+testCNJ+"/clientes",
		map[string]string{"cpf": testCPF})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
