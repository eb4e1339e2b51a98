package handlers

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/thsteixeira/precatorios/internal/models"
)

func alvarasRouter(h *Handlers) http.Handler {
	r := chi.NewRouter()
	r.Post("/alvaras", h.CreateAlvara)
	r.Get("/alvaras/{id}", h.GetAlvara)
	return r
}

func alvaraTestHandlers() (*Handlers, *fakePrecatorios) {
	precatorios := newFakePrecatorios()
	precatorios.byCNJ[testCNJ] = &models.Precatorio{CNJ: testCNJ, Orcamento: 2020}

	h := newTestHandlers()
	h.Precatorios = precatorios
	h.Alvaras = &fakeAlvaras{byID: map[int64]*models.Alvara{}}
	h.Fases = &fakeFases{byID: map[int64]*models.Fase{
		1: {ID: 1, Nome: "Depósito", Tipo: models.FaseTipoAlvara, Ativa: true},
		2: {ID: 2, Nome: "Organização", Tipo: models.FaseTipoRequerimento, Ativa: true},
	}}
	return h, precatorios
}

func TestCreateAlvara_requiresLink(t *testing.T) {
	h, _ := alvaraTestHandlers()

	rec := doJSON(t, alvarasRouter(h), http.MethodPost, "/alvaras", map[string]any{
		"precatorio_cnj":  testCNJ,
		"cliente_cpf":     testCPF,
		"tipo":            "comum",
		"valor_principal": 1000.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestCreateAlvara_linked(t *testing.T) {
	h, precatorios := alvaraTestHandlers()
	precatorios.links[testCNJ+"|"+testCPF] = true

	rec := doJSON(t, alvarasRouter(h), http.MethodPost, "/alvaras", map[string]any{
		"precatorio_cnj":  testCNJ,
		"cliente_cpf":     testCPF,
		"tipo":            "comum",
		"valor_principal": 1000.0,
		"fase_id":         1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["valor_total"] != 1000.0 {
		t.Fatalf("valor_total = %v, want 1000", body["valor_total"])
	}
}

func TestCreateAlvara_faseKindMismatch(t *testing.T) {
	h, precatorios := alvaraTestHandlers()
	precatorios.links[testCNJ+"|"+testCPF] = true

	// fase 2 only applies to requerimentos
	rec := doJSON(t, alvarasRouter(h), http.MethodPost, "/alvaras", map[string]any{
		"precatorio_cnj": testCNJ,
		"cliente_cpf":    testCPF,
		"tipo":           "comum",
		"fase_id":        2,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
	}
}

func TestCreateAlvara_negativeValue(t *testing.T) {
	h, precatorios := alvaraTestHandlers()
	precatorios.links[testCNJ+"|"+testCPF] = true

	rec := doJSON(t, alvarasRouter(h), http.MethodPost, "/alvaras", map[string]any{
		"precatorio_cnj":  testCNJ,
		"cliente_cpf":     testCPF,
		"tipo":            "comum",
		"valor_principal": -5.0,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
