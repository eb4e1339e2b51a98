package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/thsteixeira/precatorios/internal/models"
)

func TestCreateCliente(t *testing.T) {
	h := newTestHandlers()
	h.Clientes = newFakeClientes()

	rec := doJSON(t, http.HandlerFunc(h.CreateCliente), http.MethodPost, "/clientes", map[string]any{
		"cpf":        "529.982.247-25",
		"nome":       "João Souza",
		"nascimento": "1950-05-01",
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	// punctuation is stripped on the way in
	if body["cpf"] != testCPF {
		t.Fatalf("cpf = %v, want %s", body["cpf"], testCPF)
	}
}

func TestCreateCliente_rejects(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	cases := []struct {
		name string
		req  map[string]any
	}{
		{"bad cpf check digits", map[string]any{"cpf": "52998224799", "nome": "X", "nascimento": "1950-05-01"}},
		{"missing nome", map[string]any{"cpf": testCPF, "nascimento": "1950-05-01"}},
		{"bad date", map[string]any{"cpf": testCPF, "nome": "X", "nascimento": "01/05/1950"}},
		{"future birth", map[string]any{"cpf": testCPF, "nome": "X", "nascimento": future}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandlers()
			h.Clientes = newFakeClientes()
			rec := doJSON(t, http.HandlerFunc(h.CreateCliente), http.MethodPost, "/clientes", tc.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdatePrioridadePorIdade(t *testing.T) {
	clientes := newFakeClientes()
	clientes.byCPF["1"] = &models.Cliente{CPF: "1", Nascimento: time.Now().AddDate(-75, 0, 0)}
	clientes.byCPF["2"] = &models.Cliente{CPF: "2", Nascimento: time.Now().AddDate(-30, 0, 0)}
	clientes.byCPF["3"] = &models.Cliente{CPF: "3", Nascimento: time.Now().AddDate(-61, 0, 0), Prioridade: true}

	h := newTestHandlers()
	h.Clientes = clientes

	// dry run counts without flagging
	rec := doJSON(t, http.HandlerFunc(h.UpdatePrioridadePorIdade), http.MethodPost,
		"/clientes/prioridade-idade", map[string]any{"dry_run": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["atualizados"] != 1.0 {
		t.Fatalf("dry run atualizados = %v, want 1", body["atualizados"])
	}
	if clientes.byCPF["1"].Prioridade {
		t.Fatal("dry run must not flag clients")
	}

	// default cutoff is 60 when the body is empty
	req := doJSON(t, http.HandlerFunc(h.UpdatePrioridadePorIdade), http.MethodPost,
		"/clientes/prioridade-idade", nil)
	if req.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", req.Code, req.Body.String())
	}
	if !clientes.byCPF["1"].Prioridade {
		t.Fatal("75-year-old client should be flagged")
	}
	if clientes.byCPF["2"].Prioridade {
		t.Fatal("30-year-old client should not be flagged")
	}
}

func TestUpdatePrioridadePorIdade_badRange(t *testing.T) {
	h := newTestHandlers()
	h.Clientes = newFakeClientes()

	rec := doJSON(t, http.HandlerFunc(h.UpdatePrioridadePorIdade), http.MethodPost,
		"/clientes/prioridade-idade", map[string]any{"idade_minima": 130})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
