package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thsteixeira/precatorios/internal/brformat"
	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
)

type clienteRequest struct {
	CPF        string `json:"cpf"`
	Nome       string `json:"nome"`
	Nascimento string `json:"nascimento"`
	Prioridade bool   `json:"prioridade"`
}

func (req *clienteRequest) validate(h *Handlers, w http.ResponseWriter) (*models.Cliente, bool) {
	cpf := brformat.NormalizeDocument(req.CPF)
	if err := brformat.ValidateDocument(cpf); err != nil {
		h.BadRequest(w, "cpf: "+err.Error())
		return nil, false
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return nil, false
	}
	nascimento, err := time.ParseInLocation("2006-01-02", req.Nascimento, time.Local)
	if err != nil {
		h.BadRequest(w, "nascimento: use o formato 2006-01-02")
		return nil, false
	}
	if nascimento.After(time.Now()) {
		h.BadRequest(w, "nascimento não pode ser no futuro")
		return nil, false
	}

	return &models.Cliente{
		CPF:        cpf,
		Nome:       req.Nome,
		Nascimento: nascimento,
		Prioridade: req.Prioridade,
	}, true
}

func (h *Handlers) ListClientes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := database.ClienteFilter{
		Nome:          q.Get("nome"),
		CPF:           q.Get("cpf"),
		Prioridade:    queryBoolPtr(r, "prioridade"),
		PrecatorioCNJ: q.Get("precatorio_cnj"),
	}

	list, err := h.Clientes.List(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}
	summary, err := h.Clientes.Summary(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"clientes": viewClientes(list),
		"resumo": map[string]int64{
			"total":          summary.Total,
			"com_prioridade": summary.ComPrioridade,
			"sem_prioridade": summary.SemPrioridade,
		},
	})
}

func (h *Handlers) CreateCliente(w http.ResponseWriter, r *http.Request) {
	var req clienteRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, ok := req.validate(h, w)
	if !ok {
		return
	}

	if err := h.Clientes.Create(r.Context(), c); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[CLIENTE][CREATE] cpf=%s", c.CPF)
	h.JSON(w, http.StatusCreated, viewCliente(*c))
}

// GetCliente returns the client with their linked precatórios and diligências.
func (h *Handlers) GetCliente(w http.ResponseWriter, r *http.Request) {
	cpf := brformat.NormalizeDocument(chi.URLParam(r, "cpf"))

	c, err := h.Clientes.GetByCPF(r.Context(), cpf)
	if err != nil {
		h.Error(w, err)
		return
	}
	precatorios, err := h.Clientes.Precatorios(r.Context(), cpf)
	if err != nil {
		h.Error(w, err)
		return
	}
	diligencias, err := h.Diligencias.List(r.Context(), database.DiligenciaFilter{ClienteCPF: cpf})
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"cliente":     viewCliente(*c),
		"precatorios": viewPrecatorios(precatorios),
		"diligencias": viewDiligencias(diligencias),
	})
}

func (h *Handlers) UpdateCliente(w http.ResponseWriter, r *http.Request) {
	cpf := brformat.NormalizeDocument(chi.URLParam(r, "cpf"))

	var req clienteRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.CPF = cpf
	c, ok := req.validate(h, w)
	if !ok {
		return
	}

	if err := h.Clientes.Update(r.Context(), c); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewCliente(*c))
}

func (h *Handlers) DeleteCliente(w http.ResponseWriter, r *http.Request) {
	cpf := brformat.NormalizeDocument(chi.URLParam(r, "cpf"))
	if err := h.Clientes.Delete(r.Context(), cpf); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[CLIENTE][DELETE] cpf=%s", cpf)
	w.WriteHeader(http.StatusNoContent)
}

type prioridadeIdadeRequest struct {
	IdadeMinima int  `json:"idade_minima"`
	DryRun      bool `json:"dry_run"`
}

// UpdatePrioridadePorIdade flags clients at or above the cutoff age as
// priority, mirroring the statutory age preference.
func (h *Handlers) UpdatePrioridadePorIdade(w http.ResponseWriter, r *http.Request) {
	req := prioridadeIdadeRequest{IdadeMinima: 60}
	if r.ContentLength > 0 && !h.decode(w, r, &req) {
		return
	}
	if req.IdadeMinima < 1 || req.IdadeMinima > 120 {
		h.BadRequest(w, "idade_minima deve estar entre 1 e 120")
		return
	}

	cutoff := time.Now().AddDate(-req.IdadeMinima, 0, 0)
	affected, err := h.Clientes.UpdatePrioridadePorIdade(r.Context(), cutoff, req.DryRun)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.Logger.Printf("[CLIENTE][PRIORIDADE-IDADE] idade_minima=%d dry_run=%v affected=%d",
		req.IdadeMinima, req.DryRun, affected)
	h.JSON(w, http.StatusOK, map[string]any{
		"idade_minima": req.IdadeMinima,
		"dry_run":      req.DryRun,
		"atualizados":  affected,
	})
}
