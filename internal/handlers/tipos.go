package handlers

import (
	"net/http"

	"github.com/thsteixeira/precatorios/internal/models"
)

type tipoRequest struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Cor       string `json:"cor"`
	Ordem     int    `json:"ordem"`
	Ativa     *bool  `json:"ativa"`
}

// Tipos de precatório (Alimentar, Comum, ...).

func (h *Handlers) ListTipos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Tipos.List(r.Context(), r.URL.Query().Get("ativos") == "true")
	if err != nil {
		h.Error(w, err)
		return
	}
	out := make([]tipoView, 0, len(list))
	for _, t := range list {
		out = append(out, viewTipo(t))
	}
	h.JSON(w, http.StatusOK, map[string]any{"tipos": out})
}

func (h *Handlers) CreateTipo(w http.ResponseWriter, r *http.Request) {
	var req tipoRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return
	}

	t := models.Tipo{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Cor:       req.Cor,
		Ordem:     req.Ordem,
		Ativa:     true,
	}
	if req.Ativa != nil {
		t.Ativa = *req.Ativa
	}
	if t.Cor == "" {
		t.Cor = "#007BFF"
	}
	if !validCor(t.Cor) {
		h.BadRequest(w, "cor deve estar no formato #RRGGBB")
		return
	}

	if err := h.Tipos.Create(r.Context(), &t); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusCreated, viewTipo(t))
}

func (h *Handlers) UpdateTipo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	current, err := h.Tipos.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}

	var req tipoRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return
	}

	t := *current
	t.Nome = req.Nome
	t.Descricao = req.Descricao
	t.Ordem = req.Ordem
	if req.Cor != "" {
		t.Cor = req.Cor
	}
	if !validCor(t.Cor) {
		h.BadRequest(w, "cor deve estar no formato #RRGGBB")
		return
	}
	if req.Ativa != nil {
		t.Ativa = *req.Ativa
	}

	if err := h.Tipos.Update(r.Context(), &t); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewTipo(t))
}

func (h *Handlers) SetTipoAtiva(ativa bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathInt64(r, "id")
		if !ok {
			h.BadRequest(w, "id inválido")
			return
		}
		if err := h.Tipos.SetAtiva(r.Context(), id, ativa); err != nil {
			h.Error(w, err)
			return
		}
		h.JSON(w, http.StatusOK, map[string]any{"id": id, "ativa": ativa})
	}
}

func (h *Handlers) DeleteTipo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	if err := h.Tipos.Delete(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tipos de diligência.

func (h *Handlers) ListTiposDiligencia(w http.ResponseWriter, r *http.Request) {
	list, err := h.TiposDiligencia.List(r.Context(), r.URL.Query().Get("ativos") == "true")
	if err != nil {
		h.Error(w, err)
		return
	}
	out := make([]tipoView, 0, len(list))
	for _, t := range list {
		out = append(out, viewTipoDiligencia(t))
	}
	h.JSON(w, http.StatusOK, map[string]any{"tipos_diligencia": out})
}

func (h *Handlers) CreateTipoDiligencia(w http.ResponseWriter, r *http.Request) {
	var req tipoRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return
	}

	t := models.TipoDiligencia{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Cor:       req.Cor,
		Ordem:     req.Ordem,
		Ativo:     true,
	}
	if req.Ativa != nil {
		t.Ativo = *req.Ativa
	}
	if t.Cor == "" {
		t.Cor = "#6C757D"
	}
	if !validCor(t.Cor) {
		h.BadRequest(w, "cor deve estar no formato #RRGGBB")
		return
	}

	if err := h.TiposDiligencia.Create(r.Context(), &t); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusCreated, viewTipoDiligencia(t))
}

func (h *Handlers) UpdateTipoDiligencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	current, err := h.TiposDiligencia.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}

	var req tipoRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return
	}

	t := *current
	t.Nome = req.Nome
	t.Descricao = req.Descricao
	t.Ordem = req.Ordem
	if req.Cor != "" {
		t.Cor = req.Cor
	}
	if !validCor(t.Cor) {
		h.BadRequest(w, "cor deve estar no formato #RRGGBB")
		return
	}
	if req.Ativa != nil {
		t.Ativo = *req.Ativa
	}

	if err := h.TiposDiligencia.Update(r.Context(), &t); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewTipoDiligencia(t))
}

func (h *Handlers) SetTipoDiligenciaAtivo(ativo bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathInt64(r, "id")
		if !ok {
			h.BadRequest(w, "id inválido")
			return
		}
		if err := h.TiposDiligencia.SetAtivo(r.Context(), id, ativo); err != nil {
			h.Error(w, err)
			return
		}
		h.JSON(w, http.StatusOK, map[string]any{"id": id, "ativo": ativo})
	}
}

func (h *Handlers) DeleteTipoDiligencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	if err := h.TiposDiligencia.Delete(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
