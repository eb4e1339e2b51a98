package handlers

import (
	"net/http"

	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
)

type faseRequest struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Cor       string `json:"cor"`
	Tipo      string `json:"tipo"`
	Ordem     int    `json:"ordem"`
	Ativa     *bool  `json:"ativa"`
}

func (h *Handlers) ListFases(w http.ResponseWriter, r *http.Request) {
	f := database.FaseFilter{
		ParaTipo:      r.URL.Query().Get("para_tipo"),
		SomenteAtivas: r.URL.Query().Get("ativas") == "true",
	}
	if f.ParaTipo != "" && f.ParaTipo != models.FaseTipoAlvara && f.ParaTipo != models.FaseTipoRequerimento {
		h.BadRequest(w, "para_tipo deve ser alvara ou requerimento")
		return
	}

	list, err := h.Fases.List(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}
	out := make([]faseView, 0, len(list))
	for _, fase := range list {
		out = append(out, viewFase(fase))
	}
	h.JSON(w, http.StatusOK, map[string]any{"fases": out})
}

func (h *Handlers) CreateFase(w http.ResponseWriter, r *http.Request) {
	var req faseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return
	}
	if !models.ValidFaseTipo(req.Tipo) {
		h.BadRequest(w, "tipo deve ser alvara, requerimento ou ambos")
		return
	}

	fase := models.Fase{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Cor:       req.Cor,
		Tipo:      req.Tipo,
		Ordem:     req.Ordem,
		Ativa:     true,
	}
	if req.Ativa != nil {
		fase.Ativa = *req.Ativa
	}
	if fase.Cor == "" {
		fase.Cor = "#6C757D"
	}
	if !validCor(fase.Cor) {
		h.BadRequest(w, "cor deve estar no formato #RRGGBB")
		return
	}

	if err := h.Fases.Create(r.Context(), &fase); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusCreated, viewFase(fase))
}

func (h *Handlers) GetFase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	fase, err := h.Fases.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewFase(*fase))
}

func (h *Handlers) UpdateFase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	current, err := h.Fases.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}

	var req faseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return
	}
	if !models.ValidFaseTipo(req.Tipo) {
		h.BadRequest(w, "tipo deve ser alvara, requerimento ou ambos")
		return
	}

	fase := *current
	fase.Nome = req.Nome
	fase.Descricao = req.Descricao
	fase.Tipo = req.Tipo
	fase.Ordem = req.Ordem
	if req.Cor != "" {
		fase.Cor = req.Cor
	}
	if !validCor(fase.Cor) {
		h.BadRequest(w, "cor deve estar no formato #RRGGBB")
		return
	}
	if req.Ativa != nil {
		fase.Ativa = *req.Ativa
	}

	if err := h.Fases.Update(r.Context(), &fase); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewFase(fase))
}

func (h *Handlers) SetFaseAtiva(ativa bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathInt64(r, "id")
		if !ok {
			h.BadRequest(w, "id inválido")
			return
		}
		if err := h.Fases.SetAtiva(r.Context(), id, ativa); err != nil {
			h.Error(w, err)
			return
		}
		h.JSON(w, http.StatusOK, map[string]any{"id": id, "ativa": ativa})
	}
}

func (h *Handlers) DeleteFase(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	if err := h.Fases.Delete(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Fases de honorários contratuais, the parallel workflow on alvarás.

func (h *Handlers) ListFasesHonorarios(w http.ResponseWriter, r *http.Request) {
	list, err := h.FasesHonorarios.List(r.Context(), r.URL.Query().Get("ativas") == "true")
	if err != nil {
		h.Error(w, err)
		return
	}
	out := make([]faseView, 0, len(list))
	for _, fase := range list {
		out = append(out, viewFaseHonorarios(fase))
	}
	h.JSON(w, http.StatusOK, map[string]any{"fases_honorarios": out})
}

func (h *Handlers) CreateFaseHonorarios(w http.ResponseWriter, r *http.Request) {
	var req faseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return
	}

	fase := models.FaseHonorarios{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		Cor:       req.Cor,
		Ordem:     req.Ordem,
		Ativa:     true,
	}
	if req.Ativa != nil {
		fase.Ativa = *req.Ativa
	}
	if fase.Cor == "" {
		fase.Cor = "#28A745"
	}
	if !validCor(fase.Cor) {
		h.BadRequest(w, "cor deve estar no formato #RRGGBB")
		return
	}

	if err := h.FasesHonorarios.Create(r.Context(), &fase); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusCreated, viewFaseHonorarios(fase))
}

func (h *Handlers) UpdateFaseHonorarios(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	current, err := h.FasesHonorarios.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}

	var req faseRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Nome == "" {
		h.BadRequest(w, "nome é obrigatório")
		return
	}

	fase := *current
	fase.Nome = req.Nome
	fase.Descricao = req.Descricao
	fase.Ordem = req.Ordem
	if req.Cor != "" {
		fase.Cor = req.Cor
	}
	if !validCor(fase.Cor) {
		h.BadRequest(w, "cor deve estar no formato #RRGGBB")
		return
	}
	if req.Ativa != nil {
		fase.Ativa = *req.Ativa
	}

	if err := h.FasesHonorarios.Update(r.Context(), &fase); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewFaseHonorarios(fase))
}

func (h *Handlers) SetFaseHonorariosAtiva(ativa bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathInt64(r, "id")
		if !ok {
			h.BadRequest(w, "id inválido")
			return
		}
		if err := h.FasesHonorarios.SetAtiva(r.Context(), id, ativa); err != nil {
			h.Error(w, err)
			return
		}
		h.JSON(w, http.StatusOK, map[string]any{"id": id, "ativa": ativa})
	}
}

func (h *Handlers) DeleteFaseHonorarios(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	if err := h.FasesHonorarios.Delete(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
