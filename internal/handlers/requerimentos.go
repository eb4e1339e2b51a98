package handlers

import (
	"net/http"

	"github.com/thsteixeira/precatorios/internal/brformat"
	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
)

type requerimentoRequest struct {
	PrecatorioCNJ string  `json:"precatorio_cnj"`
	ClienteCPF    string  `json:"cliente_cpf"`
	Valor         float64 `json:"valor"`
	Desagio       float64 `json:"desagio"`
	Pedido        string  `json:"pedido"`
	FaseID        *int64  `json:"fase_id"`
}

func (h *Handlers) validateRequerimento(w http.ResponseWriter, r *http.Request, req *requerimentoRequest) (*models.Requerimento, bool) {
	cnj := brformat.NormalizeCNJ(req.PrecatorioCNJ)
	cpf := brformat.NormalizeDocument(req.ClienteCPF)
	if cnj == "" || cpf == "" {
		h.BadRequest(w, "precatorio_cnj e cliente_cpf são obrigatórios")
		return nil, false
	}
	if !models.ValidPedido(req.Pedido) {
		h.BadRequest(w, "pedido inválido: "+req.Pedido)
		return nil, false
	}
	if req.Valor < 0 {
		h.BadRequest(w, "valor não pode ser negativo")
		return nil, false
	}
	if req.Desagio < 0 || req.Desagio > 100 {
		h.BadRequest(w, "desagio deve estar entre 0 e 100")
		return nil, false
	}

	linked, err := h.Precatorios.ClienteLinked(r.Context(), cnj, cpf)
	if err != nil {
		h.Error(w, err)
		return nil, false
	}
	if !linked {
		h.BadRequest(w, "cliente não está vinculado ao precatório")
		return nil, false
	}

	if req.FaseID != nil {
		fase, err := h.Fases.GetByID(r.Context(), *req.FaseID)
		if err != nil {
			h.Error(w, err)
			return nil, false
		}
		if !fase.PermiteRequerimento() {
			h.BadRequest(w, "fase não se aplica a requerimentos")
			return nil, false
		}
	}

	return &models.Requerimento{
		PrecatorioCNJ: cnj,
		ClienteCPF:    cpf,
		Valor:         req.Valor,
		Desagio:       req.Desagio,
		Pedido:        req.Pedido,
		FaseID:        req.FaseID,
	}, true
}

func requerimentoFilter(r *http.Request) database.RequerimentoFilter {
	q := r.URL.Query()
	return database.RequerimentoFilter{
		ClienteNome:       q.Get("cliente_nome"),
		ClienteCPF:        brformat.NormalizeDocument(q.Get("cliente_cpf")),
		PrecatorioCNJ:     q.Get("precatorio_cnj"),
		Pedido:            q.Get("pedido"),
		FaseID:            queryInt64(r, "fase_id"),
		SomentePrioridade: r.URL.Query().Get("prioridade") == "true",
	}
}

func (h *Handlers) ListRequerimentos(w http.ResponseWriter, r *http.Request) {
	f := requerimentoFilter(r)

	list, err := h.Requerimentos.List(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}
	summary, err := h.Requerimentos.Summary(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"requerimentos": viewRequerimentos(list),
		"resumo": map[string]any{
			"total":           summary.Total,
			"valor_total":     summary.ValorTotal,
			"valor_total_fmt": brformat.FormatCurrency(summary.ValorTotal),
			"desagio_medio":   summary.DesagioMedio,
		},
	})
}

func (h *Handlers) CreateRequerimento(w http.ResponseWriter, r *http.Request) {
	var req requerimentoRequest
	if !h.decode(w, r, &req) {
		return
	}
	reqmt, ok := h.validateRequerimento(w, r, &req)
	if !ok {
		return
	}

	if err := h.Requerimentos.Create(r.Context(), reqmt); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[REQUERIMENTO][CREATE] id=%d cnj=%s pedido=%q", reqmt.ID, reqmt.PrecatorioCNJ, reqmt.Pedido)
	h.JSON(w, http.StatusCreated, viewRequerimento(*reqmt))
}

func (h *Handlers) GetRequerimento(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	reqmt, err := h.Requerimentos.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewRequerimento(*reqmt))
}

func (h *Handlers) UpdateRequerimento(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	current, err := h.Requerimentos.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}

	var req requerimentoRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.PrecatorioCNJ = current.PrecatorioCNJ
	req.ClienteCPF = current.ClienteCPF

	reqmt, ok := h.validateRequerimento(w, r, &req)
	if !ok {
		return
	}
	reqmt.ID = id

	if err := h.Requerimentos.Update(r.Context(), reqmt); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewRequerimento(*reqmt))
}

func (h *Handlers) DeleteRequerimento(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	if err := h.Requerimentos.Delete(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[REQUERIMENTO][DELETE] id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
