package handlers

import (
	"net/http"

	"github.com/thsteixeira/precatorios/internal/brformat"
	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
)

type alvaraRequest struct {
	PrecatorioCNJ           string  `json:"precatorio_cnj"`
	ClienteCPF              string  `json:"cliente_cpf"`
	ValorPrincipal          float64 `json:"valor_principal"`
	HonorariosContratuais   float64 `json:"honorarios_contratuais"`
	HonorariosSucumbenciais float64 `json:"honorarios_sucumbenciais"`
	Tipo                    string  `json:"tipo"`
	FaseID                  *int64  `json:"fase_id"`
	FaseHonorariosID        *int64  `json:"fase_honorarios_id"`
}

// validateAlvara enforces the linkage invariant (the client must already
// belong to the precatório) and the phase-kind rules.
func (h *Handlers) validateAlvara(w http.ResponseWriter, r *http.Request, req *alvaraRequest) (*models.Alvara, bool) {
	cnj := brformat.NormalizeCNJ(req.PrecatorioCNJ)
	cpf := brformat.NormalizeDocument(req.ClienteCPF)
	if cnj == "" || cpf == "" {
		h.BadRequest(w, "precatorio_cnj e cliente_cpf são obrigatórios")
		return nil, false
	}
	if req.Tipo == "" {
		h.BadRequest(w, "tipo é obrigatório")
		return nil, false
	}
	if req.ValorPrincipal < 0 || req.HonorariosContratuais < 0 || req.HonorariosSucumbenciais < 0 {
		h.BadRequest(w, "valores não podem ser negativos")
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
		if !fase.PermiteAlvara() {
			h.BadRequest(w, "fase não se aplica a alvarás")
			return nil, false
		}
	}
	if req.FaseHonorariosID != nil {
		if _, err := h.FasesHonorarios.GetByID(r.Context(), *req.FaseHonorariosID); err != nil {
			h.Error(w, err)
			return nil, false
		}
	}

	return &models.Alvara{
		PrecatorioCNJ:           cnj,
		ClienteCPF:              cpf,
		ValorPrincipal:          req.ValorPrincipal,
		HonorariosContratuais:   req.HonorariosContratuais,
		HonorariosSucumbenciais: req.HonorariosSucumbenciais,
		Tipo:                    req.Tipo,
		FaseID:                  req.FaseID,
		FaseHonorariosID:        req.FaseHonorariosID,
	}, true
}

func alvaraFilter(r *http.Request) database.AlvaraFilter {
	q := r.URL.Query()
	return database.AlvaraFilter{
		ClienteNome:   q.Get("cliente_nome"),
		ClienteCPF:    brformat.NormalizeDocument(q.Get("cliente_cpf")),
		PrecatorioCNJ: q.Get("precatorio_cnj"),
		Tipo:          q.Get("tipo"),
		FaseID:        queryInt64(r, "fase_id"),
	}
}

func (h *Handlers) ListAlvaras(w http.ResponseWriter, r *http.Request) {
	f := alvaraFilter(r)

	list, err := h.Alvaras.List(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}
	summary, err := h.Alvaras.Summary(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}

	total := summary.ValorPrincipalTotal + summary.HonorariosContratuaisTotal + summary.HonorariosSucumbenciaisTotal
	h.JSON(w, http.StatusOK, map[string]any{
		"alvaras": viewAlvaras(list),
		"resumo": map[string]any{
			"total":                          summary.Total,
			"valor_principal_total":          summary.ValorPrincipalTotal,
			"honorarios_contratuais_total":   summary.HonorariosContratuaisTotal,
			"honorarios_sucumbenciais_total": summary.HonorariosSucumbenciaisTotal,
			"valor_geral":                    total,
			"valor_geral_fmt":                brformat.FormatCurrency(total),
		},
	})
}

func (h *Handlers) CreateAlvara(w http.ResponseWriter, r *http.Request) {
	var req alvaraRequest
	if !h.decode(w, r, &req) {
		return
	}
	a, ok := h.validateAlvara(w, r, &req)
	if !ok {
		return
	}

	if err := h.Alvaras.Create(r.Context(), a); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[ALVARA][CREATE] id=%d cnj=%s cpf=%s", a.ID, a.PrecatorioCNJ, a.ClienteCPF)
	h.JSON(w, http.StatusCreated, viewAlvara(*a))
}

func (h *Handlers) GetAlvara(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	a, err := h.Alvaras.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewAlvara(*a))
}

func (h *Handlers) UpdateAlvara(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	current, err := h.Alvaras.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}

	var req alvaraRequest
	if !h.decode(w, r, &req) {
		return
	}
	// the precatório/cliente pair is fixed after creation
	req.PrecatorioCNJ = current.PrecatorioCNJ
	req.ClienteCPF = current.ClienteCPF

	a, ok := h.validateAlvara(w, r, &req)
	if !ok {
		return
	}
	a.ID = id

	if err := h.Alvaras.Update(r.Context(), a); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewAlvara(*a))
}

func (h *Handlers) DeleteAlvara(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	if err := h.Alvaras.Delete(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[ALVARA][DELETE] id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
