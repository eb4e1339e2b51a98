package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thsteixeira/precatorios/internal/brformat"
	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
)

type precatorioRequest struct {
	CNJ                           string   `json:"cnj"`
	Orcamento                     int      `json:"orcamento"`
	Origem                        string   `json:"origem"`
	CreditoPrincipal              string   `json:"credito_principal"`
	HonorariosContratuais         string   `json:"honorarios_contratuais"`
	HonorariosSucumbenciais       string   `json:"honorarios_sucumbenciais"`
	ValorDeFace                   float64  `json:"valor_de_face"`
	UltimaAtualizacao             *float64 `json:"ultima_atualizacao"`
	DataUltimaAtualizacao         *string  `json:"data_ultima_atualizacao"`
	PercentualContratuaisAssinado *float64 `json:"percentual_contratuais_assinado"`
	PercentualContratuaisApartado *float64 `json:"percentual_contratuais_apartado"`
	PercentualSucumbenciais       *float64 `json:"percentual_sucumbenciais"`
	TipoID                        *int64   `json:"tipo_id"`
}

func (req *precatorioRequest) validate(h *Handlers, w http.ResponseWriter) (*models.Precatorio, bool) {
	cnj := brformat.NormalizeCNJ(req.CNJ)
	if err := brformat.ValidateCNJ(cnj); err != nil {
		h.BadRequest(w, "cnj: "+err.Error())
		return nil, false
	}
	if req.Orcamento < 1988 || req.Orcamento > 2050 {
		h.BadRequest(w, "orcamento deve estar entre 1988 e 2050")
		return nil, false
	}
	for _, s := range []*string{&req.CreditoPrincipal, &req.HonorariosContratuais, &req.HonorariosSucumbenciais} {
		if *s == "" {
			*s = models.StatusPendente
		}
		if !models.ValidStatusPagamento(*s) {
			h.BadRequest(w, "status de pagamento inválido: "+*s)
			return nil, false
		}
	}
	for _, p := range []*float64{req.PercentualContratuaisAssinado, req.PercentualContratuaisApartado, req.PercentualSucumbenciais} {
		if p != nil && (*p < 0 || *p > 30) {
			h.BadRequest(w, "percentual deve estar entre 0 e 30")
			return nil, false
		}
	}

	p := &models.Precatorio{
		CNJ:                           cnj,
		Orcamento:                     req.Orcamento,
		Origem:                        req.Origem,
		CreditoPrincipal:              req.CreditoPrincipal,
		HonorariosContratuais:         req.HonorariosContratuais,
		HonorariosSucumbenciais:       req.HonorariosSucumbenciais,
		ValorDeFace:                   req.ValorDeFace,
		UltimaAtualizacao:             req.UltimaAtualizacao,
		PercentualContratuaisAssinado: req.PercentualContratuaisAssinado,
		PercentualContratuaisApartado: req.PercentualContratuaisApartado,
		PercentualSucumbenciais:       req.PercentualSucumbenciais,
		TipoID:                        req.TipoID,
	}
	if req.DataUltimaAtualizacao != nil && *req.DataUltimaAtualizacao != "" {
		t, err := time.ParseInLocation("2006-01-02", *req.DataUltimaAtualizacao, time.Local)
		if err != nil {
			h.BadRequest(w, "data_ultima_atualizacao: use o formato 2006-01-02")
			return nil, false
		}
		p.DataUltimaAtualizacao = &t
	}
	return p, true
}

func precatorioFilter(r *http.Request) database.PrecatorioFilter {
	q := r.URL.Query()
	return database.PrecatorioFilter{
		CNJ:              q.Get("cnj"),
		Origem:           q.Get("origem"),
		CreditoPrincipal: q.Get("credito_principal"),
		Orcamento:        queryInt(r, "orcamento"),
		TipoID:           queryInt64(r, "tipo_id"),
		ClienteCPF:       brformat.NormalizeDocument(q.Get("cliente_cpf")),
	}
}

func (h *Handlers) ListPrecatorios(w http.ResponseWriter, r *http.Request) {
	f := precatorioFilter(r)

	list, err := h.Precatorios.List(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}
	summary, err := h.Precatorios.Summary(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"precatorios": viewPrecatorios(list),
		"resumo": map[string]any{
			"total":               summary.Total,
			"pendentes":           summary.Pendentes,
			"parciais":            summary.Parciais,
			"quitados":            summary.Quitados,
			"vendidos":            summary.Vendidos,
			"valor_de_face_total": summary.ValorDeFaceTotal,
			"valor_de_face_fmt":   brformat.FormatCurrency(summary.ValorDeFaceTotal),
		},
	})
}

func (h *Handlers) CreatePrecatorio(w http.ResponseWriter, r *http.Request) {
	var req precatorioRequest
	if !h.decode(w, r, &req) {
		return
	}
	p, ok := req.validate(h, w)
	if !ok {
		return
	}

	if err := h.Precatorios.Create(r.Context(), p); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[PRECATORIO][CREATE] cnj=%s", p.CNJ)
	h.JSON(w, http.StatusCreated, viewPrecatorio(*p))
}

// GetPrecatorio returns the precatório with its clientes, alvarás and
// requerimentos.
func (h *Handlers) GetPrecatorio(w http.ResponseWriter, r *http.Request) {
	cnj := chi.URLParam(r, "cnj")

	p, err := h.Precatorios.GetByCNJ(r.Context(), cnj)
	if err != nil {
		h.Error(w, err)
		return
	}
	clientes, err := h.Precatorios.Clientes(r.Context(), cnj)
	if err != nil {
		h.Error(w, err)
		return
	}
	alvaras, err := h.Alvaras.ListByPrecatorio(r.Context(), cnj)
	if err != nil {
		h.Error(w, err)
		return
	}
	requerimentos, err := h.Requerimentos.ListByPrecatorio(r.Context(), cnj)
	if err != nil {
		h.Error(w, err)
		return
	}

	h.JSON(w, http.StatusOK, map[string]any{
		"precatorio":    viewPrecatorio(*p),
		"clientes":      viewClientes(clientes),
		"alvaras":       viewAlvaras(alvaras),
		"requerimentos": viewRequerimentos(requerimentos),
	})
}

func (h *Handlers) UpdatePrecatorio(w http.ResponseWriter, r *http.Request) {
	cnj := chi.URLParam(r, "cnj")

	var req precatorioRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.CNJ = cnj
	p, ok := req.validate(h, w)
	if !ok {
		return
	}

	if err := h.Precatorios.Update(r.Context(), p); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewPrecatorio(*p))
}

func (h *Handlers) DeletePrecatorio(w http.ResponseWriter, r *http.Request) {
	cnj := chi.URLParam(r, "cnj")
	if err := h.Precatorios.Delete(r.Context(), cnj); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[PRECATORIO][DELETE] cnj=%s", cnj)
	w.WriteHeader(http.StatusNoContent)
}

type linkClienteRequest struct {
	CPF string `json:"cpf"`
}

func (h *Handlers) LinkCliente(w http.ResponseWriter, r *http.Request) {
	cnj := chi.URLParam(r, "cnj")

	var req linkClienteRequest
	if !h.decode(w, r, &req) {
		return
	}
	cpf := brformat.NormalizeDocument(req.CPF)
	if err := brformat.ValidateDocument(cpf); err != nil {
		h.BadRequest(w, "cpf: "+err.Error())
		return
	}

	// both sides must exist before linking
	if _, err := h.Precatorios.GetByCNJ(r.Context(), cnj); err != nil {
		h.Error(w, err)
		return
	}
	if _, err := h.Clientes.GetByCPF(r.Context(), cpf); err != nil {
		h.Error(w, err)
		return
	}

	created, err := h.Precatorios.LinkCliente(r.Context(), cnj, cpf)
	if err != nil {
		h.Error(w, err)
		return
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	h.JSON(w, code, map[string]any{"vinculado": true, "criado": created})
}

func (h *Handlers) UnlinkCliente(w http.ResponseWriter, r *http.Request) {
	cnj := chi.URLParam(r, "cnj")
	cpf := brformat.NormalizeDocument(chi.URLParam(r, "cpf"))

	removed, err := h.Precatorios.UnlinkCliente(r.Context(), cnj, cpf)
	if err != nil {
		h.Error(w, err)
		return
	}
	if !removed {
		h.JSON(w, http.StatusNotFound, map[string]string{"error": "vínculo não encontrado"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
