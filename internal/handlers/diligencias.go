package handlers

import (
	"net/http"
	"time"

	"github.com/thsteixeira/precatorios/internal/brformat"
	"github.com/thsteixeira/precatorios/internal/models"
	"github.com/thsteixeira/precatorios/internal/repository/database"
	"github.com/thsteixeira/precatorios/internal/transport/auth"
)

type diligenciaRequest struct {
	ClienteCPF string `json:"cliente_cpf"`
	TipoID     int64  `json:"tipo_id"`
	DataFinal  string `json:"data_final"`
	Urgencia   string `json:"urgencia"`
	Descricao  string `json:"descricao"`
}

func (h *Handlers) ListDiligencias(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := database.DiligenciaFilter{
		ClienteCPF: brformat.NormalizeDocument(q.Get("cliente_cpf")),
		TipoID:     queryInt64(r, "tipo_id"),
		Urgencia:   q.Get("urgencia"),
		Concluida:  queryBoolPtr(r, "concluida"),
		Atrasadas:  q.Get("atrasadas") == "true",
	}
	if f.Urgencia != "" && !models.ValidUrgencia(f.Urgencia) {
		h.BadRequest(w, "urgencia deve ser baixa, media ou alta")
		return
	}

	list, err := h.Diligencias.List(r.Context(), f)
	if err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"diligencias": viewDiligencias(list)})
}

func (h *Handlers) CreateDiligencia(w http.ResponseWriter, r *http.Request) {
	var req diligenciaRequest
	if !h.decode(w, r, &req) {
		return
	}
	cpf := brformat.NormalizeDocument(req.ClienteCPF)
	if err := brformat.ValidateDocument(cpf); err != nil {
		h.BadRequest(w, "cliente_cpf: "+err.Error())
		return
	}
	if req.TipoID == 0 {
		h.BadRequest(w, "tipo_id é obrigatório")
		return
	}
	if req.Urgencia == "" {
		req.Urgencia = models.UrgenciaMedia
	}
	if !models.ValidUrgencia(req.Urgencia) {
		h.BadRequest(w, "urgencia deve ser baixa, media ou alta")
		return
	}
	dataFinal, err := time.ParseInLocation("2006-01-02", req.DataFinal, time.Local)
	if err != nil {
		h.BadRequest(w, "data_final: use o formato 2006-01-02")
		return
	}

	if _, err := h.Clientes.GetByCPF(r.Context(), cpf); err != nil {
		h.Error(w, err)
		return
	}

	d := models.Diligencia{
		ClienteCPF: cpf,
		TipoID:     req.TipoID,
		DataFinal:  dataFinal,
		Urgencia:   req.Urgencia,
		CriadoPor:  auth.GetUserNome(r.Context()),
		Descricao:  req.Descricao,
	}

	if err := h.Diligencias.Create(r.Context(), &d); err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[DILIGENCIA][CREATE] id=%d cpf=%s urgencia=%s", d.ID, d.ClienteCPF, d.Urgencia)
	h.JSON(w, http.StatusCreated, viewDiligencia(d))
}

func (h *Handlers) GetDiligencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	d, err := h.Diligencias.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewDiligencia(*d))
}

func (h *Handlers) UpdateDiligencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	current, err := h.Diligencias.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}

	var req diligenciaRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.TipoID == 0 {
		req.TipoID = current.TipoID
	}
	if req.Urgencia == "" {
		req.Urgencia = current.Urgencia
	}
	if !models.ValidUrgencia(req.Urgencia) {
		h.BadRequest(w, "urgencia deve ser baixa, media ou alta")
		return
	}
	dataFinal, err := time.ParseInLocation("2006-01-02", req.DataFinal, time.Local)
	if err != nil {
		h.BadRequest(w, "data_final: use o formato 2006-01-02")
		return
	}

	d := *current
	d.TipoID = req.TipoID
	d.DataFinal = dataFinal
	d.Urgencia = req.Urgencia
	d.Descricao = req.Descricao

	if err := h.Diligencias.Update(r.Context(), &d); err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewDiligencia(d))
}

// ConcludeDiligencia stamps the conclusion with the operator from the token.
func (h *Handlers) ConcludeDiligencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	por := auth.GetUserNome(r.Context())

	if err := h.Diligencias.Conclude(r.Context(), id, por, time.Now()); err != nil {
		h.Error(w, err)
		return
	}
	d, err := h.Diligencias.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}
	h.Logger.Printf("[DILIGENCIA][CONCLUDE] id=%d por=%q", id, por)
	h.JSON(w, http.StatusOK, viewDiligencia(*d))
}

func (h *Handlers) ReopenDiligencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	if err := h.Diligencias.Reopen(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}
	d, err := h.Diligencias.GetByID(r.Context(), id)
	if err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, viewDiligencia(*d))
}

func (h *Handlers) DeleteDiligencia(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		h.BadRequest(w, "id inválido")
		return
	}
	if err := h.Diligencias.Delete(r.Context(), id); err != nil {
		h.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
