package models

import "time"

const (
	UrgenciaBaixa = "baixa"
	UrgenciaMedia = "media"
	UrgenciaAlta  = "alta"
)

func ValidUrgencia(u string) bool {
	return u == UrgenciaBaixa || u == UrgenciaMedia || u == UrgenciaAlta
}

// Diligencia is an action that must be completed for a client by a deadline.
type Diligencia struct {
	ID            int64
	ClienteCPF    string
	ClienteNome   string
	TipoID        int64
	TipoNome      string
	DataFinal     time.Time
	Urgencia      string
	CriadoPor     string
	Descricao     string
	Concluida     bool
	DataCriacao   time.Time
	DataConclusao *time.Time
	ConcluidoPor  string
}

// Overdue reports whether the deadline passed without conclusion.
func (d Diligencia) Overdue(today time.Time) bool {
	return !d.Concluida && d.DataFinal.Before(truncateDay(today))
}

// DaysUntilDeadline returns the days remaining (negative when overdue).
// Concluded diligências return false.
func (d Diligencia) DaysUntilDeadline(today time.Time) (int, bool) {
	if d.Concluida {
		return 0, false
	}
	delta := d.DataFinal.Sub(truncateDay(today))
	return int(delta.Hours() / 24), true
}

// UrgenciaColor maps the urgency level to the UI color class.
func (d Diligencia) UrgenciaColor() string {
	switch d.Urgencia {
	case UrgenciaMedia:
		return "warning"
	case UrgenciaAlta:
		return "danger"
	}
	return "secondary"
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
