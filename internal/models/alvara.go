package models

import "time"

// Alvara is a judicial payment-release authorization drawn against a
// precatório in favor of one of its clients. The main phase and the
// contractual-fees phase are tracked independently.
type Alvara struct {
	ID                      int64
	PrecatorioCNJ           string
	ClienteCPF              string
	ClienteNome             string
	ValorPrincipal          float64
	HonorariosContratuais   float64
	HonorariosSucumbenciais float64
	Tipo                    string
	FaseID                  *int64
	FaseNome                string
	FaseHonorariosID        *int64
	FaseHonorariosNome      string
	CriadoEm                time.Time
	AtualizadoEm            time.Time
}

// ValorTotal sums the principal and both fee components.
func (a Alvara) ValorTotal() float64 {
	return a.ValorPrincipal + a.HonorariosContratuais + a.HonorariosSucumbenciais
}
