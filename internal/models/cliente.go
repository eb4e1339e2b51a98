package models

import "time"

// Cliente is a claimant entitled to payment from one or more precatórios.
// CPF holds either an individual CPF (11 digits) or a company CNPJ (14
// digits), digits only.
type Cliente struct {
	CPF          string
	Nome         string
	Nascimento   time.Time
	Prioridade   bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}

// Idade returns the client's age in full years at the given date.
func (c Cliente) Idade(at time.Time) int {
	years := at.Year() - c.Nascimento.Year()
	anniversary := c.Nascimento.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}
