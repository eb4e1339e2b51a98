package models

import "time"

// Tipo categorizes precatórios (e.g. Alimentar, Comum).
type Tipo struct {
	ID           int64
	Nome         string
	Descricao    string
	Cor          string
	Ordem        int
	Ativa        bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}

// TipoDiligencia categorizes diligências. Types referenced by diligências
// cannot be deleted, only deactivated.
type TipoDiligencia struct {
	ID           int64
	Nome         string
	Descricao    string
	Cor          string
	Ordem        int
	Ativo        bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
