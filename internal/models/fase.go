package models

import "time"

// Fase tipo values: a phase may apply to alvarás, requerimentos or both.
const (
	FaseTipoAlvara       = "alvara"
	FaseTipoRequerimento = "requerimento"
	FaseTipoAmbos        = "ambos"
)

// Fase is a configurable workflow phase applied to alvarás and requerimentos.
// The (Nome, Tipo) pair is unique so the same label can exist for both
// document kinds.
type Fase struct {
	ID           int64
	Nome         string
	Descricao    string
	Cor          string
	Tipo         string
	Ordem        int
	Ativa        bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}

func ValidFaseTipo(t string) bool {
	return t == FaseTipoAlvara || t == FaseTipoRequerimento || t == FaseTipoAmbos
}

// PermiteAlvara reports whether the phase may be assigned to an alvará.
func (f Fase) PermiteAlvara() bool {
	return f.Tipo == FaseTipoAlvara || f.Tipo == FaseTipoAmbos
}

// PermiteRequerimento reports whether the phase may be assigned to a requerimento.
func (f Fase) PermiteRequerimento() bool {
	return f.Tipo == FaseTipoRequerimento || f.Tipo == FaseTipoAmbos
}

// FaseHonorarios tracks the contractual-fees status of an alvará
// independently of its main phase.
type FaseHonorarios struct {
	ID           int64
	Nome         string
	Descricao    string
	Cor          string
	Ordem        int
	Ativa        bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
