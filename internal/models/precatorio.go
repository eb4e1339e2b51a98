package models

import "time"

// Payment status of each financial component of a precatório.
const (
	StatusPendente = "pendente"
	StatusParcial  = "parcial"
	StatusQuitado  = "quitado"
	StatusVendido  = "vendido"
)

func ValidStatusPagamento(s string) bool {
	switch s {
	case StatusPendente, StatusParcial, StatusQuitado, StatusVendido:
		return true
	}
	return false
}

// Precatorio is a court-ordered payment obligation owed by a government
// entity, identified by its CNJ case number. The principal credit and the two
// fee components carry independent payment statuses.
type Precatorio struct {
	CNJ                           string
	Orcamento                     int
	Origem                        string
	CreditoPrincipal              string
	HonorariosContratuais         string
	HonorariosSucumbenciais       string
	ValorDeFace                   float64
	UltimaAtualizacao             *float64
	DataUltimaAtualizacao         *time.Time
	PercentualContratuaisAssinado *float64
	PercentualContratuaisApartado *float64
	PercentualSucumbenciais       *float64
	TipoID                        *int64
	TipoNome                      string

	Arquivo *Arquivo

	CriadoEm     time.Time
	AtualizadoEm time.Time
}

// Arquivo is the attachment metadata of a precatório (the object itself lives
// in S3 or on local disk).
type Arquivo struct {
	Key         string
	Nome        string
	Tamanho     int64
	ContentType string
}
