package models

import "time"

// Pedido values a requerimento may carry. Exactly one per requerimento.
const (
	PedidoPrioridadeDoenca    = "prioridade doença"
	PedidoPrioridadeIdade     = "prioridade idade"
	PedidoAcordoPrincipal     = "acordo principal"
	PedidoAcordoContratuais   = "acordo honorários contratuais"
	PedidoAcordoSucumbenciais = "acordo honorários sucumbenciais"
)

func ValidPedido(p string) bool {
	switch p {
	case PedidoPrioridadeDoenca, PedidoPrioridadeIdade,
		PedidoAcordoPrincipal, PedidoAcordoContratuais, PedidoAcordoSucumbenciais:
		return true
	}
	return false
}

// Requerimento is a procedural request filed within a precatório's process.
type Requerimento struct {
	ID            int64
	PrecatorioCNJ string
	ClienteCPF    string
	ClienteNome   string
	Valor         float64
	Desagio       float64
	Pedido        string
	FaseID        *int64
	FaseNome      string
	CriadoEm      time.Time
	AtualizadoEm  time.Time
}

// Prioritario reports whether the request asks for expedited processing.
func (r Requerimento) Prioritario() bool {
	return r.Pedido == PedidoPrioridadeDoenca || r.Pedido == PedidoPrioridadeIdade
}

// PedidoAbreviado returns a short display label for the pedido.
func (r Requerimento) PedidoAbreviado() string {
	switch r.Pedido {
	case PedidoPrioridadeDoenca:
		return "Prioridade Doença"
	case PedidoPrioridadeIdade:
		return "Prioridade Idade"
	case PedidoAcordoPrincipal:
		return "Acordo Principal"
	case PedidoAcordoContratuais:
		return "Acordo Hon. Contratuais"
	case PedidoAcordoSucumbenciais:
		return "Acordo Hon. Sucumbenciais"
	}
	return r.Pedido
}
