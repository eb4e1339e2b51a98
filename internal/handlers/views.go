package handlers

import (
	"time"

	"github.com/thsteixeira/precatorios/internal/brformat"
	"github.com/thsteixeira/precatorios/internal/models"
)

// Response shapes. Monetary fields carry a *_fmt twin in Brazilian display
// format.

type precatorioView struct {
	CNJ                           string       `json:"cnj"`
	Orcamento                     int          `json:"orcamento"`
	Origem                        string       `json:"origem"`
	CreditoPrincipal              string       `json:"credito_principal"`
	HonorariosContratuais         string       `json:"honorarios_contratuais"`
	HonorariosSucumbenciais       string       `json:"honorarios_sucumbenciais"`
	ValorDeFace                   float64      `json:"valor_de_face"`
	ValorDeFaceFmt                string       `json:"valor_de_face_fmt"`
	UltimaAtualizacao             *float64     `json:"ultima_atualizacao,omitempty"`
	DataUltimaAtualizacao         *string      `json:"data_ultima_atualizacao,omitempty"`
	PercentualContratuaisAssinado *float64     `json:"percentual_contratuais_assinado,omitempty"`
	PercentualContratuaisApartado *float64     `json:"percentual_contratuais_apartado,omitempty"`
	PercentualSucumbenciais       *float64     `json:"percentual_sucumbenciais,omitempty"`
	TipoID                        *int64       `json:"tipo_id,omitempty"`
	TipoNome                      string       `json:"tipo_nome,omitempty"`
	Arquivo                       *arquivoView `json:"arquivo,omitempty"`
	CriadoEm                      time.Time    `json:"criado_em"`
	AtualizadoEm                  time.Time    `json:"atualizado_em"`
}

type arquivoView struct {
	Nome        string `json:"nome"`
	Tamanho     int64  `json:"tamanho"`
	ContentType string `json:"content_type"`
}

func viewPrecatorio(p models.Precatorio) precatorioView {
	v := precatorioView{
		CNJ:                           p.CNJ,
		Orcamento:                     p.Orcamento,
		Origem:                        p.Origem,
		CreditoPrincipal:              p.CreditoPrincipal,
		HonorariosContratuais:         p.HonorariosContratuais,
		HonorariosSucumbenciais:       p.HonorariosSucumbenciais,
		ValorDeFace:                   p.ValorDeFace,
		ValorDeFaceFmt:                brformat.FormatCurrency(p.ValorDeFace),
		UltimaAtualizacao:             p.UltimaAtualizacao,
		PercentualContratuaisAssinado: p.PercentualContratuaisAssinado,
		PercentualContratuaisApartado: p.PercentualContratuaisApartado,
		PercentualSucumbenciais:       p.PercentualSucumbenciais,
		TipoID:                        p.TipoID,
		TipoNome:                      p.TipoNome,
		CriadoEm:                      p.CriadoEm,
		AtualizadoEm:                  p.AtualizadoEm,
	}
	if p.DataUltimaAtualizacao != nil {
		s := p.DataUltimaAtualizacao.Format("2006-01-02")
		v.DataUltimaAtualizacao = &s
	}
	if p.Arquivo != nil {
		v.Arquivo = &arquivoView{
			Nome:        p.Arquivo.Nome,
			Tamanho:     p.Arquivo.Tamanho,
			ContentType: p.Arquivo.ContentType,
		}
	}
	return v
}

func viewPrecatorios(list []models.Precatorio) []precatorioView {
	out := make([]precatorioView, 0, len(list))
	for _, p := range list {
		out = append(out, viewPrecatorio(p))
	}
	return out
}

type clienteView struct {
	CPF          string    `json:"cpf"`
	Nome         string    `json:"nome"`
	Nascimento   string    `json:"nascimento"`
	Idade        int       `json:"idade"`
	Prioridade   bool      `json:"prioridade"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

func viewCliente(c models.Cliente) clienteView {
	return clienteView{
		CPF:          c.CPF,
		Nome:         c.Nome,
		Nascimento:   c.Nascimento.Format("2006-01-02"),
		Idade:        c.Idade(time.Now()),
		Prioridade:   c.Prioridade,
		CriadoEm:     c.CriadoEm,
		AtualizadoEm: c.AtualizadoEm,
	}
}

func viewClientes(list []models.Cliente) []clienteView {
	out := make([]clienteView, 0, len(list))
	for _, c := range list {
		out = append(out, viewCliente(c))
	}
	return out
}

type alvaraView struct {
	ID                      int64     `json:"id"`
	PrecatorioCNJ           string    `json:"precatorio_cnj"`
	ClienteCPF              string    `json:"cliente_cpf"`
	ClienteNome             string    `json:"cliente_nome"`
	ValorPrincipal          float64   `json:"valor_principal"`
	HonorariosContratuais   float64   `json:"honorarios_contratuais"`
	HonorariosSucumbenciais float64   `json:"honorarios_sucumbenciais"`
	ValorTotal              float64   `json:"valor_total"`
	ValorTotalFmt           string    `json:"valor_total_fmt"`
	Tipo                    string    `json:"tipo"`
	FaseID                  *int64    `json:"fase_id,omitempty"`
	FaseNome                string    `json:"fase_nome,omitempty"`
	FaseHonorariosID        *int64    `json:"fase_honorarios_id,omitempty"`
	FaseHonorariosNome      string    `json:"fase_honorarios_nome,omitempty"`
	CriadoEm                time.Time `json:"criado_em"`
	AtualizadoEm            time.Time `json:"atualizado_em"`
}

func viewAlvara(a models.Alvara) alvaraView {
	return alvaraView{
		ID:                      a.ID,
		PrecatorioCNJ:           a.PrecatorioCNJ,
		ClienteCPF:              a.ClienteCPF,
		ClienteNome:             a.ClienteNome,
		ValorPrincipal:          a.ValorPrincipal,
		HonorariosContratuais:   a.HonorariosContratuais,
		HonorariosSucumbenciais: a.HonorariosSucumbenciais,
		ValorTotal:              a.ValorTotal(),
		ValorTotalFmt:           brformat.FormatCurrency(a.ValorTotal()),
		Tipo:                    a.Tipo,
		FaseID:                  a.FaseID,
		FaseNome:                a.FaseNome,
		FaseHonorariosID:        a.FaseHonorariosID,
		FaseHonorariosNome:      a.FaseHonorariosNome,
		CriadoEm:                a.CriadoEm,
		AtualizadoEm:            a.AtualizadoEm,
	}
}

func viewAlvaras(list []models.Alvara) []alvaraView {
	out := make([]alvaraView, 0, len(list))
	for _, a := range list {
		out = append(out, viewAlvara(a))
	}
	return out
}

type requerimentoView struct {
	ID              int64     `json:"id"`
	PrecatorioCNJ   string    `json:"precatorio_cnj"`
	ClienteCPF      string    `json:"cliente_cpf"`
	ClienteNome     string    `json:"cliente_nome"`
	Valor           float64   `json:"valor"`
	ValorFmt        string    `json:"valor_fmt"`
	Desagio         float64   `json:"desagio"`
	Pedido          string    `json:"pedido"`
	PedidoAbreviado string    `json:"pedido_abreviado"`
	Prioritario     bool      `json:"prioritario"`
	FaseID          *int64    `json:"fase_id,omitempty"`
	FaseNome        string    `json:"fase_nome,omitempty"`
	CriadoEm        time.Time `json:"criado_em"`
	AtualizadoEm    time.Time `json:"atualizado_em"`
}

func viewRequerimento(r models.Requerimento) requerimentoView {
	return requerimentoView{
		ID:              r.ID,
		PrecatorioCNJ:   r.PrecatorioCNJ,
		ClienteCPF:      r.ClienteCPF,
		ClienteNome:     r.ClienteNome,
		Valor:           r.Valor,
		ValorFmt:        brformat.FormatCurrency(r.Valor),
		Desagio:         r.Desagio,
		Pedido:          r.Pedido,
		PedidoAbreviado: r.PedidoAbreviado(),
		Prioritario:     r.Prioritario(),
		FaseID:          r.FaseID,
		FaseNome:        r.FaseNome,
		CriadoEm:        r.CriadoEm,
		AtualizadoEm:    r.AtualizadoEm,
	}
}

func viewRequerimentos(list []models.Requerimento) []requerimentoView {
	out := make([]requerimentoView, 0, len(list))
	for _, r := range list {
		out = append(out, viewRequerimento(r))
	}
	return out
}

type faseView struct {
	ID           int64     `json:"id"`
	Nome         string    `json:"nome"`
	Descricao    string    `json:"descricao,omitempty"`
	Cor          string    `json:"cor"`
	Tipo         string    `json:"tipo,omitempty"`
	Ordem        int       `json:"ordem"`
	Ativa        bool      `json:"ativa"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

func viewFase(f models.Fase) faseView {
	return faseView{
		ID: f.ID, Nome: f.Nome, Descricao: f.Descricao, Cor: f.Cor,
		Tipo: f.Tipo, Ordem: f.Ordem, Ativa: f.Ativa,
		CriadoEm: f.CriadoEm, AtualizadoEm: f.AtualizadoEm,
	}
}

func viewFaseHonorarios(f models.FaseHonorarios) faseView {
	return faseView{
		ID: f.ID, Nome: f.Nome, Descricao: f.Descricao, Cor: f.Cor,
		Ordem: f.Ordem, Ativa: f.Ativa,
		CriadoEm: f.CriadoEm, AtualizadoEm: f.AtualizadoEm,
	}
}

type tipoView struct {
	ID           int64     `json:"id"`
	Nome         string    `json:"nome"`
	Descricao    string    `json:"descricao,omitempty"`
	Cor          string    `json:"cor"`
	Ordem        int       `json:"ordem"`
	Ativa        bool      `json:"ativa"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

func viewTipo(t models.Tipo) tipoView {
	return tipoView{
		ID: t.ID, Nome: t.Nome, Descricao: t.Descricao, Cor: t.Cor,
		Ordem: t.Ordem, Ativa: t.Ativa, CriadoEm: t.CriadoEm, AtualizadoEm: t.AtualizadoEm,
	}
}

func viewTipoDiligencia(t models.TipoDiligencia) tipoView {
	return tipoView{
		ID: t.ID, Nome: t.Nome, Descricao: t.Descricao, Cor: t.Cor,
		Ordem: t.Ordem, Ativa: t.Ativo, CriadoEm: t.CriadoEm, AtualizadoEm: t.AtualizadoEm,
	}
}

type diligenciaView struct {
	ID            int64      `json:"id"`
	ClienteCPF    string     `json:"cliente_cpf"`
	ClienteNome   string     `json:"cliente_nome"`
	TipoID        int64      `json:"tipo_id"`
	TipoNome      string     `json:"tipo_nome"`
	DataFinal     string     `json:"data_final"`
	Urgencia      string     `json:"urgencia"`
	UrgenciaColor string     `json:"urgencia_color"`
	CriadoPor     string     `json:"criado_por"`
	Descricao     string     `json:"descricao,omitempty"`
	Concluida     bool       `json:"concluida"`
	Atrasada      bool       `json:"atrasada"`
	DiasRestantes *int       `json:"dias_restantes,omitempty"`
	DataCriacao   time.Time  `json:"data_criacao"`
	DataConclusao *time.Time `json:"data_conclusao,omitempty"`
	ConcluidoPor  string     `json:"concluido_por,omitempty"`
}

func viewDiligencia(d models.Diligencia) diligenciaView {
	now := time.Now()
	v := diligenciaView{
		ID:            d.ID,
		ClienteCPF:    d.ClienteCPF,
		ClienteNome:   d.ClienteNome,
		TipoID:        d.TipoID,
		TipoNome:      d.TipoNome,
		DataFinal:     d.DataFinal.Format("2006-01-02"),
		Urgencia:      d.Urgencia,
		UrgenciaColor: d.UrgenciaColor(),
		CriadoPor:     d.CriadoPor,
		Descricao:     d.Descricao,
		Concluida:     d.Concluida,
		Atrasada:      d.Overdue(now),
		DataCriacao:   d.DataCriacao,
		DataConclusao: d.DataConclusao,
		ConcluidoPor:  d.ConcluidoPor,
	}
	if dias, ok := d.DaysUntilDeadline(now); ok {
		v.DiasRestantes = &dias
	}
	return v
}

func viewDiligencias(list []models.Diligencia) []diligenciaView {
	out := make([]diligenciaView, 0, len(list))
	for _, d := range list {
		out = append(out, viewDiligencia(d))
	}
	return out
}
