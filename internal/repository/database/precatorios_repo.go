package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

type PrecatoriosRepo struct {
	pg *postgres.Postgres
}

func NewPrecatoriosRepo(pg *postgres.Postgres) *PrecatoriosRepo {
	return &PrecatoriosRepo{pg: pg}
}

const precatorioColumns = `
	p.cnj, p.orcamento, p.origem,
	p.credito_principal, p.honorarios_contratuais, p.honorarios_sucumbenciais,
	p.valor_de_face, p.ultima_atualizacao, p.data_ultima_atualizacao,
	p.percentual_contratuais_assinado, p.percentual_contratuais_apartado, p.percentual_sucumbenciais,
	p.tipo_id, COALESCE(t.nome, ''),
	p.arquivo_key, p.arquivo_nome, p.arquivo_tamanho, p.arquivo_content_type,
	p.criado_em, p.atualizado_em`

type PrecatorioFilter struct {
	CNJ              string // contains
	Origem           string // contains
	CreditoPrincipal string // exact status
	Orcamento        int
	TipoID           int64
	ClienteCPF       string // only precatórios linked to this client
}

// PrecatorioSummary holds the list-page aggregates.
type PrecatorioSummary struct {
	Total            int64
	Pendentes        int64
	Parciais         int64
	Quitados         int64
	Vendidos         int64
	ValorDeFaceTotal float64
}

func (f PrecatorioFilter) build() where {
	var w where
	if f.CNJ != "" {
		w.addf("p.cnj ILIKE ?", contains(f.CNJ))
	}
	if f.Origem != "" {
		w.addf("p.origem ILIKE ?", contains(f.Origem))
	}
	if f.CreditoPrincipal != "" {
		w.addf("p.credito_principal = ?", f.CreditoPrincipal)
	}
	if f.Orcamento != 0 {
		w.addf("p.orcamento = ?", f.Orcamento)
	}
	if f.TipoID != 0 {
		w.addf("p.tipo_id = ?", f.TipoID)
	}
	if f.ClienteCPF != "" {
		w.addf("EXISTS (SELECT 1 FROM precatorio_clientes pc WHERE pc.precatorio_cnj = p.cnj AND pc.cliente_cpf = ?)", f.ClienteCPF)
	}
	return w
}

func (r *PrecatoriosRepo) List(ctx context.Context, f PrecatorioFilter) ([]models.Precatorio, error) {
	w := f.build()
	query := `SELECT ` + precatorioColumns + `
		FROM precatorios p
		LEFT JOIN tipos t ON t.id = p.tipo_id` + w.clause() + `
		ORDER BY p.cnj`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Precatorio
	for rows.Next() {
		p, err := scanPrecatorio(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PrecatoriosRepo) Summary(ctx context.Context, f PrecatorioFilter) (*PrecatorioSummary, error) {
	w := f.build()
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE p.credito_principal = 'pendente'),
			COUNT(*) FILTER (WHERE p.credito_principal = 'parcial'),
			COUNT(*) FILTER (WHERE p.credito_principal = 'quitado'),
			COUNT(*) FILTER (WHERE p.credito_principal = 'vendido'),
			COALESCE(SUM(p.valor_de_face), 0)
		FROM precatorios p` + w.clause()

	var s PrecatorioSummary
	err := r.pg.Pool.QueryRow(ctx, query, w.args...).Scan(
		&s.Total, &s.Pendentes, &s.Parciais, &s.Quitados, &s.Vendidos, &s.ValorDeFaceTotal)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PrecatoriosRepo) GetByCNJ(ctx context.Context, cnj string) (*models.Precatorio, error) {
	query := `SELECT ` + precatorioColumns + `
		FROM precatorios p
		LEFT JOIN tipos t ON t.id = p.tipo_id
		WHERE p.cnj = $1`

	p, err := scanPrecatorio(r.pg.Pool.QueryRow(ctx, query, cnj))
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (r *PrecatoriosRepo) Create(ctx context.Context, p *models.Precatorio) error {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM precatorios WHERE cnj = $1)`, p.CNJ).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicado
	}

	query := `
		INSERT INTO precatorios (
			cnj, orcamento, origem,
			credito_principal, honorarios_contratuais, honorarios_sucumbenciais,
			valor_de_face, ultima_atualizacao, data_ultima_atualizacao,
			percentual_contratuais_assinado, percentual_contratuais_apartado, percentual_sucumbenciais,
			tipo_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		p.CNJ, p.Orcamento, p.Origem,
		p.CreditoPrincipal, p.HonorariosContratuais, p.HonorariosSucumbenciais,
		p.ValorDeFace, p.UltimaAtualizacao, p.DataUltimaAtualizacao,
		p.PercentualContratuaisAssinado, p.PercentualContratuaisApartado, p.PercentualSucumbenciais,
		p.TipoID,
	).Scan(&p.CriadoEm, &p.AtualizadoEm)
}

func (r *PrecatoriosRepo) Update(ctx context.Context, p *models.Precatorio) error {
	query := `
		UPDATE precatorios SET
			orcamento = $2, origem = $3,
			credito_principal = $4, honorarios_contratuais = $5, honorarios_sucumbenciais = $6,
			valor_de_face = $7, ultima_atualizacao = $8, data_ultima_atualizacao = $9,
			percentual_contratuais_assinado = $10, percentual_contratuais_apartado = $11,
			percentual_sucumbenciais = $12, tipo_id = $13,
			atualizado_em = NOW()
		WHERE cnj = $1
		RETURNING atualizado_em
	`
	err := r.pg.Pool.QueryRow(ctx, query,
		p.CNJ, p.Orcamento, p.Origem,
		p.CreditoPrincipal, p.HonorariosContratuais, p.HonorariosSucumbenciais,
		p.ValorDeFace, p.UltimaAtualizacao, p.DataUltimaAtualizacao,
		p.PercentualContratuaisAssinado, p.PercentualContratuaisApartado, p.PercentualSucumbenciais,
		p.TipoID,
	).Scan(&p.AtualizadoEm)
	return notFound(err)
}

// Upsert inserts or refreshes a precatório during spreadsheet import. Columns
// already filled in the database are kept when the incoming row is empty.
func (r *PrecatoriosRepo) Upsert(ctx context.Context, p *models.Precatorio) error {
	query := `
		INSERT INTO precatorios (
			cnj, orcamento, origem,
			valor_de_face, ultima_atualizacao, data_ultima_atualizacao
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cnj) DO UPDATE SET
			orcamento = EXCLUDED.orcamento,
			origem = COALESCE(NULLIF(EXCLUDED.origem, ''), precatorios.origem),
			valor_de_face = EXCLUDED.valor_de_face,
			ultima_atualizacao = COALESCE(EXCLUDED.ultima_atualizacao, precatorios.ultima_atualizacao),
			data_ultima_atualizacao = COALESCE(EXCLUDED.data_ultima_atualizacao, precatorios.data_ultima_atualizacao),
			atualizado_em = NOW()
		RETURNING criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		p.CNJ, p.Orcamento, p.Origem,
		p.ValorDeFace, p.UltimaAtualizacao, p.DataUltimaAtualizacao,
	).Scan(&p.CriadoEm, &p.AtualizadoEm)
}

// Delete refuses to remove a precatório that still has linked clientes,
// alvarás or requerimentos.
func (r *PrecatoriosRepo) Delete(ctx context.Context, cnj string) error {
	var inUse bool
	err := r.pg.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM precatorio_clientes WHERE precatorio_cnj = $1)
		    OR EXISTS (SELECT 1 FROM alvaras WHERE precatorio_cnj = $1)
		    OR EXISTS (SELECT 1 FROM requerimentos WHERE precatorio_cnj = $1)
	`, cnj).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrEmUso
	}

	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM precatorios WHERE cnj = $1`, cnj)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// LinkCliente associates a client with the precatório. Returns false when the
// link already existed.
func (r *PrecatoriosRepo) LinkCliente(ctx context.Context, cnj, cpf string) (bool, error) {
	tag, err := r.pg.Pool.Exec(ctx, `
		INSERT INTO precatorio_clientes (precatorio_cnj, cliente_cpf)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, cnj, cpf)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PrecatoriosRepo) UnlinkCliente(ctx context.Context, cnj, cpf string) (bool, error) {
	tag, err := r.pg.Pool.Exec(ctx, `
		DELETE FROM precatorio_clientes
		WHERE precatorio_cnj = $1 AND cliente_cpf = $2
	`, cnj, cpf)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ClienteLinked reports whether the client belongs to the precatório. Alvarás
// and requerimentos can only be filed for linked clients.
func (r *PrecatoriosRepo) ClienteLinked(ctx context.Context, cnj, cpf string) (bool, error) {
	var linked bool
	err := r.pg.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM precatorio_clientes
			WHERE precatorio_cnj = $1 AND cliente_cpf = $2
		)
	`, cnj, cpf).Scan(&linked)
	return linked, err
}

func (r *PrecatoriosRepo) Clientes(ctx context.Context, cnj string) ([]models.Cliente, error) {
	rows, err := r.pg.Pool.Query(ctx, `
		SELECT c.cpf, c.nome, c.nascimento, c.prioridade, c.criado_em, c.atualizado_em
		FROM clientes c
		JOIN precatorio_clientes pc ON pc.cliente_cpf = c.cpf
		WHERE pc.precatorio_cnj = $1
		ORDER BY c.nome
	`, cnj)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Cliente
	for rows.Next() {
		var c models.Cliente
		if err := rows.Scan(&c.CPF, &c.Nome, &c.Nascimento, &c.Prioridade, &c.CriadoEm, &c.AtualizadoEm); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SetArquivo stores (or clears, when nil) the attachment metadata.
func (r *PrecatoriosRepo) SetArquivo(ctx context.Context, cnj string, a *models.Arquivo) error {
	var key, nome, contentType *string
	var tamanho *int64
	if a != nil {
		key, nome, contentType, tamanho = &a.Key, &a.Nome, &a.ContentType, &a.Tamanho
	}

	tag, err := r.pg.Pool.Exec(ctx, `
		UPDATE precatorios SET
			arquivo_key = $2, arquivo_nome = $3, arquivo_tamanho = $4, arquivo_content_type = $5,
			atualizado_em = NOW()
		WHERE cnj = $1
	`, cnj, key, nome, tamanho, contentType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type precatorioScanner interface {
	Scan(dest ...any) error
}

func scanPrecatorio(row precatorioScanner) (*models.Precatorio, error) {
	var p models.Precatorio
	var arqKey, arqNome, arqContentType *string
	var arqTamanho *int64

	err := row.Scan(
		&p.CNJ, &p.Orcamento, &p.Origem,
		&p.CreditoPrincipal, &p.HonorariosContratuais, &p.HonorariosSucumbenciais,
		&p.ValorDeFace, &p.UltimaAtualizacao, &p.DataUltimaAtualizacao,
		&p.PercentualContratuaisAssinado, &p.PercentualContratuaisApartado, &p.PercentualSucumbenciais,
		&p.TipoID, &p.TipoNome,
		&arqKey, &arqNome, &arqTamanho, &arqContentType,
		&p.CriadoEm, &p.AtualizadoEm,
	)
	if err != nil {
		return nil, err
	}

	if arqKey != nil && *arqKey != "" {
		p.Arquivo = &models.Arquivo{Key: *arqKey}
		if arqNome != nil {
			p.Arquivo.Nome = *arqNome
		}
		if arqTamanho != nil {
			p.Arquivo.Tamanho = *arqTamanho
		}
		if arqContentType != nil {
			p.Arquivo.ContentType = *arqContentType
		}
	}
	return &p, nil
}
