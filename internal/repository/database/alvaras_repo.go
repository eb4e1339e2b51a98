package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

type AlvarasRepo struct {
	pg *postgres.Postgres
}

func NewAlvarasRepo(pg *postgres.Postgres) *AlvarasRepo {
	return &AlvarasRepo{pg: pg}
}

const alvaraColumns = `
	a.id, a.precatorio_cnj, a.cliente_cpf, c.nome,
	a.valor_principal, a.honorarios_contratuais, a.honorarios_sucumbenciais,
	a.tipo, a.fase_id, COALESCE(f.nome, ''), a.fase_honorarios_id, COALESCE(fh.nome, ''),
	a.criado_em, a.atualizado_em`

const alvaraJoins = `
	FROM alvaras a
	JOIN clientes c ON c.cpf = a.cliente_cpf
	LEFT JOIN fases f ON f.id = a.fase_id
	LEFT JOIN fases_honorarios fh ON fh.id = a.fase_honorarios_id`

type AlvaraFilter struct {
	ClienteNome        string // contains
	ClienteCPF         string // exact
	PrecatorioCNJ      string // contains
	PrecatorioCNJExato string
	Tipo               string // exact
	FaseID             int64
}

// AlvaraSummary carries the list-page totals per financial component.
type AlvaraSummary struct {
	Total                        int64
	ValorPrincipalTotal          float64
	HonorariosContratuaisTotal   float64
	HonorariosSucumbenciaisTotal float64
}

func (f AlvaraFilter) build() where {
	var w where
	if f.ClienteNome != "" {
		w.addf("c.nome ILIKE ?", contains(f.ClienteNome))
	}
	if f.ClienteCPF != "" {
		w.addf("a.cliente_cpf = ?", f.ClienteCPF)
	}
	if f.PrecatorioCNJ != "" {
		w.addf("a.precatorio_cnj ILIKE ?", contains(f.PrecatorioCNJ))
	}
	if f.PrecatorioCNJExato != "" {
		w.addf("a.precatorio_cnj = ?", f.PrecatorioCNJExato)
	}
	if f.Tipo != "" {
		w.addf("a.tipo = ?", f.Tipo)
	}
	if f.FaseID != 0 {
		w.addf("a.fase_id = ?", f.FaseID)
	}
	return w
}

func (r *AlvarasRepo) List(ctx context.Context, f AlvaraFilter) ([]models.Alvara, error) {
	w := f.build()
	query := `SELECT ` + alvaraColumns + alvaraJoins + w.clause() + ` ORDER BY a.id DESC`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Alvara
	for rows.Next() {
		var a models.Alvara
		if err := rows.Scan(
			&a.ID, &a.PrecatorioCNJ, &a.ClienteCPF, &a.ClienteNome,
			&a.ValorPrincipal, &a.HonorariosContratuais, &a.HonorariosSucumbenciais,
			&a.Tipo, &a.FaseID, &a.FaseNome, &a.FaseHonorariosID, &a.FaseHonorariosNome,
			&a.CriadoEm, &a.AtualizadoEm,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AlvarasRepo) Summary(ctx context.Context, f AlvaraFilter) (*AlvaraSummary, error) {
	w := f.build()
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(a.valor_principal), 0),
			COALESCE(SUM(a.honorarios_contratuais), 0),
			COALESCE(SUM(a.honorarios_sucumbenciais), 0)` +
		alvaraJoins + w.clause()

	var s AlvaraSummary
	err := r.pg.Pool.QueryRow(ctx, query, w.args...).Scan(
		&s.Total, &s.ValorPrincipalTotal, &s.HonorariosContratuaisTotal, &s.HonorariosSucumbenciaisTotal)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AlvarasRepo) GetByID(ctx context.Context, id int64) (*models.Alvara, error) {
	query := `SELECT ` + alvaraColumns + alvaraJoins + ` WHERE a.id = $1`

	var a models.Alvara
	err := r.pg.Pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.PrecatorioCNJ, &a.ClienteCPF, &a.ClienteNome,
		&a.ValorPrincipal, &a.HonorariosContratuais, &a.HonorariosSucumbenciais,
		&a.Tipo, &a.FaseID, &a.FaseNome, &a.FaseHonorariosID, &a.FaseHonorariosNome,
		&a.CriadoEm, &a.AtualizadoEm,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *AlvarasRepo) Create(ctx context.Context, a *models.Alvara) error {
	query := `
		INSERT INTO alvaras (
			precatorio_cnj, cliente_cpf, valor_principal,
			honorarios_contratuais, honorarios_sucumbenciais,
			tipo, fase_id, fase_honorarios_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		a.PrecatorioCNJ, a.ClienteCPF, a.ValorPrincipal,
		a.HonorariosContratuais, a.HonorariosSucumbenciais,
		a.Tipo, a.FaseID, a.FaseHonorariosID,
	).Scan(&a.ID, &a.CriadoEm, &a.AtualizadoEm)
}

func (r *AlvarasRepo) Update(ctx context.Context, a *models.Alvara) error {
	query := `
		UPDATE alvaras SET
			valor_principal = $2, honorarios_contratuais = $3, honorarios_sucumbenciais = $4,
			tipo = $5, fase_id = $6, fase_honorarios_id = $7,
			atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.pg.Pool.QueryRow(ctx, query,
		a.ID, a.ValorPrincipal, a.HonorariosContratuais, a.HonorariosSucumbenciais,
		a.Tipo, a.FaseID, a.FaseHonorariosID,
	).Scan(&a.AtualizadoEm)
	return notFound(err)
}

func (r *AlvarasRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM alvaras WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AlvarasRepo) ListByPrecatorio(ctx context.Context, cnj string) ([]models.Alvara, error) {
	return r.List(ctx, AlvaraFilter{PrecatorioCNJExato: cnj})
}
