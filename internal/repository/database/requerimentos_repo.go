package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

type RequerimentosRepo struct {
	pg *postgres.Postgres
}

func NewRequerimentosRepo(pg *postgres.Postgres) *RequerimentosRepo {
	return &RequerimentosRepo{pg: pg}
}

const requerimentoColumns = `
	r.id, r.precatorio_cnj, r.cliente_cpf, c.nome,
	r.valor, r.desagio, r.pedido, r.fase_id, COALESCE(f.nome, ''),
	r.criado_em, r.atualizado_em`

const requerimentoJoins = `
	FROM requerimentos r
	JOIN clientes c ON c.cpf = r.cliente_cpf
	LEFT JOIN fases f ON f.id = r.fase_id`

type RequerimentoFilter struct {
	ClienteNome        string // contains
	ClienteCPF         string // exact
	PrecatorioCNJ      string // contains
	PrecatorioCNJExato string
	Pedido             string // exact
	FaseID             int64
	SomentePrioridade  bool
}

// RequerimentoSummary carries the filtered totals: sum of requested values
// and the mean deságio.
type RequerimentoSummary struct {
	Total        int64
	ValorTotal   float64
	DesagioMedio float64
}

func (f RequerimentoFilter) build() where {
	var w where
	if f.ClienteNome != "" {
		w.addf("c.nome ILIKE ?", contains(f.ClienteNome))
	}
	if f.ClienteCPF != "" {
		w.addf("r.cliente_cpf = ?", f.ClienteCPF)
	}
	if f.PrecatorioCNJ != "" {
		w.addf("r.precatorio_cnj ILIKE ?", contains(f.PrecatorioCNJ))
	}
	if f.PrecatorioCNJExato != "" {
		w.addf("r.precatorio_cnj = ?", f.PrecatorioCNJExato)
	}
	if f.Pedido != "" {
		w.addf("r.pedido = ?", f.Pedido)
	}
	if f.FaseID != 0 {
		w.addf("r.fase_id = ?", f.FaseID)
	}
	if f.SomentePrioridade {
		w.add("r.pedido IN ('prioridade doença', 'prioridade idade')")
	}
	return w
}

func (r *RequerimentosRepo) List(ctx context.Context, f RequerimentoFilter) ([]models.Requerimento, error) {
	w := f.build()
	query := `SELECT ` + requerimentoColumns + requerimentoJoins + w.clause() + ` ORDER BY r.id DESC`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Requerimento
	for rows.Next() {
		var req models.Requerimento
		if err := rows.Scan(
			&req.ID, &req.PrecatorioCNJ, &req.ClienteCPF, &req.ClienteNome,
			&req.Valor, &req.Desagio, &req.Pedido, &req.FaseID, &req.FaseNome,
			&req.CriadoEm, &req.AtualizadoEm,
		); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *RequerimentosRepo) Summary(ctx context.Context, f RequerimentoFilter) (*RequerimentoSummary, error) {
	w := f.build()
	query := `
		SELECT COUNT(*), COALESCE(SUM(r.valor), 0), COALESCE(AVG(r.desagio), 0)` +
		requerimentoJoins + w.clause()

	var s RequerimentoSummary
	err := r.pg.Pool.QueryRow(ctx, query, w.args...).Scan(&s.Total, &s.ValorTotal, &s.DesagioMedio)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RequerimentosRepo) GetByID(ctx context.Context, id int64) (*models.Requerimento, error) {
	query := `SELECT ` + requerimentoColumns + requerimentoJoins + ` WHERE r.id = $1`

	var req models.Requerimento
	err := r.pg.Pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.PrecatorioCNJ, &req.ClienteCPF, &req.ClienteNome,
		&req.Valor, &req.Desagio, &req.Pedido, &req.FaseID, &req.FaseNome,
		&req.CriadoEm, &req.AtualizadoEm,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

func (r *RequerimentosRepo) Create(ctx context.Context, req *models.Requerimento) error {
	query := `
		INSERT INTO requerimentos (precatorio_cnj, cliente_cpf, valor, desagio, pedido, fase_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		req.PrecatorioCNJ, req.ClienteCPF, req.Valor, req.Desagio, req.Pedido, req.FaseID,
	).Scan(&req.ID, &req.CriadoEm, &req.AtualizadoEm)
}

func (r *RequerimentosRepo) Update(ctx context.Context, req *models.Requerimento) error {
	query := `
		UPDATE requerimentos SET
			valor = $2, desagio = $3, pedido = $4, fase_id = $5, atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.pg.Pool.QueryRow(ctx, query,
		req.ID, req.Valor, req.Desagio, req.Pedido, req.FaseID,
	).Scan(&req.AtualizadoEm)
	return notFound(err)
}

func (r *RequerimentosRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM requerimentos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RequerimentosRepo) ListByPrecatorio(ctx context.Context, cnj string) ([]models.Requerimento, error) {
	return r.List(ctx, RequerimentoFilter{PrecatorioCNJExato: cnj})
}
