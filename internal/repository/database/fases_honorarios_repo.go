package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

// FasesHonorariosRepo manages the phase track used for contractual fees on
// alvarás, independent of the main phase.
type FasesHonorariosRepo struct {
	pg *postgres.Postgres
}

func NewFasesHonorariosRepo(pg *postgres.Postgres) *FasesHonorariosRepo {
	return &FasesHonorariosRepo{pg: pg}
}

const faseHonorariosColumns = `id, nome, descricao, cor, ordem, ativa, criado_em, atualizado_em`

func (r *FasesHonorariosRepo) List(ctx context.Context, somenteAtivas bool) ([]models.FaseHonorarios, error) {
	var w where
	if somenteAtivas {
		w.add("ativa")
	}

	query := `SELECT ` + faseHonorariosColumns + ` FROM fases_honorarios` + w.clause() + ` ORDER BY ordem, nome`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.FaseHonorarios
	for rows.Next() {
		var fase models.FaseHonorarios
		if err := rows.Scan(&fase.ID, &fase.Nome, &fase.Descricao, &fase.Cor,
			&fase.Ordem, &fase.Ativa, &fase.CriadoEm, &fase.AtualizadoEm); err != nil {
			return nil, err
		}
		out = append(out, fase)
	}
	return out, rows.Err()
}

func (r *FasesHonorariosRepo) GetByID(ctx context.Context, id int64) (*models.FaseHonorarios, error) {
	var fase models.FaseHonorarios
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT `+faseHonorariosColumns+` FROM fases_honorarios WHERE id = $1`, id,
	).Scan(&fase.ID, &fase.Nome, &fase.Descricao, &fase.Cor,
		&fase.Ordem, &fase.Ativa, &fase.CriadoEm, &fase.AtualizadoEm)
	if err != nil {
		return nil, notFound(err)
	}
	return &fase, nil
}

func (r *FasesHonorariosRepo) Create(ctx context.Context, fase *models.FaseHonorarios) error {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM fases_honorarios WHERE nome = $1)`, fase.Nome).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicado
	}

	query := `
		INSERT INTO fases_honorarios (nome, descricao, cor, ordem, ativa)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		fase.Nome, fase.Descricao, fase.Cor, fase.Ordem, fase.Ativa,
	).Scan(&fase.ID, &fase.CriadoEm, &fase.AtualizadoEm)
}

func (r *FasesHonorariosRepo) Update(ctx context.Context, fase *models.FaseHonorarios) error {
	query := `
		UPDATE fases_honorarios SET
			nome = $2, descricao = $3, cor = $4, ordem = $5, ativa = $6,
			atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.pg.Pool.QueryRow(ctx, query,
		fase.ID, fase.Nome, fase.Descricao, fase.Cor, fase.Ordem, fase.Ativa,
	).Scan(&fase.AtualizadoEm)
	return notFound(err)
}

func (r *FasesHonorariosRepo) SetAtiva(ctx context.Context, id int64, ativa bool) error {
	tag, err := r.pg.Pool.Exec(ctx,
		`UPDATE fases_honorarios SET ativa = $2, atualizado_em = NOW() WHERE id = $1`, id, ativa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FasesHonorariosRepo) Delete(ctx context.Context, id int64) error {
	var inUse bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM alvaras WHERE fase_honorarios_id = $1)`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrEmUso
	}

	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM fases_honorarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
