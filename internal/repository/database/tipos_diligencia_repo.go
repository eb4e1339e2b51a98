package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

type TiposDiligenciaRepo struct {
	pg *postgres.Postgres
}

func NewTiposDiligenciaRepo(pg *postgres.Postgres) *TiposDiligenciaRepo {
	return &TiposDiligenciaRepo{pg: pg}
}

const tipoDiligenciaColumns = `id, nome, descricao, cor, ordem, ativo, criado_em, atualizado_em`

func (r *TiposDiligenciaRepo) List(ctx context.Context, somenteAtivos bool) ([]models.TipoDiligencia, error) {
	var w where
	if somenteAtivos {
		w.add("ativo")
	}

	query := `SELECT ` + tipoDiligenciaColumns + ` FROM tipos_diligencia` + w.clause() + ` ORDER BY ordem, nome`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TipoDiligencia
	for rows.Next() {
		var t models.TipoDiligencia
		if err := rows.Scan(&t.ID, &t.Nome, &t.Descricao, &t.Cor,
			&t.Ordem, &t.Ativo, &t.CriadoEm, &t.AtualizadoEm); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TiposDiligenciaRepo) GetByID(ctx context.Context, id int64) (*models.TipoDiligencia, error) {
	var t models.TipoDiligencia
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT `+tipoDiligenciaColumns+` FROM tipos_diligencia WHERE id = $1`, id,
	).Scan(&t.ID, &t.Nome, &t.Descricao, &t.Cor, &t.Ordem, &t.Ativo, &t.CriadoEm, &t.AtualizadoEm)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *TiposDiligenciaRepo) Create(ctx context.Context, t *models.TipoDiligencia) error {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tipos_diligencia WHERE nome = $1)`, t.Nome).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicado
	}

	query := `
		INSERT INTO tipos_diligencia (nome, descricao, cor, ordem, ativo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		t.Nome, t.Descricao, t.Cor, t.Ordem, t.Ativo,
	).Scan(&t.ID, &t.CriadoEm, &t.AtualizadoEm)
}

func (r *TiposDiligenciaRepo) Update(ctx context.Context, t *models.TipoDiligencia) error {
	query := `
		UPDATE tipos_diligencia SET
			nome = $2, descricao = $3, cor = $4, ordem = $5, ativo = $6,
			atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.pg.Pool.QueryRow(ctx, query,
		t.ID, t.Nome, t.Descricao, t.Cor, t.Ordem, t.Ativo,
	).Scan(&t.AtualizadoEm)
	return notFound(err)
}

func (r *TiposDiligenciaRepo) SetAtivo(ctx context.Context, id int64, ativo bool) error {
	tag, err := r.pg.Pool.Exec(ctx,
		`UPDATE tipos_diligencia SET ativo = $2, atualizado_em = NOW() WHERE id = $1`, id, ativo)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TiposDiligenciaRepo) Delete(ctx context.Context, id int64) error {
	var inUse bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM diligencias WHERE tipo_id = $1)`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrEmUso
	}

	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM tipos_diligencia WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
