package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

// TiposRepo manages precatório categories.
type TiposRepo struct {
	pg *postgres.Postgres
}

func NewTiposRepo(pg *postgres.Postgres) *TiposRepo {
	return &TiposRepo{pg: pg}
}

const tipoColumns = `id, nome, descricao, cor, ordem, ativa, criado_em, atualizado_em`

func (r *TiposRepo) List(ctx context.Context, somenteAtivos bool) ([]models.Tipo, error) {
	var w where
	if somenteAtivos {
		w.add("ativa")
	}

	query := `SELECT ` + tipoColumns + ` FROM tipos` + w.clause() + ` ORDER BY ordem, nome`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Tipo
	for rows.Next() {
		var t models.Tipo
		if err := rows.Scan(&t.ID, &t.Nome, &t.Descricao, &t.Cor,
			&t.Ordem, &t.Ativa, &t.CriadoEm, &t.AtualizadoEm); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TiposRepo) GetByID(ctx context.Context, id int64) (*models.Tipo, error) {
	var t models.Tipo
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT `+tipoColumns+` FROM tipos WHERE id = $1`, id,
	).Scan(&t.ID, &t.Nome, &t.Descricao, &t.Cor, &t.Ordem, &t.Ativa, &t.CriadoEm, &t.AtualizadoEm)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *TiposRepo) Create(ctx context.Context, t *models.Tipo) error {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tipos WHERE nome = $1)`, t.Nome).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicado
	}

	query := `
		INSERT INTO tipos (nome, descricao, cor, ordem, ativa)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		t.Nome, t.Descricao, t.Cor, t.Ordem, t.Ativa,
	).Scan(&t.ID, &t.CriadoEm, &t.AtualizadoEm)
}

func (r *TiposRepo) Update(ctx context.Context, t *models.Tipo) error {
	query := `
		UPDATE tipos SET
			nome = $2, descricao = $3, cor = $4, ordem = $5, ativa = $6,
			atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.pg.Pool.QueryRow(ctx, query,
		t.ID, t.Nome, t.Descricao, t.Cor, t.Ordem, t.Ativa,
	).Scan(&t.AtualizadoEm)
	return notFound(err)
}

func (r *TiposRepo) SetAtiva(ctx context.Context, id int64, ativa bool) error {
	tag, err := r.pg.Pool.Exec(ctx,
		`UPDATE tipos SET ativa = $2, atualizado_em = NOW() WHERE id = $1`, id, ativa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a category. Precatórios referencing it keep working because
// the FK is SET NULL, but the handler layer still refuses deletion while rows
// reference it so the classification is not silently lost.
func (r *TiposRepo) Delete(ctx context.Context, id int64) error {
	var inUse bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM precatorios WHERE tipo_id = $1)`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrEmUso
	}

	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM tipos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
