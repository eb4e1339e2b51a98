package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

type FasesRepo struct {
	pg *postgres.Postgres
}

func NewFasesRepo(pg *postgres.Postgres) *FasesRepo {
	return &FasesRepo{pg: pg}
}

const faseColumns = `id, nome, descricao, cor, tipo, ordem, ativa, criado_em, atualizado_em`

type FaseFilter struct {
	// ParaTipo restricts to phases usable by the given document kind
	// ("alvara" or "requerimento"): matches that tipo or "ambos".
	ParaTipo      string
	SomenteAtivas bool
}

func (r *FasesRepo) List(ctx context.Context, f FaseFilter) ([]models.Fase, error) {
	var w where
	if f.SomenteAtivas {
		w.add("ativa")
	}
	if f.ParaTipo != "" {
		w.addf("tipo IN (?, 'ambos')", f.ParaTipo)
	}

	query := `SELECT ` + faseColumns + ` FROM fases` + w.clause() + ` ORDER BY ordem, tipo, nome`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Fase
	for rows.Next() {
		var fase models.Fase
		if err := rows.Scan(&fase.ID, &fase.Nome, &fase.Descricao, &fase.Cor, &fase.Tipo,
			&fase.Ordem, &fase.Ativa, &fase.CriadoEm, &fase.AtualizadoEm); err != nil {
			return nil, err
		}
		out = append(out, fase)
	}
	return out, rows.Err()
}

func (r *FasesRepo) GetByID(ctx context.Context, id int64) (*models.Fase, error) {
	query := `SELECT ` + faseColumns + ` FROM fases WHERE id = $1`

	var fase models.Fase
	err := r.pg.Pool.QueryRow(ctx, query, id).Scan(
		&fase.ID, &fase.Nome, &fase.Descricao, &fase.Cor, &fase.Tipo,
		&fase.Ordem, &fase.Ativa, &fase.CriadoEm, &fase.AtualizadoEm,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &fase, nil
}

func (r *FasesRepo) Create(ctx context.Context, fase *models.Fase) error {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM fases WHERE nome = $1 AND tipo = $2)`,
		fase.Nome, fase.Tipo).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicado
	}

	query := `
		INSERT INTO fases (nome, descricao, cor, tipo, ordem, ativa)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		fase.Nome, fase.Descricao, fase.Cor, fase.Tipo, fase.Ordem, fase.Ativa,
	).Scan(&fase.ID, &fase.CriadoEm, &fase.AtualizadoEm)
}

func (r *FasesRepo) Update(ctx context.Context, fase *models.Fase) error {
	query := `
		UPDATE fases SET
			nome = $2, descricao = $3, cor = $4, tipo = $5, ordem = $6, ativa = $7,
			atualizado_em = NOW()
		WHERE id = $1
		RETURNING atualizado_em
	`
	err := r.pg.Pool.QueryRow(ctx, query,
		fase.ID, fase.Nome, fase.Descricao, fase.Cor, fase.Tipo, fase.Ordem, fase.Ativa,
	).Scan(&fase.AtualizadoEm)
	return notFound(err)
}

func (r *FasesRepo) SetAtiva(ctx context.Context, id int64, ativa bool) error {
	tag, err := r.pg.Pool.Exec(ctx,
		`UPDATE fases SET ativa = $2, atualizado_em = NOW() WHERE id = $1`, id, ativa)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a phase. Phases referenced by alvarás or requerimentos are
// protected; deactivate them instead.
func (r *FasesRepo) Delete(ctx context.Context, id int64) error {
	var inUse bool
	err := r.pg.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM alvaras WHERE fase_id = $1)
		    OR EXISTS (SELECT 1 FROM requerimentos WHERE fase_id = $1)
	`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrEmUso
	}

	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM fases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
