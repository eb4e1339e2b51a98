package database

import (
	"context"
	"time"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

type DiligenciasRepo struct {
	pg *postgres.Postgres
}

func NewDiligenciasRepo(pg *postgres.Postgres) *DiligenciasRepo {
	return &DiligenciasRepo{pg: pg}
}

const diligenciaColumns = `
	d.id, d.cliente_cpf, c.nome, d.tipo_id, t.nome,
	d.data_final, d.urgencia, d.criado_por, COALESCE(d.descricao, ''),
	d.concluida, d.data_criacao, d.data_conclusao, COALESCE(d.concluido_por, '')`

const diligenciaJoins = `
	FROM diligencias d
	JOIN clientes c ON c.cpf = d.cliente_cpf
	JOIN tipos_diligencia t ON t.id = d.tipo_id`

type DiligenciaFilter struct {
	ClienteCPF string
	TipoID     int64
	Urgencia   string
	Concluida  *bool
	// Atrasadas keeps only pending diligências past their deadline.
	Atrasadas bool
}

func (f DiligenciaFilter) build() where {
	var w where
	if f.ClienteCPF != "" {
		w.addf("d.cliente_cpf = ?", f.ClienteCPF)
	}
	if f.TipoID != 0 {
		w.addf("d.tipo_id = ?", f.TipoID)
	}
	if f.Urgencia != "" {
		w.addf("d.urgencia = ?", f.Urgencia)
	}
	if f.Concluida != nil {
		w.addf("d.concluida = ?", *f.Concluida)
	}
	if f.Atrasadas {
		w.add("NOT d.concluida AND d.data_final < CURRENT_DATE")
	}
	return w
}

func (r *DiligenciasRepo) List(ctx context.Context, f DiligenciaFilter) ([]models.Diligencia, error) {
	w := f.build()
	query := `SELECT ` + diligenciaColumns + diligenciaJoins + w.clause() + ` ORDER BY d.data_criacao DESC`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Diligencia
	for rows.Next() {
		var d models.Diligencia
		if err := rows.Scan(
			&d.ID, &d.ClienteCPF, &d.ClienteNome, &d.TipoID, &d.TipoNome,
			&d.DataFinal, &d.Urgencia, &d.CriadoPor, &d.Descricao,
			&d.Concluida, &d.DataCriacao, &d.DataConclusao, &d.ConcluidoPor,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DiligenciasRepo) GetByID(ctx context.Context, id int64) (*models.Diligencia, error) {
	query := `SELECT ` + diligenciaColumns + diligenciaJoins + ` WHERE d.id = $1`

	var d models.Diligencia
	err := r.pg.Pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.ClienteCPF, &d.ClienteNome, &d.TipoID, &d.TipoNome,
		&d.DataFinal, &d.Urgencia, &d.CriadoPor, &d.Descricao,
		&d.Concluida, &d.DataCriacao, &d.DataConclusao, &d.ConcluidoPor,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

// Create inserts a diligência. Only active types are accepted.
func (r *DiligenciasRepo) Create(ctx context.Context, d *models.Diligencia) error {
	var ativo bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT ativo FROM tipos_diligencia WHERE id = $1`, d.TipoID).Scan(&ativo)
	if err != nil {
		return notFound(err)
	}
	if !ativo {
		return ErrEmUso
	}

	query := `
		INSERT INTO diligencias (cliente_cpf, tipo_id, data_final, urgencia, criado_por, descricao)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING id, data_criacao
	`
	return r.pg.Pool.QueryRow(ctx, query,
		d.ClienteCPF, d.TipoID, d.DataFinal, d.Urgencia, d.CriadoPor, d.Descricao,
	).Scan(&d.ID, &d.DataCriacao)
}

func (r *DiligenciasRepo) Update(ctx context.Context, d *models.Diligencia) error {
	query := `
		UPDATE diligencias SET
			tipo_id = $2, data_final = $3, urgencia = $4, descricao = NULLIF($5, '')
		WHERE id = $1
	`
	tag, err := r.pg.Pool.Exec(ctx, query, d.ID, d.TipoID, d.DataFinal, d.Urgencia, d.Descricao)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Conclude stamps the completion time and the operator who closed it.
func (r *DiligenciasRepo) Conclude(ctx context.Context, id int64, por string, em time.Time) error {
	tag, err := r.pg.Pool.Exec(ctx, `
		UPDATE diligencias SET concluida = TRUE, data_conclusao = $2, concluido_por = $3
		WHERE id = $1 AND NOT concluida
	`, id, em, por)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Reopen clears the completion fields.
func (r *DiligenciasRepo) Reopen(ctx context.Context, id int64) error {
	tag, err := r.pg.Pool.Exec(ctx, `
		UPDATE diligencias SET concluida = FALSE, data_conclusao = NULL, concluido_por = NULL
		WHERE id = $1 AND concluida
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DiligenciasRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM diligencias WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
