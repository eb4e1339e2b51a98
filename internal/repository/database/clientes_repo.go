package database

import (
	"context"
	"time"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

type ClientesRepo struct {
	pg *postgres.Postgres
}

func NewClientesRepo(pg *postgres.Postgres) *ClientesRepo {
	return &ClientesRepo{pg: pg}
}

const clienteColumns = `c.cpf, c.nome, c.nascimento, c.prioridade, c.criado_em, c.atualizado_em`

type ClienteFilter struct {
	Nome          string // contains
	CPF           string // contains
	Prioridade    *bool
	PrecatorioCNJ string // contains, via link table
}

type ClienteSummary struct {
	Total         int64
	ComPrioridade int64
	SemPrioridade int64
}

func (f ClienteFilter) build() where {
	var w where
	if f.Nome != "" {
		w.addf("c.nome ILIKE ?", contains(f.Nome))
	}
	if f.CPF != "" {
		w.addf("c.cpf ILIKE ?", contains(f.CPF))
	}
	if f.Prioridade != nil {
		w.addf("c.prioridade = ?", *f.Prioridade)
	}
	if f.PrecatorioCNJ != "" {
		w.addf(`EXISTS (
			SELECT 1 FROM precatorio_clientes pc
			WHERE pc.cliente_cpf = c.cpf AND pc.precatorio_cnj ILIKE ?
		)`, contains(f.PrecatorioCNJ))
	}
	return w
}

func (r *ClientesRepo) List(ctx context.Context, f ClienteFilter) ([]models.Cliente, error) {
	w := f.build()
	query := `SELECT ` + clienteColumns + ` FROM clientes c` + w.clause() + ` ORDER BY c.nome`

	rows, err := r.pg.Pool.Query(ctx, query, w.args...)
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

func (r *ClientesRepo) Summary(ctx context.Context, f ClienteFilter) (*ClienteSummary, error) {
	w := f.build()
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE c.prioridade),
			COUNT(*) FILTER (WHERE NOT c.prioridade)
		FROM clientes c` + w.clause()

	var s ClienteSummary
	if err := r.pg.Pool.QueryRow(ctx, query, w.args...).Scan(&s.Total, &s.ComPrioridade, &s.SemPrioridade); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ClientesRepo) GetByCPF(ctx context.Context, cpf string) (*models.Cliente, error) {
	var c models.Cliente
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT `+clienteColumns+` FROM clientes c WHERE c.cpf = $1`, cpf,
	).Scan(&c.CPF, &c.Nome, &c.Nascimento, &c.Prioridade, &c.CriadoEm, &c.AtualizadoEm)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ClientesRepo) Create(ctx context.Context, c *models.Cliente) error {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM clientes WHERE cpf = $1)`, c.CPF).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicado
	}

	query := `
		INSERT INTO clientes (cpf, nome, nascimento, prioridade)
		VALUES ($1, $2, $3, $4)
		RETURNING criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		c.CPF, c.Nome, c.Nascimento, c.Prioridade,
	).Scan(&c.CriadoEm, &c.AtualizadoEm)
}

// Update changes everything but the CPF, which is the identity.
func (r *ClientesRepo) Update(ctx context.Context, c *models.Cliente) error {
	query := `
		UPDATE clientes SET nome = $2, nascimento = $3, prioridade = $4, atualizado_em = NOW()
		WHERE cpf = $1
		RETURNING atualizado_em
	`
	err := r.pg.Pool.QueryRow(ctx, query,
		c.CPF, c.Nome, c.Nascimento, c.Prioridade,
	).Scan(&c.AtualizadoEm)
	return notFound(err)
}

// Upsert inserts or refreshes a client during spreadsheet import.
func (r *ClientesRepo) Upsert(ctx context.Context, c *models.Cliente) error {
	query := `
		INSERT INTO clientes (cpf, nome, nascimento, prioridade)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cpf) DO UPDATE SET
			nome = COALESCE(NULLIF(EXCLUDED.nome, ''), clientes.nome),
			nascimento = EXCLUDED.nascimento,
			atualizado_em = NOW()
		RETURNING criado_em, atualizado_em
	`
	return r.pg.Pool.QueryRow(ctx, query,
		c.CPF, c.Nome, c.Nascimento, c.Prioridade,
	).Scan(&c.CriadoEm, &c.AtualizadoEm)
}

// Delete refuses to remove a client that still has linked precatórios,
// alvarás or requerimentos.
func (r *ClientesRepo) Delete(ctx context.Context, cpf string) error {
	var inUse bool
	err := r.pg.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM precatorio_clientes WHERE cliente_cpf = $1)
		    OR EXISTS (SELECT 1 FROM alvaras WHERE cliente_cpf = $1)
		    OR EXISTS (SELECT 1 FROM requerimentos WHERE cliente_cpf = $1)
	`, cpf).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrEmUso
	}

	tag, err := r.pg.Pool.Exec(ctx, `DELETE FROM clientes WHERE cpf = $1`, cpf)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientesRepo) Precatorios(ctx context.Context, cpf string) ([]models.Precatorio, error) {
	query := `SELECT ` + precatorioColumns + `
		FROM precatorios p
		LEFT JOIN tipos t ON t.id = p.tipo_id
		JOIN precatorio_clientes pc ON pc.precatorio_cnj = p.cnj
		WHERE pc.cliente_cpf = $1
		ORDER BY p.cnj`

	rows, err := r.pg.Pool.Query(ctx, query, cpf)
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

// UpdatePrioridadePorIdade flags clients born before the cutoff date as
// priority. With dryRun it only reports how many would change.
func (r *ClientesRepo) UpdatePrioridadePorIdade(ctx context.Context, cutoff time.Time, dryRun bool) (int64, error) {
	if dryRun {
		var count int64
		err := r.pg.Pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM clientes
			WHERE nascimento < $1 AND NOT prioridade
		`, cutoff).Scan(&count)
		return count, err
	}

	tag, err := r.pg.Pool.Exec(ctx, `
		UPDATE clientes SET prioridade = TRUE, atualizado_em = NOW()
		WHERE nascimento < $1 AND NOT prioridade
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
