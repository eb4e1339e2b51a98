package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

type UsersRepo struct {
	pg *postgres.Postgres
}

func NewUsersRepo(pg *postgres.Postgres) *UsersRepo {
	return &UsersRepo{pg: pg}
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.pg.Pool.QueryRow(ctx, `
		SELECT id, username, password_hash, nome_completo, criado_em
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.NomeCompleto, &u.CriadoEm)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.pg.Pool.QueryRow(ctx, `
		SELECT id, username, password_hash, nome_completo, criado_em
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.NomeCompleto, &u.CriadoEm)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UsersRepo) Create(ctx context.Context, u *models.User) error {
	var exists bool
	err := r.pg.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, u.Username).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicado
	}

	return r.pg.Pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, nome_completo)
		VALUES ($1, $2, $3)
		RETURNING id, criado_em
	`, u.Username, u.PasswordHash, u.NomeCompleto).Scan(&u.ID, &u.CriadoEm)
}
