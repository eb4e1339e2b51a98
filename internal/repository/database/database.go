package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("registro não encontrado")
	// ErrEmUso is returned when a delete would break references
	// (protected phases/types, precatórios or clientes with associations).
	ErrEmUso = errors.New("registro em uso por outros cadastros")
	// ErrDuplicado is returned on unique conflicts the repos check explicitly
	// before inserting.
	ErrDuplicado = errors.New("registro já cadastrado")
)

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// where accumulates dynamic filter conditions for list queries.
type where struct {
	conds []string
	args  []any
}

// add appends a condition with no placeholder.
func (w *where) add(cond string) {
	w.conds = append(w.conds, cond)
}

// addf appends a condition whose single ? placeholder is numbered after the
// already-collected args.
func (w *where) addf(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

func (w *where) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func contains(s string) string {
	return "%" + s + "%"
}
