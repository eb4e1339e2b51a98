package database

import (
	"context"

	"github.com/thsteixeira/precatorios/internal/config/connections/postgres"
	"github.com/thsteixeira/precatorios/internal/models"
)

// DashboardRepo computes the home-page statistics.
type DashboardRepo struct {
	pg *postgres.Postgres
}

func NewDashboardRepo(pg *postgres.Postgres) *DashboardRepo {
	return &DashboardRepo{pg: pg}
}

type DashboardStats struct {
	TotalPrecatorios   int64
	TotalClientes      int64
	TotalAlvaras       int64
	TotalRequerimentos int64

	ValorPrecatorios   float64
	ValorAlvaras       float64
	ValorRequerimentos float64

	RecentPrecatorios   []models.Precatorio
	RecentAlvaras       []models.Alvara
	RecentRequerimentos []models.Requerimento
}

func (r *DashboardRepo) Stats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats

	err := r.pg.Pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM precatorios),
			(SELECT COUNT(*) FROM clientes),
			(SELECT COUNT(*) FROM alvaras),
			(SELECT COUNT(*) FROM requerimentos),
			(SELECT COALESCE(SUM(valor_de_face), 0) FROM precatorios),
			(SELECT COALESCE(SUM(valor_principal + honorarios_contratuais + honorarios_sucumbenciais), 0) FROM alvaras),
			(SELECT COALESCE(SUM(valor), 0) FROM requerimentos)
	`).Scan(
		&s.TotalPrecatorios, &s.TotalClientes, &s.TotalAlvaras, &s.TotalRequerimentos,
		&s.ValorPrecatorios, &s.ValorAlvaras, &s.ValorRequerimentos,
	)
	if err != nil {
		return nil, err
	}

	if s.RecentPrecatorios, err = r.recentPrecatorios(ctx, 5); err != nil {
		return nil, err
	}
	if s.RecentAlvaras, err = r.recentAlvaras(ctx, 5); err != nil {
		return nil, err
	}
	if s.RecentRequerimentos, err = r.recentRequerimentos(ctx, 5); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *DashboardRepo) recentPrecatorios(ctx context.Context, limit int) ([]models.Precatorio, error) {
	query := `SELECT ` + precatorioColumns + `
		FROM precatorios p
		LEFT JOIN tipos t ON t.id = p.tipo_id
		ORDER BY p.criado_em DESC
		LIMIT $1`

	rows, err := r.pg.Pool.Query(ctx, query, limit)
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

func (r *DashboardRepo) recentAlvaras(ctx context.Context, limit int) ([]models.Alvara, error) {
	query := `SELECT ` + alvaraColumns + alvaraJoins + ` ORDER BY a.id DESC LIMIT $1`

	rows, err := r.pg.Pool.Query(ctx, query, limit)
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

func (r *DashboardRepo) recentRequerimentos(ctx context.Context, limit int) ([]models.Requerimento, error) {
	query := `SELECT ` + requerimentoColumns + requerimentoJoins + ` ORDER BY r.id DESC LIMIT $1`

	rows, err := r.pg.Pool.Query(ctx, query, limit)
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
