package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// SumMovedSince suma |cantidad aplicada| de los asientos del tipo desde `since`.
func (r *DashboardRepo) SumMovedSince(ctx context.Context, kind string, since time.Time) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(ABS(quantity)), 0)
	FROM inventory_logs
	WHERE kind = $1 AND created_at >= $2`
	var sum int64
	if err := r.pool.QueryRow(ctx, query, kind, since).Scan(&sum); err != nil {
		return 0, fmt.Errorf("dashboard.SumMovedSince: %w", err)
	}
	return sum, nil
}
