package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.InventoryLogRepository = (*InventoryLogRepo)(nil)

// InventoryLogRepo libro de inventario (solo inserción) sobre PostgreSQL.
type InventoryLogRepo struct {
	q Querier
}

// NewInventoryLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLogRepository(q Querier) *InventoryLogRepo {
	return &InventoryLogRepo{q: q}
}

const logColumns = `id, inventory_id, product_id, quantity, requested, kind, order_no, operator, COALESCE(order_item_id, ''), created_at`

// Create inserta un asiento.
func (r *InventoryLogRepo) Create(ctx context.Context, l *entity.InventoryLog) error {
	query := `
		INSERT INTO inventory_logs (id, inventory_id, product_id, quantity, requested, kind, order_no, operator, order_item_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.InventoryID, l.ProductID, l.Quantity, l.Requested, string(l.Kind),
		l.OrderNo, l.Operator, l.OrderItemID, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory log: %w", err)
	}
	return nil
}

func scanLogs(rows pgx.Rows) ([]*entity.InventoryLog, error) {
	defer rows.Close()
	var list []*entity.InventoryLog
	for rows.Next() {
		var l entity.InventoryLog
		var kind string
		if err := rows.Scan(
			&l.ID, &l.InventoryID, &l.ProductID, &l.Quantity, &l.Requested, &kind,
			&l.OrderNo, &l.Operator, &l.OrderItemID, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory log: %w", err)
		}
		l.Kind = entity.MovementKind(kind)
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListByProduct ficha de stock del producto, más recientes primero.
func (r *InventoryLogRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+logColumns+`
		FROM inventory_logs WHERE product_id = $1
		ORDER BY created_at DESC, seq DESC LIMIT $2 OFFSET $3`,
		productID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}
	return scanLogs(rows)
}

// SumByProduct suma de deltas aplicados y cantidad de asientos.
func (r *InventoryLogRepo) SumByProduct(ctx context.Context, productID string) (int64, int, error) {
	var sum int64
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0), COUNT(*) FROM inventory_logs WHERE product_id = $1`,
		productID,
	).Scan(&sum, &n)
	if err != nil {
		return 0, 0, fmt.Errorf("sum inventory logs: %w", err)
	}
	return sum, n, nil
}

// ListRecent últimos asientos de todos los productos.
func (r *InventoryLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.InventoryLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+logColumns+`
		FROM inventory_logs ORDER BY created_at DESC, seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent inventory logs: %w", err)
	}
	return scanLogs(rows)
}
