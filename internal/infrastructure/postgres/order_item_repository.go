package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

// OrderItemRepo líneas de entradas y salidas en una tabla compartida (order_type, order_id).
type OrderItemRepo struct {
	q Querier
}

// NewOrderItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderItemRepository(q Querier) *OrderItemRepo {
	return &OrderItemRepo{q: q}
}

// CreateBatch inserta todas las líneas en un solo pgx.Batch.
func (r *OrderItemRepo) CreateBatch(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	const query = `
		INSERT INTO order_items (id, order_type, order_id, product_id, quantity, unit_price, total_price, unit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(query,
			it.ID, string(it.Owner.Kind()), it.Owner.OrderID(), it.ProductID,
			it.Quantity, it.UnitPrice, it.TotalPrice, it.Unit,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// ListByOrder líneas de la orden en orden de inserción.
func (r *OrderItemRepo) ListByOrder(ctx context.Context, owner entity.OrderRef) ([]*entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_type, order_id, product_id, quantity, unit_price, total_price, unit
		FROM order_items WHERE order_type = $1 AND order_id = $2
		ORDER BY seq`,
		string(owner.Kind()), owner.OrderID(),
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderItem
	for rows.Next() {
		var (
			it      entity.OrderItem
			kind    string
			orderID string
		)
		if err := rows.Scan(&it.ID, &kind, &orderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.Unit); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if it.Owner, err = entity.RefFor(entity.OrderKind(kind), orderID); err != nil {
			return nil, err
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// DeleteByOrder borra las líneas de la orden.
func (r *OrderItemRepo) DeleteByOrder(ctx context.Context, owner entity.OrderRef) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM order_items WHERE order_type = $1 AND order_id = $2`,
		string(owner.Kind()), owner.OrderID(),
	)
	if err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return nil
}
