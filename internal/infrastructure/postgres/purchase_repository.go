package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra y sus líneas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta la cabecera y sus líneas en un solo batch.
func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO purchase_orders (id, order_no, supplier, status, operator, remark, total_amount, confirmed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.OrderNo, o.Supplier, o.Status, o.Operator, o.Remark, o.TotalAmount, o.ConfirmedAt, o.CreatedAt,
	)
	for _, it := range o.Items {
		batch.Queue(`
			INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, o.ID, it.ProductID, it.Quantity, it.UnitPrice,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert purchase order: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la compra con sus líneas. nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, `
		SELECT id, order_no, supplier, status, operator, remark, total_amount, confirmed_at, created_at
		FROM purchase_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.OrderNo, &o.Supplier, &o.Status, &o.Operator, &o.Remark, &o.TotalAmount, &o.ConfirmedAt, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, product_id, quantity, unit_price
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		o.Items = append(o.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	return &o, nil
}

// UpdateStatus persiste estado y fecha de confirmación.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, o *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchase_orders SET status = $2, confirmed_at = $3 WHERE id = $1`,
		o.ID, o.Status, o.ConfirmedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "orden de compra", ID: o.ID}
	}
	return nil
}

// DeleteItems borra las líneas de la compra.
func (r *PurchaseOrderRepo) DeleteItems(ctx context.Context, purchaseOrderID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, purchaseOrderID); err != nil {
		return fmt.Errorf("delete purchase items: %w", err)
	}
	return nil
}

// Delete borra la cabecera.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}
