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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo stock actual por producto sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) get(ctx context.Context, query, productID string) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// GetByProduct obtiene el stock del producto sin bloquear. nil si no hay fila.
func (r *InventoryRepo) GetByProduct(ctx context.Context, productID string) (*entity.Inventory, error) {
	inv, err := r.get(ctx, `
		SELECT id, product_id, quantity, created_at, updated_at
		FROM inventory WHERE product_id = $1`, productID)
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
// Solo tiene sentido dentro de un TxRunner.Run.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	inv, err := r.get(ctx, `
		SELECT id, product_id, quantity, created_at, updated_at
		FROM inventory WHERE product_id = $1 FOR UPDATE`, productID)
	if err != nil {
		if isLockTimeout(err) {
			return nil, fmt.Errorf("inventario del producto %s ocupado por otra operación: %w", productID, domain.ErrConflict)
		}
		return nil, fmt.Errorf("lock inventory: %w", err)
	}
	return inv, nil
}

// Create inserta la fila de inventario del producto (una por producto).
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.ProductID, inv.Quantity, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad de la fila. El CHECK de la tabla rechaza negativos.
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE inventory SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "inventario", ID: id}
	}
	return nil
}

// CountLowStock productos con umbral activo y cantidad en o bajo el umbral.
func (r *InventoryRepo) CountLowStock(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE p.alert_threshold > 0 AND i.quantity <= p.alert_threshold`
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}
