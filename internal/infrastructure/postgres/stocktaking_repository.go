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

var _ repository.StocktakingRepository = (*StocktakingRepo)(nil)

// StocktakingRepo inventarios físicos y sus líneas contadas.
type StocktakingRepo struct {
	q Querier
}

// NewStocktakingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStocktakingRepository(q Querier) *StocktakingRepo {
	return &StocktakingRepo{q: q}
}

// Create inserta la cabecera del inventario.
func (r *StocktakingRepo) Create(ctx context.Context, o *entity.StocktakingOrder) error {
	query := `
		INSERT INTO stocktaking_orders (id, order_no, stocktaking_date, operator, remark, total_items, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, o.ID, o.OrderNo, o.StocktakingDate, o.Operator, o.Remark, o.TotalItems, o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stocktaking order: %w", err)
	}
	return nil
}

// CreateItem inserta una línea contada con la foto del producto al momento del conteo.
func (r *StocktakingRepo) CreateItem(ctx context.Context, it *entity.StocktakingItem) error {
	query := `
		INSERT INTO stocktaking_items (id, stocktaking_id, product_id, product_name, product_code, product_spec, unit, system_quantity, actual_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.StocktakingID, it.ProductID, it.ProductName, it.ProductCode, it.ProductSpec,
		it.Unit, it.SystemQuantity, it.ActualQuantity,
	)
	if err != nil {
		return fmt.Errorf("insert stocktaking item: %w", err)
	}
	return nil
}

// GetByID devuelve la orden con sus líneas. nil si no existe.
func (r *StocktakingRepo) GetByID(ctx context.Context, id string) (*entity.StocktakingOrder, error) {
	var o entity.StocktakingOrder
	err := r.q.QueryRow(ctx, `
		SELECT id, order_no, stocktaking_date, operator, remark, total_items, created_at
		FROM stocktaking_orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.OrderNo, &o.StocktakingDate, &o.Operator, &o.Remark, &o.TotalItems, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stocktaking order: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, stocktaking_id, product_id, product_name, product_code, product_spec, unit, system_quantity, actual_quantity
		FROM stocktaking_items WHERE stocktaking_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list stocktaking items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.StocktakingItem
		if err := rows.Scan(
			&it.ID, &it.StocktakingID, &it.ProductID, &it.ProductName, &it.ProductCode, &it.ProductSpec,
			&it.Unit, &it.SystemQuantity, &it.ActualQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan stocktaking item: %w", err)
		}
		o.Items = append(o.Items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stocktaking items: %w", err)
	}
	return &o, nil
}

// DeleteItems borra las líneas del inventario.
func (r *StocktakingRepo) DeleteItems(ctx context.Context, stocktakingID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stocktaking_items WHERE stocktaking_id = $1`, stocktakingID); err != nil {
		return fmt.Errorf("delete stocktaking items: %w", err)
	}
	return nil
}

// Delete borra la cabecera.
func (r *StocktakingRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stocktaking_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stocktaking order: %w", err)
	}
	return nil
}
