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

var (
	_ repository.InboundOrderRepository  = (*InboundOrderRepo)(nil)
	_ repository.OutboundOrderRepository = (*OutboundOrderRepo)(nil)
)

const orderColumns = `id, order_no, type, order_date, operator, remark, total_quantity, total_amount, COALESCE(related_order_id, ''), created_at`

// InboundOrderRepo órdenes de entrada sobre PostgreSQL.
type InboundOrderRepo struct {
	q Querier
}

// NewInboundOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInboundOrderRepository(q Querier) *InboundOrderRepo {
	return &InboundOrderRepo{q: q}
}

// Create inserta la cabecera. Número duplicado → ErrDuplicate.
func (r *InboundOrderRepo) Create(ctx context.Context, o *entity.InboundOrder) error {
	query := `
		INSERT INTO inbound_orders (id, order_no, type, order_date, operator, remark, total_quantity, total_amount, related_order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNo, string(o.Type), o.OrderDate, o.Operator, o.Remark,
		o.TotalQuantity, o.TotalAmount, o.RelatedOrderID, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inbound order: %w", err)
	}
	return nil
}

func scanInbound(row pgx.Row) (*entity.InboundOrder, error) {
	var o entity.InboundOrder
	var typ string
	if err := row.Scan(
		&o.ID, &o.OrderNo, &typ, &o.OrderDate, &o.Operator, &o.Remark,
		&o.TotalQuantity, &o.TotalAmount, &o.RelatedOrderID, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Type = entity.InboundType(typ)
	return &o, nil
}

// GetByID obtiene la cabecera. nil si no existe.
func (r *InboundOrderRepo) GetByID(ctx context.Context, id string) (*entity.InboundOrder, error) {
	o, err := scanInbound(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM inbound_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inbound order: %w", err)
	}
	return o, nil
}

// Delete borra la cabecera (las líneas se borran antes vía OrderItemRepo).
func (r *InboundOrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inbound_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inbound order: %w", err)
	}
	return nil
}

// ListByRelatedOrder entradas generadas por un inventario físico o una compra.
func (r *InboundOrderRepo) ListByRelatedOrder(ctx context.Context, relatedOrderID string) ([]*entity.InboundOrder, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM inbound_orders WHERE related_order_id = $1 ORDER BY created_at`,
		relatedOrderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inbound by related order: %w", err)
	}
	defer rows.Close()
	var list []*entity.InboundOrder
	for rows.Next() {
		o, err := scanInbound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inbound order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// OutboundOrderRepo órdenes de salida sobre PostgreSQL.
type OutboundOrderRepo struct {
	q Querier
}

// NewOutboundOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutboundOrderRepository(q Querier) *OutboundOrderRepo {
	return &OutboundOrderRepo{q: q}
}

// Create inserta la cabecera. Número duplicado → ErrDuplicate.
func (r *OutboundOrderRepo) Create(ctx context.Context, o *entity.OutboundOrder) error {
	query := `
		INSERT INTO outbound_orders (id, order_no, type, order_date, operator, remark, total_quantity, total_amount, related_order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderNo, string(o.Type), o.OrderDate, o.Operator, o.Remark,
		o.TotalQuantity, o.TotalAmount, o.RelatedOrderID, o.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert outbound order: %w", err)
	}
	return nil
}

func scanOutbound(row pgx.Row) (*entity.OutboundOrder, error) {
	var o entity.OutboundOrder
	var typ string
	if err := row.Scan(
		&o.ID, &o.OrderNo, &typ, &o.OrderDate, &o.Operator, &o.Remark,
		&o.TotalQuantity, &o.TotalAmount, &o.RelatedOrderID, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.Type = entity.OutboundType(typ)
	return &o, nil
}

// GetByID obtiene la cabecera. nil si no existe.
func (r *OutboundOrderRepo) GetByID(ctx context.Context, id string) (*entity.OutboundOrder, error) {
	o, err := scanOutbound(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM outbound_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outbound order: %w", err)
	}
	return o, nil
}

// Delete borra la cabecera.
func (r *OutboundOrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM outbound_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete outbound order: %w", err)
	}
	return nil
}

// ListByRelatedOrder salidas generadas por un inventario físico.
func (r *OutboundOrderRepo) ListByRelatedOrder(ctx context.Context, relatedOrderID string) ([]*entity.OutboundOrder, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM outbound_orders WHERE related_order_id = $1 ORDER BY created_at`,
		relatedOrderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list outbound by related order: %w", err)
	}
	defer rows.Close()
	var list []*entity.OutboundOrder
	for rows.Next() {
		o, err := scanOutbound(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outbound order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
