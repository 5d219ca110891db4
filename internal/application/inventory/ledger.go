package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// StockDelta un cambio de stock solicitado al libro.
type StockDelta struct {
	ProductID   string
	Delta       int64 // con signo
	Kind        entity.MovementKind
	OrderNo     string
	Operator    string
	OrderItemID string
}

// StockLedger única ruta por la que cambia Inventory.Quantity.
// Cada llamada actualiza una fila de inventario e inserta exactamente un asiento.
type StockLedger struct {
	log     *logger.Logger
	metrics Metrics
	now     func() time.Time
}

// NewStockLedger construye el libro. metrics puede ser nil.
func NewStockLedger(log *logger.Logger, metrics Metrics) *StockLedger {
	return &StockLedger{log: log.Component("ledger"), metrics: metricsOrNop(metrics), now: time.Now}
}

// ApplyStockDelta bloquea la fila (SELECT FOR UPDATE), aplica el delta y agrega el asiento.
// Corre dentro de la transacción del caller; no hace commit ni rollback.
func (l *StockLedger) ApplyStockDelta(ctx context.Context, repos repository.TxRepos, d StockDelta) (*entity.Inventory, error) {
	if !d.Kind.Valid() {
		return nil, domain.NewValidationError("tipo de movimiento inválido: %q", d.Kind)
	}
	if d.ProductID == "" {
		return nil, domain.NewValidationError("producto requerido")
	}
	now := l.now()

	inv, err := repos.Inventory.GetForUpdate(ctx, d.ProductID)
	if err != nil {
		return nil, fmt.Errorf("lock inventory %s: %w", d.ProductID, err)
	}

	var applied int64
	if inv == nil {
		// Fila inexistente: nace con max(0, delta)
		inv = &entity.Inventory{
			ID:        uuid.New().String(),
			ProductID: d.ProductID,
			Quantity:  domaininv.InitialQuantity(d.Delta),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.Inventory.Create(ctx, inv); err != nil {
			return nil, fmt.Errorf("create inventory %s: %w", d.ProductID, err)
		}
		applied = inv.Quantity
	} else {
		next, floored, err := domaininv.NextQuantity(d.ProductID, inv.Quantity, d.Delta, d.Kind)
		if err != nil {
			l.metrics.InsufficientStock()
			return nil, err
		}
		applied = next - inv.Quantity
		if err := repos.Inventory.UpdateQuantity(ctx, inv.ID, next); err != nil {
			return nil, fmt.Errorf("update inventory %s: %w", d.ProductID, err)
		}
		inv.Quantity = next
		inv.UpdatedAt = now
		if floored {
			l.log.Warn().
				Str("product_id", d.ProductID).
				Str("kind", string(d.Kind)).
				Int64("requested", d.Delta).
				Int64("applied", applied).
				Str("order_no", d.OrderNo).
				Msg("stock recortado a cero")
		}
	}

	entry := &entity.InventoryLog{
		ID:          uuid.New().String(),
		InventoryID: inv.ID,
		ProductID:   d.ProductID,
		Quantity:    applied,
		Requested:   d.Delta,
		Kind:        d.Kind,
		OrderNo:     d.OrderNo,
		Operator:    d.Operator,
		OrderItemID: d.OrderItemID,
		CreatedAt:   now,
	}
	if err := repos.Logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("append inventory log: %w", err)
	}
	l.metrics.LedgerEntry(d.Kind)
	return inv, nil
}
