package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
	exportLogLimit  = 10000
)

// ConservationReport compara la suma de asientos con la cantidad en inventario.
type ConservationReport struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	LogSum    int64  `json:"log_sum"`
	Entries   int    `json:"entries"`
	Conserved bool   `json:"conserved"`
}

// LedgerQuery consultas de solo lectura sobre el libro (ficha de stock, verificación, exportación).
type LedgerQuery struct {
	tx       TxRunner
	exporter LogExporter
}

// NewLedgerQuery construye las consultas; exporter puede ser nil.
func NewLedgerQuery(tx TxRunner, exporter LogExporter) *LedgerQuery {
	return &LedgerQuery{tx: tx, exporter: exporter}
}

// ListLogs ficha de stock del producto, más recientes primero.
func (q *LedgerQuery) ListLogs(ctx context.Context, productID string, limit, offset int) ([]*entity.InventoryLog, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	if offset < 0 {
		offset = 0
	}
	var logs []*entity.InventoryLog
	err := q.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if _, err := requireProduct(ctx, repos.Products, productID); err != nil {
			return err
		}
		var err error
		logs, err = repos.Logs.ListByProduct(ctx, productID, limit, offset)
		if err != nil {
			return fmt.Errorf("list inventory logs: %w", err)
		}
		return nil
	})
	return logs, err
}

// Verify comprueba que la suma de deltas aplicados coincide con el stock actual.
func (q *LedgerQuery) Verify(ctx context.Context, productID string) (*ConservationReport, error) {
	var report *ConservationReport
	err := q.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if _, err := requireProduct(ctx, repos.Products, productID); err != nil {
			return err
		}
		inv, err := repos.Inventory.GetByProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("get inventory: %w", err)
		}
		sum, entries, err := repos.Logs.SumByProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("sum inventory logs: %w", err)
		}
		var qty int64
		if inv != nil {
			qty = inv.Quantity
		}
		report = &ConservationReport{
			ProductID: productID,
			Quantity:  qty,
			LogSum:    sum,
			Entries:   entries,
			Conserved: domaininv.Conserved(qty, sum),
		}
		return nil
	})
	return report, err
}

// ExportLogsXLSX exporta la ficha de stock completa del producto.
func (q *LedgerQuery) ExportLogsXLSX(ctx context.Context, productID string) ([]byte, string, error) {
	if q.exporter == nil {
		return nil, "", fmt.Errorf("exportador no configurado")
	}
	var (
		product *entity.Product
		logs    []*entity.InventoryLog
	)
	err := q.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		if product, err = requireProduct(ctx, repos.Products, productID); err != nil {
			return err
		}
		logs, err = repos.Logs.ListByProduct(ctx, productID, exportLogLimit, 0)
		if err != nil {
			return fmt.Errorf("list inventory logs: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	out, err := q.exporter.ExportLogs(product, logs)
	if err != nil {
		return nil, "", fmt.Errorf("exportar ficha de stock: %w", err)
	}
	return out, product.Code, nil
}

func requireProduct(ctx context.Context, repo repository.ProductRepository, id string) (*entity.Product, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: id}
	}
	return p, nil
}
