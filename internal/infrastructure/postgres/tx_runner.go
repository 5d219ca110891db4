package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// NewTxRepos arma el conjunto de repositorios sobre un Querier (pool o tx).
func NewTxRepos(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Products:    NewProductRepository(q),
		Inventory:   NewInventoryRepository(q),
		Logs:        NewInventoryLogRepository(q),
		OrderItems:  NewOrderItemRepository(q),
		Inbound:     NewInboundOrderRepository(q),
		Outbound:    NewOutboundOrderRepository(q),
		Stocktaking: NewStocktakingRepository(q),
		Purchases:   NewPurchaseOrderRepository(q),
	}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Las filas de inventario se serializan con SELECT ... FOR UPDATE.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, NewTxRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
