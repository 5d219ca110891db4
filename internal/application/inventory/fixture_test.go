package inventory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/metrics"
	"github.com/jhoicas/almacen-api/pkg/docno"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// recordingNotifier guarda lo que recibe; si err != nil falla cada envío.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []notification.StockAlert
	ins    []notification.StockMovementMessage
	outs   []notification.StockMovementMessage
	err    error
}

func (n *recordingNotifier) CreateInventoryAlert(_ context.Context, a notification.StockAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, a)
	return n.err
}

func (n *recordingNotifier) CreateStockInMessage(_ context.Context, m notification.StockMovementMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ins = append(n.ins, m)
	return n.err
}

func (n *recordingNotifier) CreateStockOutMessage(_ context.Context, m notification.StockMovementMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outs = append(n.outs, m)
	return n.err
}

type fixture struct {
	store    *memory.Store
	metrics  *metrics.Collectors
	notifier *recordingNotifier
	numbers  docno.Generator
	log      *logger.Logger

	ledger      *inventory.StockLedger
	inbound     *inventory.InboundService
	outbound    *inventory.OutboundService
	stocktaking *inventory.StocktakingService

	inboundUC     *inventory.InboundUseCase
	outboundUC    *inventory.OutboundUseCase
	stocktakingUC *inventory.StocktakingUseCase
	query         *inventory.LedgerQuery
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    memory.NewStore(),
		metrics:  metrics.New(prometheus.NewRegistry()),
		notifier: &recordingNotifier{},
		numbers:  docno.NewClockGenerator(),
		log:      logger.Nop(),
	}
	f.ledger = inventory.NewStockLedger(f.log, f.metrics)
	f.inbound = inventory.NewInboundService(f.ledger, f.numbers, f.metrics)
	f.outbound = inventory.NewOutboundService(f.ledger, f.numbers, f.notifier, f.log, f.metrics)
	f.stocktaking = inventory.NewStocktakingService(f.inbound, f.outbound, f.numbers, f.metrics)

	f.inboundUC = inventory.NewInboundUseCase(f.store, f.inbound, nil, f.log)
	f.outboundUC = inventory.NewOutboundUseCase(f.store, f.outbound, nil, f.log)
	f.stocktakingUC = inventory.NewStocktakingUseCase(f.store, f.stocktaking, f.notifier, nil, nil, f.log, f.metrics)
	f.query = inventory.NewLedgerQuery(f.store, nil)
	return f
}

// product registra un producto con precios de compra/venta y umbral de alerta.
func (f *fixture) product(code string, purchase, retail, threshold int64) *entity.Product {
	return f.store.SeedProduct(entity.Product{
		Name:           "Producto " + code,
		Code:           code,
		Unit:           "und",
		PurchasePrice:  decimal.NewFromInt(purchase),
		RetailPrice:    decimal.NewFromInt(retail),
		AlertThreshold: threshold,
	})
}

func (f *fixture) quantity(t *testing.T, productID string) int64 {
	t.Helper()
	inv, err := f.store.Repos().Inventory.GetByProduct(context.Background(), productID)
	require.NoError(t, err)
	if inv == nil {
		return 0
	}
	return inv.Quantity
}

func (f *fixture) entries(t *testing.T, productID string) int {
	t.Helper()
	_, n, err := f.store.Repos().Logs.SumByProduct(context.Background(), productID)
	require.NoError(t, err)
	return n
}

// requireConserved verifica la invariante del libro y la no negatividad.
func (f *fixture) requireConserved(t *testing.T, productID string) {
	t.Helper()
	report, err := f.query.Verify(context.Background(), productID)
	require.NoError(t, err)
	require.True(t, report.Conserved, "suma de asientos %d != stock %d", report.LogSum, report.Quantity)
	require.GreaterOrEqual(t, report.Quantity, int64(0), "el stock nunca puede ser negativo")
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func qty(n int64) *int64 { return &n }

func boolPtr(b bool) *bool { return &b }
