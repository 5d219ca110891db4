package purchase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/application/purchase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/docno"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type countingNotifier struct {
	notification.Notifier
	ins int
}

func (n *countingNotifier) CreateStockInMessage(context.Context, notification.StockMovementMessage) error {
	n.ins++
	return nil
}

func setup(t *testing.T) (*memory.Store, *purchase.BridgeUseCase, *countingNotifier) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	numbers := docno.NewClockGenerator()
	ledger := inventory.NewStockLedger(log, nil)
	inbound := inventory.NewInboundService(ledger, numbers, nil)
	n := &countingNotifier{}
	return store, purchase.NewBridgeUseCase(store, inbound, numbers, n, log, nil), n
}

func stock(t *testing.T, store *memory.Store, productID string) int64 {
	t.Helper()
	inv, err := store.Repos().Inventory.GetByProduct(context.Background(), productID)
	require.NoError(t, err)
	if inv == nil {
		return 0
	}
	return inv.Quantity
}

func TestBridge_ConfirmarGeneraEntrada(t *testing.T) {
	store, uc, n := setup(t)
	p := store.SeedProduct(entity.Product{Name: "Tornillo", Code: "T-1", Unit: "und"})
	ctx := context.Background()

	po, err := uc.Create(ctx, purchase.CreateInput{
		Supplier: "Ferretería Central",
		Operator: "ana",
		Items:    []purchase.LineInput{{ProductID: p.ID, Quantity: 12, UnitPrice: decimal.RequireFromString("0.5")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, po.Status)
	assert.True(t, po.TotalAmount.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, int64(0), stock(t, store, p.ID), "la compra pendiente no mueve stock")

	res, err := uc.Confirm(ctx, po.ID, "")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusConfirmed, res.Order.Status)
	require.NotNil(t, res.Order.ConfirmedAt)
	assert.Equal(t, entity.InboundPurchase, res.Inbound.Order.Type)
	assert.Equal(t, po.ID, res.Inbound.Order.RelatedOrderID)
	assert.Equal(t, "ana", res.Inbound.Order.Operator, "sin operador se usa el de la compra")
	assert.Equal(t, int64(12), stock(t, store, p.ID))
	assert.Equal(t, 1, n.ins)

	_, err = uc.Confirm(ctx, po.ID, "ana")
	assert.True(t, errors.Is(err, domain.ErrConflict), "no se confirma dos veces")
	assert.Equal(t, int64(12), stock(t, store, p.ID))
}

func TestBridge_BorrarConfirmadaRevierte(t *testing.T) {
	store, uc, _ := setup(t)
	p := store.SeedProduct(entity.Product{Name: "Tornillo", Code: "T-1"})
	ctx := context.Background()

	po, err := uc.Create(ctx, purchase.CreateInput{
		Operator: "ana",
		Items:    []purchase.LineInput{{ProductID: p.ID, Quantity: 5}},
	})
	require.NoError(t, err)
	res, err := uc.Confirm(ctx, po.ID, "ana")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, po.ID))
	assert.Equal(t, int64(0), stock(t, store, p.ID))
	got, err := store.Repos().Inbound.GetByID(ctx, res.Inbound.Order.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	got2, err := store.Repos().Purchases.GetByID(ctx, po.ID)
	require.NoError(t, err)
	assert.Nil(t, got2)
}

func TestBridge_Validaciones(t *testing.T) {
	store, uc, _ := setup(t)
	p := store.SeedProduct(entity.Product{Name: "Tornillo", Code: "T-1"})
	ctx := context.Background()

	_, err := uc.Create(ctx, purchase.CreateInput{Operator: "ana"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, purchase.CreateInput{Items: []purchase.LineInput{{ProductID: p.ID, Quantity: 0}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, purchase.CreateInput{Items: []purchase.LineInput{{ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, purchase.CreateInput{Items: []purchase.LineInput{{ProductID: "x", Quantity: 1}}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Confirm(ctx, "x", "ana")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
