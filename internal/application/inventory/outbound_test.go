package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Escenario A: stock 50, salida de 10 → 40 y un asiento de -10.
func TestOutbound_EscenarioA(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 3, 5, 0)
	f.store.SeedStock(p.ID, 50)

	res, err := f.outboundUC.Create(context.Background(), inventory.CreateOutboundInput{
		Type:     entity.OutboundSale,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 10, UnitPrice: price("5")}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(40), f.quantity(t, p.ID))
	assert.Equal(t, 2, f.entries(t, p.ID), "apertura + un asiento de salida")
	logs, err := f.query.ListLogs(context.Background(), p.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), logs[0].Quantity)
	assert.Equal(t, entity.MovementOutbound, logs[0].Kind)

	require.Len(t, res.UpdatedInventories, 1)
	assert.Equal(t, int64(40), res.UpdatedInventories[0].Quantity)
	assert.True(t, res.EnableStockAlert, "alerta habilitada por defecto")
	f.requireConserved(t, p.ID)
}

// Escenario B: stock 5, salida de 10 → InsufficientStockError sin efectos.
func TestOutbound_EscenarioB(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 3, 5, 0)
	f.store.SeedStock(p.ID, 5)

	_, err := f.outboundUC.Create(context.Background(), inventory.CreateOutboundInput{
		Type:           entity.OutboundSale,
		Operator:       "maria",
		RelatedOrderID: "pedido-1",
		Items:          []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 10}},
	})
	require.Error(t, err)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, p.ID, ise.ProductID)
	assert.Equal(t, int64(5), ise.Current)
	assert.Equal(t, int64(10), ise.Requested)

	assert.Equal(t, int64(5), f.quantity(t, p.ID))
	assert.Equal(t, 1, f.entries(t, p.ID), "ningún asiento nuevo")
	orders, err := f.store.Repos().Outbound.ListByRelatedOrder(context.Background(), "pedido-1")
	require.NoError(t, err)
	assert.Empty(t, orders, "ninguna orden persistida")
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.DocumentsCreated.WithLabelValues("outbound")))
}

func TestOutbound_PreflightAgregaPorProducto(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 3, 5, 0)
	q := f.product("Q", 3, 5, 0)
	f.store.SeedStock(p.ID, 10)
	f.store.SeedStock(q.ID, 10)

	_, err := f.outboundUC.Create(context.Background(), inventory.CreateOutboundInput{
		Type:     entity.OutboundSale,
		Operator: "maria",
		Items: []inventory.OrderLineInput{
			{ProductID: q.ID, Quantity: 2},
			{ProductID: p.ID, Quantity: 6},
			{ProductID: p.ID, Quantity: 6},
		},
	})
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise), "6+6 supera el stock de 10")
	assert.Equal(t, int64(12), ise.Requested)
	assert.Equal(t, int64(10), f.quantity(t, q.ID), "ninguna línea se aplicó")
	assert.Equal(t, int64(10), f.quantity(t, p.ID))
}

func TestOutbound_SinFilaDeInventario(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 3, 5, 0)

	_, err := f.outboundUC.Create(context.Background(), inventory.CreateOutboundInput{
		Type:     entity.OutboundScrap,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 1}},
	})
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, int64(0), ise.Current)
}

func TestOutbound_AlertaDeStockBajoPostCommit(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 3, 5, 10)
	f.store.SeedStock(p.ID, 15)

	res, err := f.outboundUC.Create(context.Background(), inventory.CreateOutboundInput{
		Type:     entity.OutboundSale,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 6}},
	})
	require.NoError(t, err)

	require.Len(t, f.notifier.alerts, 1, "9 <= 10 dispara la alerta")
	a := f.notifier.alerts[0]
	assert.Equal(t, p.ID, a.ProductID)
	assert.Equal(t, "P", a.ProductCode)
	assert.Equal(t, int64(9), a.Quantity)
	assert.Equal(t, int64(10), a.AlertThreshold)
	assert.Equal(t, res.Order.OrderNo, a.OrderNo)
	assert.Equal(t, "maria", a.Operator)
}

func TestOutbound_AlertaDeshabilitada(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 3, 5, 10)
	f.store.SeedStock(p.ID, 15)

	_, err := f.outboundUC.Create(context.Background(), inventory.CreateOutboundInput{
		Type:             entity.OutboundSale,
		Operator:         "maria",
		Items:            []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 6}},
		EnableStockAlert: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Empty(t, f.notifier.alerts)
}

func TestOutbound_FalloDeAlertaNoSePropaga(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("cola caída")
	p := f.product("P", 3, 5, 10)
	f.store.SeedStock(p.ID, 15)

	_, err := f.outboundUC.Create(context.Background(), inventory.CreateOutboundInput{
		Type:     entity.OutboundSale,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 6}},
	})
	require.NoError(t, err, "la orden ya quedó confirmada")
	assert.Equal(t, int64(9), f.quantity(t, p.ID))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.NotificationFailures.WithLabelValues(entity.MessageInventoryAlert)))
}

func TestOutbound_BorrarRestauraStock(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 3, 5, 0)
	f.store.SeedStock(p.ID, 50)
	ctx := context.Background()

	res, err := f.outboundUC.Create(ctx, inventory.CreateOutboundInput{
		Type:     entity.OutboundTransfer,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	got, err := f.outboundUC.Get(ctx, res.Order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, entity.OutboundRef{ID: res.Order.ID}, got.Items[0].Owner)

	require.NoError(t, f.outboundUC.Delete(ctx, res.Order.ID))
	assert.Equal(t, int64(50), f.quantity(t, p.ID))

	logs, err := f.query.ListLogs(ctx, p.ID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementOutboundReversal, logs[0].Kind)
	assert.Equal(t, int64(10), logs[0].Quantity)
	f.requireConserved(t, p.ID)
}

func TestOutbound_TipoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.outboundUC.Create(context.Background(), inventory.CreateOutboundInput{
		Type:  "REGALO",
		Items: []inventory.OrderLineInput{{ProductID: "x", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
