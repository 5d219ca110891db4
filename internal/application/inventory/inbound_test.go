package inventory_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

func TestInbound_SinLineas(t *testing.T) {
	f := newFixture(t)
	_, err := f.inboundUC.Create(context.Background(), inventory.CreateInboundInput{
		Type:     entity.InboundReturn,
		Operator: "maria",
	})
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve), "lista vacía debe ser ValidationError")
}

func TestInbound_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.inboundUC.Create(context.Background(), inventory.CreateInboundInput{
		Type:     entity.InboundReturn,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: "no-existe", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestInbound_CreaOrdenLineasYAsientos(t *testing.T) {
	f := newFixture(t)
	a := f.product("A", 5, 8, 0)
	b := f.product("B", 2, 3, 0)
	f.store.SeedStock(a.ID, 10)

	res, err := f.inboundUC.Create(context.Background(), inventory.CreateInboundInput{
		Type:     entity.InboundReturn,
		Operator: "maria",
		Items: []inventory.OrderLineInput{
			{ProductID: a.ID, Quantity: 4, UnitPrice: price("2.50")},
			{ProductID: b.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(res.Order.OrderNo, "RK"), "número con prefijo RK: %s", res.Order.OrderNo)
	assert.Equal(t, int64(7), res.Order.TotalQuantity)
	assert.True(t, res.Order.TotalAmount.Equal(decimal.NewFromInt(10)), "precio nil cuenta como cero: %s", res.Order.TotalAmount)
	require.Len(t, res.Items, 2)
	assert.Equal(t, entity.InboundRef{ID: res.Order.ID}, res.Items[0].Owner)
	assert.Equal(t, "und", res.Items[1].Unit, "unidad tomada del producto")

	assert.Equal(t, int64(14), f.quantity(t, a.ID))
	assert.Equal(t, int64(3), f.quantity(t, b.ID), "fila creada en el primer movimiento")

	logs, err := f.query.ListLogs(context.Background(), a.ID, 1, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(4), logs[0].Quantity)
	assert.Equal(t, entity.MovementInbound, logs[0].Kind)
	assert.Equal(t, res.Order.OrderNo, logs[0].OrderNo)
	assert.Equal(t, res.Items[0].ID, logs[0].OrderItemID, "trazabilidad a la línea")

	f.requireConserved(t, a.ID)
	f.requireConserved(t, b.ID)
}

func TestInbound_IdaYVuelta(t *testing.T) {
	f := newFixture(t)
	p := f.product("A", 5, 8, 0)
	f.store.SeedStock(p.ID, 20)
	ctx := context.Background()

	res, err := f.inboundUC.Create(ctx, inventory.CreateInboundInput{
		Type:     entity.InboundPurchase,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 7}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(27), f.quantity(t, p.ID))

	require.NoError(t, f.inboundUC.Delete(ctx, res.Order.ID))
	assert.Equal(t, int64(20), f.quantity(t, p.ID), "borrar la entrada restaura el stock previo")
	f.requireConserved(t, p.ID)

	_, err = f.inboundUC.Get(ctx, res.Order.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "la orden ya no existe")
	items, err := f.store.Repos().OrderItems.ListByOrder(ctx, entity.InboundRef{ID: res.Order.ID})
	require.NoError(t, err)
	assert.Empty(t, items, "las líneas se borran con la orden")
}

func TestInbound_BorrarTrasConsumoRecortaACero(t *testing.T) {
	f := newFixture(t)
	p := f.product("A", 5, 8, 0)
	ctx := context.Background()

	in, err := f.inboundUC.Create(ctx, inventory.CreateInboundInput{
		Type:     entity.InboundPurchase,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 10}},
	})
	require.NoError(t, err)
	_, err = f.outboundUC.Create(ctx, inventory.CreateOutboundInput{
		Type:     entity.OutboundSale,
		Operator: "maria",
		Items:    []inventory.OrderLineInput{{ProductID: p.ID, Quantity: 8}},
	})
	require.NoError(t, err)

	require.NoError(t, f.inboundUC.Delete(ctx, in.Order.ID), "el reverso no bloquea el borrado")
	assert.Equal(t, int64(0), f.quantity(t, p.ID))
	f.requireConserved(t, p.ID)
}

func TestInbound_BorrarInexistente(t *testing.T) {
	f := newFixture(t)
	err := f.inboundUC.Delete(context.Background(), "nope")
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.ID)
}
