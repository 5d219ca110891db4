package inventory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ─── NextQuantity ─────────────────────────────────────────────────────────────

func TestNextQuantity_Positive(t *testing.T) {
	next, floored, err := NextQuantity("p1", 10, 5, entity.MovementInbound)
	require.NoError(t, err)
	assert.Equal(t, int64(15), next)
	assert.False(t, floored)
}

func TestNextQuantity_FloorsReversals(t *testing.T) {
	for _, kind := range []entity.MovementKind{
		entity.MovementInbound,
		entity.MovementInboundReversal,
		entity.MovementOutboundReversal,
	} {
		next, floored, err := NextQuantity("p1", 3, -10, kind)
		require.NoError(t, err, kind)
		assert.Equal(t, int64(0), next, "debe recortar a cero para %s", kind)
		assert.True(t, floored)
	}
}

func TestNextQuantity_OutboundRejects(t *testing.T) {
	_, _, err := NextQuantity("p1", 3, -10, entity.MovementOutbound)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "p1", ise.ProductID)
	assert.Equal(t, int64(3), ise.Current)
	assert.Equal(t, int64(10), ise.Requested)
}

func TestNextQuantity_OutboundToExactlyZero(t *testing.T) {
	next, floored, err := NextQuantity("p1", 4, -4, entity.MovementOutbound)
	require.NoError(t, err)
	assert.Equal(t, int64(0), next)
	assert.False(t, floored)
}

func TestInitialQuantity(t *testing.T) {
	assert.Equal(t, int64(7), InitialQuantity(7))
	assert.Equal(t, int64(0), InitialQuantity(-7))
}

// ─── Totales ──────────────────────────────────────────────────────────────────

func TestTotals_NilPriceCountsAsZero(t *testing.T) {
	price := decimal.RequireFromString("2.50")
	qty, amount := Totals([]Line{
		{Quantity: 4, UnitPrice: &price},
		{Quantity: 3},
	})
	assert.Equal(t, int64(7), qty)
	assert.True(t, amount.Equal(decimal.RequireFromString("10")), "importe: %s", amount)
}

// ─── Partition ────────────────────────────────────────────────────────────────

func TestPartition_ProfitAtPurchaseLossAtRetail(t *testing.T) {
	a := &entity.Product{ID: "A", Unit: "und", PurchasePrice: decimal.NewFromInt(5), RetailPrice: decimal.NewFromInt(8)}
	b := &entity.Product{ID: "B", Unit: "kg", PurchasePrice: decimal.NewFromInt(3), RetailPrice: decimal.NewFromInt(9)}
	c := &entity.Product{ID: "C"}

	profit, loss := Partition([]CountedLine{
		{Product: a, SystemQuantity: 10, ActualQuantity: 12},
		{Product: b, SystemQuantity: 10, ActualQuantity: 7},
		{Product: c, SystemQuantity: 4, ActualQuantity: 4},
	})

	require.Len(t, profit, 1)
	assert.Equal(t, "A", profit[0].ProductID)
	assert.Equal(t, int64(2), profit[0].Quantity)
	assert.True(t, profit[0].UnitPrice.Equal(decimal.NewFromInt(5)))

	require.Len(t, loss, 1)
	assert.Equal(t, "B", loss[0].ProductID)
	assert.Equal(t, int64(3), loss[0].Quantity)
	assert.True(t, loss[0].UnitPrice.Equal(decimal.NewFromInt(9)))
	assert.Equal(t, "kg", loss[0].Unit)
}
