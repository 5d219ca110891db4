package inventory_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Escenario C: sistema 30, contado 27 → una salida SHORTAGE de 3 a precio de venta.
func TestStocktaking_EscenarioC(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 4, 9, 100)
	f.store.SeedStock(p.ID, 30)

	res, err := f.stocktakingUC.Create(context.Background(), inventory.CreateStocktakingInput{
		Operator: "luis",
		Items:    []inventory.StocktakingLineInput{{ProductID: p.ID, ActualQuantity: qty(27)}},
	})
	require.NoError(t, err)

	assert.Nil(t, res.Inbound)
	require.NotNil(t, res.Outbound)
	assert.Equal(t, entity.OutboundShortage, res.Outbound.Order.Type)
	assert.Equal(t, res.Order.ID, res.Outbound.Order.RelatedOrderID)
	assert.Equal(t, res.Order.OrderNo+"-CK", res.Outbound.Order.OrderNo)
	require.Len(t, res.Outbound.Items, 1)
	assert.Equal(t, int64(3), res.Outbound.Items[0].Quantity)
	assert.True(t, res.Outbound.Items[0].UnitPrice.Equal(p.RetailPrice), "faltante a precio de venta")
	assert.Equal(t, []string{res.Outbound.Order.OrderNo}, res.AutoCreated)
	assert.Contains(t, res.Message, res.Outbound.Order.OrderNo)

	assert.Equal(t, int64(27), f.quantity(t, p.ID))
	f.requireConserved(t, p.ID)

	require.Len(t, res.Order.Items, 1)
	assert.Equal(t, int64(30), res.Order.Items[0].SystemQuantity)
	assert.Equal(t, int64(-3), res.Order.Items[0].Difference())

	assert.Empty(t, f.notifier.alerts, "el faltante no dispara alertas aunque quede bajo el umbral")
	require.Len(t, f.notifier.outs, 1)
	assert.Equal(t, int64(3), f.notifier.outs[0].Quantity)
}

func TestStocktaking_SobranteYFaltante(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 4, 9, 0)
	q := f.product("Q", 2, 6, 0)
	r := f.product("R", 1, 1, 0)
	f.store.SeedStock(p.ID, 10)
	f.store.SeedStock(q.ID, 10)
	f.store.SeedStock(r.ID, 5)

	res, err := f.stocktakingUC.Create(context.Background(), inventory.CreateStocktakingInput{
		Operator: "luis",
		Items: []inventory.StocktakingLineInput{
			{ProductID: p.ID, ActualQuantity: qty(12)},
			{ProductID: q.ID, ActualQuantity: qty(7)},
			{ProductID: r.ID, ActualQuantity: qty(5)},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, res.Inbound)
	require.NotNil(t, res.Outbound)
	assert.Equal(t, entity.InboundSurplus, res.Inbound.Order.Type)
	require.Len(t, res.Inbound.Items, 1)
	assert.Equal(t, int64(2), res.Inbound.Items[0].Quantity)
	assert.True(t, res.Inbound.Items[0].UnitPrice.Equal(p.PurchasePrice), "sobrante a precio de compra")
	require.Len(t, res.Outbound.Items, 1)
	assert.Equal(t, int64(3), res.Outbound.Items[0].Quantity)
	assert.Len(t, res.AutoCreated, 2)
	assert.Equal(t, 3, res.Order.TotalItems)

	assert.Equal(t, int64(12), f.quantity(t, p.ID))
	assert.Equal(t, int64(7), f.quantity(t, q.ID))
	assert.Equal(t, int64(5), f.quantity(t, r.ID))
	for _, id := range []string{p.ID, q.ID, r.ID} {
		f.requireConserved(t, id)
	}
	assert.Len(t, f.notifier.ins, 1)
	assert.Len(t, f.notifier.outs, 1)
}

func TestStocktaking_SinDiferencias(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 4, 9, 0)
	f.store.SeedStock(p.ID, 8)

	res, err := f.stocktakingUC.Create(context.Background(), inventory.CreateStocktakingInput{
		Operator: "luis",
		Items:    []inventory.StocktakingLineInput{{ProductID: p.ID, ActualQuantity: qty(8)}},
	})
	require.NoError(t, err)
	assert.Nil(t, res.Inbound)
	assert.Nil(t, res.Outbound)
	assert.Empty(t, res.AutoCreated)
	assert.True(t, strings.HasSuffix(res.Message, "sin diferencias"), res.Message)
	assert.Equal(t, 1, f.entries(t, p.ID))
}

func TestStocktaking_CantidadNilEsCero(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 4, 9, 0)
	f.store.SeedStock(p.ID, 4)

	res, err := f.stocktakingUC.Create(context.Background(), inventory.CreateStocktakingInput{
		Operator: "luis",
		Items:    []inventory.StocktakingLineInput{{ProductID: p.ID}},
	})
	require.NoError(t, err)
	require.NotNil(t, res.Outbound)
	assert.Equal(t, int64(0), f.quantity(t, p.ID))
	f.requireConserved(t, p.ID)
}

func TestStocktaking_Validaciones(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 4, 9, 0)
	f.store.SeedStock(p.ID, 4)

	cases := []struct {
		name string
		in   inventory.CreateStocktakingInput
	}{
		{"sin operador", inventory.CreateStocktakingInput{
			Items: []inventory.StocktakingLineInput{{ProductID: p.ID, ActualQuantity: qty(1)}},
		}},
		{"sin líneas", inventory.CreateStocktakingInput{Operator: "luis"}},
		{"producto duplicado", inventory.CreateStocktakingInput{Operator: "luis",
			Items: []inventory.StocktakingLineInput{
				{ProductID: p.ID, ActualQuantity: qty(1)},
				{ProductID: p.ID, ActualQuantity: qty(2)},
			}}},
		{"cantidad negativa", inventory.CreateStocktakingInput{Operator: "luis",
			Items: []inventory.StocktakingLineInput{{ProductID: p.ID, ActualQuantity: qty(-1)}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.stocktakingUC.Create(context.Background(), tc.in)
			var ve *domain.ValidationError
			assert.True(t, errors.As(err, &ve), "se esperaba ValidationError, fue %v", err)
		})
	}
	assert.Equal(t, int64(4), f.quantity(t, p.ID))
	assert.Equal(t, 1, f.entries(t, p.ID))
}

func TestStocktaking_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.stocktakingUC.Create(context.Background(), inventory.CreateStocktakingInput{
		Operator: "luis",
		Items:    []inventory.StocktakingLineInput{{ProductID: "no-existe", ActualQuantity: qty(1)}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// Escenario D: el inventario con documentos asociados no se puede borrar hasta borrar esos documentos.
func TestStocktaking_EscenarioD(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 4, 9, 0)
	f.store.SeedStock(p.ID, 30)
	ctx := context.Background()

	res, err := f.stocktakingUC.Create(ctx, inventory.CreateStocktakingInput{
		Operator: "luis",
		Items:    []inventory.StocktakingLineInput{{ProductID: p.ID, ActualQuantity: qty(27)}},
	})
	require.NoError(t, err)

	err = f.stocktakingUC.Delete(ctx, res.Order.ID)
	var ce *domain.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{res.Outbound.Order.OrderNo}, ce.Blocking)
	_, err = f.stocktakingUC.Get(ctx, res.Order.ID)
	require.NoError(t, err, "sigue existiendo")

	require.NoError(t, f.outboundUC.Delete(ctx, res.Outbound.Order.ID))
	assert.Equal(t, int64(30), f.quantity(t, p.ID))

	require.NoError(t, f.stocktakingUC.Delete(ctx, res.Order.ID))
	_, err = f.stocktakingUC.Get(ctx, res.Order.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	f.requireConserved(t, p.ID)
}

// failingOutboundRunner ejecuta sobre el store real pero hace fallar la creación de salidas.
type failingOutboundRunner struct {
	inner inventory.TxRunner
}

type failingOutboundRepo struct {
	repository.OutboundOrderRepository
}

func (failingOutboundRepo) Create(context.Context, *entity.OutboundOrder) error {
	return errors.New("disco lleno")
}

func (r failingOutboundRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	return r.inner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		repos.Outbound = failingOutboundRepo{repos.Outbound}
		return fn(ctx, repos)
	})
}

func TestStocktaking_AtomicoSiFallaLaSalida(t *testing.T) {
	f := newFixture(t)
	p := f.product("P", 4, 9, 0)
	q := f.product("Q", 2, 6, 0)
	f.store.SeedStock(p.ID, 10)
	f.store.SeedStock(q.ID, 10)

	uc := inventory.NewStocktakingUseCase(failingOutboundRunner{f.store}, f.stocktaking, f.notifier, nil, nil, f.log, f.metrics)
	_, err := uc.Create(context.Background(), inventory.CreateStocktakingInput{
		Operator: "luis",
		Items: []inventory.StocktakingLineInput{
			{ProductID: p.ID, ActualQuantity: qty(15)},
			{ProductID: q.ID, ActualQuantity: qty(5)},
		},
	})
	require.Error(t, err)

	assert.Equal(t, int64(10), f.quantity(t, p.ID), "el sobrante también se revierte")
	assert.Equal(t, int64(10), f.quantity(t, q.ID))
	assert.Equal(t, 1, f.entries(t, p.ID))
	assert.Equal(t, 1, f.entries(t, q.ID))
	assert.Empty(t, f.notifier.ins, "nada se notifica si no hubo commit")
}

type fakeSheet struct {
	rows []inventory.CountSheetRow
	got  []byte
}

func (s *fakeSheet) Read(_ string, r io.Reader) ([]inventory.CountSheetRow, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	s.got = b
	return s.rows, nil
}

func TestStocktaking_ImportarPlanilla(t *testing.T) {
	f := newFixture(t)
	p := f.product("A-1", 4, 9, 0)
	f.store.SeedStock(p.ID, 10)

	sheet := &fakeSheet{rows: []inventory.CountSheetRow{{Line: 2, ProductCode: "A-1", ActualQuantity: 11}}}
	uc := inventory.NewStocktakingUseCase(f.store, f.stocktaking, f.notifier, sheet, nil, f.log, f.metrics)

	res, err := uc.Import(context.Background(), inventory.ImportInput{
		Filename: "conteo.csv",
		Content:  bytes.NewBufferString("codigo,cantidad\nA-1,11\n"),
		Operator: "luis",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sheet.got)
	require.NotNil(t, res.Inbound)
	assert.Equal(t, int64(11), f.quantity(t, p.ID))
}

func TestStocktaking_ImportarCodigoDesconocido(t *testing.T) {
	f := newFixture(t)
	sheet := &fakeSheet{rows: []inventory.CountSheetRow{{Line: 3, ProductCode: "ZZ", ActualQuantity: 1}}}
	uc := inventory.NewStocktakingUseCase(f.store, f.stocktaking, f.notifier, sheet, nil, f.log, f.metrics)

	_, err := uc.Import(context.Background(), inventory.ImportInput{
		Filename: "conteo.csv",
		Content:  strings.NewReader("x"),
		Operator: "luis",
	})
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Contains(t, nf.ID, "fila 3")
}
