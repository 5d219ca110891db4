package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/docno"
)

// OrderLineInput línea de una orden de entrada o salida.
type OrderLineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice *decimal.Decimal // nil = 0
	Unit      string           // vacío = unidad del producto
}

func validateLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return domain.NewValidationError("la orden debe tener al menos una línea")
	}
	for i, l := range lines {
		if l.ProductID == "" {
			return domain.NewValidationError("línea %d: producto requerido", i+1)
		}
		if l.Quantity < 0 {
			return domain.NewValidationError("línea %d: cantidad negativa", i+1)
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return domain.NewValidationError("línea %d: precio negativo", i+1)
		}
	}
	return nil
}

func lineTotals(lines []OrderLineInput) (int64, decimal.Decimal) {
	in := make([]domaininv.Line, len(lines))
	for i, l := range lines {
		in[i] = domaininv.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}
	return domaininv.Totals(in)
}

// loadProducts resuelve todos los productos referenciados; falta uno → NotFoundError.
func loadProducts(ctx context.Context, repo repository.ProductRepository, lines []OrderLineInput) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(lines))
	for _, l := range lines {
		if _, ok := products[l.ProductID]; ok {
			continue
		}
		p, err := repo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product %s: %w", l.ProductID, err)
		}
		if p == nil {
			return nil, &domain.NotFoundError{Resource: "producto", ID: l.ProductID}
		}
		products[l.ProductID] = p
	}
	return products, nil
}

// buildItems arma las líneas persistibles para el dueño dado.
func buildItems(owner entity.OrderRef, lines []OrderLineInput, products map[string]*entity.Product) []*entity.OrderItem {
	items := make([]*entity.OrderItem, len(lines))
	for i, l := range lines {
		price := decimal.Zero
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		unit := l.Unit
		if unit == "" {
			if p := products[l.ProductID]; p != nil {
				unit = p.Unit
			}
		}
		items[i] = &entity.OrderItem{
			ID:         uuid.New().String(),
			Owner:      owner,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  price,
			TotalPrice: domaininv.LineAmount(l.Quantity, &price),
			Unit:       unit,
		}
	}
	return items
}

func orderNumber(ctx context.Context, gen docno.Generator, supplied, prefix string) (string, error) {
	if supplied != "" {
		return supplied, nil
	}
	no, err := gen.Next(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("generar número %s: %w", prefix, err)
	}
	return no, nil
}
