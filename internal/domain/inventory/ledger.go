package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// NextQuantity aplica un delta sobre la cantidad actual según la regla del tipo de movimiento (servicio de dominio).
// Negativo y FloorsAtZero: se recorta a 0 y floored=true. Negativo en OUTBOUND: InsufficientStockError.
func NextQuantity(productID string, current, delta int64, kind entity.MovementKind) (next int64, floored bool, err error) {
	next = current + delta
	if next >= 0 {
		return next, false, nil
	}
	if kind.FloorsAtZero() {
		return 0, true, nil
	}
	requested := -delta
	return current, false, &domain.InsufficientStockError{ProductID: productID, Current: current, Requested: requested}
}

// InitialQuantity cantidad con la que nace una fila de inventario inexistente: max(0, delta).
func InitialQuantity(delta int64) int64 {
	if delta < 0 {
		return 0
	}
	return delta
}

// Line cantidad y precio de una línea para calcular totales.
type Line struct {
	Quantity  int64
	UnitPrice *decimal.Decimal // nil = 0
}

// Totals suma cantidades e importes (Cantidad * PrecioUnitario) de las líneas.
func Totals(lines []Line) (quantity int64, amount decimal.Decimal) {
	amount = decimal.Zero
	for _, l := range lines {
		quantity += l.Quantity
		amount = amount.Add(LineAmount(l.Quantity, l.UnitPrice))
	}
	return quantity, amount
}

// LineAmount importe de una línea; precio nil cuenta como cero.
func LineAmount(quantity int64, unitPrice *decimal.Decimal) decimal.Decimal {
	if unitPrice == nil {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// Conserved verifica la invariante del libro: suma de deltas == cantidad en inventario.
func Conserved(inventoryQuantity, logSum int64) bool {
	return inventoryQuantity == logSum
}
