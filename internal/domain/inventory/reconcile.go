package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Adjustment línea de ajuste derivada de un conteo físico.
type Adjustment struct {
	ProductID string
	Quantity  int64 // siempre positiva
	UnitPrice decimal.Decimal
	Unit      string
}

// CountedLine línea contada con el producto resuelto.
type CountedLine struct {
	Product        *entity.Product
	SystemQuantity int64
	ActualQuantity int64
}

// Partition separa las diferencias de un conteo:
// sobrantes (diff > 0) a precio de compra y faltantes (diff < 0) a precio de venta con |diff|.
// Las líneas sin diferencia no generan ajuste. Se conserva el orden de entrada.
func Partition(lines []CountedLine) (profit, loss []Adjustment) {
	for _, l := range lines {
		diff := l.ActualQuantity - l.SystemQuantity
		switch {
		case diff > 0:
			profit = append(profit, Adjustment{
				ProductID: l.Product.ID,
				Quantity:  diff,
				UnitPrice: l.Product.PurchasePrice,
				Unit:      l.Product.Unit,
			})
		case diff < 0:
			loss = append(loss, Adjustment{
				ProductID: l.Product.ID,
				Quantity:  -diff,
				UnitPrice: l.Product.RetailPrice,
				Unit:      l.Product.Unit,
			})
		}
	}
	return profit, loss
}
