package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El motor de inventario solo lo lee:
// lo referencia por ID y toma precios, unidad y umbral de alerta.
type Product struct {
	ID             string
	Name           string
	Code           string // código único
	Spec           string // especificación (talla, presentación...)
	Unit           string
	PurchasePrice  decimal.Decimal // precio de compra (valoriza sobrantes)
	RetailPrice    decimal.Decimal // precio de venta (valoriza faltantes)
	AlertThreshold int64           // 0 = sin alerta de stock bajo
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasAlert indica si la cantidad dada dispara la alerta de stock bajo.
func (p *Product) HasAlert(quantity int64) bool {
	return p.AlertThreshold > 0 && quantity <= p.AlertThreshold
}
