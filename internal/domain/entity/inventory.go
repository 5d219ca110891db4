package entity

import "time"

// Inventory stock actual de un producto (una fila por producto).
// Se crea al primer movimiento y solo la modifica el libro de inventario.
type Inventory struct {
	ID        string
	ProductID string
	Quantity  int64 // nunca negativa después de un commit
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventorySnapshot estado de un producto tras una salida; se usa para alertas post-commit.
type InventorySnapshot struct {
	ProductID      string
	ProductName    string
	ProductCode    string
	Quantity       int64
	AlertThreshold int64
}

// BelowThreshold indica si el snapshot debe generar alerta de stock bajo.
func (s InventorySnapshot) BelowThreshold() bool {
	return s.AlertThreshold > 0 && s.Quantity <= s.AlertThreshold
}
