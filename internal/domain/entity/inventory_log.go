package entity

import "time"

// InventoryLog asiento inmutable del libro de inventario. Uno por mutación de stock.
// Invariante: la suma de Quantity por inventario es igual a Inventory.Quantity.
type InventoryLog struct {
	ID          string
	InventoryID string
	ProductID   string
	Quantity    int64 // delta aplicado (con signo)
	Requested   int64 // delta solicitado; difiere de Quantity solo si se recortó a cero
	Kind        MovementKind
	OrderNo     string // documento relacionado
	Operator    string
	OrderItemID string // opcional, trazabilidad a la línea de la orden
	CreatedAt   time.Time
}

// Floored indica si el asiento se recortó al piso de cero.
func (l *InventoryLog) Floored() bool {
	return l.Quantity != l.Requested
}
