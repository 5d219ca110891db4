package entity

import "time"

// Tipos de mensaje del buzón de notificaciones.
const (
	MessageInventoryAlert = "INVENTORY_ALERT"
	MessageStockIn        = "STOCK_IN"
	MessageStockOut       = "STOCK_OUT"
)

// Message notificación persistida por el worker.
type Message struct {
	ID        string
	Kind      string
	Title     string
	Content   string
	ProductID string
	OrderNo   string
	Operator  string
	CreatedAt time.Time
}
