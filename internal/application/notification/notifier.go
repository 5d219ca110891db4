// Package notification define el sumidero de mensajes del almacén (alertas de stock, entradas, salidas).
// Todo envío ocurre después del commit y es de mejor esfuerzo.
package notification

import "context"

// StockAlert alerta de stock bajo para un producto tras una salida.
type StockAlert struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductCode    string `json:"product_code"`
	Quantity       int64  `json:"quantity"`
	AlertThreshold int64  `json:"alert_threshold"`
	Operator       string `json:"operator"`
	OrderNo        string `json:"order_no"`
}

// StockMovementMessage aviso de entrada o salida de un producto.
type StockMovementMessage struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	OrderNo   string `json:"order_no"`
	Operator  string `json:"operator"`
	Remark    string `json:"remark,omitempty"`
}

// Notifier puerto del sumidero de notificaciones.
type Notifier interface {
	CreateInventoryAlert(ctx context.Context, alert StockAlert) error
	CreateStockInMessage(ctx context.Context, msg StockMovementMessage) error
	CreateStockOutMessage(ctx context.Context, msg StockMovementMessage) error
}
