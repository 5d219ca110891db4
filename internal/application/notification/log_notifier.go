package notification

import (
	"context"

	"github.com/jhoicas/almacen-api/pkg/logger"
)

// LogNotifier deja constancia de cada notificación en el log y delega en next (opcional).
type LogNotifier struct {
	log  *logger.Logger
	next Notifier
}

// NewLogNotifier construye el notificador; next puede ser nil.
func NewLogNotifier(log *logger.Logger, next Notifier) *LogNotifier {
	return &LogNotifier{log: log.Component("notification"), next: next}
}

var _ Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) CreateInventoryAlert(ctx context.Context, a StockAlert) error {
	n.log.Warn().
		Str("product_id", a.ProductID).
		Str("product_code", a.ProductCode).
		Int64("quantity", a.Quantity).
		Int64("threshold", a.AlertThreshold).
		Str("order_no", a.OrderNo).
		Msg("stock bajo")
	if n.next == nil {
		return nil
	}
	return n.next.CreateInventoryAlert(ctx, a)
}

func (n *LogNotifier) CreateStockInMessage(ctx context.Context, m StockMovementMessage) error {
	n.log.Info().Str("product_id", m.ProductID).Int64("quantity", m.Quantity).Str("order_no", m.OrderNo).Msg("entrada")
	if n.next == nil {
		return nil
	}
	return n.next.CreateStockInMessage(ctx, m)
}

func (n *LogNotifier) CreateStockOutMessage(ctx context.Context, m StockMovementMessage) error {
	n.log.Info().Str("product_id", m.ProductID).Int64("quantity", m.Quantity).Str("order_no", m.OrderNo).Msg("salida")
	if n.next == nil {
		return nil
	}
	return n.next.CreateStockOutMessage(ctx, m)
}
