package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StoreNotifier persiste cada notificación como un Message en el buzón.
// Lo usa el worker al drenar la cola y el modo sin Redis.
type StoreNotifier struct {
	repo repository.MessageRepository
	now  func() time.Time
}

// NewStoreNotifier construye el notificador sobre el repositorio de mensajes.
func NewStoreNotifier(repo repository.MessageRepository) *StoreNotifier {
	return &StoreNotifier{repo: repo, now: time.Now}
}

var _ Notifier = (*StoreNotifier)(nil)

// CreateInventoryAlert guarda una alerta de stock bajo.
func (n *StoreNotifier) CreateInventoryAlert(ctx context.Context, a StockAlert) error {
	return n.save(ctx, &entity.Message{
		Kind:  entity.MessageInventoryAlert,
		Title: "Alerta de inventario",
		Content: fmt.Sprintf("El producto %s (%s) quedó en %d unidades, umbral de alerta %d. Documento %s.",
			a.ProductName, a.ProductCode, a.Quantity, a.AlertThreshold, a.OrderNo),
		ProductID: a.ProductID,
		OrderNo:   a.OrderNo,
		Operator:  a.Operator,
	})
}

// CreateStockInMessage guarda el aviso de entrada.
func (n *StoreNotifier) CreateStockInMessage(ctx context.Context, m StockMovementMessage) error {
	return n.save(ctx, &entity.Message{
		Kind:      entity.MessageStockIn,
		Title:     "Entrada de inventario",
		Content:   movementContent("Entraron", m),
		ProductID: m.ProductID,
		OrderNo:   m.OrderNo,
		Operator:  m.Operator,
	})
}

// CreateStockOutMessage guarda el aviso de salida.
func (n *StoreNotifier) CreateStockOutMessage(ctx context.Context, m StockMovementMessage) error {
	return n.save(ctx, &entity.Message{
		Kind:      entity.MessageStockOut,
		Title:     "Salida de inventario",
		Content:   movementContent("Salieron", m),
		ProductID: m.ProductID,
		OrderNo:   m.OrderNo,
		Operator:  m.Operator,
	})
}

func movementContent(verb string, m StockMovementMessage) string {
	s := fmt.Sprintf("%s %d unidades del producto %s con el documento %s.", verb, m.Quantity, m.ProductID, m.OrderNo)
	if m.Remark != "" {
		s += " " + m.Remark
	}
	return s
}

func (n *StoreNotifier) save(ctx context.Context, msg *entity.Message) error {
	msg.ID = uuid.New().String()
	msg.CreatedAt = n.now()
	if err := n.repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("guardar mensaje %s: %w", msg.Kind, err)
	}
	return nil
}
