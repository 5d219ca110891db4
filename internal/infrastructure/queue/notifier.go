package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/internal/application/notification"
)

// Enqueuer lo que el notificador necesita de *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqNotifier encola cada notificación; el worker la persiste.
type AsynqNotifier struct {
	client Enqueuer
}

// NewAsynqNotifier construye el notificador sobre un cliente asynq.
func NewAsynqNotifier(client Enqueuer) *AsynqNotifier {
	return &AsynqNotifier{client: client}
}

var _ notification.Notifier = (*AsynqNotifier)(nil)

func (n *AsynqNotifier) CreateInventoryAlert(ctx context.Context, a notification.StockAlert) error {
	task, err := NewInventoryAlertTask(a)
	if err != nil {
		return err
	}
	return n.enqueue(ctx, task)
}

func (n *AsynqNotifier) CreateStockInMessage(ctx context.Context, m notification.StockMovementMessage) error {
	task, err := NewStockInTask(m)
	if err != nil {
		return err
	}
	return n.enqueue(ctx, task)
}

func (n *AsynqNotifier) CreateStockOutMessage(ctx context.Context, m notification.StockMovementMessage) error {
	task, err := NewStockOutTask(m)
	if err != nil {
		return err
	}
	return n.enqueue(ctx, task)
}

func (n *AsynqNotifier) enqueue(ctx context.Context, task *asynq.Task) error {
	if _, err := n.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("encolar %s: %w", task.Type(), err)
	}
	return nil
}
