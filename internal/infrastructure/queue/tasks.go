// Package queue transporta las notificaciones del almacén por Redis con asynq:
// la API encola después del commit y el worker las persiste en el buzón.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/internal/application/notification"
)

const (
	// QueueNotifications cola de avisos del almacén.
	QueueNotifications = "notifications"

	TaskInventoryAlert = "inventory:alert"
	TaskStockIn        = "stock:in"
	TaskStockOut       = "stock:out"

	maxRetry = 5
)

// NewInventoryAlertTask construye la tarea de alerta de stock bajo.
func NewInventoryAlertTask(a notification.StockAlert) (*asynq.Task, error) {
	return newTask(TaskInventoryAlert, a)
}

// NewStockInTask construye la tarea de aviso de entrada.
func NewStockInTask(m notification.StockMovementMessage) (*asynq.Task, error) {
	return newTask(TaskStockIn, m)
}

// NewStockOutTask construye la tarea de aviso de salida.
func NewStockOutTask(m notification.StockMovementMessage) (*asynq.Task, error) {
	return newTask(TaskStockOut, m)
}

func newTask(typename string, payload any) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("serializar %s: %w", typename, err)
	}
	return asynq.NewTask(typename, body, asynq.Queue(QueueNotifications), asynq.MaxRetry(maxRetry)), nil
}
