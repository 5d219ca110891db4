package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// NewServeMux registra los handlers de las tres tareas; cada una se entrega a sink.
func NewServeMux(sink notification.Notifier, log *logger.Logger) *asynq.ServeMux {
	log = log.Component("worker")
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskInventoryAlert, func(ctx context.Context, t *asynq.Task) error {
		var a notification.StockAlert
		if err := decode(t, &a); err != nil {
			return err
		}
		log.Debug().Str("task", t.Type()).Str("order_no", a.OrderNo).Msg("procesando")
		return sink.CreateInventoryAlert(ctx, a)
	})
	mux.HandleFunc(TaskStockIn, func(ctx context.Context, t *asynq.Task) error {
		var m notification.StockMovementMessage
		if err := decode(t, &m); err != nil {
			return err
		}
		log.Debug().Str("task", t.Type()).Str("order_no", m.OrderNo).Msg("procesando")
		return sink.CreateStockInMessage(ctx, m)
	})
	mux.HandleFunc(TaskStockOut, func(ctx context.Context, t *asynq.Task) error {
		var m notification.StockMovementMessage
		if err := decode(t, &m); err != nil {
			return err
		}
		log.Debug().Str("task", t.Type()).Str("order_no", m.OrderNo).Msg("procesando")
		return sink.CreateStockOutMessage(ctx, m)
	})
	return mux
}

// Payload corrupto: reintentar no lo arregla.
func decode(t *asynq.Task, v any) error {
	if err := json.Unmarshal(t.Payload(), v); err != nil {
		return fmt.Errorf("payload inválido para %s: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}

// Worker servidor asynq que drena la cola de notificaciones.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

// NewWorker construye el servidor con la concurrencia dada.
func NewWorker(redis asynq.RedisConnOpt, concurrency int, sink notification.Notifier, log *logger.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 4
	}
	srv := asynq.NewServer(redis, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueNotifications: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, t *asynq.Task, err error) {
			log.Error().Err(err).Str("task", t.Type()).Msg("tarea fallida")
		}),
	})
	return &Worker{server: srv, mux: NewServeMux(sink, log), log: log.Component("worker")}
}

// Run procesa tareas hasta que ctx se cancele.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: no configurado")
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	w.log.Info().Str("queue", QueueNotifications).Msg("worker iniciado")
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		return nil
	case err := <-errCh:
		return err
	}
}
