package notification_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

type failingRepo struct{}

func (failingRepo) Create(context.Context, *entity.Message) error {
	return errors.New("buzón caído")
}

func TestStoreNotifier_GuardaLosTresTipos(t *testing.T) {
	store := memory.NewStore()
	n := notification.NewStoreNotifier(store.Messages())
	ctx := context.Background()

	require.NoError(t, n.CreateInventoryAlert(ctx, notification.StockAlert{
		ProductID: "p1", ProductName: "Tornillo", ProductCode: "T-1", Quantity: 2, AlertThreshold: 5, Operator: "ana", OrderNo: "CK1",
	}))
	require.NoError(t, n.CreateStockInMessage(ctx, notification.StockMovementMessage{
		ProductID: "p1", Quantity: 4, OrderNo: "RK1", Operator: "ana", Remark: "Compra CG1 confirmada",
	}))
	require.NoError(t, n.CreateStockOutMessage(ctx, notification.StockMovementMessage{
		ProductID: "p1", Quantity: 1, OrderNo: "CK2", Operator: "luis",
	}))

	msgs := store.Messages().List()
	require.Len(t, msgs, 3)

	assert.Equal(t, entity.MessageInventoryAlert, msgs[0].Kind)
	assert.Contains(t, msgs[0].Content, "Tornillo (T-1)")
	assert.Contains(t, msgs[0].Content, "umbral de alerta 5")
	assert.Equal(t, "CK1", msgs[0].OrderNo)

	assert.Equal(t, entity.MessageStockIn, msgs[1].Kind)
	assert.Contains(t, msgs[1].Content, "Entraron 4 unidades")
	assert.Contains(t, msgs[1].Content, "Compra CG1 confirmada")

	assert.Equal(t, entity.MessageStockOut, msgs[2].Kind)
	assert.Equal(t, "luis", msgs[2].Operator)

	for _, m := range msgs {
		assert.NotEmpty(t, m.ID)
		assert.False(t, m.CreatedAt.IsZero())
	}
}

func TestStoreNotifier_ErrorDelRepositorio(t *testing.T) {
	n := notification.NewStoreNotifier(failingRepo{})
	err := n.CreateStockOutMessage(context.Background(), notification.StockMovementMessage{ProductID: "p1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), entity.MessageStockOut)
}

func TestLogNotifier_DelegaYSinSiguiente(t *testing.T) {
	store := memory.NewStore()
	n := notification.NewLogNotifier(logger.Nop(), notification.NewStoreNotifier(store.Messages()))
	ctx := context.Background()

	require.NoError(t, n.CreateInventoryAlert(ctx, notification.StockAlert{ProductID: "p1"}))
	require.NoError(t, n.CreateStockInMessage(ctx, notification.StockMovementMessage{ProductID: "p1"}))
	assert.Len(t, store.Messages().List(), 2)

	solo := notification.NewLogNotifier(logger.Nop(), nil)
	assert.NoError(t, solo.CreateStockOutMessage(ctx, notification.StockMovementMessage{ProductID: "p1"}))

	falla := notification.NewLogNotifier(logger.Nop(), notification.NewStoreNotifier(failingRepo{}))
	assert.Error(t, falla.CreateInventoryAlert(ctx, notification.StockAlert{ProductID: "p1"}))
}

func TestDispatch_EjecutaTodosYReportaFallos(t *testing.T) {
	var ran atomic.Int32
	var mu sync.Mutex
	var failures []error

	jobs := make([]notification.Job, 0, 10)
	for i := 0; i < 10; i++ {
		fail := i%3 == 0 // 0, 3, 6, 9
		jobs = append(jobs, func(context.Context) error {
			ran.Add(1)
			if fail {
				return errors.New("envío fallido")
			}
			return nil
		})
	}

	notification.Dispatch(context.Background(), jobs, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, err)
	})

	assert.Equal(t, int32(10), ran.Load(), "un fallo no corta el resto")
	assert.Len(t, failures, 4)
}

func TestDispatch_LimitaConcurrencia(t *testing.T) {
	var inFlight, peak atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 8)

	jobs := make([]notification.Job, 8)
	for i := range jobs {
		jobs[i] = func(context.Context) error {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			started <- struct{}{}
			<-release
			inFlight.Add(-1)
			return nil
		}
	}

	done := make(chan struct{})
	go func() {
		notification.Dispatch(context.Background(), jobs, nil)
		close(done)
	}()
	for i := 0; i < 4; i++ {
		<-started
	}
	assert.Equal(t, int32(4), inFlight.Load())
	close(release)
	<-done
	assert.LessOrEqual(t, peak.Load(), int32(4))
}

func TestDispatch_SinTrabajos(t *testing.T) {
	called := false
	notification.Dispatch(context.Background(), nil, func(error) { called = true })
	assert.False(t, called)
}
