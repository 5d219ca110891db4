// Package metrics expone los contadores del motor de inventario en Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const namespace = "almacen"

// Collectors contadores registrados; implementa inventory.Metrics.
type Collectors struct {
	LedgerEntries        *prometheus.CounterVec
	InsufficientStocks   prometheus.Counter
	NotificationFailures *prometheus.CounterVec
	DocumentsCreated     *prometheus.CounterVec
}

var _ inventory.Metrics = (*Collectors)(nil)

// New crea los contadores y los registra en reg (prometheus.DefaultRegisterer en producción,
// un registry propio en tests).
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		LedgerEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_entries_total",
			Help:      "Asientos agregados al libro de inventario por tipo de movimiento.",
		}, []string{"kind"}),
		InsufficientStocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insufficient_stock_total",
			Help:      "Salidas rechazadas por stock insuficiente.",
		}),
		NotificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Notificaciones post-commit que fallaron.",
		}, []string{"kind"}),
		DocumentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_created_total",
			Help:      "Documentos creados por tipo.",
		}, []string{"kind"}),
	}
	reg.MustRegister(c.LedgerEntries, c.InsufficientStocks, c.NotificationFailures, c.DocumentsCreated)
	return c
}

func (c *Collectors) LedgerEntry(kind entity.MovementKind) {
	c.LedgerEntries.WithLabelValues(string(kind)).Inc()
}

func (c *Collectors) InsufficientStock() {
	c.InsufficientStocks.Inc()
}

func (c *Collectors) NotificationFailed(kind string) {
	c.NotificationFailures.WithLabelValues(kind).Inc()
}

func (c *Collectors) DocumentCreated(kind string) {
	c.DocumentsCreated.WithLabelValues(kind).Inc()
}
