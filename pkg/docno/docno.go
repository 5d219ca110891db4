// Package docno genera números de documento legibles: prefijo + fecha + secuencia.
//
// Prefijos en uso: RK (entrada), CK (salida), PD (inventario físico), CG (compra).
package docno

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Prefijos de documento.
const (
	PrefixInbound     = "RK"
	PrefixOutbound    = "CK"
	PrefixStocktaking = "PD"
	PrefixPurchase    = "CG"
)

const dateLayout = "20060102"

// Generator produce el siguiente número para un prefijo.
type Generator interface {
	Next(ctx context.Context, prefix string) (string, error)
}

// Derived número de un documento generado a partir de otro (ej. PD20240101123456-RK).
func Derived(parent, suffix string) string {
	return parent + "-" + suffix
}

// ClockGenerator prefijo + AAAAMMDD + últimos 6 dígitos de un contador de milisegundos.
// El contador nunca retrocede dentro del proceso; entre procesos puede haber colisiones.
type ClockGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewClockGenerator construye el generador por reloj.
func NewClockGenerator() *ClockGenerator {
	return &ClockGenerator{now: time.Now}
}

// Next devuelve el siguiente número; nunca falla.
func (g *ClockGenerator) Next(_ context.Context, prefix string) (string, error) {
	g.mu.Lock()
	now := g.now()
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()

	return fmt.Sprintf("%s%s%06d", prefix, now.Format(dateLayout), ms%1_000_000), nil
}

var _ Generator = (*ClockGenerator)(nil)
