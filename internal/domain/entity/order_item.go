package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderKind discriminador persistido de la tabla de líneas compartida.
type OrderKind string

const (
	OrderKindInbound  OrderKind = "INBOUND"
	OrderKindOutbound OrderKind = "OUTBOUND"
)

// OrderRef dueño de una línea: InboundRef u OutboundRef. Interfaz sellada, de modo que
// una línea de entrada no puede colgarse de una orden de salida.
type OrderRef interface {
	Kind() OrderKind
	OrderID() string
	sealed()
}

// InboundRef referencia a una orden de entrada.
type InboundRef struct{ ID string }

func (r InboundRef) Kind() OrderKind { return OrderKindInbound }
func (r InboundRef) OrderID() string { return r.ID }
func (InboundRef) sealed()           {}

// OutboundRef referencia a una orden de salida.
type OutboundRef struct{ ID string }

func (r OutboundRef) Kind() OrderKind { return OrderKindOutbound }
func (r OutboundRef) OrderID() string { return r.ID }
func (OutboundRef) sealed()           {}

// RefFor reconstruye el dueño desde las columnas persistidas (order_type, order_id).
func RefFor(kind OrderKind, orderID string) (OrderRef, error) {
	switch kind {
	case OrderKindInbound:
		return InboundRef{ID: orderID}, nil
	case OrderKindOutbound:
		return OutboundRef{ID: orderID}, nil
	}
	return nil, fmt.Errorf("tipo de orden desconocido: %q", kind)
}

// OrderItem línea de una orden de entrada o salida.
type OrderItem struct {
	ID         string
	Owner      OrderRef
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity * UnitPrice
	Unit       string
}
