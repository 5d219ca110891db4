package entity

// MovementKind tipo cerrado de asiento del libro de inventario.
type MovementKind string

const (
	MovementInbound          MovementKind = "INBOUND"
	MovementInboundReversal  MovementKind = "INBOUND_REVERSAL"
	MovementOutbound         MovementKind = "OUTBOUND"
	MovementOutboundReversal MovementKind = "OUTBOUND_REVERSAL"
)

var movementLabels = map[MovementKind]string{
	MovementInbound:          "入库",
	MovementInboundReversal:  "入库撤销",
	MovementOutbound:         "出库",
	MovementOutboundReversal: "出库撤销",
}

// Valid reporta si el tipo pertenece al conjunto cerrado.
func (k MovementKind) Valid() bool {
	_, ok := movementLabels[k]
	return ok
}

// Label texto histórico del tipo de movimiento (como se mostraba en los reportes).
func (k MovementKind) Label() string {
	return movementLabels[k]
}

// FloorsAtZero indica si un resultado negativo se recorta a cero en vez de rechazarse.
// Solo la salida (OUTBOUND) falla: recortar ocultaría un faltante.
func (k MovementKind) FloorsAtZero() bool {
	return k != MovementOutbound
}
