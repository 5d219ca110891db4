package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutboundType subtipo de una orden de salida.
type OutboundType string

const (
	OutboundShortage OutboundType = "SHORTAGE" // faltante de inventario físico
	OutboundSale     OutboundType = "SALE"
	OutboundTransfer OutboundType = "TRANSFER"
	OutboundScrap    OutboundType = "SCRAP"
)

// Valid reporta si el subtipo es conocido.
func (t OutboundType) Valid() bool {
	switch t {
	case OutboundShortage, OutboundSale, OutboundTransfer, OutboundScrap:
		return true
	}
	return false
}

// OutboundOrder orden de salida, simétrica a InboundOrder.
type OutboundOrder struct {
	ID             string
	OrderNo        string
	Type           OutboundType
	OrderDate      time.Time
	Operator       string
	Remark         string
	TotalQuantity  int64
	TotalAmount    decimal.Decimal
	RelatedOrderID string
	CreatedAt      time.Time
}
