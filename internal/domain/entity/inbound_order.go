package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InboundType subtipo de una orden de entrada.
type InboundType string

const (
	InboundSurplus  InboundType = "SURPLUS"  // sobrante de inventario físico
	InboundPurchase InboundType = "PURCHASE" // compra confirmada
	InboundReturn   InboundType = "RETURN"   // devolución
)

// Valid reporta si el subtipo es conocido.
func (t InboundType) Valid() bool {
	switch t {
	case InboundSurplus, InboundPurchase, InboundReturn:
		return true
	}
	return false
}

// InboundOrder orden de entrada. Se crea junto con sus líneas y asientos; al borrarse revierte los asientos.
type InboundOrder struct {
	ID             string
	OrderNo        string
	Type           InboundType
	OrderDate      time.Time
	Operator       string
	Remark         string
	TotalQuantity  int64
	TotalAmount    decimal.Decimal
	RelatedOrderID string // inventario físico u orden de compra que la originó
	CreatedAt      time.Time
}
