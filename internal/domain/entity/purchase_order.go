package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la orden de compra.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusConfirmed = "CONFIRMED"
)

// PurchaseOrder documento de compra; al confirmarse genera una orden de entrada.
type PurchaseOrder struct {
	ID          string
	OrderNo     string
	Supplier    string
	Status      string
	Operator    string
	Remark      string
	TotalAmount decimal.Decimal
	ConfirmedAt *time.Time
	CreatedAt   time.Time
	Items       []*PurchaseOrderItem
}

// PurchaseOrderItem línea de compra.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ProductID       string
	Quantity        int64
	UnitPrice       decimal.Decimal
}
