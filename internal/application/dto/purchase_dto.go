package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de compra.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest body para POST /api/purchase-orders.
type CreatePurchaseRequest struct {
	Supplier string                `json:"supplier" validate:"required,max=200"`
	Remark   string                `json:"remark,omitempty" validate:"omitempty,max=500"`
	Items    []PurchaseLineRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemDTO línea de compra persistida.
type PurchaseItemDTO struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderDTO orden de compra.
type PurchaseOrderDTO struct {
	ID          string            `json:"id"`
	OrderNo     string            `json:"order_no"`
	Supplier    string            `json:"supplier"`
	Status      string            `json:"status"`
	Operator    string            `json:"operator"`
	Remark      string            `json:"remark,omitempty"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	ConfirmedAt *time.Time        `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []PurchaseItemDTO `json:"items"`
}

// ConfirmPurchaseResponse compra confirmada y la entrada generada.
type ConfirmPurchaseResponse struct {
	PurchaseOrder PurchaseOrderDTO `json:"purchase_order"`
	InboundOrder  OrderDTO         `json:"inbound_order"`
}
