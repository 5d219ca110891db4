package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden de entrada/salida.
type OrderLineRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"min=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Unit      string           `json:"unit,omitempty" validate:"omitempty,max=20"`
}

// CreateInboundRequest body para POST /api/inbound-orders. El operador sale del token.
type CreateInboundRequest struct {
	Type      string             `json:"type" validate:"required,oneof=SURPLUS PURCHASE RETURN"`
	Remark    string             `json:"remark,omitempty" validate:"omitempty,max=500"`
	OrderDate *time.Time         `json:"order_date,omitempty"`
	Items     []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOutboundRequest body para POST /api/outbound-orders.
type CreateOutboundRequest struct {
	Type             string             `json:"type" validate:"required,oneof=SHORTAGE SALE TRANSFER SCRAP"`
	Remark           string             `json:"remark,omitempty" validate:"omitempty,max=500"`
	OrderDate        *time.Time         `json:"order_date,omitempty"`
	Items            []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	EnableStockAlert *bool              `json:"enable_stock_alert,omitempty"`
}

// OrderItemDTO línea persistida.
type OrderItemDTO struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Unit       string          `json:"unit"`
}

// OrderDTO orden de entrada o salida.
type OrderDTO struct {
	ID             string          `json:"id"`
	OrderNo        string          `json:"order_no"`
	Type           string          `json:"type"`
	OrderDate      time.Time       `json:"order_date"`
	Operator       string          `json:"operator"`
	Remark         string          `json:"remark,omitempty"`
	TotalQuantity  int64           `json:"total_quantity"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	RelatedOrderID string          `json:"related_order_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	Items          []OrderItemDTO  `json:"items"`
}

// InventorySnapshotDTO estado del producto tras una salida.
type InventorySnapshotDTO struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductCode    string `json:"product_code"`
	Quantity       int64  `json:"quantity"`
	AlertThreshold int64  `json:"alert_threshold"`
}

// OutboundOrderResponse respuesta de creación de salida.
type OutboundOrderResponse struct {
	OrderDTO
	UpdatedInventories []InventorySnapshotDTO `json:"updated_inventories,omitempty"`
	EnableStockAlert   bool                   `json:"enable_stock_alert"`
}

// StocktakingLineRequest producto contado.
type StocktakingLineRequest struct {
	ProductID      string `json:"product_id" validate:"required"`
	ActualQuantity *int64 `json:"actual_quantity,omitempty" validate:"omitempty,min=0"`
}

// CreateStocktakingRequest body para POST /api/stocktaking-orders.
type CreateStocktakingRequest struct {
	StocktakingDate *time.Time               `json:"stocktaking_date,omitempty"`
	Remark          string                   `json:"remark,omitempty" validate:"omitempty,max=500"`
	Items           []StocktakingLineRequest `json:"items" validate:"required,min=1,dive"`
}

// StocktakingItemDTO línea de inventario físico.
type StocktakingItemDTO struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductCode    string `json:"product_code"`
	ProductSpec    string `json:"product_spec,omitempty"`
	Unit           string `json:"unit"`
	SystemQuantity int64  `json:"system_quantity"`
	ActualQuantity int64  `json:"actual_quantity"`
	Difference     int64  `json:"difference"`
}

// StocktakingDTO inventario físico con sus líneas.
type StocktakingDTO struct {
	ID              string               `json:"id"`
	OrderNo         string               `json:"order_no"`
	StocktakingDate time.Time            `json:"stocktaking_date"`
	Operator        string               `json:"operator"`
	Remark          string               `json:"remark,omitempty"`
	TotalItems      int                  `json:"total_items"`
	CreatedAt       time.Time            `json:"created_at"`
	Items           []StocktakingItemDTO `json:"items"`
}

// StocktakingResponse respuesta de creación: inventario y documentos generados.
type StocktakingResponse struct {
	Stocktaking       StocktakingDTO `json:"stocktaking"`
	InboundOrder      *OrderDTO      `json:"inbound_order,omitempty"`
	OutboundOrder     *OrderDTO      `json:"outbound_order,omitempty"`
	AutoCreatedOrders []string       `json:"auto_created_orders"`
	Message           string         `json:"message"`
}

// InventoryLogDTO asiento del libro.
type InventoryLogDTO struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	Requested   int64     `json:"requested"`
	Kind        string    `json:"kind"`
	KindLabel   string    `json:"kind_label"`
	OrderNo     string    `json:"order_no"`
	Operator    string    `json:"operator"`
	OrderItemID string    `json:"order_item_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// InventoryLogListResponse ficha de stock paginada.
type InventoryLogListResponse struct {
	Items []InventoryLogDTO `json:"items"`
	Page  PageResponse      `json:"page"`
}
