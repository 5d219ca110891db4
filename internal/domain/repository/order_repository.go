package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// OrderItemRepository líneas compartidas por órdenes de entrada y salida, indexadas por dueño.
type OrderItemRepository interface {
	// CreateBatch inserta todas las líneas en una sola ida a la BD.
	CreateBatch(ctx context.Context, items []*entity.OrderItem) error
	ListByOrder(ctx context.Context, owner entity.OrderRef) ([]*entity.OrderItem, error)
	DeleteByOrder(ctx context.Context, owner entity.OrderRef) error
}

// InboundOrderRepository define el puerto de persistencia para InboundOrder.
type InboundOrderRepository interface {
	Create(ctx context.Context, order *entity.InboundOrder) error
	GetByID(ctx context.Context, id string) (*entity.InboundOrder, error)
	Delete(ctx context.Context, id string) error
	ListByRelatedOrder(ctx context.Context, relatedOrderID string) ([]*entity.InboundOrder, error)
}

// OutboundOrderRepository define el puerto de persistencia para OutboundOrder.
type OutboundOrderRepository interface {
	Create(ctx context.Context, order *entity.OutboundOrder) error
	GetByID(ctx context.Context, id string) (*entity.OutboundOrder, error)
	Delete(ctx context.Context, id string) error
	ListByRelatedOrder(ctx context.Context, relatedOrderID string) ([]*entity.OutboundOrder, error)
}

// StocktakingRepository define el puerto de persistencia para inventarios físicos.
type StocktakingRepository interface {
	Create(ctx context.Context, order *entity.StocktakingOrder) error
	CreateItem(ctx context.Context, item *entity.StocktakingItem) error
	// GetByID devuelve la orden con sus líneas cargadas.
	GetByID(ctx context.Context, id string) (*entity.StocktakingOrder, error)
	DeleteItems(ctx context.Context, stocktakingID string) error
	Delete(ctx context.Context, id string) error
}

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	// Create inserta la orden y sus líneas.
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas cargadas.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, order *entity.PurchaseOrder) error
	DeleteItems(ctx context.Context, purchaseOrderID string) error
	Delete(ctx context.Context, id string) error
}
