package dto

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// NewInventoryLogDTO convierte un asiento del libro.
func NewInventoryLogDTO(l *entity.InventoryLog) InventoryLogDTO {
	return InventoryLogDTO{
		ID:          l.ID,
		ProductID:   l.ProductID,
		Quantity:    l.Quantity,
		Requested:   l.Requested,
		Kind:        string(l.Kind),
		KindLabel:   l.Kind.Label(),
		OrderNo:     l.OrderNo,
		Operator:    l.Operator,
		OrderItemID: l.OrderItemID,
		CreatedAt:   l.CreatedAt,
	}
}

// NewOrderItemDTOs convierte las líneas de una orden.
func NewOrderItemDTOs(items []*entity.OrderItem) []OrderItemDTO {
	out := make([]OrderItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemDTO{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
			Unit:       it.Unit,
		})
	}
	return out
}

// NewInboundOrderDTO convierte una orden de entrada con sus líneas.
func NewInboundOrderDTO(o *entity.InboundOrder, items []*entity.OrderItem) OrderDTO {
	return OrderDTO{
		ID:             o.ID,
		OrderNo:        o.OrderNo,
		Type:           string(o.Type),
		OrderDate:      o.OrderDate,
		Operator:       o.Operator,
		Remark:         o.Remark,
		TotalQuantity:  o.TotalQuantity,
		TotalAmount:    o.TotalAmount,
		RelatedOrderID: o.RelatedOrderID,
		CreatedAt:      o.CreatedAt,
		Items:          NewOrderItemDTOs(items),
	}
}

// NewOutboundOrderDTO convierte una orden de salida con sus líneas.
func NewOutboundOrderDTO(o *entity.OutboundOrder, items []*entity.OrderItem) OrderDTO {
	return OrderDTO{
		ID:             o.ID,
		OrderNo:        o.OrderNo,
		Type:           string(o.Type),
		OrderDate:      o.OrderDate,
		Operator:       o.Operator,
		Remark:         o.Remark,
		TotalQuantity:  o.TotalQuantity,
		TotalAmount:    o.TotalAmount,
		RelatedOrderID: o.RelatedOrderID,
		CreatedAt:      o.CreatedAt,
		Items:          NewOrderItemDTOs(items),
	}
}

// NewInventorySnapshotDTOs convierte los snapshots de una salida.
func NewInventorySnapshotDTOs(snaps []entity.InventorySnapshot) []InventorySnapshotDTO {
	out := make([]InventorySnapshotDTO, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, InventorySnapshotDTO{
			ProductID:      s.ProductID,
			ProductName:    s.ProductName,
			ProductCode:    s.ProductCode,
			Quantity:       s.Quantity,
			AlertThreshold: s.AlertThreshold,
		})
	}
	return out
}

// NewStocktakingDTO convierte un inventario físico con sus líneas.
func NewStocktakingDTO(o *entity.StocktakingOrder) StocktakingDTO {
	out := StocktakingDTO{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		StocktakingDate: o.StocktakingDate,
		Operator:        o.Operator,
		Remark:          o.Remark,
		TotalItems:      o.TotalItems,
		CreatedAt:       o.CreatedAt,
		Items:           make([]StocktakingItemDTO, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, StocktakingItemDTO{
			ID:             it.ID,
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			ProductCode:    it.ProductCode,
			ProductSpec:    it.ProductSpec,
			Unit:           it.Unit,
			SystemQuantity: it.SystemQuantity,
			ActualQuantity: it.ActualQuantity,
			Difference:     it.Difference(),
		})
	}
	return out
}

// NewPurchaseOrderDTO convierte una orden de compra.
func NewPurchaseOrderDTO(o *entity.PurchaseOrder) PurchaseOrderDTO {
	out := PurchaseOrderDTO{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		Supplier:    o.Supplier,
		Status:      o.Status,
		Operator:    o.Operator,
		Remark:      o.Remark,
		TotalAmount: o.TotalAmount,
		ConfirmedAt: o.ConfirmedAt,
		CreatedAt:   o.CreatedAt,
		Items:       make([]PurchaseItemDTO, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, PurchaseItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}
