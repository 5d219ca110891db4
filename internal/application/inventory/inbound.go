package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/docno"
)

// CreateInboundInput datos para crear una orden de entrada.
// OrderNo se informa cuando la orden es un documento derivado (inventario físico, compra).
type CreateInboundInput struct {
	Type           entity.InboundType
	Operator       string
	Remark         string
	Items          []OrderLineInput
	OrderDate      time.Time
	OrderNo        string
	RelatedOrderID string
}

// InboundResult orden creada con sus líneas.
type InboundResult struct {
	Order *entity.InboundOrder
	Items []*entity.OrderItem
}

// InboundService única ruta por la que sube el stock (y su reverso).
type InboundService struct {
	ledger  *StockLedger
	numbers docno.Generator
	metrics Metrics
	now     func() time.Time
}

// NewInboundService construye el servicio.
func NewInboundService(ledger *StockLedger, numbers docno.Generator, metrics Metrics) *InboundService {
	return &InboundService{ledger: ledger, numbers: numbers, metrics: metricsOrNop(metrics), now: time.Now}
}

// CreateInTx persiste orden y líneas, luego suma cada línea al libro (INBOUND).
func (s *InboundService) CreateInTx(ctx context.Context, repos repository.TxRepos, in CreateInboundInput) (*InboundResult, error) {
	if !in.Type.Valid() {
		return nil, domain.NewValidationError("tipo de entrada inválido: %q", in.Type)
	}
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	products, err := loadProducts(ctx, repos.Products, in.Items)
	if err != nil {
		return nil, err
	}
	orderNo, err := orderNumber(ctx, s.numbers, in.OrderNo, docno.PrefixInbound)
	if err != nil {
		return nil, err
	}

	now := s.now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	totalQty, totalAmount := lineTotals(in.Items)
	order := &entity.InboundOrder{
		ID:             uuid.New().String(),
		OrderNo:        orderNo,
		Type:           in.Type,
		OrderDate:      orderDate,
		Operator:       in.Operator,
		Remark:         in.Remark,
		TotalQuantity:  totalQty,
		TotalAmount:    totalAmount,
		RelatedOrderID: in.RelatedOrderID,
		CreatedAt:      now,
	}
	if err := repos.Inbound.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create inbound order: %w", err)
	}

	items := buildItems(entity.InboundRef{ID: order.ID}, in.Items, products)
	if err := repos.OrderItems.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("create inbound items: %w", err)
	}

	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if _, err := s.ledger.ApplyStockDelta(ctx, repos, StockDelta{
			ProductID:   it.ProductID,
			Delta:       it.Quantity,
			Kind:        entity.MovementInbound,
			OrderNo:     order.OrderNo,
			Operator:    in.Operator,
			OrderItemID: it.ID,
		}); err != nil {
			return nil, err
		}
	}
	s.metrics.DocumentCreated("inbound")
	return &InboundResult{Order: order, Items: items}, nil
}

// DeleteInTx revierte cada línea (INBOUND_REVERSAL, recorta a cero) y borra líneas y orden.
func (s *InboundService) DeleteInTx(ctx context.Context, repos repository.TxRepos, orderID string) error {
	order, err := repos.Inbound.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get inbound order: %w", err)
	}
	if order == nil {
		return &domain.NotFoundError{Resource: "orden de entrada", ID: orderID}
	}
	ref := entity.InboundRef{ID: order.ID}
	items, err := repos.OrderItems.ListByOrder(ctx, ref)
	if err != nil {
		return fmt.Errorf("list inbound items: %w", err)
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if _, err := s.ledger.ApplyStockDelta(ctx, repos, StockDelta{
			ProductID:   it.ProductID,
			Delta:       -it.Quantity,
			Kind:        entity.MovementInboundReversal,
			OrderNo:     order.OrderNo,
			Operator:    order.Operator,
			OrderItemID: it.ID,
		}); err != nil {
			return err
		}
	}
	if err := repos.OrderItems.DeleteByOrder(ctx, ref); err != nil {
		return fmt.Errorf("delete inbound items: %w", err)
	}
	if err := repos.Inbound.Delete(ctx, order.ID); err != nil {
		return fmt.Errorf("delete inbound order: %w", err)
	}
	return nil
}
