package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/docno"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// CreateOutboundInput datos para crear una orden de salida.
// EnableStockAlert nil = true.
type CreateOutboundInput struct {
	Type             entity.OutboundType
	Operator         string
	Remark           string
	Items            []OrderLineInput
	OrderDate        time.Time
	OrderNo          string
	RelatedOrderID   string
	EnableStockAlert *bool
}

// OutboundResult orden creada, líneas y estado de inventario resultante por producto.
// Las alertas se disparan después del commit con UpdatedInventories.
type OutboundResult struct {
	Order              *entity.OutboundOrder
	Items              []*entity.OrderItem
	UpdatedInventories []entity.InventorySnapshot
	EnableStockAlert   bool
}

// OutboundService única ruta por la que baja el stock (y su reverso).
type OutboundService struct {
	ledger   *StockLedger
	numbers  docno.Generator
	notifier notification.Notifier
	log      *logger.Logger
	metrics  Metrics
	now      func() time.Time
}

// NewOutboundService construye el servicio.
func NewOutboundService(
	ledger *StockLedger,
	numbers docno.Generator,
	notifier notification.Notifier,
	log *logger.Logger,
	metrics Metrics,
) *OutboundService {
	return &OutboundService{
		ledger:   ledger,
		numbers:  numbers,
		notifier: notifier,
		log:      log.Component("outbound"),
		metrics:  metricsOrNop(metrics),
		now:      time.Now,
	}
}

// CreateInTx verifica stock de todas las líneas antes de escribir, persiste orden y líneas
// y descuenta cada línea del libro (OUTBOUND).
func (s *OutboundService) CreateInTx(ctx context.Context, repos repository.TxRepos, in CreateOutboundInput) (*OutboundResult, error) {
	if !in.Type.Valid() {
		return nil, domain.NewValidationError("tipo de salida inválido: %q", in.Type)
	}
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	if err := s.preflight(ctx, repos, in.Items); err != nil {
		return nil, err
	}
	products, err := loadProducts(ctx, repos.Products, in.Items)
	if err != nil {
		return nil, err
	}
	orderNo, err := orderNumber(ctx, s.numbers, in.OrderNo, docno.PrefixOutbound)
	if err != nil {
		return nil, err
	}

	now := s.now()
	orderDate := in.OrderDate
	if orderDate.IsZero() {
		orderDate = now
	}
	totalQty, totalAmount := lineTotals(in.Items)
	order := &entity.OutboundOrder{
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
	if err := repos.Outbound.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create outbound order: %w", err)
	}

	items := buildItems(entity.OutboundRef{ID: order.ID}, in.Items, products)
	if err := repos.OrderItems.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("create outbound items: %w", err)
	}

	latest := make(map[string]*entity.Inventory, len(items))
	var touched []string
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		inv, err := s.ledger.ApplyStockDelta(ctx, repos, StockDelta{
			ProductID:   it.ProductID,
			Delta:       -it.Quantity,
			Kind:        entity.MovementOutbound,
			OrderNo:     order.OrderNo,
			Operator:    in.Operator,
			OrderItemID: it.ID,
		})
		if err != nil {
			return nil, err
		}
		if _, seen := latest[it.ProductID]; !seen {
			touched = append(touched, it.ProductID)
		}
		latest[it.ProductID] = inv
	}

	snapshots := make([]entity.InventorySnapshot, 0, len(touched))
	for _, pid := range touched {
		p := products[pid]
		snapshots = append(snapshots, entity.InventorySnapshot{
			ProductID:      pid,
			ProductName:    p.Name,
			ProductCode:    p.Code,
			Quantity:       latest[pid].Quantity,
			AlertThreshold: p.AlertThreshold,
		})
	}

	alert := in.EnableStockAlert == nil || *in.EnableStockAlert
	s.metrics.DocumentCreated("outbound")
	return &OutboundResult{Order: order, Items: items, UpdatedInventories: snapshots, EnableStockAlert: alert}, nil
}

// preflight bloquea y verifica cada producto con la cantidad agregada de todas sus líneas.
func (s *OutboundService) preflight(ctx context.Context, repos repository.TxRepos, lines []OrderLineInput) error {
	required := make(map[string]int64, len(lines))
	var order []string
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if _, ok := required[l.ProductID]; !ok {
			order = append(order, l.ProductID)
		}
		required[l.ProductID] += l.Quantity
	}
	for _, pid := range order {
		inv, err := repos.Inventory.GetForUpdate(ctx, pid)
		if err != nil {
			return fmt.Errorf("lock inventory %s: %w", pid, err)
		}
		var current int64
		if inv != nil {
			current = inv.Quantity
		}
		if inv == nil || current < required[pid] {
			s.metrics.InsufficientStock()
			return &domain.InsufficientStockError{ProductID: pid, Current: current, Requested: required[pid]}
		}
	}
	return nil
}

// DeleteInTx devuelve cada línea al stock (OUTBOUND_REVERSAL) y borra líneas y orden.
func (s *OutboundService) DeleteInTx(ctx context.Context, repos repository.TxRepos, orderID string) error {
	order, err := repos.Outbound.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get outbound order: %w", err)
	}
	if order == nil {
		return &domain.NotFoundError{Resource: "orden de salida", ID: orderID}
	}
	ref := entity.OutboundRef{ID: order.ID}
	items, err := repos.OrderItems.ListByOrder(ctx, ref)
	if err != nil {
		return fmt.Errorf("list outbound items: %w", err)
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if _, err := s.ledger.ApplyStockDelta(ctx, repos, StockDelta{
			ProductID:   it.ProductID,
			Delta:       it.Quantity,
			Kind:        entity.MovementOutboundReversal,
			OrderNo:     order.OrderNo,
			Operator:    order.Operator,
			OrderItemID: it.ID,
		}); err != nil {
			return err
		}
	}
	if err := repos.OrderItems.DeleteByOrder(ctx, ref); err != nil {
		return fmt.Errorf("delete outbound items: %w", err)
	}
	if err := repos.Outbound.Delete(ctx, order.ID); err != nil {
		return fmt.Errorf("delete outbound order: %w", err)
	}
	return nil
}

// CheckStockAlertAndCreateMessage emite una alerta por cada producto en o bajo su umbral.
// Se llama después del commit; los fallos se registran y no se propagan.
func (s *OutboundService) CheckStockAlertAndCreateMessage(ctx context.Context, snapshots []entity.InventorySnapshot, operator, orderNo string) {
	var jobs []notification.Job
	for _, snap := range snapshots {
		if !snap.BelowThreshold() {
			continue
		}
		alert := notification.StockAlert{
			ProductID:      snap.ProductID,
			ProductName:    snap.ProductName,
			ProductCode:    snap.ProductCode,
			Quantity:       snap.Quantity,
			AlertThreshold: snap.AlertThreshold,
			Operator:       operator,
			OrderNo:        orderNo,
		}
		jobs = append(jobs, func(ctx context.Context) error {
			return s.notifier.CreateInventoryAlert(ctx, alert)
		})
	}
	notification.Dispatch(ctx, jobs, func(err error) {
		s.metrics.NotificationFailed(entity.MessageInventoryAlert)
		s.log.Error().Err(err).Str("order_no", orderNo).Msg("no se pudo crear la alerta de stock")
	})
}
