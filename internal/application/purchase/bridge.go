// Package purchase conecta las órdenes de compra con el motor de inventario:
// confirmar una compra genera la orden de entrada; borrarla la revierte.
package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/docno"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// LineInput línea de compra.
type LineInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CreateInput datos de una orden de compra.
type CreateInput struct {
	Supplier string
	Operator string
	Remark   string
	Items    []LineInput
}

// ConfirmResult compra confirmada y la entrada que generó.
type ConfirmResult struct {
	Order   *entity.PurchaseOrder
	Inbound *inventory.InboundResult
}

// BridgeUseCase casos de uso de compra que tocan inventario.
type BridgeUseCase struct {
	tx       inventory.TxRunner
	inbound  *inventory.InboundService
	numbers  docno.Generator
	notifier notification.Notifier
	log      *logger.Logger
	metrics  inventory.Metrics
	now      func() time.Time
}

// NewBridgeUseCase construye el caso de uso. metrics puede ser nil.
func NewBridgeUseCase(
	tx inventory.TxRunner,
	inbound *inventory.InboundService,
	numbers docno.Generator,
	notifier notification.Notifier,
	log *logger.Logger,
	metrics inventory.Metrics,
) *BridgeUseCase {
	return &BridgeUseCase{
		tx:       tx,
		inbound:  inbound,
		numbers:  numbers,
		notifier: notifier,
		log:      log.Component("purchase"),
		metrics:  metrics,
		now:      time.Now,
	}
}

// Create registra una compra PENDING (prefijo CG).
func (uc *BridgeUseCase) Create(ctx context.Context, in CreateInput) (*entity.PurchaseOrder, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("la compra debe tener al menos una línea")
	}
	for i, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.NewValidationError("línea %d: producto y cantidad positiva requeridos", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.NewValidationError("línea %d: precio negativo", i+1)
		}
	}

	var order *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		for _, it := range in.Items {
			p, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return fmt.Errorf("get product %s: %w", it.ProductID, err)
			}
			if p == nil {
				return &domain.NotFoundError{Resource: "producto", ID: it.ProductID}
			}
		}
		no, err := uc.numbers.Next(ctx, docno.PrefixPurchase)
		if err != nil {
			return fmt.Errorf("generar número de compra: %w", err)
		}
		order = &entity.PurchaseOrder{
			ID:          uuid.New().String(),
			OrderNo:     no,
			Supplier:    in.Supplier,
			Status:      entity.PurchaseStatusPending,
			Operator:    in.Operator,
			Remark:      in.Remark,
			TotalAmount: decimal.Zero,
			CreatedAt:   uc.now(),
		}
		for _, it := range in.Items {
			order.Items = append(order.Items, &entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: order.ID,
				ProductID:       it.ProductID,
				Quantity:        it.Quantity,
				UnitPrice:       it.UnitPrice,
			})
			order.TotalAmount = order.TotalAmount.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
		}
		if err := repos.Purchases.Create(ctx, order); err != nil {
			return fmt.Errorf("create purchase order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.DocumentCreated("purchase")
	}
	return order, nil
}

// Confirm pasa la compra a CONFIRMED y crea la entrada PURCHASE en la misma transacción.
// Tras el commit avisa una entrada por línea.
func (uc *BridgeUseCase) Confirm(ctx context.Context, id, operator string) (*ConfirmResult, error) {
	var res *ConfirmResult
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		po, err := repos.Purchases.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get purchase order: %w", err)
		}
		if po == nil {
			return &domain.NotFoundError{Resource: "orden de compra", ID: id}
		}
		if po.Status != entity.PurchaseStatusPending {
			return &domain.ConflictError{Reason: fmt.Sprintf("la orden de compra %s ya está %s", po.OrderNo, po.Status)}
		}
		if operator == "" {
			operator = po.Operator
		}

		lines := make([]inventory.OrderLineInput, len(po.Items))
		for i, it := range po.Items {
			price := it.UnitPrice
			lines[i] = inventory.OrderLineInput{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: &price}
		}
		inbound, err := uc.inbound.CreateInTx(ctx, repos, inventory.CreateInboundInput{
			Type:           entity.InboundPurchase,
			Operator:       operator,
			Remark:         fmt.Sprintf("Compra %s confirmada", po.OrderNo),
			Items:          lines,
			RelatedOrderID: po.ID,
		})
		if err != nil {
			return err
		}

		now := uc.now()
		po.Status = entity.PurchaseStatusConfirmed
		po.ConfirmedAt = &now
		if err := repos.Purchases.UpdateStatus(ctx, po); err != nil {
			return fmt.Errorf("confirm purchase order: %w", err)
		}
		res = &ConfirmResult{Order: po, Inbound: inbound}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_no", res.Order.OrderNo).Str("inbound_no", res.Inbound.Order.OrderNo).Msg("compra confirmada")
	jobs := make([]notification.Job, 0, len(res.Inbound.Items))
	for _, it := range res.Inbound.Items {
		msg := notification.StockMovementMessage{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			OrderNo:   res.Inbound.Order.OrderNo,
			Operator:  res.Inbound.Order.Operator,
			Remark:    res.Inbound.Order.Remark,
		}
		jobs = append(jobs, func(ctx context.Context) error { return uc.notifier.CreateStockInMessage(ctx, msg) })
	}
	notification.Dispatch(ctx, jobs, func(err error) {
		if uc.metrics != nil {
			uc.metrics.NotificationFailed(entity.MessageStockIn)
		}
		uc.log.Error().Err(err).Str("order_no", res.Order.OrderNo).Msg("no se pudo notificar la entrada de compra")
	})
	return res, nil
}

// Delete elimina la compra; si estaba confirmada revierte primero sus entradas.
func (uc *BridgeUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		po, err := repos.Purchases.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get purchase order: %w", err)
		}
		if po == nil {
			return &domain.NotFoundError{Resource: "orden de compra", ID: id}
		}
		if po.Status == entity.PurchaseStatusConfirmed {
			inbound, err := repos.Inbound.ListByRelatedOrder(ctx, po.ID)
			if err != nil {
				return fmt.Errorf("list purchase inbound: %w", err)
			}
			for _, o := range inbound {
				if err := uc.inbound.DeleteInTx(ctx, repos, o.ID); err != nil {
					return err
				}
			}
		}
		if err := repos.Purchases.DeleteItems(ctx, po.ID); err != nil {
			return fmt.Errorf("delete purchase items: %w", err)
		}
		if err := repos.Purchases.Delete(ctx, po.ID); err != nil {
			return fmt.Errorf("delete purchase order: %w", err)
		}
		return nil
	})
}
