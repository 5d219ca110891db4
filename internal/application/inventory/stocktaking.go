package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/docno"
)

// StocktakingLineInput producto contado. ActualQuantity nil = 0.
type StocktakingLineInput struct {
	ProductID      string
	ActualQuantity *int64
}

// CreateStocktakingInput datos de un inventario físico.
type CreateStocktakingInput struct {
	StocktakingDate time.Time
	Operator        string
	Remark          string
	Items           []StocktakingLineInput
}

// StocktakingResult inventario creado y los documentos de ajuste generados.
type StocktakingResult struct {
	Order       *entity.StocktakingOrder
	Inbound     *InboundResult  // nil si no hubo sobrantes
	Outbound    *OutboundResult // nil si no hubo faltantes
	ProfitItems []domaininv.Adjustment
	LossItems   []domaininv.Adjustment
	AutoCreated []string // números de los documentos generados
	Message     string
}

// StocktakingService concilia el conteo físico con el stock del sistema.
// Genera una entrada SURPLUS por sobrantes y una salida SHORTAGE por faltantes, en la misma transacción.
type StocktakingService struct {
	inbound  *InboundService
	outbound *OutboundService
	numbers  docno.Generator
	metrics  Metrics
	now      func() time.Time
}

// NewStocktakingService construye el servicio sobre los servicios de movimiento.
func NewStocktakingService(inbound *InboundService, outbound *OutboundService, numbers docno.Generator, metrics Metrics) *StocktakingService {
	return &StocktakingService{
		inbound:  inbound,
		outbound: outbound,
		numbers:  numbers,
		metrics:  metricsOrNop(metrics),
		now:      time.Now,
	}
}

func validateStocktaking(in CreateStocktakingInput) error {
	if strings.TrimSpace(in.Operator) == "" {
		return domain.NewValidationError("el operador es obligatorio")
	}
	if len(in.Items) == 0 {
		return domain.NewValidationError("el inventario debe tener al menos un producto")
	}
	seen := make(map[string]struct{}, len(in.Items))
	for i, it := range in.Items {
		if it.ProductID == "" {
			return domain.NewValidationError("línea %d: producto requerido", i+1)
		}
		if _, dup := seen[it.ProductID]; dup {
			return domain.NewValidationError("producto duplicado en el inventario: %s", it.ProductID)
		}
		seen[it.ProductID] = struct{}{}
		if it.ActualQuantity != nil && *it.ActualQuantity < 0 {
			return domain.NewValidationError("línea %d: la cantidad contada no puede ser negativa", i+1)
		}
	}
	return nil
}

// CreateInTx persiste el inventario, sus líneas y los documentos de ajuste.
// Toda validación ocurre antes de la primera escritura.
func (s *StocktakingService) CreateInTx(ctx context.Context, repos repository.TxRepos, in CreateStocktakingInput) (*StocktakingResult, error) {
	if err := validateStocktaking(in); err != nil {
		return nil, err
	}
	orderNo, err := orderNumber(ctx, s.numbers, "", docno.PrefixStocktaking)
	if err != nil {
		return nil, err
	}
	now := s.now()
	date := in.StocktakingDate
	if date.IsZero() {
		date = now
	}
	order := &entity.StocktakingOrder{
		ID:              uuid.New().String(),
		OrderNo:         orderNo,
		StocktakingDate: date,
		Operator:        in.Operator,
		Remark:          in.Remark,
		TotalItems:      len(in.Items),
		CreatedAt:       now,
	}
	if err := repos.Stocktaking.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create stocktaking order: %w", err)
	}

	counted := make([]domaininv.CountedLine, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := repos.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product %s: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, &domain.NotFoundError{Resource: "producto", ID: line.ProductID}
		}
		inv, err := repos.Inventory.GetByProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get inventory %s: %w", line.ProductID, err)
		}
		var system, actual int64
		if inv != nil {
			system = inv.Quantity
		}
		if line.ActualQuantity != nil {
			actual = *line.ActualQuantity
		}
		item := &entity.StocktakingItem{
			ID:             uuid.New().String(),
			StocktakingID:  order.ID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductCode:    product.Code,
			ProductSpec:    product.Spec,
			Unit:           product.Unit,
			SystemQuantity: system,
			ActualQuantity: actual,
		}
		if err := repos.Stocktaking.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("create stocktaking item: %w", err)
		}
		order.Items = append(order.Items, item)
		counted = append(counted, domaininv.CountedLine{Product: product, SystemQuantity: system, ActualQuantity: actual})
	}

	profit, loss := domaininv.Partition(counted)
	result := &StocktakingResult{Order: order, ProfitItems: profit, LossItems: loss}

	if len(profit) > 0 {
		res, err := s.inbound.CreateInTx(ctx, repos, CreateInboundInput{
			Type:           entity.InboundSurplus,
			Operator:       in.Operator,
			Remark:         fmt.Sprintf("Sobrante del inventario físico %s", order.OrderNo),
			Items:          adjustmentLines(profit),
			OrderDate:      date,
			OrderNo:        docno.Derived(order.OrderNo, docno.PrefixInbound),
			RelatedOrderID: order.ID,
		})
		if err != nil {
			return nil, err
		}
		result.Inbound = res
		result.AutoCreated = append(result.AutoCreated, res.Order.OrderNo)
	}
	if len(loss) > 0 {
		noAlert := false
		res, err := s.outbound.CreateInTx(ctx, repos, CreateOutboundInput{
			Type:             entity.OutboundShortage,
			Operator:         in.Operator,
			Remark:           fmt.Sprintf("Faltante del inventario físico %s", order.OrderNo),
			Items:            adjustmentLines(loss),
			OrderDate:        date,
			OrderNo:          docno.Derived(order.OrderNo, docno.PrefixOutbound),
			RelatedOrderID:   order.ID,
			EnableStockAlert: &noAlert,
		})
		if err != nil {
			return nil, err
		}
		result.Outbound = res
		result.AutoCreated = append(result.AutoCreated, res.Order.OrderNo)
	}
	result.Message = stocktakingMessage(result)
	s.metrics.DocumentCreated("stocktaking")
	return result, nil
}

func adjustmentLines(adj []domaininv.Adjustment) []OrderLineInput {
	lines := make([]OrderLineInput, len(adj))
	for i, a := range adj {
		price := a.UnitPrice
		lines[i] = OrderLineInput{ProductID: a.ProductID, Quantity: a.Quantity, UnitPrice: &price, Unit: a.Unit}
	}
	return lines
}

func stocktakingMessage(r *StocktakingResult) string {
	msg := "Inventario físico " + r.Order.OrderNo + " creado"
	switch {
	case r.Inbound != nil && r.Outbound != nil:
		msg += fmt.Sprintf("; se generaron la orden de entrada %s y la orden de salida %s", r.Inbound.Order.OrderNo, r.Outbound.Order.OrderNo)
	case r.Inbound != nil:
		msg += fmt.Sprintf("; se generó la orden de entrada %s", r.Inbound.Order.OrderNo)
	case r.Outbound != nil:
		msg += fmt.Sprintf("; se generó la orden de salida %s", r.Outbound.Order.OrderNo)
	default:
		msg += " sin diferencias"
	}
	return msg
}

// DeleteInTx borra el inventario si ninguna orden de entrada/salida lo referencia.
func (s *StocktakingService) DeleteInTx(ctx context.Context, repos repository.TxRepos, orderID string) error {
	order, err := repos.Stocktaking.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get stocktaking order: %w", err)
	}
	if order == nil {
		return &domain.NotFoundError{Resource: "inventario físico", ID: orderID}
	}

	inbound, err := repos.Inbound.ListByRelatedOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("list related inbound: %w", err)
	}
	outbound, err := repos.Outbound.ListByRelatedOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("list related outbound: %w", err)
	}
	if len(inbound)+len(outbound) > 0 {
		blocking := make([]string, 0, len(inbound)+len(outbound))
		for _, o := range inbound {
			blocking = append(blocking, o.OrderNo)
		}
		for _, o := range outbound {
			blocking = append(blocking, o.OrderNo)
		}
		return &domain.ConflictError{
			Reason:   fmt.Sprintf("el inventario físico %s tiene documentos asociados; elimínelos primero", order.OrderNo),
			Blocking: blocking,
		}
	}

	if err := repos.Stocktaking.DeleteItems(ctx, order.ID); err != nil {
		return fmt.Errorf("delete stocktaking items: %w", err)
	}
	if err := repos.Stocktaking.Delete(ctx, order.ID); err != nil {
		return fmt.Errorf("delete stocktaking order: %w", err)
	}
	return nil
}
