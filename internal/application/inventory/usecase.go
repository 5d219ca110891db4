package inventory

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const dateFormat = "2006-01-02"

// InboundUseCase casos de uso de órdenes de entrada: abre la transacción y delega en InboundService.
type InboundUseCase struct {
	tx  TxRunner
	svc *InboundService
	pdf OrderPDFGenerator
	log *logger.Logger
}

// NewInboundUseCase construye el caso de uso. pdf puede ser nil (sin impresión).
func NewInboundUseCase(tx TxRunner, svc *InboundService, pdf OrderPDFGenerator, log *logger.Logger) *InboundUseCase {
	return &InboundUseCase{tx: tx, svc: svc, pdf: pdf, log: log.Component("inbound")}
}

// Create crea la orden de entrada en su propia transacción.
func (uc *InboundUseCase) Create(ctx context.Context, in CreateInboundInput) (res *InboundResult, err error) {
	ctx, span := startSpan(ctx, "inbound.create", attribute.String("type", string(in.Type)))
	defer func() { endSpan(span, err) }()

	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var e error
		res, e = uc.svc.CreateInTx(ctx, repos, in)
		return e
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_no", res.Order.OrderNo).Int64("total_quantity", res.Order.TotalQuantity).Msg("orden de entrada creada")
	return res, nil
}

// Delete revierte y elimina la orden de entrada.
func (uc *InboundUseCase) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "inbound.delete", attribute.String("order_id", id))
	defer func() { endSpan(span, err) }()

	return uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		return uc.svc.DeleteInTx(ctx, repos, id)
	})
}

// Get devuelve la orden con sus líneas.
func (uc *InboundUseCase) Get(ctx context.Context, id string) (*InboundResult, error) {
	var res *InboundResult
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		order, err := repos.Inbound.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get inbound order: %w", err)
		}
		if order == nil {
			return &domain.NotFoundError{Resource: "orden de entrada", ID: id}
		}
		items, err := repos.OrderItems.ListByOrder(ctx, entity.InboundRef{ID: order.ID})
		if err != nil {
			return fmt.Errorf("list inbound items: %w", err)
		}
		res = &InboundResult{Order: order, Items: items}
		return nil
	})
	return res, err
}

// RenderPDF genera el PDF de la orden. Devuelve también el número para nombrar el archivo.
func (uc *InboundUseCase) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	var doc *OrderDocument
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		order, err := repos.Inbound.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get inbound order: %w", err)
		}
		if order == nil {
			return &domain.NotFoundError{Resource: "orden de entrada", ID: id}
		}
		items, err := repos.OrderItems.ListByOrder(ctx, entity.InboundRef{ID: order.ID})
		if err != nil {
			return fmt.Errorf("list inbound items: %w", err)
		}
		doc = &OrderDocument{
			Title:    "Orden de entrada",
			OrderNo:  order.OrderNo,
			Type:     string(order.Type),
			Date:     order.OrderDate.Format(dateFormat),
			Operator: order.Operator,
			Remark:   order.Remark,
			TotalQty: order.TotalQuantity,
			Total:    order.TotalAmount.StringFixed(2),
		}
		doc.Lines, err = documentLines(ctx, repos.Products, items)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.Generate(doc)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return out, doc.OrderNo, nil
}

// OutboundUseCase casos de uso de órdenes de salida.
type OutboundUseCase struct {
	tx  TxRunner
	svc *OutboundService
	pdf OrderPDFGenerator
	log *logger.Logger
}

// NewOutboundUseCase construye el caso de uso. pdf puede ser nil.
func NewOutboundUseCase(tx TxRunner, svc *OutboundService, pdf OrderPDFGenerator, log *logger.Logger) *OutboundUseCase {
	return &OutboundUseCase{tx: tx, svc: svc, pdf: pdf, log: log.Component("outbound")}
}

// Create crea la orden de salida; tras el commit revisa alertas de stock si está habilitado.
func (uc *OutboundUseCase) Create(ctx context.Context, in CreateOutboundInput) (res *OutboundResult, err error) {
	ctx, span := startSpan(ctx, "outbound.create", attribute.String("type", string(in.Type)))
	defer func() { endSpan(span, err) }()

	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var e error
		res, e = uc.svc.CreateInTx(ctx, repos, in)
		return e
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_no", res.Order.OrderNo).Int64("total_quantity", res.Order.TotalQuantity).Msg("orden de salida creada")
	if res.EnableStockAlert {
		uc.svc.CheckStockAlertAndCreateMessage(ctx, res.UpdatedInventories, res.Order.Operator, res.Order.OrderNo)
	}
	return res, nil
}

// Delete devuelve el stock y elimina la orden de salida.
func (uc *OutboundUseCase) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "outbound.delete", attribute.String("order_id", id))
	defer func() { endSpan(span, err) }()

	return uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		return uc.svc.DeleteInTx(ctx, repos, id)
	})
}

// Get devuelve la orden con sus líneas.
func (uc *OutboundUseCase) Get(ctx context.Context, id string) (*OutboundResult, error) {
	var res *OutboundResult
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		order, err := repos.Outbound.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get outbound order: %w", err)
		}
		if order == nil {
			return &domain.NotFoundError{Resource: "orden de salida", ID: id}
		}
		items, err := repos.OrderItems.ListByOrder(ctx, entity.OutboundRef{ID: order.ID})
		if err != nil {
			return fmt.Errorf("list outbound items: %w", err)
		}
		res = &OutboundResult{Order: order, Items: items}
		return nil
	})
	return res, err
}

// RenderPDF genera el PDF de la orden de salida.
func (uc *OutboundUseCase) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	var doc *OrderDocument
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		order, err := repos.Outbound.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get outbound order: %w", err)
		}
		if order == nil {
			return &domain.NotFoundError{Resource: "orden de salida", ID: id}
		}
		items, err := repos.OrderItems.ListByOrder(ctx, entity.OutboundRef{ID: order.ID})
		if err != nil {
			return fmt.Errorf("list outbound items: %w", err)
		}
		doc = &OrderDocument{
			Title:    "Orden de salida",
			OrderNo:  order.OrderNo,
			Type:     string(order.Type),
			Date:     order.OrderDate.Format(dateFormat),
			Operator: order.Operator,
			Remark:   order.Remark,
			TotalQty: order.TotalQuantity,
			Total:    order.TotalAmount.StringFixed(2),
		}
		doc.Lines, err = documentLines(ctx, repos.Products, items)
		return err
	})
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.Generate(doc)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return out, doc.OrderNo, nil
}

func documentLines(ctx context.Context, products repository.ProductRepository, items []*entity.OrderItem) ([]OrderDocumentLine, error) {
	lines := make([]OrderDocumentLine, 0, len(items))
	for _, it := range items {
		p, err := products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("get product %s: %w", it.ProductID, err)
		}
		line := OrderDocumentLine{
			Code:      it.ProductID,
			Unit:      it.Unit,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Total:     it.TotalPrice.StringFixed(2),
		}
		if p != nil {
			line.Code = p.Code
			line.Name = p.Name
		}
		lines = append(lines, line)
	}
	return lines, nil
}
