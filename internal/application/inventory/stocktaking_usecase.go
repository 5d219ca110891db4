package inventory

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// StocktakingUseCase casos de uso de inventarios físicos.
type StocktakingUseCase struct {
	tx       TxRunner
	svc      *StocktakingService
	notifier notification.Notifier
	reader   CountSheetReader
	exporter StocktakingExporter
	log      *logger.Logger
	metrics  Metrics
}

// NewStocktakingUseCase construye el caso de uso. reader y exporter pueden ser nil.
func NewStocktakingUseCase(
	tx TxRunner,
	svc *StocktakingService,
	notifier notification.Notifier,
	reader CountSheetReader,
	exporter StocktakingExporter,
	log *logger.Logger,
	metrics Metrics,
) *StocktakingUseCase {
	return &StocktakingUseCase{
		tx:       tx,
		svc:      svc,
		notifier: notifier,
		reader:   reader,
		exporter: exporter,
		log:      log.Component("stocktaking"),
		metrics:  metricsOrNop(metrics),
	}
}

// Create concilia el conteo en una sola transacción y, tras el commit,
// avisa una entrada por cada sobrante y una salida por cada faltante.
func (uc *StocktakingUseCase) Create(ctx context.Context, in CreateStocktakingInput) (res *StocktakingResult, err error) {
	ctx, span := startSpan(ctx, "stocktaking.create", attribute.Int("items", len(in.Items)))
	defer func() { endSpan(span, err) }()

	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		var e error
		res, e = uc.svc.CreateInTx(ctx, repos, in)
		return e
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_no", res.Order.OrderNo).
		Int("profit_items", len(res.ProfitItems)).
		Int("loss_items", len(res.LossItems)).
		Msg(res.Message)
	uc.notifyAdjustments(ctx, res)
	return res, nil
}

func (uc *StocktakingUseCase) notifyAdjustments(ctx context.Context, res *StocktakingResult) {
	var jobs []notification.Job
	if res.Inbound != nil {
		for _, a := range res.ProfitItems {
			msg := notification.StockMovementMessage{
				ProductID: a.ProductID,
				Quantity:  a.Quantity,
				OrderNo:   res.Inbound.Order.OrderNo,
				Operator:  res.Order.Operator,
				Remark:    res.Inbound.Order.Remark,
			}
			jobs = append(jobs, func(ctx context.Context) error { return uc.notifier.CreateStockInMessage(ctx, msg) })
		}
	}
	if res.Outbound != nil {
		for _, a := range res.LossItems {
			msg := notification.StockMovementMessage{
				ProductID: a.ProductID,
				Quantity:  a.Quantity,
				OrderNo:   res.Outbound.Order.OrderNo,
				Operator:  res.Order.Operator,
				Remark:    res.Outbound.Order.Remark,
			}
			jobs = append(jobs, func(ctx context.Context) error { return uc.notifier.CreateStockOutMessage(ctx, msg) })
		}
	}
	notification.Dispatch(ctx, jobs, func(err error) {
		uc.metrics.NotificationFailed("stocktaking")
		uc.log.Error().Err(err).Str("order_no", res.Order.OrderNo).Msg("no se pudo notificar el ajuste de inventario")
	})
}

// Delete elimina el inventario físico si no tiene documentos asociados.
func (uc *StocktakingUseCase) Delete(ctx context.Context, id string) (err error) {
	ctx, span := startSpan(ctx, "stocktaking.delete", attribute.String("order_id", id))
	defer func() { endSpan(span, err) }()

	return uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		return uc.svc.DeleteInTx(ctx, repos, id)
	})
}

// Get devuelve el inventario con sus líneas.
func (uc *StocktakingUseCase) Get(ctx context.Context, id string) (*entity.StocktakingOrder, error) {
	var order *entity.StocktakingOrder
	err := uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		o, err := repos.Stocktaking.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get stocktaking order: %w", err)
		}
		if o == nil {
			return &domain.NotFoundError{Resource: "inventario físico", ID: id}
		}
		order = o
		return nil
	})
	return order, err
}

// ImportInput planilla de conteo y cabecera del inventario.
type ImportInput struct {
	Filename        string
	Content         io.Reader
	StocktakingDate time.Time
	Operator        string
	Remark          string
}

// Import lee la planilla (código de producto, cantidad contada), resuelve los códigos y
// crea el inventario físico. Resolución y creación comparten la transacción.
func (uc *StocktakingUseCase) Import(ctx context.Context, in ImportInput) (res *StocktakingResult, err error) {
	if uc.reader == nil {
		return nil, fmt.Errorf("lector de planillas no configurado")
	}
	ctx, span := startSpan(ctx, "stocktaking.import", attribute.String("filename", in.Filename))
	defer func() { endSpan(span, err) }()

	rows, err := uc.reader.Read(in.Filename, in.Content)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError("la planilla no tiene filas de conteo")
	}

	err = uc.tx.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		lines := make([]StocktakingLineInput, 0, len(rows))
		for _, row := range rows {
			p, err := repos.Products.GetByCode(ctx, row.ProductCode)
			if err != nil {
				return fmt.Errorf("get product by code %s: %w", row.ProductCode, err)
			}
			if p == nil {
				return &domain.NotFoundError{Resource: "producto", ID: fmt.Sprintf("%s (fila %d)", row.ProductCode, row.Line)}
			}
			qty := row.ActualQuantity
			lines = append(lines, StocktakingLineInput{ProductID: p.ID, ActualQuantity: &qty})
		}
		var e error
		res, e = uc.svc.CreateInTx(ctx, repos, CreateStocktakingInput{
			StocktakingDate: in.StocktakingDate,
			Operator:        in.Operator,
			Remark:          in.Remark,
			Items:           lines,
		})
		return e
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_no", res.Order.OrderNo).Str("filename", in.Filename).Msg(res.Message)
	uc.notifyAdjustments(ctx, res)
	return res, nil
}

// Export genera la planilla del inventario (sistema, contado, diferencia).
func (uc *StocktakingUseCase) Export(ctx context.Context, id string) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("exportador no configurado")
	}
	order, err := uc.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.exporter.ExportStocktaking(order)
	if err != nil {
		return nil, "", fmt.Errorf("exportar inventario: %w", err)
	}
	return out, order.OrderNo, nil
}
