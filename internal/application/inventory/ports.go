package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario: cualquier error en fn hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error
}

// Metrics contadores del motor de inventario. nil = sin métricas.
type Metrics interface {
	LedgerEntry(kind entity.MovementKind)
	InsufficientStock()
	NotificationFailed(kind string)
	DocumentCreated(kind string)
}

type nopMetrics struct{}

func (nopMetrics) LedgerEntry(entity.MovementKind) {}
func (nopMetrics) InsufficientStock()              {}
func (nopMetrics) NotificationFailed(string)       {}
func (nopMetrics) DocumentCreated(string)          {}

func metricsOrNop(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

// OrderDocument datos de una orden de entrada/salida para imprimir.
type OrderDocument struct {
	Title    string // "Orden de entrada" | "Orden de salida"
	OrderNo  string
	Type     string
	Date     string
	Operator string
	Remark   string
	Related  string
	Lines    []OrderDocumentLine
	TotalQty int64
	Total    string
}

// OrderDocumentLine línea imprimible con datos del producto resueltos.
type OrderDocumentLine struct {
	Code      string
	Name      string
	Unit      string
	Quantity  int64
	UnitPrice string
	Total     string
}

// OrderPDFGenerator puerto para generar el PDF de una orden (implementado con maroto).
type OrderPDFGenerator interface {
	Generate(doc *OrderDocument) ([]byte, error)
}

// CountSheetRow fila leída de una planilla de conteo.
type CountSheetRow struct {
	Line           int
	ProductCode    string
	ActualQuantity int64
}

// CountSheetReader puerto para leer planillas de conteo (xlsx/csv).
type CountSheetReader interface {
	Read(filename string, r io.Reader) ([]CountSheetRow, error)
}

// LogExporter puerto para exportar la ficha de stock a una planilla.
type LogExporter interface {
	ExportLogs(product *entity.Product, logs []*entity.InventoryLog) ([]byte, error)
}

// StocktakingExporter puerto para exportar un inventario físico (sistema/contado/diferencia).
type StocktakingExporter interface {
	ExportStocktaking(order *entity.StocktakingOrder) ([]byte, error)
}
