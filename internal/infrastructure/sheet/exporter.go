// Package sheet lee planillas de conteo y exporta fichas de stock e inventarios a xlsx.
package sheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const timeLayout = "2006-01-02 15:04:05"

// Exporter genera libros xlsx con excelize.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

var (
	_ inventory.LogExporter         = (*Exporter)(nil)
	_ inventory.StocktakingExporter = (*Exporter)(nil)
)

// ExportLogs ficha de stock: una fila por asiento, más recientes primero.
func (e *Exporter) ExportLogs(product *entity.Product, logs []*entity.InventoryLog) ([]byte, error) {
	const sheetName = "Ficha"
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Ficha de stock %s - %s", product.Code, product.Name)
	if err := f.SetCellValue(sheetName, "A1", title); err != nil {
		return nil, err
	}
	headers := []any{"Fecha", "Movimiento", "Documento", "Cantidad", "Solicitado", "Operador"}
	if err := f.SetSheetRow(sheetName, "A3", &headers); err != nil {
		return nil, err
	}
	for i, l := range logs {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		row := []any{
			l.CreatedAt.Format(timeLayout), l.Kind.Label(), l.OrderNo, l.Quantity, l.Requested, l.Operator,
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := boldHeader(f, sheetName, "A3", "F3"); err != nil {
		return nil, err
	}
	return write(f)
}

// ExportStocktaking planilla del inventario: sistema, contado y diferencia por línea.
func (e *Exporter) ExportStocktaking(order *entity.StocktakingOrder) ([]byte, error) {
	const sheetName = "Inventario"
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	meta := []any{"Inventario", order.OrderNo, "Fecha", order.StocktakingDate.Format("2006-01-02"), "Operador", order.Operator}
	if err := f.SetSheetRow(sheetName, "A1", &meta); err != nil {
		return nil, err
	}
	headers := []any{"Código", "Producto", "Especificación", "Unidad", "Sistema", "Contado", "Diferencia"}
	if err := f.SetSheetRow(sheetName, "A3", &headers); err != nil {
		return nil, err
	}
	for i, it := range order.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		row := []any{
			it.ProductCode, it.ProductName, it.ProductSpec, it.Unit,
			it.SystemQuantity, it.ActualQuantity, it.Difference(),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}
	if err := boldHeader(f, sheetName, "A3", "G3"); err != nil {
		return nil, err
	}
	return write(f)
}

func boldHeader(f *excelize.File, sheetName, from, to string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, from, to, style)
}

func write(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
