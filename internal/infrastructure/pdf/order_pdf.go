// Package pdf genera el comprobante imprimible de órdenes de entrada y salida.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + tipo        │  N° Orden + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Operador / Observación                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Und | Cant | P.Unit | Total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades / Importe                                 │
//	│  QR con el número de orden + firmas                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// OrderPDFGenerator implementa inventory.OrderPDFGenerator usando Maroto v2.
type OrderPDFGenerator struct {
	company string
}

// NewOrderPDFGenerator construye el generador; company aparece como autor del documento.
func NewOrderPDFGenerator(company string) *OrderPDFGenerator {
	return &OrderPDFGenerator{company: company}
}

var _ inventory.OrderPDFGenerator = (*OrderPDFGenerator)(nil)

// Generate genera el PDF y devuelve sus bytes.
func (g *OrderPDFGenerator) Generate(doc *inventory.OrderDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: documento vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title+" "+doc.OrderNo, true).
		WithAuthor(nonEmpty(g.company, "Almacén"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))
	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *inventory.OrderDocument) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(strings.ToUpper(doc.Title), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tipo: "+doc.Type, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(doc.OrderNo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+doc.Date, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func infoRow(doc *inventory.OrderDocument) core.Row {
	info := "Operador: " + nonEmpty(doc.Operator, "—")
	if doc.Related != "" {
		info += "   |   Documento origen: " + doc.Related
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(info, props.Text{Size: 8, Top: 1}),
			text.New("Observación: "+nonEmpty(doc.Remark, "—"), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Und", 1, align.Center),
		h("Cant.", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tableDetailRows(lines []inventory.OrderDocumentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(7).Add(
			cell(l.Code, 2, align.Left),
			cell(l.Name, 4, align.Left),
			cell(l.Unit, 1, align.Center),
			cell(strconv.FormatInt(l.Quantity, 10), 1, align.Center),
			cell("$"+formatMoney(l.UnitPrice), 2, align.Right),
			cell("$"+formatMoney(l.Total), 2, align.Right),
		))
	}
	return result
}

func totalsRow(doc *inventory.OrderDocument) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(label("Unidades:")),
		col.New(3).Add(
			text.New(strconv.FormatInt(doc.TotalQty, 10), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New("$"+formatMoney(doc.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 6,
			}),
		),
	)
}

// footerRow: QR con el número de orden para ubicarla desde el depósito, y firmas.
func footerRow(doc *inventory.OrderDocument) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(doc.OrderNo, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Entregado por: ______________________", props.Text{Size: 8, Top: 10, Left: 3}),
			text.New("Recibido por:  ______________________", props.Text{Size: 8, Top: 22, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en la parte entera y coma decimal.
// Ej: "25000.50" → "25.000,50", "1000000" → "1.000.000"
func formatMoney(s string) string {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+2)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if hasFrac {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}
