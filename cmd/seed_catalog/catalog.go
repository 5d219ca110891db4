package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

const catalogColumns = 7

// parseCatalog lee el CSV del catálogo. Una primera fila con precio no numérico se toma como encabezado.
func parseCatalog(src io.Reader) ([]entity.Product, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var r io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	var out []entity.Product
	seen := make(map[string]int)
	for i, rec := range records {
		row := i + 1
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < catalogColumns {
			return nil, fmt.Errorf("fila %d: se esperaban %d columnas, hay %d", row, catalogColumns, len(rec))
		}
		purchase, errP := decimal.NewFromString(strings.TrimSpace(rec[4]))
		if errP != nil && i == 0 {
			continue // encabezado
		}
		p, err := catalogRow(rec, purchase, errP)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", row, err)
		}
		if prev, ok := seen[p.Code]; ok {
			return nil, fmt.Errorf("fila %d: código %s repetido (fila %d)", row, p.Code, prev)
		}
		seen[p.Code] = row
		out = append(out, p)
	}
	return out, nil
}

func catalogRow(rec []string, purchase decimal.Decimal, purchaseErr error) (entity.Product, error) {
	field := func(i int) string { return strings.TrimSpace(rec[i]) }
	p := entity.Product{
		Code: field(0),
		Name: field(1),
		Spec: field(2),
		Unit: field(3),
	}
	if p.Code == "" || p.Name == "" {
		return p, fmt.Errorf("código y nombre son requeridos")
	}
	if purchaseErr != nil {
		return p, fmt.Errorf("precio de compra inválido %q", field(4))
	}
	retail, err := decimal.NewFromString(field(5))
	if err != nil {
		return p, fmt.Errorf("precio de venta inválido %q", field(5))
	}
	if purchase.IsNegative() || retail.IsNegative() {
		return p, fmt.Errorf("precios negativos")
	}
	p.PurchasePrice, p.RetailPrice = purchase, retail
	if s := field(6); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 0 {
			return p, fmt.Errorf("umbral inválido %q", s)
		}
		p.AlertThreshold = n
	}
	return p, nil
}
