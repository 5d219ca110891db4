package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"999":      "999",
		"25000":    "25.000",
		"1000000":  "1.000.000",
		"25000.50": "25.000,50",
		"-1234.00": "-1.234,00",
		"12.5":     "12,5",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestOrderPDFGenerator_Generate(t *testing.T) {
	g := NewOrderPDFGenerator("Almacén Central")
	out, err := g.Generate(&inventory.OrderDocument{
		Title:    "Orden de salida",
		OrderNo:  "CK20240101120000001",
		Type:     "SALE",
		Date:     "2024-01-01",
		Operator: "maria",
		Lines: []inventory.OrderDocumentLine{
			{Code: "T-1", Name: "Tornillo", Unit: "und", Quantity: 10, UnitPrice: "0.50", Total: "5.00"},
		},
		TotalQty: 10,
		Total:    "5.00",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}

func TestOrderPDFGenerator_DocumentoNil(t *testing.T) {
	_, err := NewOrderPDFGenerator("").Generate(nil)
	assert.Error(t, err)
}
