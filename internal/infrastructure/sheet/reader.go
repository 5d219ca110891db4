package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// maxRows límite de filas de conteo por planilla.
const maxRows = 5000

// Reader lee planillas de conteo con dos columnas: código de producto y cantidad contada.
// La primera fila se toma como encabezado si su cantidad no es numérica.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

var _ inventory.CountSheetReader = (*Reader)(nil)

// Read acepta .xlsx (primera hoja) y .csv en UTF-8 o GB18030.
func (r *Reader) Read(filename string, src io.Reader) ([]inventory.CountSheetRow, error) {
	var (
		records []record
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		records, err = readXLSX(src)
	case ".csv":
		records, err = readCSV(src)
	default:
		return nil, domain.NewValidationError("formato de planilla no soportado: %q (use .xlsx o .csv)", filename)
	}
	if err != nil {
		return nil, err
	}
	return parseRows(records)
}

// record fila cruda con su número de línea en el archivo.
type record struct {
	line   int
	fields []string
}

func readXLSX(src io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, domain.NewValidationError("no se pudo abrir el xlsx: %v", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewValidationError("el xlsx no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	out := make([]record, len(rows))
	for i, r := range rows {
		out[i] = record{line: i + 1, fields: r}
	}
	return out, nil
}

func readCSV(src io.Reader) ([]record, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(raw) {
		// Planillas exportadas por Excel en chino simplificado.
		raw, _, err = transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), raw)
		if err != nil {
			return nil, domain.NewValidationError("codificación de csv no reconocida: %v", err)
		}
	}
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	var out []record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.NewValidationError("csv inválido: %v", err)
		}
		line, _ := cr.FieldPos(0)
		out = append(out, record{line: line, fields: fields})
	}
	return out, nil
}

func parseRows(records []record) ([]inventory.CountSheetRow, error) {
	var out []inventory.CountSheetRow
	for i, r := range records {
		line, rec := r.line, r.fields
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if len(rec) < 2 {
			return nil, domain.NewValidationError("fila %d: se esperan código y cantidad", line)
		}
		code := strings.TrimSpace(rec[0])
		qtyText := strings.TrimSpace(rec[1])
		qty, err := strconv.ParseInt(qtyText, 10, 64)
		if err != nil {
			if i == 0 {
				continue // encabezado
			}
			return nil, domain.NewValidationError("fila %d: cantidad inválida %q", line, qtyText)
		}
		if code == "" {
			return nil, domain.NewValidationError("fila %d: código de producto vacío", line)
		}
		if qty < 0 {
			return nil, domain.NewValidationError("fila %d: la cantidad contada no puede ser negativa", line)
		}
		out = append(out, inventory.CountSheetRow{Line: line, ProductCode: code, ActualQuantity: qty})
		if len(out) > maxRows {
			return nil, domain.NewValidationError("la planilla supera %d filas", maxRows)
		}
	}
	return out, nil
}
