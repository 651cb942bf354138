package supplier

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/jhoicas/Almacen-api/internal/application/importer"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Reader extrae filas de catálogo de archivos de pedido de proveedor (CSV o
// XLSX). Los exports de proveedores chinos suelen venir con encabezados en
// chino y codificación GB18030; ambos se reconocen.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader {
	return &Reader{}
}

// Encabezados aceptados por campo, normalizados a minúsculas. Cada campo se
// toma de la primera columna cuyo encabezado coincide.
var headerAliases = map[string][]string{
	"mpn":      {"型号", "mpn", "manufacturer part", "manufacturer part number", "mfr. part #", "part number"},
	"name":     {"商品名称", "name", "product name", "description"},
	"qty":      {"购买数量", "quantity", "qty", "order qty"},
	"package":  {"封装", "package", "footprint"},
	"category": {"目录", "category", "product category"},
	"params":   {"参数", "params", "parameters", "attributes"},
	"url":      {"商品链接", "url", "product url", "link"},
}

// Read detecta el formato por el nombre del archivo y extrae las filas.
// Las filas sin MPN se reportan, nunca se descartan en silencio.
func (rd *Reader) Read(src io.Reader, filename string) ([]importer.CatalogRow, []importer.RowError, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return rd.readXLSX(src)
	}
	return rd.readCSV(src)
}

func (rd *Reader) readCSV(src io.Reader) ([]importer.CatalogRow, []importer.RowError, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, nil, fmt.Errorf("leer archivo: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(raw) {
		decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("codificación desconocida (ni UTF-8 ni GB18030): %w", domain.ErrInvalidInput)
		}
		raw = decoded
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv ilegible: %w", domain.ErrInvalidInput)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("archivo vacío: %w", domain.ErrInvalidInput)
	}
	return extract(records)
}

func (rd *Reader) readXLSX(src io.Reader) ([]importer.CatalogRow, []importer.RowError, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, nil, fmt.Errorf("archivo xlsx ilegible: %w", domain.ErrInvalidInput)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("libro sin hojas: %w", domain.ErrInvalidInput)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("hoja vacía: %w", domain.ErrInvalidInput)
	}
	return extract(records)
}

// extract mapea encabezados flexibles a columnas y convierte cada fila.
func extract(records [][]string) ([]importer.CatalogRow, []importer.RowError, error) {
	colFor := matchHeaders(records[0])
	if _, ok := colFor["mpn"]; !ok {
		return nil, nil, fmt.Errorf("no se encontró la columna de MPN: %w", domain.ErrInvalidInput)
	}

	var (
		rows    []importer.CatalogRow
		rowErrs []importer.RowError
	)
	for i, record := range records[1:] {
		rowNum := i + 2
		if blank(record) {
			continue
		}
		row := importer.CatalogRow{
			RowNumber: rowNum,
			MPN:       field(record, colFor, "mpn"),
			Name:      field(record, colFor, "name"),
			Category:  field(record, colFor, "category"),
			Package:   field(record, colFor, "package"),
			Params:    field(record, colFor, "params"),
			URL:       field(record, colFor, "url"),
		}
		if row.MPN == "" {
			rowErrs = append(rowErrs, importer.RowError{
				Row: rowNum, Field: "mpn", Reason: "VALIDATION: fila sin MPN",
			})
			continue
		}
		if rawQty := field(record, colFor, "qty"); rawQty != "" {
			qty, err := parseQty(rawQty)
			if err != nil {
				rowErrs = append(rowErrs, importer.RowError{
					Row: rowNum, Field: "qty", Reason: "VALIDATION: " + err.Error(),
				})
				continue
			}
			row.Qty = qty
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func matchHeaders(header []string) map[string]int {
	colFor := make(map[string]int)
	for i, h := range header {
		norm := strings.ToLower(strings.TrimSpace(h))
		if norm == "" {
			continue
		}
		for fieldName, aliases := range headerAliases {
			if _, taken := colFor[fieldName]; taken {
				continue
			}
			for _, alias := range aliases {
				if norm == alias {
					colFor[fieldName] = i
					break
				}
			}
		}
	}
	return colFor
}

func parseQty(raw string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("qty %q no es un número", raw)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("qty %q no es un entero", raw)
	}
	return d.IntPart(), nil
}

func field(record []string, colFor map[string]int, name string) string {
	i, ok := colFor[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
