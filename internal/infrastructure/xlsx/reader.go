package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Almacen-api/internal/application/importer"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Hojas reconocidas del libro de importación.
const (
	SheetTransactions = "Transactions"
	SheetStockIn      = "StockIn"
	SheetStockOut     = "StockOut"
)

// Layouts de lectura del libro.
const (
	// LayoutAuto lee Transactions si existe; si no, StockIn/StockOut.
	LayoutAuto = "auto"
	// LayoutTransactions exige la hoja Transactions.
	LayoutTransactions = "transactions"
	// LayoutStockIO exige al menos una de StockIn/StockOut.
	LayoutStockIO = "stock-io"
)

// Reader extrae filas de transacción de un libro XLSX. Devuelve todas las
// filas legibles más los errores direccionables de las que no lo son; nunca
// descarta una fila en silencio.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader {
	return &Reader{}
}

// Read abre el libro y extrae las filas según el layout. El error de retorno
// es de archivo (no se pudo abrir, ninguna hoja esperada); los problemas por
// fila van en el segundo resultado.
func (rd *Reader) Read(src io.Reader, layout string) ([]importer.Row, []importer.RowError, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, nil, fmt.Errorf("archivo xlsx ilegible: %w", domain.ErrInvalidInput)
	}
	defer f.Close()

	switch layout {
	case LayoutAuto, "":
		if hasSheet(f, SheetTransactions) {
			return rd.readTransactions(f)
		}
		if hasSheet(f, SheetStockIn) || hasSheet(f, SheetStockOut) {
			return rd.readStockIO(f)
		}
		return nil, nil, fmt.Errorf("el libro no tiene hojas %s, %s ni %s: %w",
			SheetTransactions, SheetStockIn, SheetStockOut, domain.ErrInvalidInput)
	case LayoutTransactions:
		if !hasSheet(f, SheetTransactions) {
			return nil, nil, fmt.Errorf("falta la hoja %s: %w", SheetTransactions, domain.ErrInvalidInput)
		}
		return rd.readTransactions(f)
	case LayoutStockIO:
		if !hasSheet(f, SheetStockIn) && !hasSheet(f, SheetStockOut) {
			return nil, nil, fmt.Errorf("faltan las hojas %s/%s: %w",
				SheetStockIn, SheetStockOut, domain.ErrInvalidInput)
		}
		return rd.readStockIO(f)
	default:
		return nil, nil, fmt.Errorf("layout %q (auto|transactions|stock-io): %w", layout, domain.ErrInvalidInput)
	}
}

// readTransactions lee la hoja de 9 columnas:
// txn_type | project | mpn | location | qty | condition | note | ref | operator
func (rd *Reader) readTransactions(f *excelize.File) ([]importer.Row, []importer.RowError, error) {
	cells, err := f.GetRows(SheetTransactions)
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %s: %w", SheetTransactions, err)
	}
	var (
		rows    []importer.Row
		rowErrs []importer.RowError
	)
	for i, cols := range cells {
		if i == 0 || blankRow(cols) {
			continue
		}
		rowNum := i + 1
		row := importer.Row{
			Sheet:       SheetTransactions,
			RowNumber:   rowNum,
			TxnType:     strings.ToUpper(cell(cols, 0)),
			ProjectCode: cell(cols, 1),
			MPN:         cell(cols, 2),
			Location:    cell(cols, 3),
			Condition:   cell(cols, 5),
			Note:        cell(cols, 6),
			Ref:         cell(cols, 7),
			Operator:    cell(cols, 8),
		}
		qty, qtyErr := parseQty(cell(cols, 4))
		if qtyErr != nil {
			rowErrs = append(rowErrs, importer.RowError{
				Sheet: SheetTransactions, Row: rowNum, Field: "qty",
				Reason: "VALIDATION: " + qtyErr.Error(),
			})
			continue
		}
		row.Qty = qty
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

// readStockIO lee las hojas con tipo implícito.
// StockIn  (8 cols): project | mpn | location | qty | condition | note | ref | operator
// StockOut (7 cols): project | mpn | location | qty | note | ref | operator
func (rd *Reader) readStockIO(f *excelize.File) ([]importer.Row, []importer.RowError, error) {
	var (
		rows    []importer.Row
		rowErrs []importer.RowError
	)
	if hasSheet(f, SheetStockIn) {
		cells, err := f.GetRows(SheetStockIn)
		if err != nil {
			return nil, nil, fmt.Errorf("leer hoja %s: %w", SheetStockIn, err)
		}
		for i, cols := range cells {
			if i == 0 || blankRow(cols) {
				continue
			}
			rowNum := i + 1
			qty, qtyErr := parseQty(cell(cols, 3))
			if qtyErr != nil {
				rowErrs = append(rowErrs, importer.RowError{
					Sheet: SheetStockIn, Row: rowNum, Field: "qty",
					Reason: "VALIDATION: " + qtyErr.Error(),
				})
				continue
			}
			rows = append(rows, importer.Row{
				Sheet:       SheetStockIn,
				RowNumber:   rowNum,
				TxnType:     entity.TxnTypeIN,
				ProjectCode: cell(cols, 0),
				MPN:         cell(cols, 1),
				Location:    cell(cols, 2),
				Qty:         qty,
				Condition:   cell(cols, 4),
				Note:        cell(cols, 5),
				Ref:         cell(cols, 6),
				Operator:    cell(cols, 7),
			})
		}
	}
	if hasSheet(f, SheetStockOut) {
		cells, err := f.GetRows(SheetStockOut)
		if err != nil {
			return nil, nil, fmt.Errorf("leer hoja %s: %w", SheetStockOut, err)
		}
		for i, cols := range cells {
			if i == 0 || blankRow(cols) {
				continue
			}
			rowNum := i + 1
			qty, qtyErr := parseQty(cell(cols, 3))
			if qtyErr != nil {
				rowErrs = append(rowErrs, importer.RowError{
					Sheet: SheetStockOut, Row: rowNum, Field: "qty",
					Reason: "VALIDATION: " + qtyErr.Error(),
				})
				continue
			}
			rows = append(rows, importer.Row{
				Sheet:       SheetStockOut,
				RowNumber:   rowNum,
				TxnType:     entity.TxnTypeOUT,
				ProjectCode: cell(cols, 0),
				MPN:         cell(cols, 1),
				Location:    cell(cols, 2),
				Qty:         qty,
				Condition:   entity.ConditionNew,
				Note:        cell(cols, 4),
				Ref:         cell(cols, 5),
				Operator:    cell(cols, 6),
			})
		}
	}
	return rows, rowErrs, nil
}

// parseQty convierte la celda a entero exacto. Excel guarda números como
// flotantes, así que "10.0" es válido pero "10.5" no: una cantidad
// fraccionaria es un error de la fila, jamás se redondea.
func parseQty(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("qty vacío")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("qty %q no es un número", raw)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("qty %q no es un entero", raw)
	}
	return d.IntPart(), nil
}

func hasSheet(f *excelize.File, name string) bool {
	idx, err := f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func cell(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[i])
}

func blankRow(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
