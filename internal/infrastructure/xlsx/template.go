package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var templateHeaders = map[string][]string{
	SheetTransactions: {"txn_type", "project_code", "mpn", "location", "qty", "condition", "note", "ref", "operator"},
	SheetStockIn:      {"project_code", "mpn", "location", "qty", "condition", "note", "ref", "operator"},
	SheetStockOut:     {"project_code", "mpn", "location", "qty", "note", "ref", "operator"},
}

// Filas de ejemplo para que el operario vea el formato esperado.
var templateSamples = map[string][]any{
	SheetTransactions: {"IN", "PJ-001", "SN74LVC1G08DBVR", "C409-G01-S01-P01", 10, "new", "primer lote", "PO-123", "alice"},
	SheetStockIn:      {"PJ-001", "SN74LVC1G08DBVR", "C409-G01-S01-P01", 10, "new", "primer lote", "PO-123", "alice"},
	SheetStockOut:     {"PJ-001", "SN74LVC1G08DBVR", "C409-G01-S01-P01", 5, "para armado", "", "bob"},
}

// WriteTemplate genera el libro plantilla con las tres hojas reconocidas,
// encabezados y una fila de ejemplo por hoja.
func WriteTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for _, sheet := range []string{SheetTransactions, SheetStockIn, SheetStockOut} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("crear hoja %s: %w", sheet, err)
		}
		headers := templateHeaders[sheet]
		for i, h := range headers {
			cellRef, err := excelize.CoordinatesToCellName(i+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cellRef, h); err != nil {
				return nil, fmt.Errorf("escribir encabezado %s: %w", sheet, err)
			}
		}
		for i, v := range templateSamples[sheet] {
			cellRef, err := excelize.CoordinatesToCellName(i+1, 2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cellRef, v); err != nil {
				return nil, fmt.Errorf("escribir ejemplo %s: %w", sheet, err)
			}
		}
	}
	// excelize crea "Sheet1" por defecto; se elimina para dejar sólo las hojas útiles.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("serializar plantilla: %w", err)
	}
	return buf.Bytes(), nil
}
