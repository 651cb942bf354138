package supplier_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/supplier"
)

// ──────────────────────────────────────────────────────────────────────────────
// CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestRead_CSVConEncabezadosChinos(t *testing.T) {
	csvData := "型号,商品名称,购买数量,封装,目录,参数,商品链接\n" +
		"STM32F103C8T6,MCU ARM Cortex-M3,25,LQFP-48,单片机,72MHz 64KB,https://item.example/123\n" +
		"0603WAF1002T5E,电阻 10kΩ,500,0603,贴片电阻,±1%,\n"

	rows, rowErrs, err := supplier.NewReader().Read(bytes.NewReader([]byte(csvData)), "pedido.csv")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, "STM32F103C8T6", rows[0].MPN)
	assert.Equal(t, "MCU ARM Cortex-M3", rows[0].Name)
	assert.Equal(t, int64(25), rows[0].Qty)
	assert.Equal(t, "LQFP-48", rows[0].Package)
	assert.Equal(t, "单片机", rows[0].Category)
	assert.Equal(t, "https://item.example/123", rows[0].URL)
	assert.Equal(t, 2, rows[0].RowNumber)

	assert.Equal(t, int64(500), rows[1].Qty)
}

func TestRead_CSVConEncabezadosIngleses(t *testing.T) {
	csvData := "Part Number,Description,Qty\nLM7805,Regulador 5V,10\n"

	rows, rowErrs, err := supplier.NewReader().Read(bytes.NewReader([]byte(csvData)), "order.csv")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "LM7805", rows[0].MPN)
	assert.Equal(t, "Regulador 5V", rows[0].Name)
	assert.Equal(t, int64(10), rows[0].Qty)
}

func TestRead_CSVConBOM(t *testing.T) {
	csvData := append([]byte{0xEF, 0xBB, 0xBF}, []byte("mpn,qty\nNE555P,3\n")...)

	rows, rowErrs, err := supplier.NewReader().Read(bytes.NewReader(csvData), "x.csv")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "NE555P", rows[0].MPN)
}

func TestRead_CSVEnGB18030(t *testing.T) {
	utf8Data := "型号,商品名称,购买数量\nHT7333-A,稳压芯片,40\n"
	gbData, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(utf8Data))
	require.NoError(t, err)

	rows, rowErrs, err := supplier.NewReader().Read(bytes.NewReader(gbData), "订单.csv")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "HT7333-A", rows[0].MPN)
	assert.Equal(t, "稳压芯片", rows[0].Name)
	assert.Equal(t, int64(40), rows[0].Qty)
}

func TestRead_FilaSinMPNSeReporta(t *testing.T) {
	csvData := "mpn,name,qty\n,sin número de parte,5\nNE555P,timer,1\n"

	rows, rowErrs, err := supplier.NewReader().Read(bytes.NewReader([]byte(csvData)), "x.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Row)
	assert.Equal(t, "mpn", rowErrs[0].Field)
	assert.Contains(t, rowErrs[0].Reason, "fila sin MPN")
}

func TestRead_CantidadFraccionaria(t *testing.T) {
	csvData := "mpn,qty\nNE555P,2.5\n"

	rows, rowErrs, err := supplier.NewReader().Read(bytes.NewReader([]byte(csvData)), "x.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.Len(t, rowErrs, 1)
	assert.Contains(t, rowErrs[0].Reason, "no es un entero")
}

func TestRead_SinColumnaMPNEsErrorDeArchivo(t *testing.T) {
	csvData := "name,qty\nalgo,1\n"

	_, _, err := supplier.NewReader().Read(bytes.NewReader([]byte(csvData)), "x.csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// XLSX
// ──────────────────────────────────────────────────────────────────────────────

func TestRead_XLSXPrimeraHoja(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for c, h := range []string{"型号", "商品名称", "购买数量"} {
		cellName, err := excelize.CoordinatesToCellName(c+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cellName, h))
	}
	for c, v := range []interface{}{"CH340G", "USB转串口", 12} {
		cellName, err := excelize.CoordinatesToCellName(c+1, 2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cellName, v))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, rowErrs, err := supplier.NewReader().Read(bytes.NewReader(buf.Bytes()), "pedido.XLSX")
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "CH340G", rows[0].MPN)
	assert.Equal(t, int64(12), rows[0].Qty)
}

func TestRead_XLSXIlegible(t *testing.T) {
	_, _, err := supplier.NewReader().Read(bytes.NewReader([]byte("no xlsx")), "x.xlsx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
