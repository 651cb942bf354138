package csvform_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/forms"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/csvform"
)

func sampleDoc() *forms.Document {
	return &forms.Document{
		Kind:        forms.KindOutbound,
		ProjectCode: "PRJ-AMP",
		ProjectName: "Amplificador",
		GeneratedAt: time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC),
		Rows: []forms.Row{
			{Seq: 1, MPN: "ATMEGA328P", Name: "MCU AVR", Unit: "pcs", RequiredQty: 2, ReservedQty: 0, Locations: "C409-G01-S01-P01 (5)"},
			{Seq: 2, MPN: "C0805-100N", Name: "Capacitor, 100nF", Unit: "pcs", RequiredQty: 20, ReservedQty: 20, Locations: "C409-G01-S01-P02 (100), C409-G02-S01-P01 (50)"},
		},
	}
}

func TestRender_CSVConBOMYMetadatos(t *testing.T) {
	r := csvform.NewFormRenderer()
	assert.Equal(t, "text/csv; charset=utf-8", r.ContentType())
	assert.Equal(t, "csv", r.FileExtension())

	data, err := r.Render(sampleDoc())
	require.NoError(t, err)

	// BOM UTF-8 al inicio para que Excel detecte la codificación.
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	// El lector usa FieldsPerRecord por defecto: todas las filas deben tener
	// el mismo ancho, metadatos incluidos.
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5, "2 metadatos + encabezado + 2 líneas")

	assert.Equal(t, []string{"formulario", "outbound", "PRJ-AMP", "Amplificador", "", "", ""}, records[0])
	assert.Equal(t, "2026-08-23 10:30:00", records[1][1])
	assert.Equal(t, []string{"seq", "mpn", "nombre", "unidad", "requerido", "reservado", "ubicaciones"}, records[2])

	// Una línea con coma en el nombre sobrevive el round-trip.
	assert.Equal(t, "Capacitor, 100nF", records[4][2])
	assert.Equal(t, "20", records[4][4])
}
