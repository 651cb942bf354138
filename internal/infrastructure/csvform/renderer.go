// Package csvform genera los formularios de almacén en CSV, con BOM UTF-8
// para que Excel los abra con la codificación correcta.
package csvform

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/forms"
)

// FormRenderer implementa forms.Renderer serializando a CSV.
type FormRenderer struct{}

// NewFormRenderer construye el renderizador.
func NewFormRenderer() *FormRenderer { return &FormRenderer{} }

// ContentType del resultado.
func (g *FormRenderer) ContentType() string { return "text/csv; charset=utf-8" }

// FileExtension del resultado.
func (g *FormRenderer) FileExtension() string { return "csv" }

const fieldCount = 7

// pad completa la fila hasta el ancho de la tabla; un CSV de ancho uniforme
// se puede releer con csv.Reader sin tocar FieldsPerRecord.
func pad(fields ...string) []string {
	row := make([]string, fieldCount)
	copy(row, fields)
	return row
}

// Render serializa el formulario. Las dos primeras filas son metadatos
// (tipo y proyecto); después vienen el encabezado y las líneas.
func (g *FormRenderer) Render(doc *forms.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	records := [][]string{
		pad("formulario", doc.Kind, doc.ProjectCode, doc.ProjectName),
		pad("generado", doc.GeneratedAt.Format("2006-01-02 15:04:05")),
		{"seq", "mpn", "nombre", "unidad", "requerido", "reservado", "ubicaciones"},
	}
	for _, l := range doc.Rows {
		records = append(records, []string{
			fmt.Sprintf("%d", l.Seq),
			l.MPN,
			l.Name,
			l.Unit,
			fmt.Sprintf("%d", l.RequiredQty),
			fmt.Sprintf("%d", l.ReservedQty),
			l.Locations,
		})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("csv: escribir formulario: %w", err)
	}
	return buf.Bytes(), nil
}
