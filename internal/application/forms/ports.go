package forms

import "time"

// Tipos de formulario de proyecto.
const (
	KindOutbound = "outbound" // picking: retirar material del almacén
	KindInbound  = "inbound"  // devolución/recepción de material
)

// Row una línea del formulario, con el contexto de stock que el operario
// necesita en mano.
type Row struct {
	Seq         int
	MPN         string
	Name        string
	Unit        string
	RequiredQty int64
	ReservedQty int64
	Locations   string // códigos con cantidad, ej. "C409-G01-S01-P01 (20)"
}

// Document un formulario armado, listo para renderizar.
type Document struct {
	Kind        string
	ProjectCode string
	ProjectName string
	GeneratedAt time.Time
	Rows        []Row
}

// Renderer serializa un formulario a bytes (PDF, CSV...). El caso de uso es
// agnóstico del formato final.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}
