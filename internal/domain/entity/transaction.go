package entity

import "time"

// Tipos de transacción del ledger.
const (
	TxnTypeIN     = "IN"     // entrada
	TxnTypeOUT    = "OUT"    // salida (incluye consumo de reservas)
	TxnTypeADJUST = "ADJUST" // corrección de conteo
	TxnTypeMOVE   = "MOVE"   // traslado entre ubicaciones, dos líneas
)

// TransactionHeader representa una operación lógica aprobada del ledger.
// Inmutable después de crearse. ProjectID es opcional: presente sólo cuando
// la operación se hizo a cuenta de un proyecto.
type TransactionHeader struct {
	ID        string
	Type      string
	ProjectID *string
	Ref       string
	Note      string
	Operator  string
	CreatedAt time.Time
}

// TransactionLine representa el efecto de una transacción sobre una entrada
// de stock: un delta con signo sobre (parte, ubicación, condición). Inmutable.
// La suma de deltas de una combinación reconstruye su cantidad actual.
type TransactionLine struct {
	ID          string
	TxnID       string
	PartID      string
	MPNSnapshot string
	Location    string
	Condition   string
	QtyDelta    int64
	Note        string
	CreatedAt   time.Time
}

// TransactionWithLines agrupa una cabecera con sus líneas para consultas.
type TransactionWithLines struct {
	Header TransactionHeader
	Lines  []TransactionLine
}
