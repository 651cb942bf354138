package entity

import "time"

// Estados de una reserva. reserved es el único estado activo; consumed y
// released son terminales y la reserva no se vuelve a mutar después.
const (
	AllocationStatusReserved = "reserved"
	AllocationStatusConsumed = "consumed"
	AllocationStatusReleased = "released"
)

// Allocation representa una reserva: un derecho de `Qty` unidades de un
// componente a favor de un proyecto, opcionalmente fijado a una ubicación.
// No mueve stock por sí misma; al consumirse dispara la salida física.
type Allocation struct {
	ID        string
	ProjectID string
	PartID    string
	Location  *string
	Condition string
	Qty       int64
	Status    string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal indica si la reserva ya no admite transiciones.
func (a *Allocation) IsTerminal() bool {
	return a.Status == AllocationStatusConsumed || a.Status == AllocationStatusReleased
}
