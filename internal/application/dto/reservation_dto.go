package dto

import "time"

// ReserveRequest body para POST /api/v1/reservations.
type ReserveRequest struct {
	ProjectCode string `json:"project_code" example:"PJ-001"`
	MPN         string `json:"mpn" example:"SN74LVC1G08DBVR"`
	Location    string `json:"location,omitempty" example:"C409-G01-S01-P01"`
	Qty         int64  `json:"qty" example:"10"`
	Condition   string `json:"condition,omitempty"`
	Note        string `json:"note,omitempty"`
}

// UpdateAllocationRequest body para PATCH /api/v1/reservations/:id.
// Los campos ausentes no cambian.
type UpdateAllocationRequest struct {
	Qty      *int64  `json:"qty,omitempty"`
	Location *string `json:"location,omitempty"`
}

// AllocationResponse una reserva.
type AllocationResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	MPN       string    `json:"mpn,omitempty"`
	PartName  string    `json:"part_name,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Condition string    `json:"condition"`
	Qty       int64     `json:"qty"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConsumeResponse resultado de consumir una reserva: la reserva terminal más
// la transacción OUT que descontó el stock.
type ConsumeResponse struct {
	Allocation AllocationResponse `json:"allocation"`
	TxnID      string             `json:"txn_id"`
	NewQty     int64              `json:"new_qty"`
}
