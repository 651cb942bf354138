package dto

import "time"

// TransactionLineResponse una línea del ledger.
type TransactionLineResponse struct {
	ID        string    `json:"id"`
	MPN       string    `json:"mpn"`
	Location  string    `json:"location"`
	Condition string    `json:"condition"`
	QtyDelta  int64     `json:"qty_delta"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionResponse una cabecera del ledger con sus líneas.
type TransactionResponse struct {
	ID        string                    `json:"id"`
	Type      string                    `json:"type"`
	ProjectID *string                   `json:"project_id,omitempty"`
	Ref       string                    `json:"ref,omitempty"`
	Note      string                    `json:"note,omitempty"`
	Operator  string                    `json:"operator,omitempty"`
	CreatedAt time.Time                 `json:"created_at"`
	Lines     []TransactionLineResponse `json:"lines"`
}

// LedgerResponse página del historial, en orden ascendente de creación.
type LedgerResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// AuditMismatchResponse discrepancia entre la suma del ledger y el stock.
// Una auditoría sana devuelve lista vacía.
type AuditMismatchResponse struct {
	MPN       string `json:"mpn"`
	Location  string `json:"location"`
	Condition string `json:"condition"`
	StockQty  int64  `json:"stock_qty"`
	LedgerSum int64  `json:"ledger_sum"`
}

// MaterialStatusResponse estado de material de un proyecto por componente.
type MaterialStatusResponse struct {
	MPN         string `json:"mpn"`
	PartName    string `json:"part_name"`
	RequiredQty int64  `json:"required_qty"`
	ReservedQty int64  `json:"reserved_qty"`
	ConsumedQty int64  `json:"consumed_qty"`
	OnHandQty   int64  `json:"on_hand_qty"`
	ShortQty    int64  `json:"short_qty"`
	Priority    int    `json:"priority"`
}
