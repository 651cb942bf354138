package dto

import "time"

// StockOpRequest body para POST /api/v1/stock/in y /api/v1/stock/out.
type StockOpRequest struct {
	MPN         string `json:"mpn" example:"SN74LVC1G08DBVR"`
	Location    string `json:"location" example:"C409-G01-S01-P01"`
	Qty         int64  `json:"qty" example:"10"`
	Condition   string `json:"condition,omitempty" example:"new"`
	ProjectCode string `json:"project_code,omitempty" example:"PJ-001"`
	Ref         string `json:"ref,omitempty" example:"BATCH-001"`
	Note        string `json:"note,omitempty"`
	Operator    string `json:"operator,omitempty" example:"alice"`
}

// StockMoveRequest body para POST /api/v1/stock/move.
type StockMoveRequest struct {
	MPN          string `json:"mpn"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	Qty          int64  `json:"qty"`
	Condition    string `json:"condition,omitempty"`
	ProjectCode  string `json:"project_code,omitempty"`
	Ref          string `json:"ref,omitempty"`
	Note         string `json:"note,omitempty"`
	Operator     string `json:"operator,omitempty"`
}

// StockAdjustRequest body para POST /api/v1/stock/adjust. Exactamente uno de
// add_qty/sub_qty debe ser positivo; la nota es obligatoria.
type StockAdjustRequest struct {
	MPN       string `json:"mpn"`
	Location  string `json:"location"`
	AddQty    int64  `json:"add_qty,omitempty"`
	SubQty    int64  `json:"sub_qty,omitempty"`
	Condition string `json:"condition,omitempty"`
	Note      string `json:"note"`
	Ref       string `json:"ref,omitempty"`
	Operator  string `json:"operator,omitempty"`
}

// StockLineResponse efecto de una línea aplicada.
type StockLineResponse struct {
	Location  string `json:"location"`
	Condition string `json:"condition"`
	QtyDelta  int64  `json:"qty_delta"`
	NewQty    int64  `json:"new_qty"`
}

// StockOpResponse resultado de una operación del ledger.
type StockOpResponse struct {
	TxnID string              `json:"txn_id"`
	Type  string              `json:"type"`
	Ref   string              `json:"ref,omitempty"`
	Lines []StockLineResponse `json:"lines"`
}

// StockEntryResponse una entrada de stock en listados.
type StockEntryResponse struct {
	MPN       string    `json:"mpn"`
	Location  string    `json:"location"`
	Condition string    `json:"condition"`
	Qty       int64     `json:"qty"`
	Note      string    `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockListResponse listado de stock filtrado.
type StockListResponse struct {
	Items []StockEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
