package repository

import "context"

// MaterialStatusRow resultado crudo del estado de material de un proyecto.
// Lo produce la DB; el use case lo convierte en DTO.
type MaterialStatusRow struct {
	PartID      string
	MPN         string
	PartName    string
	RequiredQty int64 // cantidad requerida por el BOM
	ReservedQty int64 // reservas en estado reserved
	ConsumedQty int64 // reservas ya consumidas
	OnHandQty   int64 // stock físico en todas las ubicaciones
	ShortQty    int64 // max(0, required - reserved - consumed)
	Priority    int
}

// AuditMismatchRow discrepancia entre la suma de deltas del ledger y la
// cantidad actual de stock de una combinación. Una auditoría sana devuelve
// cero filas.
type AuditMismatchRow struct {
	PartID    string
	MPN       string
	Location  string
	Condition string
	StockQty  int64
	LedgerSum int64
}

// ReportRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	// MaterialStatus cruza BOM, reservas y stock de un proyecto.
	MaterialStatus(ctx context.Context, projectID string) ([]MaterialStatusRow, error)

	// LedgerAudit compara la suma de deltas del ledger contra el stock
	// actual de cada combinación (parte, ubicación, condición).
	LedgerAudit(ctx context.Context) ([]AuditMismatchRow, error)
}
