package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de sólo lectura para reportes. Opera sobre el pool
// directamente: los reportes son instantáneas, no unidades atómicas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// MaterialStatus cruza el BOM del proyecto con sus reservas y el stock global
// de cada componente. short = max(0, requerido - reservado - consumido).
func (r *ReportRepo) MaterialStatus(ctx context.Context, projectID string) ([]repository.MaterialStatusRow, error) {
	query := `
		SELECT b.part_id,
		       p.mpn,
		       p.name,
		       b.req_qty,
		       COALESCE(res.qty, 0)  AS reserved_qty,
		       COALESCE(cons.qty, 0) AS consumed_qty,
		       COALESCE(st.qty, 0)   AS on_hand_qty,
		       GREATEST(b.req_qty - COALESCE(res.qty, 0) - COALESCE(cons.qty, 0), 0) AS short_qty,
		       b.priority
		FROM project_bom b
		JOIN parts p ON p.id = b.part_id
		LEFT JOIN (
			SELECT part_id, SUM(alloc_qty) AS qty
			FROM project_alloc
			WHERE project_id = $1 AND status = 'reserved'
			GROUP BY part_id
		) res ON res.part_id = b.part_id
		LEFT JOIN (
			SELECT part_id, SUM(alloc_qty) AS qty
			FROM project_alloc
			WHERE project_id = $1 AND status = 'consumed'
			GROUP BY part_id
		) cons ON cons.part_id = b.part_id
		LEFT JOIN (
			SELECT part_id, SUM(qty) AS qty
			FROM stock
			GROUP BY part_id
		) st ON st.part_id = b.part_id
		WHERE b.project_id = $1
		ORDER BY b.priority, p.mpn`

	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("material status: %w", err)
	}
	defer rows.Close()
	var list []repository.MaterialStatusRow
	for rows.Next() {
		var row repository.MaterialStatusRow
		if err := rows.Scan(&row.PartID, &row.MPN, &row.PartName, &row.RequiredQty,
			&row.ReservedQty, &row.ConsumedQty, &row.OnHandQty, &row.ShortQty, &row.Priority); err != nil {
			return nil, fmt.Errorf("scan material status: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// LedgerAudit compara la suma de deltas del ledger contra la cantidad actual
// de cada combinación. FULL OUTER JOIN: detecta tanto stock sin líneas como
// líneas sin stock. Cero filas = ledger y stock coherentes.
func (r *ReportRepo) LedgerAudit(ctx context.Context) ([]repository.AuditMismatchRow, error) {
	query := `
		SELECT COALESCE(s.part_id, l.part_id)     AS part_id,
		       COALESCE(p.mpn, '')                AS mpn,
		       COALESCE(s.location, l.location)   AS location,
		       COALESCE(s.condition, l.condition) AS condition,
		       COALESCE(s.qty, 0)                 AS stock_qty,
		       COALESCE(l.delta_sum, 0)           AS ledger_sum
		FROM stock s
		FULL OUTER JOIN (
			SELECT part_id, location, condition, SUM(qty_delta) AS delta_sum
			FROM inventory_txn_line
			GROUP BY part_id, location, condition
		) l ON l.part_id = s.part_id AND l.location = s.location AND l.condition = s.condition
		LEFT JOIN parts p ON p.id = COALESCE(s.part_id, l.part_id)
		WHERE COALESCE(s.qty, 0) <> COALESCE(l.delta_sum, 0)
		ORDER BY mpn, location, condition`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ledger audit: %w", err)
	}
	defer rows.Close()
	var list []repository.AuditMismatchRow
	for rows.Next() {
		var row repository.AuditMismatchRow
		if err := rows.Scan(&row.PartID, &row.MPN, &row.Location, &row.Condition,
			&row.StockQty, &row.LedgerSum); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
