package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReportRepo consultas de reporte sobre el almacén en memoria.
type ReportRepo struct {
	store *Store
}

// NewReportRepo construye el repositorio de reportes.
func NewReportRepo(s *Store) *ReportRepo {
	return &ReportRepo{store: s}
}

var _ repository.ReportRepository = (*ReportRepo)(nil)

// MaterialStatus cruza BOM, reservas y stock del proyecto.
func (r *ReportRepo) MaterialStatus(ctx context.Context, projectID string) ([]repository.MaterialStatusRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d := r.store.data

	var rows []repository.MaterialStatusRow
	for _, b := range d.bom {
		if b.ProjectID != projectID {
			continue
		}
		part, ok := d.parts[b.PartID]
		if !ok {
			continue
		}
		var reserved, consumed, onHand int64
		for _, a := range d.allocs {
			if a.ProjectID != projectID || a.PartID != b.PartID {
				continue
			}
			switch a.Status {
			case entity.AllocationStatusReserved:
				reserved += a.Qty
			case entity.AllocationStatusConsumed:
				consumed += a.Qty
			}
		}
		for _, s := range d.stock {
			if s.PartID == b.PartID {
				onHand += s.Qty
			}
		}
		short := b.ReqQty - reserved - consumed
		if short < 0 {
			short = 0
		}
		rows = append(rows, repository.MaterialStatusRow{
			PartID:      b.PartID,
			MPN:         part.MPN,
			PartName:    part.Name,
			RequiredQty: b.ReqQty,
			ReservedQty: reserved,
			ConsumedQty: consumed,
			OnHandQty:   onHand,
			ShortQty:    short,
			Priority:    b.Priority,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Priority != rows[j].Priority {
			return rows[i].Priority < rows[j].Priority
		}
		return rows[i].MPN < rows[j].MPN
	})
	return rows, nil
}

// LedgerAudit compara la suma de deltas del ledger contra el stock vigente de
// cada combinación. Cero filas significa consistencia total.
func (r *ReportRepo) LedgerAudit(ctx context.Context) ([]repository.AuditMismatchRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d := r.store.data

	sums := inventory.ReconcileLines(d.lines)
	stockQty := make(map[inventory.StockKey]int64)
	for _, s := range d.stock {
		stockQty[inventory.StockKey{PartID: s.PartID, Location: s.Location, Condition: s.Condition}] = s.Qty
	}

	seen := make(map[inventory.StockKey]bool)
	var rows []repository.AuditMismatchRow
	appendMismatch := func(c inventory.StockKey) {
		if seen[c] {
			return
		}
		seen[c] = true
		if stockQty[c] == sums[c] {
			return
		}
		mpn := ""
		if p, ok := d.parts[c.PartID]; ok {
			mpn = p.MPN
		}
		rows = append(rows, repository.AuditMismatchRow{
			PartID:    c.PartID,
			MPN:       mpn,
			Location:  c.Location,
			Condition: c.Condition,
			StockQty:  stockQty[c],
			LedgerSum: sums[c],
		})
	}
	for c := range stockQty {
		appendMismatch(c)
	}
	for c := range sums {
		appendMismatch(c)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MPN != rows[j].MPN {
			return rows[i].MPN < rows[j].MPN
		}
		return rows[i].Location < rows[j].Location
	})
	return rows, nil
}
