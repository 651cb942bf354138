package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.PartRepository        = (*PartRepo)(nil)
	_ repository.LocationRepository    = (*LocationRepo)(nil)
	_ repository.ProjectRepository     = (*ProjectRepo)(nil)
	_ repository.BOMRepository         = (*BOMRepo)(nil)
	_ repository.StockRepository       = (*StockRepo)(nil)
	_ repository.AllocationRepository  = (*AllocationRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
)

// ── Parts ─────────────────────────────────────────────────────────────────────

type PartRepo struct{ a *accessor }

func (r *PartRepo) Create(part *entity.Part) error {
	return r.a.with(func(d *dataset) error {
		for _, p := range d.parts {
			if p.MPN == part.MPN {
				return fmt.Errorf("mpn %q: %w", part.MPN, domain.ErrDuplicate)
			}
		}
		d.parts[part.ID] = *part
		return nil
	})
}

func (r *PartRepo) Update(part *entity.Part) error {
	return r.a.with(func(d *dataset) error {
		d.parts[part.ID] = *part
		return nil
	})
}

func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	var out *entity.Part
	err := r.a.with(func(d *dataset) error {
		if p, ok := d.parts[id]; ok {
			cp := p
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *PartRepo) GetByMPN(mpn string) (*entity.Part, error) {
	var out *entity.Part
	err := r.a.with(func(d *dataset) error {
		for _, p := range d.parts {
			if p.MPN == mpn {
				cp := p
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *PartRepo) List(search string, limit, offset int) ([]*entity.Part, error) {
	var all []*entity.Part
	err := r.a.with(func(d *dataset) error {
		needle := strings.ToLower(search)
		for _, p := range d.parts {
			if search == "" ||
				strings.Contains(strings.ToLower(p.MPN), needle) ||
				strings.Contains(strings.ToLower(p.Name), needle) {
				cp := p
				all = append(all, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].MPN < all[j].MPN })
	return page(all, limit, offset), nil
}

func (r *PartRepo) IsReferenced(id string) (bool, error) {
	var referenced bool
	err := r.a.with(func(d *dataset) error {
		for _, s := range d.stock {
			if s.PartID == id {
				referenced = true
				return nil
			}
		}
		for _, a := range d.allocs {
			if a.PartID == id {
				referenced = true
				return nil
			}
		}
		for _, l := range d.lines {
			if l.PartID == id {
				referenced = true
				return nil
			}
		}
		for _, b := range d.bom {
			if b.PartID == id {
				referenced = true
				return nil
			}
		}
		return nil
	})
	return referenced, err
}

func (r *PartRepo) Delete(id string) error {
	return r.a.with(func(d *dataset) error {
		delete(d.parts, id)
		return nil
	})
}

// ── Locations ─────────────────────────────────────────────────────────────────

type LocationRepo struct{ a *accessor }

func (r *LocationRepo) Create(loc *entity.Location) error {
	return r.a.with(func(d *dataset) error {
		if _, ok := d.locations[loc.Code]; ok {
			return fmt.Errorf("ubicación %q: %w", loc.Code, domain.ErrDuplicate)
		}
		d.locations[loc.Code] = *loc
		return nil
	})
}

func (r *LocationRepo) CreateIfAbsent(loc *entity.Location) (bool, error) {
	var created bool
	err := r.a.with(func(d *dataset) error {
		if _, ok := d.locations[loc.Code]; ok {
			return nil
		}
		d.locations[loc.Code] = *loc
		created = true
		return nil
	})
	return created, err
}

func (r *LocationRepo) Get(code string) (*entity.Location, error) {
	var out *entity.Location
	err := r.a.with(func(d *dataset) error {
		if l, ok := d.locations[code]; ok {
			cp := l
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) Exists(code string) (bool, error) {
	var ok bool
	err := r.a.with(func(d *dataset) error {
		_, ok = d.locations[code]
		return nil
	})
	return ok, err
}

func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	var all []*entity.Location
	err := r.a.with(func(d *dataset) error {
		for _, l := range d.locations {
			cp := l
			all = append(all, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return page(all, limit, offset), nil
}

// ── Projects ──────────────────────────────────────────────────────────────────

type ProjectRepo struct{ a *accessor }

func (r *ProjectRepo) Create(project *entity.Project) error {
	return r.a.with(func(d *dataset) error {
		for _, p := range d.projects {
			if p.Code == project.Code {
				return fmt.Errorf("proyecto %q: %w", project.Code, domain.ErrDuplicate)
			}
		}
		d.projects[project.ID] = *project
		return nil
	})
}

func (r *ProjectRepo) Update(project *entity.Project) error {
	return r.a.with(func(d *dataset) error {
		d.projects[project.ID] = *project
		return nil
	})
}

func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	var out *entity.Project
	err := r.a.with(func(d *dataset) error {
		if p, ok := d.projects[id]; ok {
			cp := p
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *ProjectRepo) GetByCode(code string) (*entity.Project, error) {
	var out *entity.Project
	err := r.a.with(func(d *dataset) error {
		for _, p := range d.projects {
			if p.Code == code {
				cp := p
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProjectRepo) List(limit, offset int) ([]*entity.Project, error) {
	var all []*entity.Project
	err := r.a.with(func(d *dataset) error {
		for _, p := range d.projects {
			cp := p
			all = append(all, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return page(all, limit, offset), nil
}

// ── BOM ───────────────────────────────────────────────────────────────────────

type BOMRepo struct{ a *accessor }

func (r *BOMRepo) Upsert(line *entity.BOMLine) error {
	return r.a.with(func(d *dataset) error {
		for id, b := range d.bom {
			if b.ProjectID == line.ProjectID && b.PartID == line.PartID {
				b.ReqQty = line.ReqQty
				b.Priority = line.Priority
				b.Note = line.Note
				b.UpdatedAt = line.UpdatedAt
				d.bom[id] = b
				return nil
			}
		}
		d.bom[line.ID] = *line
		return nil
	})
}

func (r *BOMRepo) ListByProject(projectID string) ([]*entity.BOMLine, error) {
	var all []*entity.BOMLine
	err := r.a.with(func(d *dataset) error {
		for _, b := range d.bom {
			if b.ProjectID == projectID {
				cp := b
				all = append(all, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Priority != all[j].Priority {
			return all[i].Priority < all[j].Priority
		}
		return all[i].PartID < all[j].PartID
	})
	return all, nil
}

func (r *BOMRepo) Delete(projectID, partID string) error {
	return r.a.with(func(d *dataset) error {
		for id, b := range d.bom {
			if b.ProjectID == projectID && b.PartID == partID {
				delete(d.bom, id)
				return nil
			}
		}
		return nil
	})
}

// ── Stock ─────────────────────────────────────────────────────────────────────

type StockRepo struct{ a *accessor }

func (r *StockRepo) Get(partID, location, condition string) (*entity.Stock, error) {
	return r.get(partID, location, condition)
}

// GetForUpdate en memoria es igual a Get: la unidad entera corre con el mutex
// del Store tomado, así que no hay concurrencia dentro del clon.
func (r *StockRepo) GetForUpdate(partID, location, condition string) (*entity.Stock, error) {
	return r.get(partID, location, condition)
}

func (r *StockRepo) get(partID, location, condition string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.a.with(func(d *dataset) error {
		if s, ok := d.stock[stockKey(partID, location, condition)]; ok {
			cp := s
			out = &cp
			return nil
		}
		out = &entity.Stock{
			ID:        stockKey(partID, location, condition),
			PartID:    partID,
			Location:  location,
			Condition: condition,
			Qty:       0,
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) Upsert(stock *entity.Stock) error {
	return r.a.with(func(d *dataset) error {
		d.stock[stockKey(stock.PartID, stock.Location, stock.Condition)] = *stock
		return nil
	})
}

func (r *StockRepo) SumByPart(partID string) (int64, error) {
	var sum int64
	err := r.a.with(func(d *dataset) error {
		for _, s := range d.stock {
			if s.PartID == partID {
				sum += s.Qty
			}
		}
		return nil
	})
	return sum, err
}

func (r *StockRepo) SumByPartLocation(partID, location string) (int64, error) {
	var sum int64
	err := r.a.with(func(d *dataset) error {
		for _, s := range d.stock {
			if s.PartID == partID && s.Location == location {
				sum += s.Qty
			}
		}
		return nil
	})
	return sum, err
}

func (r *StockRepo) ListByPart(partID string) ([]*entity.Stock, error) {
	var all []*entity.Stock
	err := r.a.with(func(d *dataset) error {
		for _, s := range d.stock {
			if s.PartID == partID {
				cp := s
				all = append(all, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Location != all[j].Location {
			return all[i].Location < all[j].Location
		}
		return all[i].Condition < all[j].Condition
	})
	return all, nil
}

func (r *StockRepo) List(filter repository.StockFilter) ([]repository.StockRow, error) {
	var all []repository.StockRow
	err := r.a.with(func(d *dataset) error {
		for _, s := range d.stock {
			part, ok := d.parts[s.PartID]
			if !ok {
				continue
			}
			if filter.MPN != "" && part.MPN != filter.MPN {
				continue
			}
			if filter.Location != "" && s.Location != filter.Location {
				continue
			}
			if filter.Condition != "" && s.Condition != filter.Condition {
				continue
			}
			all = append(all, repository.StockRow{
				MPN:       part.MPN,
				Location:  s.Location,
				Condition: s.Condition,
				Qty:       s.Qty,
				Note:      s.Note,
				UpdatedAt: s.UpdatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].MPN != all[j].MPN {
			return all[i].MPN < all[j].MPN
		}
		if all[i].Location != all[j].Location {
			return all[i].Location < all[j].Location
		}
		return all[i].Condition < all[j].Condition
	})
	return page(all, filter.Limit, filter.Offset), nil
}

// ── Allocations ───────────────────────────────────────────────────────────────

type AllocationRepo struct{ a *accessor }

func (r *AllocationRepo) Create(alloc *entity.Allocation) error {
	return r.a.with(func(d *dataset) error {
		d.allocs[alloc.ID] = *alloc
		return nil
	})
}

func (r *AllocationRepo) GetByID(id string) (*entity.Allocation, error) {
	return r.get(id)
}

func (r *AllocationRepo) GetByIDForUpdate(id string) (*entity.Allocation, error) {
	return r.get(id)
}

func (r *AllocationRepo) get(id string) (*entity.Allocation, error) {
	var out *entity.Allocation
	err := r.a.with(func(d *dataset) error {
		if a, ok := d.allocs[id]; ok {
			cp := a
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *AllocationRepo) Update(alloc *entity.Allocation) error {
	return r.a.with(func(d *dataset) error {
		d.allocs[alloc.ID] = *alloc
		return nil
	})
}

func (r *AllocationRepo) SumReservedByPart(partID, excludeID string) (int64, error) {
	var sum int64
	err := r.a.with(func(d *dataset) error {
		for _, a := range d.allocs {
			if a.PartID == partID && a.Status == entity.AllocationStatusReserved && a.ID != excludeID {
				sum += a.Qty
			}
		}
		return nil
	})
	return sum, err
}

func (r *AllocationRepo) SumReservedByPartLocation(partID, location, excludeID string) (int64, error) {
	var sum int64
	err := r.a.with(func(d *dataset) error {
		for _, a := range d.allocs {
			if a.PartID == partID && a.Status == entity.AllocationStatusReserved &&
				a.ID != excludeID && a.Location != nil && *a.Location == location {
				sum += a.Qty
			}
		}
		return nil
	})
	return sum, err
}

func (r *AllocationRepo) ListByProject(projectID string) ([]*entity.Allocation, error) {
	var all []*entity.Allocation
	err := r.a.with(func(d *dataset) error {
		for _, a := range d.allocs {
			if a.ProjectID == projectID {
				cp := a
				all = append(all, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

// ── Transactions ──────────────────────────────────────────────────────────────

type TransactionRepo struct{ a *accessor }

func (r *TransactionRepo) CreateHeader(header *entity.TransactionHeader) error {
	return r.a.with(func(d *dataset) error {
		d.txns = append(d.txns, *header)
		return nil
	})
}

func (r *TransactionRepo) AppendLine(line *entity.TransactionLine) error {
	return r.a.with(func(d *dataset) error {
		d.lines = append(d.lines, *line)
		return nil
	})
}

func (r *TransactionRepo) Query(filter repository.TxnFilter) ([]*entity.TransactionWithLines, error) {
	var all []*entity.TransactionWithLines
	err := r.a.with(func(d *dataset) error {
		for _, h := range d.txns {
			if filter.ProjectID != nil && (h.ProjectID == nil || *h.ProjectID != *filter.ProjectID) {
				continue
			}
			if filter.Since != nil && h.CreatedAt.Before(*filter.Since) {
				continue
			}
			if filter.Until != nil && h.CreatedAt.After(*filter.Until) {
				continue
			}
			txn := &entity.TransactionWithLines{Header: h}
			for _, l := range d.lines {
				if l.TxnID == h.ID {
					txn.Lines = append(txn.Lines, l)
				}
			}
			if filter.PartID != nil {
				touches := false
				for _, l := range txn.Lines {
					if l.PartID == *filter.PartID {
						touches = true
						break
					}
				}
				if !touches {
					continue
				}
			}
			all = append(all, txn)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Header.CreatedAt.Equal(all[j].Header.CreatedAt) {
			return all[i].Header.CreatedAt.Before(all[j].Header.CreatedAt)
		}
		return all[i].Header.ID < all[j].Header.ID
	})
	return page(all, filter.Limit, filter.Offset), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
