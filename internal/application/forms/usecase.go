package forms

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// UseCase arma formularios de retiro (outbound) y devolución (inbound) de un
// proyecto: líneas del BOM con las ubicaciones de stock actuales y lo ya
// reservado, para que el operario trabaje con una sola hoja.
type UseCase struct {
	projects repository.ProjectRepository
	bom      repository.BOMRepository
	parts    repository.PartRepository
	stock    repository.StockRepository
	allocs   repository.AllocationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	projects repository.ProjectRepository,
	bom repository.BOMRepository,
	parts repository.PartRepository,
	stock repository.StockRepository,
	allocs repository.AllocationRepository,
) *UseCase {
	return &UseCase{projects: projects, bom: bom, parts: parts, stock: stock, allocs: allocs}
}

// Build arma el formulario pedido. Un proyecto sin BOM no tiene formulario.
func (uc *UseCase) Build(projectCode, kind string) (*Document, error) {
	if kind != KindOutbound && kind != KindInbound {
		return nil, fmt.Errorf("tipo de formulario %q (outbound|inbound): %w", kind, domain.ErrInvalidInput)
	}
	project, err := uc.projects.GetByCode(projectCode)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("proyecto %q: %w", projectCode, domain.ErrUnknownProject)
	}
	lines, err := uc.bom.ListByProject(project.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("proyecto %q sin BOM: %w", projectCode, domain.ErrNotFound)
	}

	reservedByPart, err := uc.reservedByPart(project.ID)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Kind:        kind,
		ProjectCode: project.Code,
		ProjectName: project.Name,
		GeneratedAt: time.Now().UTC(),
	}
	for _, line := range lines {
		part, err := uc.parts.GetByID(line.PartID)
		if err != nil {
			return nil, err
		}
		if part == nil {
			continue
		}
		locations, err := uc.locationSummary(line.PartID)
		if err != nil {
			return nil, err
		}
		doc.Rows = append(doc.Rows, Row{
			MPN:         part.MPN,
			Name:        part.Name,
			Unit:        part.Unit,
			RequiredQty: line.ReqQty,
			ReservedQty: reservedByPart[line.PartID],
			Locations:   locations,
		})
	}
	sort.Slice(doc.Rows, func(i, j int) bool { return doc.Rows[i].MPN < doc.Rows[j].MPN })
	for i := range doc.Rows {
		doc.Rows[i].Seq = i + 1
	}
	return doc, nil
}

// reservedByPart suma las reservas activas del proyecto por componente.
func (uc *UseCase) reservedByPart(projectID string) (map[string]int64, error) {
	allocs, err := uc.allocs.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	sums := make(map[string]int64)
	for _, a := range allocs {
		if a.Status == entity.AllocationStatusReserved {
			sums[a.PartID] += a.Qty
		}
	}
	return sums, nil
}

// locationSummary lista las ubicaciones con existencias de un componente.
func (uc *UseCase) locationSummary(partID string) (string, error) {
	entries, err := uc.stock.ListByPart(partID)
	if err != nil {
		return "", err
	}
	var parts []string
	for _, s := range entries {
		if s.Qty > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d)", s.Location, s.Qty))
		}
	}
	return strings.Join(parts, ", "), nil
}
