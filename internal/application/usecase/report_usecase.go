package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ReportUseCase estado de material por proyecto: cruce BOM vs reservas vs
// stock físico. Sólo lectura, insumo de planificación.
type ReportUseCase struct {
	reports  repository.ReportRepository
	projects repository.ProjectRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reports repository.ReportRepository, projects repository.ProjectRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports, projects: projects}
}

// MaterialStatus calcula por componente del BOM: requerido, reservado,
// consumido, en mano y faltante (max(0, requerido - reservado - consumido)).
func (uc *ReportUseCase) MaterialStatus(ctx context.Context, projectCode string) ([]dto.MaterialStatusResponse, error) {
	project, err := uc.projects.GetByCode(projectCode)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("proyecto %q: %w", projectCode, domain.ErrUnknownProject)
	}
	rows, err := uc.reports.MaterialStatus(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialStatusResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MaterialStatusResponse{
			MPN:         r.MPN,
			PartName:    r.PartName,
			RequiredQty: r.RequiredQty,
			ReservedQty: r.ReservedQty,
			ConsumedQty: r.ConsumedQty,
			OnHandQty:   r.OnHandQty,
			ShortQty:    r.ShortQty,
			Priority:    r.Priority,
		})
	}
	return out, nil
}
