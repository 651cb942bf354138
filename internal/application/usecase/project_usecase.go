package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ProjectUseCase proyectos de ingeniería y sus BOM. El BOM es insumo de
// planificación: no participa de las invariantes del ledger.
type ProjectUseCase struct {
	repo  repository.ProjectRepository
	bom   repository.BOMRepository
	parts repository.PartRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, bom repository.BOMRepository, parts repository.PartRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, bom: bom, parts: parts}
}

// Create registra un proyecto. El código es único.
func (uc *ProjectUseCase) Create(in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Code == "" {
		return nil, fmt.Errorf("código vacío: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("proyecto %q: %w", in.Code, domain.ErrDuplicate)
	}
	now := time.Now().UTC()
	project := &entity.Project{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Owner:     in.Owner,
		Status:    entity.ProjectStatusActive,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// GetByCode obtiene un proyecto por código.
func (uc *ProjectUseCase) GetByCode(code string) (*dto.ProjectResponse, error) {
	project, err := uc.mustGet(code)
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// Update edita un proyecto existente.
func (uc *ProjectUseCase) Update(code string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.mustGet(code)
	if err != nil {
		return nil, err
	}
	applyIfSet(&project.Name, in.Name)
	applyIfSet(&project.Owner, in.Owner)
	applyIfSet(&project.Status, in.Status)
	applyIfSet(&project.Note, in.Note)
	project.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(project); err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// List lista proyectos con paginación.
func (uc *ProjectUseCase) List(limit, offset int) (*dto.ProjectListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProjectResponse(p))
	}
	return &dto.ProjectListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// SetBOMLine inserta o reemplaza la línea del BOM de (proyecto, componente).
func (uc *ProjectUseCase) SetBOMLine(code string, in dto.BOMLineRequest) (*dto.BOMLineResponse, error) {
	if in.ReqQty <= 0 {
		return nil, fmt.Errorf("req_qty %d: %w", in.ReqQty, domain.ErrInvalidInput)
	}
	project, err := uc.mustGet(code)
	if err != nil {
		return nil, err
	}
	part, err := uc.parts.GetByMPN(in.MPN)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("mpn %q: %w", in.MPN, domain.ErrUnknownPart)
	}
	priority := in.Priority
	if priority <= 0 {
		priority = 100
	}
	now := time.Now().UTC()
	line := &entity.BOMLine{
		ID:        uuid.New().String(),
		ProjectID: project.ID,
		PartID:    part.ID,
		ReqQty:    in.ReqQty,
		Priority:  priority,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.bom.Upsert(line); err != nil {
		return nil, err
	}
	return &dto.BOMLineResponse{
		MPN:      part.MPN,
		PartName: part.Name,
		ReqQty:   line.ReqQty,
		Priority: line.Priority,
		Note:     line.Note,
	}, nil
}

// ListBOM lista el BOM de un proyecto con el componente resuelto.
func (uc *ProjectUseCase) ListBOM(code string) ([]dto.BOMLineResponse, error) {
	project, err := uc.mustGet(code)
	if err != nil {
		return nil, err
	}
	lines, err := uc.bom.ListByProject(project.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BOMLineResponse, 0, len(lines))
	for _, line := range lines {
		item := dto.BOMLineResponse{ReqQty: line.ReqQty, Priority: line.Priority, Note: line.Note}
		part, err := uc.parts.GetByID(line.PartID)
		if err != nil {
			return nil, err
		}
		if part != nil {
			item.MPN = part.MPN
			item.PartName = part.Name
		}
		out = append(out, item)
	}
	return out, nil
}

// DeleteBOMLine borra la línea del BOM de (proyecto, componente).
func (uc *ProjectUseCase) DeleteBOMLine(code, mpn string) error {
	project, err := uc.mustGet(code)
	if err != nil {
		return err
	}
	part, err := uc.parts.GetByMPN(mpn)
	if err != nil {
		return err
	}
	if part == nil {
		return fmt.Errorf("mpn %q: %w", mpn, domain.ErrUnknownPart)
	}
	return uc.bom.Delete(project.ID, part.ID)
}

func (uc *ProjectUseCase) mustGet(code string) (*entity.Project, error) {
	if code == "" {
		return nil, fmt.Errorf("código vacío: %w", domain.ErrInvalidInput)
	}
	project, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("proyecto %q: %w", code, domain.ErrUnknownProject)
	}
	return project, nil
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		Owner:     p.Owner,
		Status:    p.Status,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
