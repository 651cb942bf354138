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

// PartUseCase casos de uso CRUD del catálogo de componentes.
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

// Create registra un componente nuevo. El MPN es único.
func (uc *PartUseCase) Create(in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.MPN == "" {
		return nil, fmt.Errorf("mpn vacío: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByMPN(in.MPN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("mpn %q: %w", in.MPN, domain.ErrDuplicate)
	}
	now := time.Now().UTC()
	unit := in.Unit
	if unit == "" {
		unit = "pcs"
	}
	part := &entity.Part{
		ID:           uuid.New().String(),
		MPN:          in.MPN,
		Name:         in.Name,
		Category:     in.Category,
		Package:      in.Package,
		Params:       in.Params,
		Unit:         unit,
		ProductURL:   in.ProductURL,
		DatasheetURL: in.DatasheetURL,
		Note:         in.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByMPN obtiene un componente por su MPN.
func (uc *PartUseCase) GetByMPN(mpn string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByMPN(mpn)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("mpn %q: %w", mpn, domain.ErrUnknownPart)
	}
	return toPartResponse(part), nil
}

// Update edita los campos descriptivos de un componente. El MPN no cambia.
func (uc *PartUseCase) Update(mpn string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByMPN(mpn)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("mpn %q: %w", mpn, domain.ErrUnknownPart)
	}
	applyIfSet(&part.Name, in.Name)
	applyIfSet(&part.Category, in.Category)
	applyIfSet(&part.Package, in.Package)
	applyIfSet(&part.Params, in.Params)
	applyIfSet(&part.Unit, in.Unit)
	applyIfSet(&part.ProductURL, in.ProductURL)
	applyIfSet(&part.DatasheetURL, in.DatasheetURL)
	applyIfSet(&part.Note, in.Note)
	part.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// List busca componentes por fragmento de MPN o nombre.
func (uc *PartUseCase) List(search string, limit, offset int) (*dto.PartListResponse, error) {
	list, err := uc.repo.List(search, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un componente no referenciado. Si tiene stock, reservas o
// líneas de ledger que lo apunten, falla: el historial es reconstruible sólo
// si sus referencias siguen resolubles.
func (uc *PartUseCase) Delete(mpn string) error {
	part, err := uc.repo.GetByMPN(mpn)
	if err != nil {
		return err
	}
	if part == nil {
		return fmt.Errorf("mpn %q: %w", mpn, domain.ErrUnknownPart)
	}
	referenced, err := uc.repo.IsReferenced(part.ID)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("mpn %q con stock, reservas o historial: %w", mpn, domain.ErrConflict)
	}
	return uc.repo.Delete(part.ID)
}

func applyIfSet(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	return &dto.PartResponse{
		ID:           p.ID,
		MPN:          p.MPN,
		Name:         p.Name,
		Category:     p.Category,
		Package:      p.Package,
		Params:       p.Params,
		Unit:         p.Unit,
		ProductURL:   p.ProductURL,
		DatasheetURL: p.DatasheetURL,
		Note:         p.Note,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
