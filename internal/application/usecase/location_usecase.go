package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LocationUseCase registro de ubicaciones físicas, incluida la generación de
// la cuadrícula de un cuarto (gabinetes x estantes x posiciones).
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create registra una ubicación.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Code == "" {
		return nil, fmt.Errorf("código vacío: %w", domain.ErrInvalidInput)
	}
	loc := &entity.Location{Code: in.Code, Note: in.Note, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// Get obtiene una ubicación por código.
func (uc *LocationUseCase) Get(code string) (*dto.LocationResponse, error) {
	loc, err := uc.repo.Get(code)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("ubicación %q: %w", code, domain.ErrInvalidLocation)
	}
	return toLocationResponse(loc), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return &dto.LocationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// InitGrid genera los códigos {room}-{cabinet}-S{shelf:02d}-P{position:02d}
// de toda la cuadrícula e inserta los que falten. Idempotente: una segunda
// corrida con los mismos parámetros crea cero ubicaciones.
func (uc *LocationUseCase) InitGrid(in dto.InitGridRequest) (*dto.InitGridResponse, error) {
	if in.Room == "" || len(in.Cabinets) == 0 {
		return nil, fmt.Errorf("cuadrícula requiere room y al menos un gabinete: %w", domain.ErrInvalidInput)
	}
	positions := in.PositionsPerShelf
	if positions <= 0 {
		positions = 10
	}
	now := time.Now().UTC()
	res := &dto.InitGridResponse{}
	for _, cab := range in.Cabinets {
		if cab.Code == "" || cab.Shelves <= 0 {
			return nil, fmt.Errorf("gabinete inválido %+v: %w", cab, domain.ErrInvalidInput)
		}
		for shelf := 1; shelf <= cab.Shelves; shelf++ {
			for pos := 1; pos <= positions; pos++ {
				code := fmt.Sprintf("%s-%s-S%02d-P%02d", in.Room, cab.Code, shelf, pos)
				note := fmt.Sprintf("%s %s estante %d posición %02d", in.Room, cab.Code, shelf, pos)
				if cab.Note != "" {
					note += " | " + cab.Note
				}
				created, err := uc.repo.CreateIfAbsent(&entity.Location{
					Code: code, Note: note, CreatedAt: now,
				})
				if err != nil {
					return nil, err
				}
				if created {
					res.Created++
				}
				res.Total++
			}
		}
	}
	return res, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{Code: l.Code, Note: l.Note, CreatedAt: l.CreatedAt}
}
