package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia de ubicaciones físicas.
type LocationRepository interface {
	Create(loc *entity.Location) error
	// CreateIfAbsent inserta la ubicación sólo si el código no existe y
	// reporta si hubo inserción; lo usa el generador de cuadrícula.
	CreateIfAbsent(loc *entity.Location) (bool, error)
	Get(code string) (*entity.Location, error)
	Exists(code string) (bool, error)
	List(limit, offset int) ([]*entity.Location, error)
}
