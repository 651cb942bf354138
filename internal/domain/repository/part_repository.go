package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// PartRepository define el puerto de persistencia del catálogo de componentes.
// La resolución por MPN es la búsqueda canónica del resto del sistema.
type PartRepository interface {
	Create(part *entity.Part) error
	Update(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetByMPN(mpn string) (*entity.Part, error)
	List(search string, limit, offset int) ([]*entity.Part, error)
	// IsReferenced indica si existe stock, reserva o línea de ledger que
	// apunte al componente; un componente referenciado no se puede borrar.
	IsReferenced(id string) (bool, error)
	Delete(id string) error
}
