package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// AllocationRepository define el puerto de persistencia de reservas.
// Las sumas de reservas activas se calculan dentro de la misma transacción
// que las admite, con excludeID ("" = ninguna) para que una edición no se
// cuente contra sí misma.
type AllocationRepository interface {
	Create(alloc *entity.Allocation) error
	GetByID(id string) (*entity.Allocation, error)
	// GetByIDForUpdate bloquea la reserva para una transición de estado.
	GetByIDForUpdate(id string) (*entity.Allocation, error)
	Update(alloc *entity.Allocation) error
	SumReservedByPart(partID, excludeID string) (int64, error)
	SumReservedByPartLocation(partID, location, excludeID string) (int64, error)
	ListByProject(projectID string) ([]*entity.Allocation, error)
}
