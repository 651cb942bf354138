package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción. El runner
// los construye sobre la tx y los pasa al callback; fuera de él no deben
// sobrevivir.
type TxRepos struct {
	Parts        repository.PartRepository
	Locations    repository.LocationRepository
	Projects     repository.ProjectRepository
	BOM          repository.BOMRepository
	Stock        repository.StockRepository
	Allocations  repository.AllocationRepository
	Transactions repository.TransactionRepository
}

// TxRunner ejecuta una función dentro de una unidad atómica serializable,
// pasando repositorios atados a esa transacción. Commit sólo si fn devuelve
// nil; cualquier error revierte la unidad completa sin efecto parcial.
// Ante conflictos de serialización reintenta con backoff y, agotados los
// reintentos, devuelve domain.ErrStoreBusy.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
