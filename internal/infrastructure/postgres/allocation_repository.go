package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de AllocationRepository sobre PostgreSQL.
// Las sumas y transiciones se ejecutan siempre dentro de la misma transacción
// serializable que las admite.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador de reservas. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = "id, project_id, part_id, location, condition, alloc_qty, status, note, created_at, updated_at"

// Create persiste una reserva nueva (estado reserved).
func (r *AllocationRepo) Create(alloc *entity.Allocation) error {
	query := `
		INSERT INTO project_alloc (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		alloc.ID, alloc.ProjectID, alloc.PartID, alloc.Location, alloc.Condition,
		alloc.Qty, alloc.Status, alloc.Note, alloc.CreatedAt, alloc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create allocation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva; nil si no existe.
func (r *AllocationRepo) GetByID(id string) (*entity.Allocation, error) {
	return r.get(id, false)
}

// GetByIDForUpdate obtiene la reserva y bloquea la fila para una transición
// de estado.
func (r *AllocationRepo) GetByIDForUpdate(id string) (*entity.Allocation, error) {
	return r.get(id, true)
}

func (r *AllocationRepo) get(id string, lock bool) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM project_alloc WHERE id = $1`
	if lock {
		query += " FOR UPDATE"
	}
	var a entity.Allocation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.ProjectID, &a.PartID, &a.Location, &a.Condition,
		&a.Qty, &a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return &a, nil
}

// Update actualiza cantidad, ubicación, estado o nota de una reserva.
func (r *AllocationRepo) Update(alloc *entity.Allocation) error {
	query := `
		UPDATE project_alloc
		SET location = $2, condition = $3, alloc_qty = $4, status = $5,
		    note = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		alloc.ID, alloc.Location, alloc.Condition, alloc.Qty, alloc.Status,
		alloc.Note, alloc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update allocation: %w", err)
	}
	return nil
}

// SumReservedByPart suma las reservas activas de un componente, excluyendo
// excludeID ("" = ninguna) para que una edición no se cuente a sí misma.
func (r *AllocationRepo) SumReservedByPart(partID, excludeID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(alloc_qty), 0)
		FROM project_alloc
		WHERE part_id = $1 AND status = 'reserved' AND id <> $2`,
		partID, excludeID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum reserved by part: %w", err)
	}
	return sum, nil
}

// SumReservedByPartLocation suma las reservas activas fijadas a una ubicación,
// excluyendo excludeID ("" = ninguna).
func (r *AllocationRepo) SumReservedByPartLocation(partID, location, excludeID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(alloc_qty), 0)
		FROM project_alloc
		WHERE part_id = $1 AND location = $2 AND status = 'reserved' AND id <> $3`,
		partID, location, excludeID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum reserved by part/location: %w", err)
	}
	return sum, nil
}

// ListByProject lista las reservas de un proyecto, recientes primero.
func (r *AllocationRepo) ListByProject(projectID string) ([]*entity.Allocation, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+allocationColumns+`
		FROM project_alloc WHERE project_id = $1 ORDER BY created_at DESC, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.PartID, &a.Location, &a.Condition,
			&a.Qty, &a.Status, &a.Note, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
