package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). Las mutaciones se hacen siempre dentro de una transacción, con
// la fila bloqueada vía GetForUpdate.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = "id, part_id, location, condition, qty, note, updated_at"

// Get obtiene la entrada de una combinación; si no existe devuelve una
// entrada en cero lista para el primer ingreso.
func (r *StockRepo) Get(partID, location, condition string) (*entity.Stock, error) {
	return r.get(partID, location, condition, false)
}

// GetForUpdate obtiene la entrada y bloquea la fila (SELECT FOR UPDATE) para
// serializar los deltas concurrentes sobre la misma combinación.
func (r *StockRepo) GetForUpdate(partID, location, condition string) (*entity.Stock, error) {
	return r.get(partID, location, condition, true)
}

func (r *StockRepo) get(partID, location, condition string, lock bool) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE part_id = $1 AND location = $2 AND condition = $3`
	if lock {
		query += " FOR UPDATE"
	}
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, partID, location, condition).Scan(
		&s.ID, &s.PartID, &s.Location, &s.Condition, &s.Qty, &s.Note, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{
				ID:        uuid.New().String(),
				PartID:    partID,
				Location:  location,
				Condition: condition,
				Qty:       0,
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad de la combinación. Las entradas
// nunca se borran: la cantidad puede quedar en cero.
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (part_id, location, condition)
		DO UPDATE SET qty = EXCLUDED.qty, note = EXCLUDED.note, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.PartID, stock.Location, stock.Condition, stock.Qty, stock.Note, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// SumByPart suma el stock global de un componente.
func (r *StockRepo) SumByPart(partID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(qty), 0) FROM stock WHERE part_id = $1`, partID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock by part: %w", err)
	}
	return sum, nil
}

// SumByPartLocation suma el stock de un componente en una ubicación.
func (r *StockRepo) SumByPartLocation(partID, location string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(qty), 0) FROM stock WHERE part_id = $1 AND location = $2`,
		partID, location,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock by part/location: %w", err)
	}
	return sum, nil
}

// ListByPart lista las entradas de un componente en todas las ubicaciones.
func (r *StockRepo) ListByPart(partID string) ([]*entity.Stock, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+stockColumns+`
		FROM stock WHERE part_id = $1 ORDER BY location, condition`, partID)
	if err != nil {
		return nil, fmt.Errorf("list stock by part: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.PartID, &s.Location, &s.Condition, &s.Qty, &s.Note, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// List lista entradas con el MPN resuelto, filtrable por mpn/ubicación/condición.
func (r *StockRepo) List(filter repository.StockFilter) ([]repository.StockRow, error) {
	query := `
		SELECT p.mpn, s.location, s.condition, s.qty, s.note, s.updated_at
		FROM stock s JOIN parts p ON p.id = s.part_id
		WHERE 1=1`
	var args []any
	pos := 1
	if filter.MPN != "" {
		query += fmt.Sprintf(" AND p.mpn = $%d", pos)
		args = append(args, filter.MPN)
		pos++
	}
	if filter.Location != "" {
		query += fmt.Sprintf(" AND s.location = $%d", pos)
		args = append(args, filter.Location)
		pos++
	}
	if filter.Condition != "" {
		query += fmt.Sprintf(" AND s.condition = $%d", pos)
		args = append(args, filter.Condition)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY p.mpn, s.location, s.condition LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		if err := rows.Scan(&row.MPN, &row.Location, &row.Condition, &row.Qty, &row.Note, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
