package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de ubicaciones. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create registra una ubicación. Código duplicado devuelve ErrDuplicate.
func (r *LocationRepo) Create(loc *entity.Location) error {
	query := `INSERT INTO locations (code, note, created_at) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, loc.Code, loc.Note, loc.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ubicación %q: %w", loc.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// CreateIfAbsent inserta sólo si el código no existe y reporta si insertó.
func (r *LocationRepo) CreateIfAbsent(loc *entity.Location) (bool, error) {
	query := `
		INSERT INTO locations (code, note, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query, loc.Code, loc.Note, loc.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("create location if absent: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Get obtiene una ubicación por código; nil si no existe.
func (r *LocationRepo) Get(code string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(context.Background(),
		`SELECT code, note, created_at FROM locations WHERE code = $1`, code,
	).Scan(&l.Code, &l.Note, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Exists indica si el código está registrado.
func (r *LocationRepo) Exists(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM locations WHERE code = $1)`, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("location exists: %w", err)
	}
	return exists, nil
}

// List lista ubicaciones por código, paginado.
func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT code, note, created_at FROM locations ORDER BY code LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.Code, &l.Note, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
