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

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de componentes. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = "id, mpn, name, category, package, params, unit, product_url, datasheet_url, note, created_at, updated_at"

// Create persiste un componente nuevo. MPN duplicado devuelve ErrDuplicate.
func (r *PartRepo) Create(part *entity.Part) error {
	query := `
		INSERT INTO parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.MPN, part.Name, part.Category, part.Package, part.Params,
		part.Unit, part.ProductURL, part.DatasheetURL, part.Note, part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("mpn %q: %w", part.MPN, domain.ErrDuplicate)
		}
		return fmt.Errorf("create part: %w", err)
	}
	return nil
}

// Update actualiza los campos descriptivos de un componente.
func (r *PartRepo) Update(part *entity.Part) error {
	query := `
		UPDATE parts
		SET name = $2, category = $3, package = $4, params = $5, unit = $6,
		    product_url = $7, datasheet_url = $8, note = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		part.ID, part.Name, part.Category, part.Package, part.Params, part.Unit,
		part.ProductURL, part.DatasheetURL, part.Note, part.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	return nil
}

// GetByID obtiene un componente por ID; nil si no existe.
func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	return r.getBy("id", id)
}

// GetByMPN obtiene un componente por MPN; nil si no existe.
func (r *PartRepo) GetByMPN(mpn string) (*entity.Part, error) {
	return r.getBy("mpn", mpn)
}

func (r *PartRepo) getBy(column, value string) (*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts WHERE ` + column + ` = $1`
	var p entity.Part
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&p.ID, &p.MPN, &p.Name, &p.Category, &p.Package, &p.Params,
		&p.Unit, &p.ProductURL, &p.DatasheetURL, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part by %s: %w", column, err)
	}
	return &p, nil
}

// List busca componentes por fragmento de MPN o nombre, paginado.
func (r *PartRepo) List(search string, limit, offset int) ([]*entity.Part, error) {
	query := `SELECT ` + partColumns + ` FROM parts`
	var args []any
	pos := 1
	if search != "" {
		query += fmt.Sprintf(" WHERE mpn ILIKE $%d OR name ILIKE $%d", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY mpn LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.MPN, &p.Name, &p.Category, &p.Package, &p.Params,
			&p.Unit, &p.ProductURL, &p.DatasheetURL, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// IsReferenced indica si existe stock, reserva o línea de ledger que apunte
// al componente.
func (r *PartRepo) IsReferenced(id string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM stock WHERE part_id = $1)
		    OR EXISTS (SELECT 1 FROM project_alloc WHERE part_id = $1)
		    OR EXISTS (SELECT 1 FROM inventory_txn_line WHERE part_id = $1)
		    OR EXISTS (SELECT 1 FROM project_bom WHERE part_id = $1)`
	var referenced bool
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&referenced); err != nil {
		return false, fmt.Errorf("part references: %w", err)
	}
	return referenced, nil
}

// Delete elimina un componente por ID. El caso de uso verifica antes que no
// esté referenciado.
func (r *PartRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	return nil
}
