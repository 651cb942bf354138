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

var _ repository.ProjectRepository = (*ProjectRepo)(nil)
var _ repository.BOMRepository = (*BOMRepo)(nil)

// ProjectRepo implementación de ProjectRepository sobre PostgreSQL.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de proyectos. Pasar pool o tx (Querier).
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = "id, code, name, owner, status, note, created_at, updated_at"

// Create persiste un proyecto nuevo. Código duplicado devuelve ErrDuplicate.
func (r *ProjectRepo) Create(project *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Code, project.Name, project.Owner, project.Status,
		project.Note, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("proyecto %q: %w", project.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Update actualiza un proyecto.
func (r *ProjectRepo) Update(project *entity.Project) error {
	query := `
		UPDATE projects
		SET name = $2, owner = $3, status = $4, note = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		project.ID, project.Name, project.Owner, project.Status, project.Note, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto por ID; nil si no existe.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	return r.getBy("id", id)
}

// GetByCode obtiene un proyecto por código; nil si no existe.
func (r *ProjectRepo) GetByCode(code string) (*entity.Project, error) {
	return r.getBy("code", code)
}

func (r *ProjectRepo) getBy(column, value string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE ` + column + ` = $1`
	var p entity.Project
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&p.ID, &p.Code, &p.Name, &p.Owner, &p.Status, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by %s: %w", column, err)
	}
	return &p, nil
}

// List lista proyectos por código, paginado.
func (r *ProjectRepo) List(limit, offset int) ([]*entity.Project, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+projectColumns+` FROM projects ORDER BY code LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Owner, &p.Status, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// BOMRepo implementación de BOMRepository sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de BOM. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// Upsert inserta o reemplaza la línea de (proyecto, componente).
func (r *BOMRepo) Upsert(line *entity.BOMLine) error {
	query := `
		INSERT INTO project_bom (id, project_id, part_id, req_qty, priority, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (project_id, part_id)
		DO UPDATE SET req_qty = EXCLUDED.req_qty, priority = EXCLUDED.priority,
		              note = EXCLUDED.note, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ProjectID, line.PartID, line.ReqQty, line.Priority,
		line.Note, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert bom line: %w", err)
	}
	return nil
}

// ListByProject lista el BOM de un proyecto ordenado por prioridad.
func (r *BOMRepo) ListByProject(projectID string) ([]*entity.BOMLine, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, project_id, part_id, req_qty, priority, note, created_at, updated_at
		FROM project_bom WHERE project_id = $1 ORDER BY priority, part_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list bom: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMLine
	for rows.Next() {
		var l entity.BOMLine
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.PartID, &l.ReqQty, &l.Priority, &l.Note, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bom line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete borra la línea de (proyecto, componente).
func (r *BOMRepo) Delete(projectID, partID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM project_bom WHERE project_id = $1 AND part_id = $2`, projectID, partID)
	if err != nil {
		return fmt.Errorf("delete bom line: %w", err)
	}
	return nil
}
