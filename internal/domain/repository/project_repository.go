package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProjectRepository define el puerto de persistencia de proyectos.
// El ledger nunca crea proyectos implícitamente: resolver un código
// inexistente es un error del llamador.
type ProjectRepository interface {
	Create(project *entity.Project) error
	Update(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	GetByCode(code string) (*entity.Project, error)
	List(limit, offset int) ([]*entity.Project, error)
}

// BOMRepository define el puerto de persistencia de líneas de BOM.
type BOMRepository interface {
	Upsert(line *entity.BOMLine) error
	ListByProject(projectID string) ([]*entity.BOMLine, error)
	Delete(projectID, partID string) error
}
