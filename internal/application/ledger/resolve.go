package ledger

import (
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Helpers de resolución compartidos por el ledger, el motor de reservas y el
// importador. Son lecturas puras: nunca crean partes ni proyectos.

// ResolvePart resuelve un MPN a su componente registrado.
func ResolvePart(parts repository.PartRepository, mpn string) (*entity.Part, error) {
	if mpn == "" {
		return nil, fmt.Errorf("mpn vacío: %w", domain.ErrInvalidInput)
	}
	part, err := parts.GetByMPN(mpn)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("mpn %q: %w", mpn, domain.ErrUnknownPart)
	}
	return part, nil
}

// ResolveProject resuelve un código de proyecto cuando viene informado.
// Código vacío significa "sin proyecto" y devuelve nil sin error: el enlace a
// proyecto es opcional en todo el ledger y se maneja siempre por este punto.
func ResolveProject(projects repository.ProjectRepository, code string) (*entity.Project, error) {
	if code == "" {
		return nil, nil
	}
	project, err := projects.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("proyecto %q: %w", code, domain.ErrUnknownProject)
	}
	return project, nil
}

// ProjectIDRef devuelve la referencia opcional para la cabecera del ledger.
func ProjectIDRef(project *entity.Project) *string {
	if project == nil {
		return nil
	}
	return &project.ID
}

// EnsureLocation verifica que la ubicación esté registrada.
func EnsureLocation(locations repository.LocationRepository, code string) error {
	if code == "" {
		return fmt.Errorf("ubicación vacía: %w", domain.ErrInvalidInput)
	}
	ok, err := locations.Exists(code)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("ubicación %q: %w", code, domain.ErrInvalidLocation)
	}
	return nil
}

// NormalizeCondition aplica la condición por defecto.
func NormalizeCondition(condition string) string {
	if condition == "" {
		return entity.ConditionNew
	}
	return condition
}
