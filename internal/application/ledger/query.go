package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	defaultQueryLimit = 50
	maxQueryLimit     = 500
)

// QueryUseCase consultas de lectura del ledger: historial y auditoría.
// Filtro puro sobre datos inmutables; cualquier página se puede reejecutar.
type QueryUseCase struct {
	txns     repository.TransactionRepository
	parts    repository.PartRepository
	projects repository.ProjectRepository
	reports  repository.ReportRepository
}

// NewQueryUseCase construye el caso de uso con repos atados al pool.
func NewQueryUseCase(
	txns repository.TransactionRepository,
	parts repository.PartRepository,
	projects repository.ProjectRepository,
	reports repository.ReportRepository,
) *QueryUseCase {
	return &QueryUseCase{txns: txns, parts: parts, projects: projects, reports: reports}
}

// QueryInput filtros del historial; los campos vacíos no filtran.
type QueryInput struct {
	ProjectCode string
	MPN         string
	Since       *time.Time
	Until       *time.Time
	Limit       int
	Offset      int
}

// Query devuelve cabeceras con sus líneas en orden ascendente de creación.
// Resolver un MPN o código de proyecto desconocido es un error del llamador,
// no un filtro vacío.
func (uc *QueryUseCase) Query(ctx context.Context, in QueryInput) ([]*entity.TransactionWithLines, error) {
	filter := repository.TxnFilter{
		Since:  in.Since,
		Until:  in.Until,
		Limit:  clampLimit(in.Limit),
		Offset: in.Offset,
	}
	if in.MPN != "" {
		part, err := ResolvePart(uc.parts, in.MPN)
		if err != nil {
			return nil, err
		}
		filter.PartID = &part.ID
	}
	if in.ProjectCode != "" {
		project, err := ResolveProject(uc.projects, in.ProjectCode)
		if err != nil {
			return nil, err
		}
		filter.ProjectID = &project.ID
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.txns.Query(filter)
}

// Audit recalcula la suma de deltas del ledger por combinación y la compara
// contra el stock actual. Una lista vacía significa ledger y stock
// consistentes (historial completo y reconstruible).
func (uc *QueryUseCase) Audit(ctx context.Context) ([]repository.AuditMismatchRow, error) {
	return uc.reports.LedgerAudit(ctx)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultQueryLimit
	}
	if limit > maxQueryLimit {
		return maxQueryLimit
	}
	return limit
}
