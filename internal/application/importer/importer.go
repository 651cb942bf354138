package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Modos de aplicación de un lote.
const (
	// ModeAtomic aplica el lote completo en una sola unidad atómica: si
	// cualquier fila falla al aplicarse, ninguna fila deja efecto.
	ModeAtomic = "all-or-nothing"
	// ModePartial aplica cada fila en su propia unidad atómica: las fallas
	// se reportan por fila y no bloquean las siguientes.
	ModePartial = "partial"
)

// Row es una fila de transacción de una fuente tabular externa, ya extraída
// de su formato binario. RowNumber es la fila 1-based del libro original.
type Row struct {
	Sheet       string
	RowNumber   int
	TxnType     string
	ProjectCode string
	MPN         string
	Location    string
	Qty         int64
	Condition   string
	Note        string
	Ref         string
	Operator    string
}

// RowError falla direccionable a una fila del lote. Reason empieza con el
// código del tipo de error para que el llamador pueda mapearlo.
type RowError struct {
	Sheet  string `json:"sheet,omitempty"`
	Row    int    `json:"row"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Report resultado de un lote: filas aplicadas, modo y errores por fila.
type Report struct {
	AppliedCount int        `json:"applied_count"`
	Mode         string     `json:"mode"`
	Ref          string     `json:"ref"`
	Errors       []RowError `json:"errors"`
}

// Input lote a importar. ParseErrors trae los errores que el extractor del
// formato ya detectó (cantidades fraccionarias, celdas ilegibles); cuentan
// como fallas de fila igual que las de validación.
type Input struct {
	Rows        []Row
	ParseErrors []RowError
	Mode        string
	Ref         string
	Operator    string
}

// BatchImporter valida y aplica lotes de filas de transacción. La pasada de
// validación no muta nada y junta todas las fallas antes de decidir aplicar;
// la pasada de aplicación comparte la lógica por fila entre ambos modos y
// sólo difiere en cómo agrupa las unidades atómicas.
type BatchImporter struct {
	txRunner ledger.TxRunner
	parts    repository.PartRepository
	locs     repository.LocationRepository
	projects repository.ProjectRepository
	maxRows  int
}

// NewBatchImporter construye el importador. maxRows <= 0 desactiva el límite.
func NewBatchImporter(
	txRunner ledger.TxRunner,
	parts repository.PartRepository,
	locs repository.LocationRepository,
	projects repository.ProjectRepository,
	maxRows int,
) *BatchImporter {
	return &BatchImporter{
		txRunner: txRunner,
		parts:    parts,
		locs:     locs,
		projects: projects,
		maxRows:  maxRows,
	}
}

// resolvedRow fila validada con sus referencias resueltas.
type resolvedRow struct {
	row     Row
	part    *entity.Part
	project *entity.Project
}

// Import ejecuta las dos pasadas sobre el lote. En modo all-or-nothing un
// lote con cualquier error de validación no abre unidad alguna; si una fila
// falla recién al aplicarse (p. ej. stock drenado por otra vía después de la
// foto de validación), la unidad completa revierte y el reporte queda con
// AppliedCount = 0. En modo parcial cada fila decide por sí sola.
func (imp *BatchImporter) Import(ctx context.Context, in Input) (*Report, error) {
	mode := in.Mode
	if mode == "" {
		mode = ModeAtomic
	}
	if mode != ModeAtomic && mode != ModePartial {
		return nil, fmt.Errorf("modo %q: %w", in.Mode, domain.ErrInvalidInput)
	}
	if imp.maxRows > 0 && len(in.Rows) > imp.maxRows {
		return nil, fmt.Errorf("lote de %d filas excede el máximo %d: %w",
			len(in.Rows), imp.maxRows, domain.ErrInvalidInput)
	}
	ref := in.Ref
	if ref == "" {
		ref = NewBatchRef()
	}

	report := &Report{Mode: mode, Ref: ref, Errors: append([]RowError(nil), in.ParseErrors...)}

	// Pasada de validación: sin mutaciones, junta todas las fallas.
	resolved := make([]resolvedRow, 0, len(in.Rows))
	for _, row := range in.Rows {
		rr, rowErrs := imp.validateRow(row)
		if len(rowErrs) > 0 {
			report.Errors = append(report.Errors, rowErrs...)
			continue
		}
		resolved = append(resolved, rr)
	}

	if mode == ModeAtomic {
		if len(report.Errors) > 0 {
			return report, nil
		}
		// La fila que falla se captura fuera del closure: ante un conflicto
		// de serialización el runner reintenta el closure completo y el
		// reporte no debe acumular duplicados.
		var rowFailure *RowError
		err := imp.txRunner.Run(ctx, func(r ledger.TxRepos) error {
			rowFailure = nil
			for _, rr := range resolved {
				if err := applyRow(r, rr, ref, in.Operator); err != nil {
					if isRowFailure(err) {
						re := toRowError(rr.row, err)
						rowFailure = &re
					}
					return err
				}
			}
			return nil
		})
		if err != nil {
			// La unidad revirtió completa: nada aplicado. Una falla de fila
			// se reporta direccionada; el resto (DB caída, almacén ocupado)
			// sube al llamador.
			if rowFailure != nil && isRowFailure(err) {
				report.Errors = append(report.Errors, *rowFailure)
				return report, nil
			}
			return nil, err
		}
		report.AppliedCount = len(resolved)
		return report, nil
	}

	// Modo parcial: una unidad atómica por fila.
	for _, rr := range resolved {
		rr := rr
		err := imp.txRunner.Run(ctx, func(r ledger.TxRepos) error {
			return applyRow(r, rr, ref, in.Operator)
		})
		if err != nil {
			if !isRowFailure(err) {
				return nil, err
			}
			report.Errors = append(report.Errors, toRowError(rr.row, err))
			continue
		}
		report.AppliedCount++
	}
	return report, nil
}

// validateRow resuelve referencias y valida forma. Devuelve todas las fallas
// de la fila, no sólo la primera.
func (imp *BatchImporter) validateRow(row Row) (resolvedRow, []RowError) {
	var errs []RowError
	rr := resolvedRow{row: row}

	switch row.TxnType {
	case entity.TxnTypeIN, entity.TxnTypeOUT, entity.TxnTypeADJUST:
	default:
		errs = append(errs, RowError{
			Sheet: row.Sheet, Row: row.RowNumber, Field: "txn_type",
			Reason: reasonFor(domain.ErrInvalidInput) + ": txn_type debe ser IN/OUT/ADJUST",
		})
	}
	if row.Qty <= 0 {
		errs = append(errs, RowError{
			Sheet: row.Sheet, Row: row.RowNumber, Field: "qty",
			Reason: fmt.Sprintf("%s: qty debe ser un entero positivo, llegó %d",
				reasonFor(domain.ErrInvalidInput), row.Qty),
		})
	}

	part, err := ledger.ResolvePart(imp.parts, row.MPN)
	if err != nil {
		errs = append(errs, RowError{
			Sheet: row.Sheet, Row: row.RowNumber, Field: "mpn",
			Reason: reasonFor(err) + ": " + err.Error(),
		})
	}
	rr.part = part

	// El lote nunca crea proyectos implícitamente.
	project, err := ledger.ResolveProject(imp.projects, row.ProjectCode)
	if err != nil {
		errs = append(errs, RowError{
			Sheet: row.Sheet, Row: row.RowNumber, Field: "project_code",
			Reason: reasonFor(err) + ": " + err.Error(),
		})
	}
	rr.project = project

	if row.Location == "" {
		errs = append(errs, RowError{
			Sheet: row.Sheet, Row: row.RowNumber, Field: "location",
			Reason: reasonFor(domain.ErrInvalidInput) + ": location es obligatorio",
		})
	} else if err := ledger.EnsureLocation(imp.locs, row.Location); err != nil {
		errs = append(errs, RowError{
			Sheet: row.Sheet, Row: row.RowNumber, Field: "location",
			Reason: reasonFor(err) + ": " + err.Error(),
		})
	}
	return rr, errs
}

// applyRow aplica una fila ya validada dentro de la transacción en curso:
// una cabecera por fila (elección determinista) compartiendo la referencia
// del lote, una línea y su delta. Las filas ADJUST de un lote sólo traen
// cantidades positivas, así que se journalizan como suma.
func applyRow(r ledger.TxRepos, rr resolvedRow, batchRef, operator string) error {
	row := rr.row
	ref := row.Ref
	if ref == "" {
		ref = batchRef
	}
	op := row.Operator
	if op == "" {
		op = operator
	}
	delta := row.Qty
	if row.TxnType == entity.TxnTypeOUT {
		delta = -row.Qty
	}
	var projectID *string
	if rr.project != nil && row.TxnType != entity.TxnTypeADJUST {
		projectID = &rr.project.ID
	}
	now := time.Now().UTC()
	header, err := ledger.NewHeader(r, row.TxnType, projectID, ref, row.Note, op, now)
	if err != nil {
		return err
	}
	condition := ledger.NormalizeCondition(row.Condition)
	_, err = ledger.AppendAndApply(r, header, rr.part, row.Location, condition, delta, row.Note, now)
	return err
}

// NewBatchRef genera la referencia compartida de un lote.
func NewBatchRef() string {
	return fmt.Sprintf("IMP-%s-%s",
		time.Now().UTC().Format("20060102T150405"),
		strings.Split(uuid.New().String(), "-")[0])
}

// isRowFailure distingue una falla imputable a la fila (se reporta y, en modo
// parcial, se sigue) de una falla de infraestructura (sube al llamador).
func isRowFailure(err error) bool {
	return errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrOverReserve) ||
		errors.Is(err, domain.ErrUnknownPart) ||
		errors.Is(err, domain.ErrUnknownProject) ||
		errors.Is(err, domain.ErrInvalidLocation) ||
		errors.Is(err, domain.ErrInvalidInput)
}

func toRowError(row Row, err error) RowError {
	field := ""
	if errors.Is(err, domain.ErrInsufficientStock) {
		field = "qty"
	}
	return RowError{
		Sheet: row.Sheet, Row: row.RowNumber, Field: field,
		Reason: reasonFor(err) + ": " + err.Error(),
	}
}

// reasonFor mapea un error de dominio a su código estable de reporte.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrOverReserve):
		return "OVER_RESERVE"
	case errors.Is(err, domain.ErrUnknownPart):
		return "UNKNOWN_PART"
	case errors.Is(err, domain.ErrUnknownProject):
		return "UNKNOWN_PROJECT"
	case errors.Is(err, domain.ErrInvalidLocation):
		return "INVALID_LOCATION"
	case errors.Is(err, domain.ErrInvalidState):
		return "INVALID_STATE"
	case errors.Is(err, domain.ErrStoreBusy):
		return "STORE_BUSY"
	default:
		return "VALIDATION"
	}
}
