package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase ejecuta las operaciones físicas del ledger (IN, OUT, MOVE,
// ADJUST) de forma transaccional: una unidad atómica por operación lógica,
// con cabecera, líneas y deltas de stock que se confirman o revierten juntos.
type StockUseCase struct {
	txRunner TxRunner
	parts    repository.PartRepository
	locs     repository.LocationRepository
	projects repository.ProjectRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	parts repository.PartRepository,
	locs repository.LocationRepository,
	projects repository.ProjectRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner: txRunner,
		parts:    parts,
		locs:     locs,
		projects: projects,
	}
}

// StockOpInput entrada común de entrada/salida de stock.
type StockOpInput struct {
	MPN         string
	Location    string
	Qty         int64
	Condition   string
	ProjectCode string
	Ref         string
	Note        string
	Operator    string
}

// MoveInput entrada de un traslado entre ubicaciones.
type MoveInput struct {
	MPN          string
	FromLocation string
	ToLocation   string
	Qty          int64
	Condition    string
	ProjectCode  string
	Ref          string
	Note         string
	Operator     string
}

// AdjustInput entrada de una corrección de conteo. Exactamente uno de
// AddQty/SubQty debe ser positivo y la nota es obligatoria.
type AdjustInput struct {
	MPN       string
	Location  string
	AddQty    int64
	SubQty    int64
	Condition string
	Note      string
	Ref       string
	Operator  string
}

// LineResult efecto de una línea aplicada.
type LineResult struct {
	Location  string
	Condition string
	QtyDelta  int64
	NewQty    int64
}

// OpResult resultado de una operación del ledger.
type OpResult struct {
	TxnID string
	Type  string
	Ref   string
	Lines []LineResult
}

// StockIn registra una entrada física: cabecera IN con una línea +Qty.
func (uc *StockUseCase) StockIn(ctx context.Context, in StockOpInput) (*OpResult, error) {
	return uc.singleLineOp(ctx, entity.TxnTypeIN, in, in.Qty)
}

// StockOut registra una salida física: cabecera OUT con una línea -Qty.
// Falla con ErrInsufficientStock si dejaría la combinación en negativo; en
// ese caso no queda cabecera, línea ni cambio de stock.
func (uc *StockUseCase) StockOut(ctx context.Context, in StockOpInput) (*OpResult, error) {
	return uc.singleLineOp(ctx, entity.TxnTypeOUT, in, -in.Qty)
}

func (uc *StockUseCase) singleLineOp(ctx context.Context, txnType string, in StockOpInput, delta int64) (*OpResult, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("cantidad %d: %w", in.Qty, domain.ErrInvalidInput)
	}
	part, err := ResolvePart(uc.parts, in.MPN)
	if err != nil {
		return nil, err
	}
	if err := EnsureLocation(uc.locs, in.Location); err != nil {
		return nil, err
	}
	project, err := ResolveProject(uc.projects, in.ProjectCode)
	if err != nil {
		return nil, err
	}
	condition := NormalizeCondition(in.Condition)
	now := time.Now().UTC()

	var res *OpResult
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		header, err := NewHeader(r, txnType, ProjectIDRef(project), in.Ref, in.Note, in.Operator, now)
		if err != nil {
			return err
		}
		newQty, err := AppendAndApply(r, header, part, in.Location, condition, delta, in.Note, now)
		if err != nil {
			return err
		}
		res = &OpResult{
			TxnID: header.ID,
			Type:  txnType,
			Ref:   in.Ref,
			Lines: []LineResult{{Location: in.Location, Condition: condition, QtyDelta: delta, NewQty: newQty}},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// StockMove traslada cantidad entre ubicaciones: cabecera MOVE con dos
// líneas, -Qty en origen y +Qty en destino; ambas se aplican o ninguna.
func (uc *StockUseCase) StockMove(ctx context.Context, in MoveInput) (*OpResult, error) {
	if in.Qty <= 0 {
		return nil, fmt.Errorf("cantidad %d: %w", in.Qty, domain.ErrInvalidInput)
	}
	if in.FromLocation == in.ToLocation {
		return nil, fmt.Errorf("origen y destino iguales: %w", domain.ErrInvalidInput)
	}
	part, err := ResolvePart(uc.parts, in.MPN)
	if err != nil {
		return nil, err
	}
	if err := EnsureLocation(uc.locs, in.FromLocation); err != nil {
		return nil, err
	}
	if err := EnsureLocation(uc.locs, in.ToLocation); err != nil {
		return nil, err
	}
	project, err := ResolveProject(uc.projects, in.ProjectCode)
	if err != nil {
		return nil, err
	}
	condition := NormalizeCondition(in.Condition)
	now := time.Now().UTC()

	var res *OpResult
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		header, err := NewHeader(r, entity.TxnTypeMOVE, ProjectIDRef(project), in.Ref, in.Note, in.Operator, now)
		if err != nil {
			return err
		}
		fromQty, err := AppendAndApply(r, header, part, in.FromLocation, condition, -in.Qty, in.Note, now)
		if err != nil {
			return err
		}
		toQty, err := AppendAndApply(r, header, part, in.ToLocation, condition, in.Qty, in.Note, now)
		if err != nil {
			return err
		}
		res = &OpResult{
			TxnID: header.ID,
			Type:  entity.TxnTypeMOVE,
			Ref:   in.Ref,
			Lines: []LineResult{
				{Location: in.FromLocation, Condition: condition, QtyDelta: -in.Qty, NewQty: fromQty},
				{Location: in.ToLocation, Condition: condition, QtyDelta: in.Qty, NewQty: toQty},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// StockAdjust corrige un conteo: cabecera ADJUST con una línea con signo.
// Exige nota y exactamente uno de AddQty/SubQty; no admite proyecto.
func (uc *StockUseCase) StockAdjust(ctx context.Context, in AdjustInput) (*OpResult, error) {
	if in.Note == "" {
		return nil, fmt.Errorf("un ajuste requiere nota: %w", domain.ErrInvalidInput)
	}
	if (in.AddQty > 0) == (in.SubQty > 0) {
		return nil, fmt.Errorf("indicar exactamente uno de add/sub: %w", domain.ErrInvalidInput)
	}
	if in.AddQty < 0 || in.SubQty < 0 {
		return nil, fmt.Errorf("cantidades negativas: %w", domain.ErrInvalidInput)
	}
	delta := in.AddQty
	if in.SubQty > 0 {
		delta = -in.SubQty
	}
	part, err := ResolvePart(uc.parts, in.MPN)
	if err != nil {
		return nil, err
	}
	if err := EnsureLocation(uc.locs, in.Location); err != nil {
		return nil, err
	}
	condition := NormalizeCondition(in.Condition)
	now := time.Now().UTC()

	var res *OpResult
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		header, err := NewHeader(r, entity.TxnTypeADJUST, nil, in.Ref, in.Note, in.Operator, now)
		if err != nil {
			return err
		}
		newQty, err := AppendAndApply(r, header, part, in.Location, condition, delta, in.Note, now)
		if err != nil {
			return err
		}
		res = &OpResult{
			TxnID: header.ID,
			Type:  entity.TxnTypeADJUST,
			Ref:   in.Ref,
			Lines: []LineResult{{Location: in.Location, Condition: condition, QtyDelta: delta, NewQty: newQty}},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
