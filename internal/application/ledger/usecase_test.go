package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fixture almacén en memoria con un componente, dos ubicaciones y un proyecto.
type fixture struct {
	store   *memory.Store
	uc      *ledger.StockUseCase
	partID  string
	project string // código
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()

	partID := uuid.New().String()
	require.NoError(t, repos.Parts.Create(&entity.Part{
		ID: partID, MPN: "STM32F103C8T6", Name: "MCU Cortex-M3",
		Unit: "pcs", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Locations.Create(&entity.Location{Code: "C409-G01-S01-P01", CreatedAt: now}))
	require.NoError(t, repos.Locations.Create(&entity.Location{Code: "C409-G01-S01-P02", CreatedAt: now}))
	require.NoError(t, repos.Projects.Create(&entity.Project{
		ID: uuid.New().String(), Code: "PRJ-ROVER", Name: "Rover",
		Status: entity.ProjectStatusActive, CreatedAt: now, UpdatedAt: now,
	}))

	return &fixture{
		store:   store,
		uc:      ledger.NewStockUseCase(store, repos.Parts, repos.Locations, repos.Projects),
		partID:  partID,
		project: "PRJ-ROVER",
	}
}

// stockIn siembra cantidad vía el propio caso de uso.
func (f *fixture) stockIn(t *testing.T, location string, qty int64) {
	t.Helper()
	_, err := f.uc.StockIn(context.Background(), ledger.StockOpInput{
		MPN: "STM32F103C8T6", Location: location, Qty: qty, Operator: "test",
	})
	require.NoError(t, err)
}

// qtyAt cantidad actual de la combinación.
func (f *fixture) qtyAt(t *testing.T, location, condition string) int64 {
	t.Helper()
	s, err := f.store.Repos().Stock.Get(f.partID, location, condition)
	require.NoError(t, err)
	return s.Qty
}

// txnFilterAll filtro vacío: todo el historial.
func txnFilterAll() repository.TxnFilter {
	return repository.TxnFilter{}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_CreaEntradaConLinea(t *testing.T) {
	f := newFixture(t)

	res, err := f.uc.StockIn(context.Background(), ledger.StockOpInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", Qty: 50,
		Ref: "PO-001", Operator: "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxnTypeIN, res.Type)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(50), res.Lines[0].QtyDelta)
	assert.Equal(t, int64(50), res.Lines[0].NewQty)
	assert.Equal(t, entity.ConditionNew, res.Lines[0].Condition, "condición por defecto")

	assert.Equal(t, int64(50), f.qtyAt(t, "C409-G01-S01-P01", entity.ConditionNew))
}

func TestStockIn_CantidadInvalida(t *testing.T) {
	f := newFixture(t)

	for _, qty := range []int64{0, -5} {
		_, err := f.uc.StockIn(context.Background(), ledger.StockOpInput{
			MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", Qty: qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestStockIn_ComponenteDesconocido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.StockIn(context.Background(), ledger.StockOpInput{
		MPN: "NO-EXISTE", Location: "C409-G01-S01-P01", Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownPart)
}

func TestStockIn_UbicacionNoRegistrada(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.StockIn(context.Background(), ledger.StockOpInput{
		MPN: "STM32F103C8T6", Location: "BODEGA-FANTASMA", Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestStockOut_DescuentaYRegistra(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, "C409-G01-S01-P01", 30)

	res, err := f.uc.StockOut(context.Background(), ledger.StockOpInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", Qty: 12,
		ProjectCode: f.project, Operator: "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxnTypeOUT, res.Type)
	assert.Equal(t, int64(-12), res.Lines[0].QtyDelta)
	assert.Equal(t, int64(18), f.qtyAt(t, "C409-G01-S01-P01", entity.ConditionNew))
}

func TestStockOut_InsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, "C409-G01-S01-P01", 5)

	_, err := f.uc.StockOut(context.Background(), ledger.StockOpInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", Qty: 6,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El stock no cambió y la transacción fallida no dejó cabecera ni línea.
	assert.Equal(t, int64(5), f.qtyAt(t, "C409-G01-S01-P01", entity.ConditionNew))
	txns, err := f.store.Repos().Transactions.Query(txnFilterAll())
	require.NoError(t, err)
	assert.Len(t, txns, 1, "sólo la entrada inicial")
}

func TestStockOut_ProyectoDesconocido(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, "C409-G01-S01-P01", 5)

	_, err := f.uc.StockOut(context.Background(), ledger.StockOpInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", Qty: 1,
		ProjectCode: "PRJ-NO-EXISTE",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProject)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestStockMove_DosLineasAtomicas(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, "C409-G01-S01-P01", 40)

	res, err := f.uc.StockMove(context.Background(), ledger.MoveInput{
		MPN: "STM32F103C8T6", FromLocation: "C409-G01-S01-P01",
		ToLocation: "C409-G01-S01-P02", Qty: 15, Operator: "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxnTypeMOVE, res.Type)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, int64(-15), res.Lines[0].QtyDelta)
	assert.Equal(t, int64(15), res.Lines[1].QtyDelta)

	assert.Equal(t, int64(25), f.qtyAt(t, "C409-G01-S01-P01", entity.ConditionNew))
	assert.Equal(t, int64(15), f.qtyAt(t, "C409-G01-S01-P02", entity.ConditionNew))
}

func TestStockMove_OrigenInsuficienteNoTocaDestino(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, "C409-G01-S01-P01", 10)

	_, err := f.uc.StockMove(context.Background(), ledger.MoveInput{
		MPN: "STM32F103C8T6", FromLocation: "C409-G01-S01-P01",
		ToLocation: "C409-G01-S01-P02", Qty: 11,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), f.qtyAt(t, "C409-G01-S01-P01", entity.ConditionNew))
	assert.Equal(t, int64(0), f.qtyAt(t, "C409-G01-S01-P02", entity.ConditionNew))
}

func TestStockMove_MismoOrigenYDestino(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.StockMove(context.Background(), ledger.MoveInput{
		MPN: "STM32F103C8T6", FromLocation: "C409-G01-S01-P01",
		ToLocation: "C409-G01-S01-P01", Qty: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestStockAdjust_RequiereNota(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.StockAdjust(context.Background(), ledger.AdjustInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", AddQty: 3,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockAdjust_ExactamenteUnSigno(t *testing.T) {
	f := newFixture(t)

	cases := []ledger.AdjustInput{
		{MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", Note: "conteo"},                       // ninguno
		{MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", AddQty: 1, SubQty: 1, Note: "conteo"}, // ambos
	}
	for _, in := range cases {
		_, err := f.uc.StockAdjust(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestStockAdjust_AplicaDeltaConSigno(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, "C409-G01-S01-P01", 20)

	res, err := f.uc.StockAdjust(context.Background(), ledger.AdjustInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01",
		SubQty: 4, Note: "conteo físico: faltan 4", Operator: "ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TxnTypeADJUST, res.Type)
	assert.Equal(t, int64(-4), res.Lines[0].QtyDelta)
	assert.Equal(t, int64(16), f.qtyAt(t, "C409-G01-S01-P01", entity.ConditionNew))
}

func TestStockAdjust_NoPermiteNegativo(t *testing.T) {
	f := newFixture(t)
	f.stockIn(t, "C409-G01-S01-P01", 2)

	_, err := f.uc.StockAdjust(context.Background(), ledger.AdjustInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01",
		SubQty: 3, Note: "conteo",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.qtyAt(t, "C409-G01-S01-P01", entity.ConditionNew))
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante ledger ↔ stock
// ──────────────────────────────────────────────────────────────────────────────

// Cada cambio de stock deja exactamente una línea con el mismo delta: la suma
// de deltas por combinación debe reconstruir la cantidad vigente.
func TestLedger_SumaDeDeltasReconstruyeStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.stockIn(t, "C409-G01-S01-P01", 100)
	_, err := f.uc.StockOut(ctx, ledger.StockOpInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P01", Qty: 30, ProjectCode: f.project,
	})
	require.NoError(t, err)
	_, err = f.uc.StockMove(ctx, ledger.MoveInput{
		MPN: "STM32F103C8T6", FromLocation: "C409-G01-S01-P01",
		ToLocation: "C409-G01-S01-P02", Qty: 20,
	})
	require.NoError(t, err)
	_, err = f.uc.StockAdjust(ctx, ledger.AdjustInput{
		MPN: "STM32F103C8T6", Location: "C409-G01-S01-P02", AddQty: 5, Note: "conteo",
	})
	require.NoError(t, err)

	txns, err := f.store.Repos().Transactions.Query(txnFilterAll())
	require.NoError(t, err)

	sums := map[string]int64{}
	for _, txn := range txns {
		for _, line := range txn.Lines {
			sums[line.Location+"|"+line.Condition] += line.QtyDelta
		}
	}
	assert.Equal(t, f.qtyAt(t, "C409-G01-S01-P01", entity.ConditionNew),
		sums["C409-G01-S01-P01|"+entity.ConditionNew])
	assert.Equal(t, f.qtyAt(t, "C409-G01-S01-P02", entity.ConditionNew),
		sums["C409-G01-S01-P02|"+entity.ConditionNew])
}
