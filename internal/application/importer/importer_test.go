package importer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/importer"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	mpnA = "NE555P"
	mpnB = "TL072CP"
	locA = "C409-G01-S01-P01"
)

type fixture struct {
	store *memory.Store
	batch *importer.BatchImporter
	aID   string
	bID   string
}

func newFixture(t *testing.T, maxRows int) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()

	aID, bID := uuid.New().String(), uuid.New().String()
	require.NoError(t, repos.Parts.Create(&entity.Part{ID: aID, MPN: mpnA, Name: "Timer", Unit: "pcs", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Parts.Create(&entity.Part{ID: bID, MPN: mpnB, Name: "Op-amp JFET", Unit: "pcs", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Locations.Create(&entity.Location{Code: locA, CreatedAt: now}))
	require.NoError(t, repos.Projects.Create(&entity.Project{
		ID: uuid.New().String(), Code: "PRJ-SYNTH", Name: "Sintetizador",
		Status: entity.ProjectStatusActive, CreatedAt: now, UpdatedAt: now,
	}))

	return &fixture{
		store: store,
		batch: importer.NewBatchImporter(store, repos.Parts, repos.Locations, repos.Projects, maxRows),
		aID:   aID,
		bID:   bID,
	}
}

func (f *fixture) qty(t *testing.T, partID string) int64 {
	t.Helper()
	s, err := f.store.Repos().Stock.Get(partID, locA, entity.ConditionNew)
	require.NoError(t, err)
	return s.Qty
}

func inRow(row int, mpn string, qty int64) importer.Row {
	return importer.Row{
		Sheet: "Transactions", RowNumber: row,
		TxnType: entity.TxnTypeIN, MPN: mpn, Location: locA, Qty: qty,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo all-or-nothing
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_AtomicoAplicaLoteCompleto(t *testing.T) {
	f := newFixture(t, 0)

	report, err := f.batch.Import(context.Background(), importer.Input{
		Rows: []importer.Row{inRow(2, mpnA, 100), inRow(3, mpnB, 50)},
		Mode: importer.ModeAtomic,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.AppliedCount)
	assert.Empty(t, report.Errors)
	assert.NotEmpty(t, report.Ref, "referencia de lote generada")
	assert.Equal(t, int64(100), f.qty(t, f.aID))
	assert.Equal(t, int64(50), f.qty(t, f.bID))
}

func TestImport_AtomicoRechazaConErroresDeValidacion(t *testing.T) {
	f := newFixture(t, 0)

	report, err := f.batch.Import(context.Background(), importer.Input{
		Rows: []importer.Row{
			inRow(2, mpnA, 100),
			inRow(3, "NO-EXISTE", 10),
		},
		Mode: importer.ModeAtomic,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.AppliedCount, "ninguna fila aplicada")
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.True(t, strings.HasPrefix(report.Errors[0].Reason, "UNKNOWN_PART"))
	assert.Equal(t, int64(0), f.qty(t, f.aID), "la fila válida tampoco se aplicó")
}

func TestImport_AtomicoErroresDeParseoBloquean(t *testing.T) {
	f := newFixture(t, 0)

	report, err := f.batch.Import(context.Background(), importer.Input{
		Rows: []importer.Row{inRow(2, mpnA, 100)},
		ParseErrors: []importer.RowError{
			{Sheet: "Transactions", Row: 5, Field: "qty", Reason: "VALIDATION: qty \"2.5\" no es un entero"},
		},
		Mode: importer.ModeAtomic,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.AppliedCount)
	assert.Equal(t, int64(0), f.qty(t, f.aID))
}

// Las filas validaron contra una foto, pero al aplicarse la salida excede el
// stock: la unidad revierte completa y el error queda direccionado a la fila.
func TestImport_AtomicoRevierteAnteFallaDeAplicacion(t *testing.T) {
	f := newFixture(t, 0)

	report, err := f.batch.Import(context.Background(), importer.Input{
		Rows: []importer.Row{
			inRow(2, mpnA, 10),
			{Sheet: "Transactions", RowNumber: 3, TxnType: entity.TxnTypeOUT, MPN: mpnA, Location: locA, Qty: 11},
		},
		Mode: importer.ModeAtomic,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.AppliedCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.True(t, strings.HasPrefix(report.Errors[0].Reason, "INSUFFICIENT_STOCK"))
	assert.Equal(t, int64(0), f.qty(t, f.aID), "el IN de la fila 2 también revirtió")
}

// ──────────────────────────────────────────────────────────────────────────────
// Modo parcial
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_ParcialAplicaFilaAFila(t *testing.T) {
	f := newFixture(t, 0)

	report, err := f.batch.Import(context.Background(), importer.Input{
		Rows: []importer.Row{
			inRow(2, mpnA, 10),
			{Sheet: "Transactions", RowNumber: 3, TxnType: entity.TxnTypeOUT, MPN: mpnA, Location: locA, Qty: 11},
			inRow(4, mpnB, 5),
		},
		Mode: importer.ModePartial,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.AppliedCount)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 3, report.Errors[0].Row)
	assert.Equal(t, int64(10), f.qty(t, f.aID), "las filas buenas quedaron")
	assert.Equal(t, int64(5), f.qty(t, f.bID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones del lote
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_ModoInvalido(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.batch.Import(context.Background(), importer.Input{Mode: "yolo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_ExcedeMaximoDeFilas(t *testing.T) {
	f := newFixture(t, 2)

	_, err := f.batch.Import(context.Background(), importer.Input{
		Rows: []importer.Row{inRow(2, mpnA, 1), inRow(3, mpnA, 1), inRow(4, mpnA, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImport_ValidaTipoYCantidad(t *testing.T) {
	f := newFixture(t, 0)

	report, err := f.batch.Import(context.Background(), importer.Input{
		Rows: []importer.Row{
			{Sheet: "Transactions", RowNumber: 2, TxnType: "MOVE", MPN: mpnA, Location: locA, Qty: 1},
			{Sheet: "Transactions", RowNumber: 3, TxnType: entity.TxnTypeIN, MPN: mpnA, Location: locA, Qty: 0},
			{Sheet: "Transactions", RowNumber: 4, TxnType: entity.TxnTypeIN, MPN: mpnA, Qty: 1},
		},
		Mode: importer.ModePartial,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.AppliedCount)
	fields := make([]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "txn_type")
	assert.Contains(t, fields, "qty")
	assert.Contains(t, fields, "location")
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación de catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCatalogImport_CreaYActualiza(t *testing.T) {
	f := newFixture(t, 0)
	repos := f.store.Repos()
	catalog := importer.NewCatalogImporter(repos.Parts, repos.Locations, f.batch)

	report, err := catalog.Import(context.Background(), importer.CatalogInput{
		Rows: []importer.CatalogRow{
			{RowNumber: 2, MPN: "AMS1117-3.3", Name: "Regulador LDO", Category: "电源芯片", Qty: 200},
			{RowNumber: 3, MPN: mpnA, Name: "Timer 555 (actualizado)", Qty: 30},
		},
		SourceName: "pedido-2026-08.xlsx",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.PartsCreated)
	assert.Equal(t, 1, report.PartsUpdated)
	assert.Nil(t, report.Stock, "sin ubicación de entrada no se mueve stock")

	created, err := repos.Parts.GetByMPN("AMS1117-3.3")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Regulador LDO", created.Name)
	assert.Contains(t, created.Note, "pedido-2026-08.xlsx")

	updated, err := repos.Parts.GetByMPN(mpnA)
	require.NoError(t, err)
	assert.Equal(t, "Timer 555 (actualizado)", updated.Name)
}

func TestCatalogImport_IngresaStockEnUbicacionDeEntrada(t *testing.T) {
	f := newFixture(t, 0)
	repos := f.store.Repos()
	catalog := importer.NewCatalogImporter(repos.Parts, repos.Locations, f.batch)

	report, err := catalog.Import(context.Background(), importer.CatalogInput{
		Rows: []importer.CatalogRow{
			{RowNumber: 2, MPN: mpnA, Qty: 30},
		},
		InboundLocation: "INBOX",
		Operator:        "ana",
	})
	require.NoError(t, err)
	require.NotNil(t, report.Stock)
	assert.Equal(t, 1, report.Stock.AppliedCount)

	// La ubicación de entrada se registró sola.
	ok, err := repos.Locations.Exists("INBOX")
	require.NoError(t, err)
	assert.True(t, ok)

	s, err := repos.Stock.Get(f.aID, "INBOX", entity.ConditionNew)
	require.NoError(t, err)
	assert.Equal(t, int64(30), s.Qty)
}

func TestCatalogImport_FilasSinMPNSeReportan(t *testing.T) {
	f := newFixture(t, 0)
	repos := f.store.Repos()
	catalog := importer.NewCatalogImporter(repos.Parts, repos.Locations, f.batch)

	report, err := catalog.Import(context.Background(), importer.CatalogInput{
		Rows: []importer.CatalogRow{{RowNumber: 4}},
		ParseErrors: []importer.RowError{
			{Row: 7, Field: "mpn", Reason: "VALIDATION: fila sin MPN"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.PartsCreated)
	assert.Len(t, report.Errors, 2, "la del extractor y la de la fila 4")
}
