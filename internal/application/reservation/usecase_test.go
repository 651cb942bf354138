package reservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/reservation"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testMPN = "LM358DR"
	locA    = "C409-G01-S01-P01"
	locB    = "C409-G01-S01-P02"
)

type fixture struct {
	store  *memory.Store
	stock  *ledger.StockUseCase
	uc     *reservation.UseCase
	partID string
}

// newFixture almacén con un componente, dos ubicaciones, dos proyectos y
// stock inicial: 60 en locA, 40 en locB (100 global).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()

	partID := uuid.New().String()
	require.NoError(t, repos.Parts.Create(&entity.Part{
		ID: partID, MPN: testMPN, Name: "Amplificador operacional dual",
		Unit: "pcs", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.Locations.Create(&entity.Location{Code: locA, CreatedAt: now}))
	require.NoError(t, repos.Locations.Create(&entity.Location{Code: locB, CreatedAt: now}))
	for _, code := range []string{"PRJ-A", "PRJ-B"} {
		require.NoError(t, repos.Projects.Create(&entity.Project{
			ID: uuid.New().String(), Code: code, Name: code,
			Status: entity.ProjectStatusActive, CreatedAt: now, UpdatedAt: now,
		}))
	}

	f := &fixture{
		store:  store,
		stock:  ledger.NewStockUseCase(store, repos.Parts, repos.Locations, repos.Projects),
		uc:     reservation.NewUseCase(store, repos.Parts, repos.Locations, repos.Projects, repos.Allocations),
		partID: partID,
	}
	ctx := context.Background()
	for loc, qty := range map[string]int64{locA: 60, locB: 40} {
		_, err := f.stock.StockIn(ctx, ledger.StockOpInput{MPN: testMPN, Location: loc, Qty: qty, Operator: "test"})
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) reserve(t *testing.T, project string, qty int64, location string) *entity.Allocation {
	t.Helper()
	alloc, err := f.uc.Reserve(context.Background(), reservation.ReserveInput{
		ProjectCode: project, MPN: testMPN, Qty: qty, Location: location,
	})
	require.NoError(t, err)
	return alloc
}

func (f *fixture) qtyAt(t *testing.T, location string) int64 {
	t.Helper()
	s, err := f.store.Repos().Stock.Get(f.partID, location, entity.ConditionNew)
	require.NoError(t, err)
	return s.Qty
}

// ──────────────────────────────────────────────────────────────────────────────
// Admisión
// ──────────────────────────────────────────────────────────────────────────────

func TestReserve_AdmiteDentroDeDisponibilidad(t *testing.T) {
	f := newFixture(t)

	alloc := f.reserve(t, "PRJ-A", 80, "")
	assert.Equal(t, entity.AllocationStatusReserved, alloc.Status)
	assert.Nil(t, alloc.Location, "reserva global no fija ubicación")

	// La reserva no mueve stock físico.
	assert.Equal(t, int64(60), f.qtyAt(t, locA))
	assert.Equal(t, int64(40), f.qtyAt(t, locB))
}

func TestReserve_RechazaSobreReservaGlobal(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, "PRJ-A", 80, "")

	// Quedan 20 disponibles globalmente.
	_, err := f.uc.Reserve(context.Background(), reservation.ReserveInput{
		ProjectCode: "PRJ-B", MPN: testMPN, Qty: 21,
	})
	assert.ErrorIs(t, err, domain.ErrOverReserve)

	// Una reserva que sí cabe pasa.
	f.reserve(t, "PRJ-B", 20, "")
}

func TestReserve_RechazaSobreReservaPorUbicacion(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, "PRJ-A", 50, locA)

	// Global quedan 50, pero en locA sólo 10.
	_, err := f.uc.Reserve(context.Background(), reservation.ReserveInput{
		ProjectCode: "PRJ-B", MPN: testMPN, Qty: 11, Location: locA,
	})
	assert.ErrorIs(t, err, domain.ErrOverReserve)

	// En locB hay 40 libres.
	f.reserve(t, "PRJ-B", 40, locB)
}

func TestReserve_ValidacionesDeEntrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Reserve(ctx, reservation.ReserveInput{ProjectCode: "PRJ-A", MPN: testMPN, Qty: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Reserve(ctx, reservation.ReserveInput{MPN: testMPN, Qty: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "proyecto obligatorio")

	_, err = f.uc.Reserve(ctx, reservation.ReserveInput{ProjectCode: "PRJ-X", MPN: testMPN, Qty: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownProject)

	_, err = f.uc.Reserve(ctx, reservation.ReserveInput{ProjectCode: "PRJ-A", MPN: "NO-EXISTE", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownPart)

	_, err = f.uc.Reserve(ctx, reservation.ReserveInput{ProjectCode: "PRJ-A", MPN: testMPN, Qty: 1, Location: "NADA"})
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestRelease_LiberaSinTocarStock(t *testing.T) {
	f := newFixture(t)
	alloc := f.reserve(t, "PRJ-A", 100, "")

	released, err := f.uc.Release(context.Background(), alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusReleased, released.Status)

	// Liberada la reserva, la disponibilidad vuelve completa.
	f.reserve(t, "PRJ-B", 100, "")
}

func TestRelease_EstadoTerminalNoTransiciona(t *testing.T) {
	f := newFixture(t)
	alloc := f.reserve(t, "PRJ-A", 10, "")

	_, err := f.uc.Release(context.Background(), alloc.ID)
	require.NoError(t, err)

	_, err = f.uc.Release(context.Background(), alloc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = f.uc.Consume(context.Background(), alloc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestConsume_DescuentaYJournaliza(t *testing.T) {
	f := newFixture(t)
	alloc := f.reserve(t, "PRJ-A", 25, locA)

	res, err := f.uc.Consume(context.Background(), alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusConsumed, res.Allocation.Status)
	assert.Equal(t, int64(35), res.NewQty)
	assert.NotEmpty(t, res.TxnID)
	assert.Equal(t, int64(35), f.qtyAt(t, locA))
}

func TestConsume_SinUbicacionFijada(t *testing.T) {
	f := newFixture(t)
	alloc := f.reserve(t, "PRJ-A", 5, "")

	_, err := f.uc.Consume(context.Background(), alloc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El stock se drenó por otra vía después de reservar: el consumo aborta
// entero y la reserva sigue reserved (puede reintentarse tras reponer).
func TestConsume_StockDrenadoDejaReservaViva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alloc := f.reserve(t, "PRJ-A", 50, locA)

	_, err := f.stock.StockOut(ctx, ledger.StockOpInput{
		MPN: testMPN, Location: locA, Qty: 20, Operator: "otro",
	})
	require.NoError(t, err)

	_, err = f.uc.Consume(ctx, alloc.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.store.Repos().Allocations.GetByID(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AllocationStatusReserved, got.Status, "la reserva no transicionó")
	assert.Equal(t, int64(40), f.qtyAt(t, locA), "el consumo fallido no descontó nada")
}

func TestConsume_ReservaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Consume(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

// La propia reserva queda fuera de la suma: subir de 80 a 100 cabe aunque
// 80+100 supere el stock.
func TestUpdate_ExcluyeLaPropiaReserva(t *testing.T) {
	f := newFixture(t)
	alloc := f.reserve(t, "PRJ-A", 80, "")

	qty := int64(100)
	updated, err := f.uc.Update(context.Background(), alloc.ID, reservation.UpdateInput{Qty: &qty})
	require.NoError(t, err)
	assert.Equal(t, int64(100), updated.Qty)
}

func TestUpdate_RechazaSobreReserva(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, "PRJ-B", 30, "")
	alloc := f.reserve(t, "PRJ-A", 50, "")

	qty := int64(71) // 30 ajenas + 71 > 100
	_, err := f.uc.Update(context.Background(), alloc.ID, reservation.UpdateInput{Qty: &qty})
	assert.ErrorIs(t, err, domain.ErrOverReserve)

	got, err := f.store.Repos().Allocations.GetByID(alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.Qty, "la edición rechazada no mutó nada")
}

func TestUpdate_FijaUbicacionParaConsumir(t *testing.T) {
	f := newFixture(t)
	alloc := f.reserve(t, "PRJ-A", 10, "")

	loc := locB
	updated, err := f.uc.Update(context.Background(), alloc.ID, reservation.UpdateInput{Location: &loc})
	require.NoError(t, err)
	require.NotNil(t, updated.Location)
	assert.Equal(t, locB, *updated.Location)

	res, err := f.uc.Consume(context.Background(), alloc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), res.NewQty)
}

func TestUpdate_SinCambios(t *testing.T) {
	f := newFixture(t)
	alloc := f.reserve(t, "PRJ-A", 10, "")

	_, err := f.uc.Update(context.Background(), alloc.ID, reservation.UpdateInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestListByProject_ResuelveComponente(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, "PRJ-A", 10, locA)
	f.reserve(t, "PRJ-A", 5, "")
	f.reserve(t, "PRJ-B", 7, "")

	details, err := f.uc.ListByProject(context.Background(), "PRJ-A")
	require.NoError(t, err)
	require.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, testMPN, d.MPN)
		assert.Equal(t, "Amplificador operacional dual", d.PartName)
	}
}
