package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Semántica transaccional
// ──────────────────────────────────────────────────────────────────────────────

// Un error dentro de Run descarta el clon entero: nada de lo escrito por el
// callback debe ser visible después.
func TestRun_ErrorDescartaElClonCompleto(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	partID := uuid.New().String()
	boom := errors.New("boom")

	err := store.Run(context.Background(), func(r ledger.TxRepos) error {
		require.NoError(t, r.Parts.Create(&entity.Part{ID: partID, MPN: "X1", CreatedAt: now, UpdatedAt: now}))
		require.NoError(t, r.Stock.Upsert(&entity.Stock{
			ID: uuid.New().String(), PartID: partID, Location: "L1",
			Condition: entity.ConditionNew, Qty: 9, UpdatedAt: now,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Repos().Parts.GetByMPN("X1")
	require.NoError(t, err)
	assert.Nil(t, got, "la escritura revirtió con el clon")
}

func TestRun_CommitPublicaElClon(t *testing.T) {
	store := memory.NewStore()
	now := time.Now().UTC()
	partID := uuid.New().String()

	err := store.Run(context.Background(), func(r ledger.TxRepos) error {
		return r.Parts.Create(&entity.Part{ID: partID, MPN: "X1", CreatedAt: now, UpdatedAt: now})
	})
	require.NoError(t, err)

	got, err := store.Repos().Parts.GetByID(partID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "X1", got.MPN)
}

func TestRun_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Run(ctx, func(r ledger.TxRepos) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento por valor
// ──────────────────────────────────────────────────────────────────────────────

// Mutar la entidad devuelta no debe tocar el estado del almacén.
func TestRepos_DevuelvenCopias(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()
	partID := uuid.New().String()
	require.NoError(t, repos.Parts.Create(&entity.Part{ID: partID, MPN: "X1", Name: "original", CreatedAt: now, UpdatedAt: now}))

	got, err := repos.Parts.GetByID(partID)
	require.NoError(t, err)
	got.Name = "mutado por fuera"

	again, err := repos.Parts.GetByID(partID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Name)
}

func TestParts_MPNDuplicado(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()
	require.NoError(t, repos.Parts.Create(&entity.Part{ID: uuid.New().String(), MPN: "X1", CreatedAt: now, UpdatedAt: now}))

	err := repos.Parts.Create(&entity.Part{ID: uuid.New().String(), MPN: "X1", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStock_GetSinFilaDevuelveCero(t *testing.T) {
	store := memory.NewStore()

	s, err := store.Repos().Stock.Get("nadie", "L1", entity.ConditionNew)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(0), s.Qty)
}
