package forms_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/forms"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newUseCase almacén con un proyecto, dos componentes en BOM, stock repartido
// y una reserva activa.
func newUseCase(t *testing.T) *forms.UseCase {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()

	projectID := uuid.New().String()
	require.NoError(t, repos.Projects.Create(&entity.Project{
		ID: projectID, Code: "PRJ-AMP", Name: "Amplificador",
		Status: entity.ProjectStatusActive, CreatedAt: now, UpdatedAt: now,
	}))

	mcuID, capID := uuid.New().String(), uuid.New().String()
	require.NoError(t, repos.Parts.Create(&entity.Part{ID: mcuID, MPN: "ATMEGA328P", Name: "MCU AVR", Unit: "pcs", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Parts.Create(&entity.Part{ID: capID, MPN: "C0805-100N", Name: "Capacitor 100nF", Unit: "pcs", CreatedAt: now, UpdatedAt: now}))

	require.NoError(t, repos.BOM.Upsert(&entity.BOMLine{
		ID: uuid.New().String(), ProjectID: projectID, PartID: mcuID, ReqQty: 2, Priority: 1, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, repos.BOM.Upsert(&entity.BOMLine{
		ID: uuid.New().String(), ProjectID: projectID, PartID: capID, ReqQty: 20, Priority: 2, CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, repos.Stock.Upsert(&entity.Stock{
		ID: uuid.New().String(), PartID: mcuID, Location: "C409-G01-S01-P01",
		Condition: entity.ConditionNew, Qty: 5, UpdatedAt: now,
	}))
	require.NoError(t, repos.Stock.Upsert(&entity.Stock{
		ID: uuid.New().String(), PartID: capID, Location: "C409-G01-S01-P02",
		Condition: entity.ConditionNew, Qty: 100, UpdatedAt: now,
	}))
	require.NoError(t, repos.Stock.Upsert(&entity.Stock{
		ID: uuid.New().String(), PartID: capID, Location: "C409-G02-S01-P01",
		Condition: entity.ConditionNew, Qty: 50, UpdatedAt: now,
	}))

	require.NoError(t, repos.Allocations.Create(&entity.Allocation{
		ID: uuid.New().String(), ProjectID: projectID, PartID: capID,
		Condition: entity.ConditionNew, Qty: 20,
		Status: entity.AllocationStatusReserved, CreatedAt: now, UpdatedAt: now,
	}))

	return forms.NewUseCase(repos.Projects, repos.BOM, repos.Parts, repos.Stock, repos.Allocations)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del formulario
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_FormularioDeRetiro(t *testing.T) {
	uc := newUseCase(t)

	doc, err := uc.Build("PRJ-AMP", forms.KindOutbound)
	require.NoError(t, err)
	assert.Equal(t, forms.KindOutbound, doc.Kind)
	assert.Equal(t, "PRJ-AMP", doc.ProjectCode)
	assert.Equal(t, "Amplificador", doc.ProjectName)
	require.Len(t, doc.Rows, 2)

	// Ordenadas por MPN con secuencia 1-based.
	assert.Equal(t, 1, doc.Rows[0].Seq)
	assert.Equal(t, "ATMEGA328P", doc.Rows[0].MPN)
	assert.Equal(t, int64(2), doc.Rows[0].RequiredQty)
	assert.Equal(t, int64(0), doc.Rows[0].ReservedQty)
	assert.Equal(t, "C409-G01-S01-P01 (5)", doc.Rows[0].Locations)

	assert.Equal(t, 2, doc.Rows[1].Seq)
	assert.Equal(t, "C0805-100N", doc.Rows[1].MPN)
	assert.Equal(t, int64(20), doc.Rows[1].ReservedQty)
	assert.Contains(t, doc.Rows[1].Locations, "C409-G01-S01-P02 (100)")
	assert.Contains(t, doc.Rows[1].Locations, "C409-G02-S01-P01 (50)")
}

func TestBuild_TipoInvalido(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Build("PRJ-AMP", "lateral")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuild_ProyectoDesconocido(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Build("PRJ-NADA", forms.KindInbound)
	assert.ErrorIs(t, err, domain.ErrUnknownProject)
}

func TestBuild_ProyectoSinBOM(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()
	require.NoError(t, repos.Projects.Create(&entity.Project{
		ID: uuid.New().String(), Code: "PRJ-VACIO", Name: "Vacío",
		Status: entity.ProjectStatusActive, CreatedAt: now, UpdatedAt: now,
	}))
	uc := forms.NewUseCase(repos.Projects, repos.BOM, repos.Parts, repos.Stock, repos.Allocations)

	_, err := uc.Build("PRJ-VACIO", forms.KindOutbound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
