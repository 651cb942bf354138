package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cuadrícula de ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestInitGrid_GeneraCodigosCompletos(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(store.Repos().Locations)

	res, err := uc.InitGrid(dto.InitGridRequest{
		Room: "C409",
		Cabinets: []dto.CabinetSpec{
			{Code: "G01", Shelves: 2},
			{Code: "G02", Shelves: 1},
		},
		PositionsPerShelf: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Created, "2*3 + 1*3 posiciones")
	assert.Equal(t, 9, res.Total)

	got, err := uc.Get("C409-G01-S02-P03")
	require.NoError(t, err)
	assert.Equal(t, "C409-G01-S02-P03", got.Code)
}

func TestInitGrid_Idempotente(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(store.Repos().Locations)

	req := dto.InitGridRequest{
		Room:              "C409",
		Cabinets:          []dto.CabinetSpec{{Code: "G01", Shelves: 1}},
		PositionsPerShelf: 5,
	}
	first, err := uc.InitGrid(req)
	require.NoError(t, err)
	assert.Equal(t, 5, first.Created)

	second, err := uc.InitGrid(req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created, "segunda corrida no crea nada")
	assert.Equal(t, 5, second.Total)
}

func TestInitGrid_PosicionesPorDefecto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(store.Repos().Locations)

	res, err := uc.InitGrid(dto.InitGridRequest{
		Room:     "C409",
		Cabinets: []dto.CabinetSpec{{Code: "G01", Shelves: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Created, "10 posiciones por estante por defecto")
}

func TestInitGrid_EntradaInvalida(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(store.Repos().Locations)

	_, err := uc.InitGrid(dto.InitGridRequest{Room: "", Cabinets: []dto.CabinetSpec{{Code: "G01", Shelves: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.InitGrid(dto.InitGridRequest{Room: "C409"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.InitGrid(dto.InitGridRequest{
		Room:     "C409",
		Cabinets: []dto.CabinetSpec{{Code: "G01", Shelves: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta individual
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationCreate_Duplicada(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(store.Repos().Locations)

	_, err := uc.Create(dto.CreateLocationRequest{Code: "INBOX"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateLocationRequest{Code: "INBOX"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocationGet_NoRegistrada(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(store.Repos().Locations)

	_, err := uc.Get("NADA")
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}
