package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// LocationHandler registro de ubicaciones físicas y cuadrícula.
type LocationHandler struct {
	uc *usecase.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar una ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "code único"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "código duplicado"
// @Router       /api/v1/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Create(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// Get godoc
// @Summary      Obtener una ubicación
// @Tags         locations
// @Produce      json
// @Param        code  path  string  true  "Código"
// @Success      200   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse  "ubicación no registrada"
// @Router       /api/v1/locations/{code} [get]
func (h *LocationHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.Get(c.Params("code"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/v1/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	res, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// InitGrid godoc
// @Summary      Generar la cuadrícula de un cuarto
// @Description  Crea los códigos {room}-{cabinet}-S{shelf:02d}-P{position:02d} que falten. Idempotente.
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitGridRequest  true  "room, gabinetes con estantes, posiciones por estante (default 10)"
// @Success      201   {object}  dto.InitGridResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/locations/grid [post]
func (h *LocationHandler) InitGrid(c *fiber.Ctx) error {
	var in dto.InitGridRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.InitGrid(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
