package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// PartHandler CRUD del catálogo de componentes.
type PartHandler struct {
	uc *usecase.PartUseCase
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *usecase.PartUseCase) *PartHandler {
	return &PartHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar un componente
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "mpn obligatorio y único"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "MPN duplicado"
// @Router       /api/v1/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
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
// @Summary      Obtener un componente por MPN
// @Tags         parts
// @Produce      json
// @Param        mpn  path  string  true  "MPN"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/parts/{mpn} [get]
func (h *PartHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.GetByMPN(c.Params("mpn"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// Update godoc
// @Summary      Editar un componente
// @Description  Sólo campos descriptivos; el MPN es inmutable.
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        mpn   path  string  true  "MPN"
// @Param        body  body  dto.UpdatePartRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.PartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/parts/{mpn} [put]
func (h *PartHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Update(c.Params("mpn"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// List godoc
// @Summary      Buscar componentes
// @Tags         parts
// @Produce      json
// @Param        search  query  string  false  "Fragmento de MPN o nombre"
// @Param        limit   query  int     false  "Tamaño de página"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.PartListResponse
// @Router       /api/v1/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	res, err := h.uc.List(c.Query("search"), page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// Delete godoc
// @Summary      Eliminar un componente sin referencias
// @Description  Falla si el componente tiene stock, reservas, BOM o historial: el ledger debe seguir siendo reconstruible.
// @Tags         parts
// @Param        mpn  path  string  true  "MPN"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "componente referenciado"
// @Router       /api/v1/parts/{mpn} [delete]
func (h *PartHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("mpn")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
