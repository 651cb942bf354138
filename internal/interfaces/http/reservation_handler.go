package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/reservation"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ReservationHandler maneja el ciclo de vida de las reservas.
type ReservationHandler struct {
	uc *reservation.UseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *reservation.UseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Reserve godoc
// @Summary      Crear una reserva
// @Description  Admite la reserva sólo si disponible = stock - reservas activas lo permite, global y por ubicación si se fija una.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveRequest  true  "project_code, mpn, qty; location/condition/note opcionales"
// @Success      201   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "excede la disponibilidad"
// @Router       /api/v1/reservations [post]
func (h *ReservationHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	alloc, err := h.uc.Reserve(c.Context(), reservation.ReserveInput{
		ProjectCode: in.ProjectCode,
		MPN:         in.MPN,
		Location:    in.Location,
		Qty:         in.Qty,
		Condition:   in.Condition,
		Note:        in.Note,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAllocationResponse(alloc, "", ""))
}

// Update godoc
// @Summary      Editar una reserva activa
// @Description  Cambia cantidad y/o ubicación re-ejecutando el control de admisión (la propia reserva no cuenta contra sí misma).
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la reserva"
// @Param        body  body  dto.UpdateAllocationRequest  true  "qty y/o location"
// @Success      200   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "excede la disponibilidad o la reserva ya es terminal"
// @Router       /api/v1/reservations/{id} [patch]
func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	alloc, err := h.uc.Update(c.Context(), c.Params("id"), reservation.UpdateInput{
		Qty:      in.Qty,
		Location: in.Location,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toAllocationResponse(alloc, "", ""))
}

// Release godoc
// @Summary      Liberar una reserva
// @Description  reserved -> released. No toca stock ni ledger: el material nunca se movió.
// @Tags         reservations
// @Produce      json
// @Param        id  path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.AllocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "la reserva ya es terminal"
// @Router       /api/v1/reservations/{id}/release [post]
func (h *ReservationHandler) Release(c *fiber.Ctx) error {
	alloc, err := h.uc.Release(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toAllocationResponse(alloc, "", ""))
}

// Consume godoc
// @Summary      Consumir una reserva
// @Description  reserved -> consumed y descuenta el stock en la misma unidad atómica (transacción OUT a cuenta del proyecto).
// @Tags         reservations
// @Produce      json
// @Param        id  path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.ConsumeResponse
// @Failure      400  {object}  dto.ErrorResponse  "la reserva no fija ubicación"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "terminal o stock insuficiente"
// @Router       /api/v1/reservations/{id}/consume [post]
func (h *ReservationHandler) Consume(c *fiber.Ctx) error {
	res, err := h.uc.Consume(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ConsumeResponse{
		Allocation: toAllocationResponse(res.Allocation, "", ""),
		TxnID:      res.TxnID,
		NewQty:     res.NewQty,
	})
}

func toAllocationResponse(a *entity.Allocation, mpn, partName string) dto.AllocationResponse {
	return dto.AllocationResponse{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		MPN:       mpn,
		PartName:  partName,
		Location:  a.Location,
		Condition: a.Condition,
		Qty:       a.Qty,
		Status:    a.Status,
		Note:      a.Note,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
