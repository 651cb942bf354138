package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// mapDomainError traduce un error de dominio a la respuesta HTTP. Todos los
// handlers fallan por este punto para que el mismo error salga siempre con el
// mismo código y estado.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", err)
	case errors.Is(err, domain.ErrInvalidLocation):
		return respond(c, fiber.StatusBadRequest, "INVALID_LOCATION", err)
	case errors.Is(err, domain.ErrUnknownPart):
		return respond(c, fiber.StatusNotFound, "UNKNOWN_PART", err)
	case errors.Is(err, domain.ErrUnknownProject):
		return respond(c, fiber.StatusNotFound, "UNKNOWN_PROJECT", err)
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrInsufficientStock):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrOverReserve):
		return respond(c, fiber.StatusConflict, "OVER_RESERVE", err)
	case errors.Is(err, domain.ErrInvalidState):
		return respond(c, fiber.StatusConflict, "INVALID_STATE", err)
	case errors.Is(err, domain.ErrConflict):
		return respond(c, fiber.StatusConflict, "CONFLICT", err)
	case errors.Is(err, domain.ErrStoreBusy):
		c.Set(fiber.HeaderRetryAfter, "1")
		return respond(c, fiber.StatusServiceUnavailable, "STORE_BUSY", err)
	default:
		return respond(c, fiber.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// badBody respuesta estándar cuando el body no parsea.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: "cuerpo inválido",
	})
}

// fiberTimeError error de dominio para un query param de fecha ilegible.
func fiberTimeError(name, raw string) error {
	return fmt.Errorf("parámetro %s=%q no es RFC 3339: %w", name, raw, domain.ErrInvalidInput)
}
