package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// SchemaHandler export del esquema vigente para respaldo/auditoría.
type SchemaHandler struct {
	uc *usecase.SchemaUseCase
}

// NewSchemaHandler construye el handler.
func NewSchemaHandler(uc *usecase.SchemaUseCase) *SchemaHandler {
	return &SchemaHandler{uc: uc}
}

// Export godoc
// @Summary      Exportar el esquema de la base de datos
// @Tags         schema
// @Produce      plain
// @Param        format  query  string  false  "sql (default) | md"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/schema/export [get]
func (h *SchemaHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.Export(c.Context(), c.Query("format"))
	if err != nil {
		return mapDomainError(c, err)
	}
	contentType := "text/plain; charset=utf-8"
	if c.Query("format") == "md" || c.Query("format") == "markdown" {
		contentType = "text/markdown; charset=utf-8"
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.SendString(out)
}
