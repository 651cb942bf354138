package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/forms"
	"github.com/jhoicas/Almacen-api/internal/application/reservation"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
)

// ProjectHandler proyectos, BOM, estado de material, reservas por proyecto y
// formularios.
type ProjectHandler struct {
	uc           *usecase.ProjectUseCase
	reports      *usecase.ReportUseCase
	reservations *reservation.UseCase
	forms        *forms.UseCase
	renderers    map[string]forms.Renderer // por query param "format"
}

// NewProjectHandler construye el handler. renderers mapea formato -> renderer
// (ej. "pdf", "csv").
func NewProjectHandler(
	uc *usecase.ProjectUseCase,
	reports *usecase.ReportUseCase,
	reservations *reservation.UseCase,
	formsUC *forms.UseCase,
	renderers map[string]forms.Renderer,
) *ProjectHandler {
	return &ProjectHandler{
		uc:           uc,
		reports:      reports,
		reservations: reservations,
		forms:        formsUC,
		renderers:    renderers,
	}
}

// Create godoc
// @Summary      Registrar un proyecto
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "code único"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      409   {object}  dto.ErrorResponse  "código duplicado"
// @Router       /api/v1/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
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
// @Summary      Obtener un proyecto
// @Tags         projects
// @Produce      json
// @Param        code  path  string  true  "Código"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/projects/{code} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// Update godoc
// @Summary      Editar un proyecto
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código"
// @Param        body  body  dto.UpdateProjectRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/projects/{code} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Update(c.Params("code"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// List godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Produce      json
// @Param        limit   query  int  false  "Tamaño de página"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.ProjectListResponse
// @Router       /api/v1/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
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

// SetBOMLine godoc
// @Summary      Insertar o reemplazar una línea del BOM
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        code  path  string  true  "Código del proyecto"
// @Param        body  body  dto.BOMLineRequest  true  "mpn, req_qty; priority default 100"
// @Success      200   {object}  dto.BOMLineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/projects/{code}/bom [put]
func (h *ProjectHandler) SetBOMLine(c *fiber.Ctx) error {
	var in dto.BOMLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.SetBOMLine(c.Params("code"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// ListBOM godoc
// @Summary      Listar el BOM de un proyecto
// @Tags         projects
// @Produce      json
// @Param        code  path  string  true  "Código del proyecto"
// @Success      200   {array}  dto.BOMLineResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/projects/{code}/bom [get]
func (h *ProjectHandler) ListBOM(c *fiber.Ctx) error {
	res, err := h.uc.ListBOM(c.Params("code"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// DeleteBOMLine godoc
// @Summary      Borrar una línea del BOM
// @Tags         projects
// @Param        code  path  string  true  "Código del proyecto"
// @Param        mpn   path  string  true  "MPN"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/projects/{code}/bom/{mpn} [delete]
func (h *ProjectHandler) DeleteBOMLine(c *fiber.Ctx) error {
	if err := h.uc.DeleteBOMLine(c.Params("code"), c.Params("mpn")); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MaterialStatus godoc
// @Summary      Estado de material del proyecto
// @Description  Por componente del BOM: requerido, reservado, consumido, en mano y faltante.
// @Tags         projects
// @Produce      json
// @Param        code  path  string  true  "Código del proyecto"
// @Success      200   {array}  dto.MaterialStatusResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/projects/{code}/status [get]
func (h *ProjectHandler) MaterialStatus(c *fiber.Ctx) error {
	res, err := h.reports.MaterialStatus(c.Context(), c.Params("code"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// ListAllocations godoc
// @Summary      Listar las reservas de un proyecto
// @Tags         projects
// @Produce      json
// @Param        code  path  string  true  "Código del proyecto"
// @Success      200   {array}  dto.AllocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/projects/{code}/allocations [get]
func (h *ProjectHandler) ListAllocations(c *fiber.Ctx) error {
	details, err := h.reservations.ListByProject(c.Context(), c.Params("code"))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.AllocationResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toAllocationResponse(d.Allocation, d.MPN, d.PartName))
	}
	return c.JSON(out)
}

// Form godoc
// @Summary      Generar un formulario del proyecto
// @Description  kind: outbound (retiro) | inbound (devolución). format: pdf (default) | csv.
// @Tags         projects
// @Produce      application/pdf
// @Param        code    path   string  true   "Código del proyecto"
// @Param        kind    path   string  true   "outbound | inbound"
// @Param        format  query  string  false  "pdf (default) | csv"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse  "proyecto desconocido o sin BOM"
// @Router       /api/v1/projects/{code}/forms/{kind} [get]
func (h *ProjectHandler) Form(c *fiber.Ctx) error {
	format := c.Query("format", "pdf")
	renderer, ok := h.renderers[format]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: fmt.Sprintf("formato %q (pdf|csv)", format),
		})
	}
	doc, err := h.forms.Build(c.Params("code"), c.Params("kind"))
	if err != nil {
		return mapDomainError(c, err)
	}
	data, err := renderer.Render(doc)
	if err != nil {
		return mapDomainError(c, err)
	}
	filename := fmt.Sprintf("%s-%s.%s", doc.ProjectCode, doc.Kind, renderer.FileExtension())
	c.Set(fiber.HeaderContentType, renderer.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
