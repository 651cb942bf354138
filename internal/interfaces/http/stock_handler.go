package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockHandler maneja las operaciones físicas del ledger y el listado de stock.
type StockHandler struct {
	stock *ledger.StockUseCase
	query *usecase.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *ledger.StockUseCase, query *usecase.StockQueryUseCase) *StockHandler {
	return &StockHandler{stock: stock, query: query}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOpRequest  true  "mpn, location, qty, condition/project_code/ref/note/operator opcionales"
// @Success      201   {object}  dto.StockOpResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockOpRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.stock.StockIn(c.Context(), toStockOpInput(in))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockOpResponse(res))
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOpRequest  true  "mpn, location, qty"
// @Success      201   {object}  dto.StockOpResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/v1/stock/out [post]
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOpRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.stock.StockOut(c.Context(), toStockOpInput(in))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockOpResponse(res))
}

// StockMove godoc
// @Summary      Trasladar stock entre ubicaciones
// @Description  Una sola transacción MOVE con dos líneas (-qty origen, +qty destino); ambas se aplican o ninguna.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMoveRequest  true  "mpn, from_location, to_location, qty"
// @Success      201   {object}  dto.StockOpResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente en origen"
// @Router       /api/v1/stock/move [post]
func (h *StockHandler) StockMove(c *fiber.Ctx) error {
	var in dto.StockMoveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.stock.StockMove(c.Context(), ledger.MoveInput{
		MPN:          in.MPN,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Qty:          in.Qty,
		Condition:    in.Condition,
		ProjectCode:  in.ProjectCode,
		Ref:          in.Ref,
		Note:         in.Note,
		Operator:     in.Operator,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockOpResponse(res))
}

// StockAdjust godoc
// @Summary      Corregir conteo de stock
// @Description  Exactamente uno de add_qty/sub_qty debe ser positivo; la nota es obligatoria.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustRequest  true  "mpn, location, add_qty o sub_qty, note"
// @Success      201   {object}  dto.StockOpResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "la resta dejaría la cantidad en negativo"
// @Router       /api/v1/stock/adjust [post]
func (h *StockHandler) StockAdjust(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.stock.StockAdjust(c.Context(), ledger.AdjustInput{
		MPN:       in.MPN,
		Location:  in.Location,
		AddQty:    in.AddQty,
		SubQty:    in.SubQty,
		Condition: in.Condition,
		Note:      in.Note,
		Ref:       in.Ref,
		Operator:  in.Operator,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockOpResponse(res))
}

// List godoc
// @Summary      Listar stock actual
// @Tags         stock
// @Produce      json
// @Param        mpn        query  string  false  "Filtrar por MPN exacto"
// @Param        location   query  string  false  "Filtrar por ubicación"
// @Param        condition  query  string  false  "Filtrar por condición"
// @Param        limit      query  int     false  "Tamaño de página (máx 500)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/v1/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	res, err := h.query.List(repository.StockFilter{
		MPN:       c.Query("mpn"),
		Location:  c.Query("location"),
		Condition: c.Query("condition"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

func toStockOpInput(in dto.StockOpRequest) ledger.StockOpInput {
	return ledger.StockOpInput{
		MPN:         in.MPN,
		Location:    in.Location,
		Qty:         in.Qty,
		Condition:   in.Condition,
		ProjectCode: in.ProjectCode,
		Ref:         in.Ref,
		Note:        in.Note,
		Operator:    in.Operator,
	}
}

func toStockOpResponse(res *ledger.OpResult) dto.StockOpResponse {
	out := dto.StockOpResponse{TxnID: res.TxnID, Type: res.Type, Ref: res.Ref}
	for _, l := range res.Lines {
		out.Lines = append(out.Lines, dto.StockLineResponse{
			Location:  l.Location,
			Condition: l.Condition,
			QtyDelta:  l.QtyDelta,
			NewQty:    l.NewQty,
		})
	}
	return out
}
