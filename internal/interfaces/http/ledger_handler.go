package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LedgerHandler consultas de lectura del historial y auditoría.
type LedgerHandler struct {
	query *ledger.QueryUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(query *ledger.QueryUseCase) *LedgerHandler {
	return &LedgerHandler{query: query}
}

// Query godoc
// @Summary      Consultar el historial de transacciones
// @Description  Cabeceras con sus líneas en orden ascendente de creación; filtrable por proyecto, MPN y rango de fechas (RFC 3339).
// @Tags         ledger
// @Produce      json
// @Param        project  query  string  false  "Código de proyecto"
// @Param        mpn      query  string  false  "MPN"
// @Param        since    query  string  false  "Desde (RFC 3339)"
// @Param        until    query  string  false  "Hasta (RFC 3339)"
// @Param        limit    query  int     false  "Tamaño de página (máx 500)"
// @Param        offset   query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse  "proyecto o MPN desconocido"
// @Router       /api/v1/ledger [get]
func (h *LedgerHandler) Query(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	in := ledger.QueryInput{
		ProjectCode: c.Query("project"),
		MPN:         c.Query("mpn"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	var err error
	if in.Since, err = parseTimeQuery(c, "since"); err != nil {
		return mapDomainError(c, err)
	}
	if in.Until, err = parseTimeQuery(c, "until"); err != nil {
		return mapDomainError(c, err)
	}

	txns, err := h.query.Query(c.Context(), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	res := dto.LedgerResponse{
		Items: make([]dto.TransactionResponse, 0, len(txns)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, t := range txns {
		res.Items = append(res.Items, toTransactionResponse(t))
	}
	return c.JSON(res)
}

// Audit godoc
// @Summary      Auditar ledger contra stock
// @Description  Recalcula la suma de deltas por combinación y la compara contra la cantidad actual. Lista vacía = consistente.
// @Tags         ledger
// @Produce      json
// @Success      200  {array}  dto.AuditMismatchResponse
// @Router       /api/v1/ledger/audit [get]
func (h *LedgerHandler) Audit(c *fiber.Ctx) error {
	rows, err := h.query.Audit(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.AuditMismatchResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AuditMismatchResponse{
			MPN:       r.MPN,
			Location:  r.Location,
			Condition: r.Condition,
			StockQty:  r.StockQty,
			LedgerSum: r.LedgerSum,
		})
	}
	return c.JSON(out)
}

func toTransactionResponse(t *entity.TransactionWithLines) dto.TransactionResponse {
	res := dto.TransactionResponse{
		ID:        t.Header.ID,
		Type:      t.Header.Type,
		ProjectID: t.Header.ProjectID,
		Ref:       t.Header.Ref,
		Note:      t.Header.Note,
		Operator:  t.Header.Operator,
		CreatedAt: t.Header.CreatedAt,
		Lines:     make([]dto.TransactionLineResponse, 0, len(t.Lines)),
	}
	for _, l := range t.Lines {
		res.Lines = append(res.Lines, dto.TransactionLineResponse{
			ID:        l.ID,
			MPN:       l.MPNSnapshot,
			Location:  l.Location,
			Condition: l.Condition,
			QtyDelta:  l.QtyDelta,
			Note:      l.Note,
			CreatedAt: l.CreatedAt,
		})
	}
	return res
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fiberTimeError(name, raw)
	}
	return &t, nil
}
