package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/importer"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/supplier"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/xlsx"
)

// ImportHandler importación por lotes: libros de transacciones, plantilla y
// pedidos de proveedor.
type ImportHandler struct {
	batch    *importer.BatchImporter
	catalog  *importer.CatalogImporter
	xlsx     *xlsx.Reader
	supplier *supplier.Reader
}

// NewImportHandler construye el handler.
func NewImportHandler(
	batch *importer.BatchImporter,
	catalog *importer.CatalogImporter,
	xlsxReader *xlsx.Reader,
	supplierReader *supplier.Reader,
) *ImportHandler {
	return &ImportHandler{batch: batch, catalog: catalog, xlsx: xlsxReader, supplier: supplierReader}
}

// ImportTransactions godoc
// @Summary      Importar un libro de transacciones
// @Description  Sube un XLSX (hojas Transactions o StockIn/StockOut). En modo all-or-nothing (default) cualquier fila inválida impide aplicar el lote; en modo partial cada fila decide por sí sola. El reporte trae todas las fallas direccionadas por hoja y fila.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Libro XLSX"
// @Param        mode    query     string  false  "all-or-nothing (default) | partial"
// @Param        layout  query     string  false  "auto (default) | transactions | stock-io"
// @Param        operator query    string  false  "Operador del lote"
// @Success      200  {object}  importer.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse  "almacén ocupado, reintente"
// @Router       /api/v1/imports/transactions [post]
func (h *ImportHandler) ImportTransactions(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "falta el archivo 'file'",
		})
	}
	src, err := openUpload(fileHeader)
	if err != nil {
		return mapDomainError(c, err)
	}
	defer src.Close()

	rows, parseErrs, err := h.xlsx.Read(src, c.Query("layout"))
	if err != nil {
		return mapDomainError(c, err)
	}
	report, err := h.batch.Import(c.Context(), importer.Input{
		Rows:        rows,
		ParseErrors: parseErrs,
		Mode:        c.Query("mode"),
		Operator:    c.Query("operator"),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// DownloadTemplate godoc
// @Summary      Descargar la plantilla de importación
// @Tags         imports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/v1/imports/template [get]
func (h *ImportHandler) DownloadTemplate(c *fiber.Ctx) error {
	data, err := xlsx.WriteTemplate()
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="plantilla-importacion.xlsx"`)
	return c.Send(data)
}

// ImportCatalog godoc
// @Summary      Importar un pedido de proveedor
// @Description  Da de alta o actualiza componentes desde un CSV/XLSX de pedido (encabezados en chino o inglés). Con inbound_location también aplica el ingreso de stock como lote.
// @Tags         imports
// @Accept       multipart/form-data
// @Produce      json
// @Param        file              formData  file    true   "Archivo CSV o XLSX del proveedor"
// @Param        inbound_location  query     string  false  "Ubicación de entrada; vacío = sólo catálogo"
// @Param        mode              query     string  false  "all-or-nothing (default) | partial"
// @Param        operator          query     string  false  "Operador"
// @Success      200  {object}  importer.CatalogReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/imports/catalog [post]
func (h *ImportHandler) ImportCatalog(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "falta el archivo 'file'",
		})
	}
	src, err := openUpload(fileHeader)
	if err != nil {
		return mapDomainError(c, err)
	}
	defer src.Close()

	rows, parseErrs, err := h.supplier.Read(src, fileHeader.Filename)
	if err != nil {
		return mapDomainError(c, err)
	}
	report, err := h.catalog.Import(c.Context(), importer.CatalogInput{
		Rows:            rows,
		ParseErrors:     parseErrs,
		InboundLocation: c.Query("inbound_location"),
		Mode:            c.Query("mode"),
		Operator:        c.Query("operator"),
		SourceName:      fileHeader.Filename,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

func openUpload(fh *multipart.FileHeader) (multipart.File, error) {
	return fh.Open()
}
