package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock        *StockHandler
	Reservations *ReservationHandler
	Ledger       *LedgerHandler
	Imports      *ImportHandler
	Parts        *PartHandler
	Locations    *LocationHandler
	Projects     *ProjectHandler
	Schema       *SchemaHandler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Operaciones físicas del ledger y listado de stock
	stock := api.Group("/stock")
	stock.Post("/in", deps.Stock.StockIn)
	stock.Post("/out", deps.Stock.StockOut)
	stock.Post("/move", deps.Stock.StockMove)
	stock.Post("/adjust", deps.Stock.StockAdjust)
	stock.Get("/", deps.Stock.List)

	// Reservas
	reservations := api.Group("/reservations")
	reservations.Post("/", deps.Reservations.Reserve)
	reservations.Patch("/:id", deps.Reservations.Update)
	reservations.Post("/:id/release", deps.Reservations.Release)
	reservations.Post("/:id/consume", deps.Reservations.Consume)

	// Historial y auditoría
	ledgerGroup := api.Group("/ledger")
	ledgerGroup.Get("/", deps.Ledger.Query)
	ledgerGroup.Get("/audit", deps.Ledger.Audit)

	// Importación por lotes
	imports := api.Group("/imports")
	imports.Post("/transactions", deps.Imports.ImportTransactions)
	imports.Get("/template", deps.Imports.DownloadTemplate)
	imports.Post("/catalog", deps.Imports.ImportCatalog)

	// Catálogo de componentes
	parts := api.Group("/parts")
	parts.Post("/", deps.Parts.Create)
	parts.Get("/", deps.Parts.List)
	parts.Get("/:mpn", deps.Parts.Get)
	parts.Put("/:mpn", deps.Parts.Update)
	parts.Delete("/:mpn", deps.Parts.Delete)

	// Ubicaciones (grid antes que :code para que no lo capture el parámetro)
	locations := api.Group("/locations")
	locations.Post("/grid", deps.Locations.InitGrid)
	locations.Post("/", deps.Locations.Create)
	locations.Get("/", deps.Locations.List)
	locations.Get("/:code", deps.Locations.Get)

	// Proyectos, BOM, estado y formularios
	projects := api.Group("/projects")
	projects.Post("/", deps.Projects.Create)
	projects.Get("/", deps.Projects.List)
	projects.Get("/:code", deps.Projects.Get)
	projects.Put("/:code", deps.Projects.Update)
	projects.Put("/:code/bom", deps.Projects.SetBOMLine)
	projects.Get("/:code/bom", deps.Projects.ListBOM)
	projects.Delete("/:code/bom/:mpn", deps.Projects.DeleteBOMLine)
	projects.Get("/:code/status", deps.Projects.MaterialStatus)
	projects.Get("/:code/allocations", deps.Projects.ListAllocations)
	projects.Get("/:code/forms/:kind", deps.Projects.Form)

	// Esquema
	api.Get("/schema/export", deps.Schema.Export)
}
