package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CatalogRow fila de un archivo de pedido de proveedor ya extraída: datos de
// catálogo más la cantidad comprada.
type CatalogRow struct {
	RowNumber int
	MPN       string
	Name      string
	Category  string
	Package   string
	Params    string
	URL       string
	Qty       int64
}

// CatalogReport resultado de una importación de catálogo.
type CatalogReport struct {
	PartsCreated int        `json:"parts_created"`
	PartsUpdated int        `json:"parts_updated"`
	Stock        *Report    `json:"stock,omitempty"`
	Errors       []RowError `json:"errors"`
}

// CatalogImporter da de alta o actualiza componentes desde un archivo de
// pedido de proveedor y, si el llamador indica una ubicación de entrada,
// aplica el ingreso de stock como un lote del BatchImporter (mismas garantías
// de atomicidad y mismo reporte por fila).
type CatalogImporter struct {
	parts repository.PartRepository
	locs  repository.LocationRepository
	batch *BatchImporter
}

// NewCatalogImporter construye el importador de catálogo.
func NewCatalogImporter(parts repository.PartRepository, locs repository.LocationRepository, batch *BatchImporter) *CatalogImporter {
	return &CatalogImporter{parts: parts, locs: locs, batch: batch}
}

// CatalogInput entrada de una importación de catálogo. InboundLocation vacío
// sólo actualiza el catálogo sin mover stock.
type CatalogInput struct {
	Rows            []CatalogRow
	ParseErrors     []RowError
	InboundLocation string
	Mode            string
	Operator        string
	SourceName      string
}

// Import hace upsert de cada componente y arma el lote IN opcional. Las filas
// sin MPN vienen ya reportadas por el extractor en ParseErrors; aquí jamás se
// descartan en silencio.
func (ci *CatalogImporter) Import(ctx context.Context, in CatalogInput) (*CatalogReport, error) {
	report := &CatalogReport{Errors: append([]RowError(nil), in.ParseErrors...)}
	note := ""
	if in.SourceName != "" {
		note = "importado de " + in.SourceName
	}

	var stockRows []Row
	for _, row := range in.Rows {
		created, err := ci.upsertPart(row, note)
		if err != nil {
			report.Errors = append(report.Errors, RowError{
				Row: row.RowNumber, Field: "mpn",
				Reason: reasonFor(err) + ": " + err.Error(),
			})
			continue
		}
		if created {
			report.PartsCreated++
		} else {
			report.PartsUpdated++
		}
		if in.InboundLocation != "" && row.Qty > 0 {
			stockRows = append(stockRows, Row{
				RowNumber: row.RowNumber,
				TxnType:   entity.TxnTypeIN,
				MPN:       row.MPN,
				Location:  in.InboundLocation,
				Qty:       row.Qty,
				Condition: entity.ConditionNew,
				Note:      note,
				Operator:  in.Operator,
			})
		}
	}

	if in.InboundLocation != "" {
		if err := ci.ensureInbox(in.InboundLocation); err != nil {
			return nil, err
		}
		stock, err := ci.batch.Import(ctx, Input{
			Rows:     stockRows,
			Mode:     in.Mode,
			Operator: in.Operator,
		})
		if err != nil {
			return nil, err
		}
		report.Stock = stock
	}
	return report, nil
}

// upsertPart crea el componente o actualiza sus campos descriptivos con los
// valores no vacíos del archivo. La identidad (MPN) nunca cambia.
func (ci *CatalogImporter) upsertPart(row CatalogRow, note string) (created bool, err error) {
	if row.MPN == "" {
		return false, fmt.Errorf("fila %d sin mpn: %w", row.RowNumber, domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	existing, err := ci.parts.GetByMPN(row.MPN)
	if err != nil {
		return false, err
	}
	if existing == nil {
		part := &entity.Part{
			ID:         uuid.New().String(),
			MPN:        row.MPN,
			Name:       firstNonEmpty(row.Name, row.MPN),
			Category:   firstNonEmpty(row.Category, "importado"),
			Package:    row.Package,
			Params:     row.Params,
			Unit:       "pcs",
			ProductURL: row.URL,
			Note:       note,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return true, ci.parts.Create(part)
	}
	overwrite(&existing.Name, row.Name)
	overwrite(&existing.Category, row.Category)
	overwrite(&existing.Package, row.Package)
	overwrite(&existing.Params, row.Params)
	overwrite(&existing.ProductURL, row.URL)
	existing.UpdatedAt = now
	return false, ci.parts.Update(existing)
}

// ensureInbox registra la ubicación de entrada si no existe todavía.
func (ci *CatalogImporter) ensureInbox(code string) error {
	_, err := ci.locs.CreateIfAbsent(&entity.Location{
		Code:      code,
		Note:      "creada automáticamente: entrada de pedidos de proveedor",
		CreatedAt: time.Now().UTC(),
	})
	return err
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func overwrite(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
