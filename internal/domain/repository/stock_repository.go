package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockFilter filtra el listado de stock; los campos vacíos no filtran.
type StockFilter struct {
	MPN       string
	Location  string
	Condition string
	Limit     int
	Offset    int
}

// StockRow entrada de stock con el MPN resuelto, para listados.
type StockRow struct {
	MPN       string
	Location  string
	Condition string
	Qty       int64
	Note      string
	UpdatedAt time.Time
}

// StockRepository define el puerto para consultar/actualizar el stock por
// (parte, ubicación, condición). Las mutaciones siempre ocurren dentro de una
// transacción, con la fila bloqueada vía GetForUpdate.
type StockRepository interface {
	Get(partID, location, condition string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar los
	// deltas concurrentes sobre la misma combinación.
	GetForUpdate(partID, location, condition string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// SumByPart y SumByPartLocation alimentan el cálculo de disponibilidad.
	SumByPart(partID string) (int64, error)
	SumByPartLocation(partID, location string) (int64, error)
	ListByPart(partID string) ([]*entity.Stock, error)
	List(filter StockFilter) ([]StockRow, error)
}
