package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TxnFilter filtra la consulta del ledger; los punteros nulos no filtran.
type TxnFilter struct {
	ProjectID *string
	PartID    *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}

// TransactionRepository define el puerto del ledger inmutable. Sólo inserta
// y consulta: las cabeceras y líneas jamás se actualizan ni se borran.
type TransactionRepository interface {
	CreateHeader(header *entity.TransactionHeader) error
	AppendLine(line *entity.TransactionLine) error
	// Query devuelve cabeceras con sus líneas en orden ascendente de
	// creación; filtro puro sobre datos inmutables, reanudable por página.
	Query(filter TxnFilter) ([]*entity.TransactionWithLines, error)
}
