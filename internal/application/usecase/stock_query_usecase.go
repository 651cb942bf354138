package usecase

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockQueryUseCase listado de stock actual, filtrable por MPN, ubicación y
// condición. Sólo lectura; las mutaciones pasan por el ledger.
type StockQueryUseCase struct {
	stock repository.StockRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(stock repository.StockRepository) *StockQueryUseCase {
	return &StockQueryUseCase{stock: stock}
}

// List devuelve las entradas de stock que pasan el filtro.
func (uc *StockQueryUseCase) List(filter repository.StockFilter) (*dto.StockListResponse, error) {
	rows, err := uc.stock.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockEntryResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.StockEntryResponse{
			MPN:       r.MPN,
			Location:  r.Location,
			Condition: r.Condition,
			Qty:       r.Qty,
			Note:      r.Note,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}
