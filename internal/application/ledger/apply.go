package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// NewHeader crea la cabecera de una operación lógica del ledger dentro de la
// transacción en curso.
func NewHeader(r TxRepos, txnType string, projectID *string, ref, note, operator string, now time.Time) (*entity.TransactionHeader, error) {
	header := &entity.TransactionHeader{
		ID:        uuid.New().String(),
		Type:      txnType,
		ProjectID: projectID,
		Ref:       ref,
		Note:      note,
		Operator:  operator,
		CreatedAt: now,
	}
	if err := r.Transactions.CreateHeader(header); err != nil {
		return nil, err
	}
	return header, nil
}

// AppendAndApply agrega la línea del ledger y aplica su delta pareado sobre
// el stock, en ese orden, dentro de la misma unidad atómica. Es el único
// punto por el que cambia una cantidad física: toda mutación queda con
// exactamente una línea cuyo delta es igual al cambio, y aplicar sin
// registrar (o al revés) no es expresable desde fuera del paquete.
func AppendAndApply(r TxRepos, header *entity.TransactionHeader, part *entity.Part, location, condition string, delta int64, note string, now time.Time) (int64, error) {
	line := &entity.TransactionLine{
		ID:          uuid.New().String(),
		TxnID:       header.ID,
		PartID:      part.ID,
		MPNSnapshot: part.MPN,
		Location:    location,
		Condition:   condition,
		QtyDelta:    delta,
		Note:        note,
		CreatedAt:   now,
	}
	if err := r.Transactions.AppendLine(line); err != nil {
		return 0, err
	}
	return applyDelta(r, part, location, condition, delta, now)
}

// applyDelta lee la cantidad actual con bloqueo de fila (creando la entrada
// en cero si no existe y el delta es positivo), calcula la nueva cantidad y
// la escribe. Un resultado negativo aborta sin escribir: el stock jamás baja
// de cero.
func applyDelta(r TxRepos, part *entity.Part, location, condition string, delta int64, now time.Time) (int64, error) {
	stock, err := r.Stock.GetForUpdate(part.ID, location, condition)
	if err != nil {
		return 0, err
	}
	newQty := stock.Qty + delta
	if newQty < 0 {
		return 0, fmt.Errorf("%s en %s (%d%+d): %w",
			part.MPN, location, stock.Qty, delta, domain.ErrInsufficientStock)
	}
	stock.Qty = newQty
	stock.UpdatedAt = now
	if err := r.Stock.Upsert(stock); err != nil {
		return 0, err
	}
	return newQty, nil
}
