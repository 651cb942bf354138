package inventory

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// Available implementa la fórmula de disponibilidad (servicio de dominio).
// Disponible = StockTotal - ReservasActivas, global o por ubicación según
// las sumas que reciba. Puede ser negativo si el stock se drenó por otra vía
// después de admitir reservas; el llamador decide cómo tratarlo.
func Available(stockSum, reservedSum int64) int64 {
	return stockSum - reservedSum
}

// StockKey identifica una entrada de stock por su combinación natural.
type StockKey struct {
	PartID    string
	Location  string
	Condition string
}

// ReconcileLines suma los deltas de líneas del ledger por combinación.
// Sobre un ledger completo, el resultado debe coincidir exactamente con la
// tabla de stock (toda entrada nace en cero).
func ReconcileLines(lines []entity.TransactionLine) map[StockKey]int64 {
	sums := make(map[StockKey]int64, len(lines))
	for _, ln := range lines {
		key := StockKey{PartID: ln.PartID, Location: ln.Location, Condition: ln.Condition}
		sums[key] += ln.QtyDelta
	}
	return sums
}
