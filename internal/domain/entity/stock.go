package entity

import "time"

// ConditionNew es la condición por defecto de una entrada de stock.
const ConditionNew = "new"

// Stock representa la cantidad física de un componente en una ubicación y
// condición concretas. Una fila por combinación (parte, ubicación, condición);
// se crea con el primer ingreso y nunca se borra (la cantidad puede llegar a
// cero). La cantidad jamás es negativa.
type Stock struct {
	ID        string
	PartID    string
	Location  string
	Condition string
	Qty       int64
	Note      string
	UpdatedAt time.Time
}
