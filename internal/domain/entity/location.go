package entity

import "time"

// Location representa una posición física de almacenamiento, identificada por
// su código legible (ej. C409-G01-S01-P05). Es puramente referencial: toda
// mutación de stock debe apuntar a una ubicación registrada.
type Location struct {
	Code      string
	Note      string
	CreatedAt time.Time
}
