package entity

import "time"

// Part representa un tipo de componente del almacén, identificado por su
// número de parte de fabricante (MPN, único). La identidad es inmutable una
// vez referenciada por stock o reservas; los campos descriptivos se pueden
// editar.
type Part struct {
	ID           string
	MPN          string
	Name         string
	Category     string
	Package      string
	Params       string
	Unit         string
	ProductURL   string
	DatasheetURL string
	Note         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
