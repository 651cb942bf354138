package entity

import "time"

// Estados de un proyecto.
const (
	ProjectStatusActive   = "active"
	ProjectStatusArchived = "archived"
)

// Project representa un proyecto de ingeniería (código único) contra el que
// se pueden vincular transacciones y reservas de material.
type Project struct {
	ID        string
	Code      string
	Name      string
	Owner     string
	Status    string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BOMLine representa una línea del BOM de un proyecto: cantidad requerida de
// un componente. Es insumo de planificación, no una frontera de consistencia.
type BOMLine struct {
	ID        string
	ProjectID string
	PartID    string
	ReqQty    int64
	Priority  int
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
