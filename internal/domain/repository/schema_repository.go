package repository

import "context"

// ColumnDef definición de una columna tal como la reporta el catálogo de la DB.
type ColumnDef struct {
	Name     string
	DataType string
	Nullable bool
	Default  string
}

// TableDef definición de una tabla de la aplicación con sus columnas,
// restricciones e índices, para respaldo/auditoría del esquema.
type TableDef struct {
	Name        string
	Columns     []ColumnDef
	Constraints []string
	Indexes     []string
}

// SchemaRepository define la lectura del esquema vigente. Read-only: no toca
// datos ni definiciones.
type SchemaRepository interface {
	Tables(ctx context.Context) ([]TableDef, error)
}
