package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SchemaRepository = (*SchemaRepo)(nil)

// Tablas de la aplicación, en orden de dependencia. El export de esquema
// sólo cubre estas; cualquier otra tabla de la base se ignora.
var appTables = []string{
	"parts", "locations", "projects", "project_bom",
	"stock", "inventory_txn", "inventory_txn_line", "project_alloc",
}

// SchemaRepo lee el esquema vigente desde los catálogos de PostgreSQL.
type SchemaRepo struct {
	q Querier
}

// NewSchemaRepository construye el adaptador de esquema.
func NewSchemaRepository(q Querier) *SchemaRepo {
	return &SchemaRepo{q: q}
}

// Tables devuelve la definición de cada tabla de la aplicación: columnas
// desde information_schema, restricciones e índices desde pg_catalog.
func (r *SchemaRepo) Tables(ctx context.Context) ([]repository.TableDef, error) {
	var defs []repository.TableDef
	for _, name := range appTables {
		columns, err := r.columns(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			// Tabla aún no migrada en esta base; se omite del export.
			continue
		}
		constraints, err := r.constraints(ctx, name)
		if err != nil {
			return nil, err
		}
		indexes, err := r.indexes(ctx, name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, repository.TableDef{
			Name:        name,
			Columns:     columns,
			Constraints: constraints,
			Indexes:     indexes,
		})
	}
	return defs, nil
}

func (r *SchemaRepo) columns(ctx context.Context, table string) ([]repository.ColumnDef, error) {
	rows, err := r.q.Query(ctx, `
		SELECT column_name, data_type, is_nullable = 'YES', COALESCE(column_default, '')
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("schema columns %s: %w", table, err)
	}
	defer rows.Close()
	var cols []repository.ColumnDef
	for rows.Next() {
		var c repository.ColumnDef
		if err := rows.Scan(&c.Name, &c.DataType, &c.Nullable, &c.Default); err != nil {
			return nil, fmt.Errorf("scan column def: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (r *SchemaRepo) constraints(ctx context.Context, table string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT pg_get_constraintdef(c.oid)
		FROM pg_constraint c
		JOIN pg_class t ON t.oid = c.conrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE n.nspname = 'public' AND t.relname = $1
		ORDER BY c.conname`, table)
	if err != nil {
		return nil, fmt.Errorf("schema constraints %s: %w", table, err)
	}
	defer rows.Close()
	var defs []string
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return nil, fmt.Errorf("scan constraint def: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (r *SchemaRepo) indexes(ctx context.Context, table string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT indexdef
		FROM pg_indexes
		WHERE schemaname = 'public' AND tablename = $1
		ORDER BY indexname`, table)
	if err != nil {
		return nil, fmt.Errorf("schema indexes %s: %w", table, err)
	}
	defer rows.Close()
	var defs []string
	for rows.Next() {
		var def string
		if err := rows.Scan(&def); err != nil {
			return nil, fmt.Errorf("scan index def: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}
