package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Formatos de exportación del esquema.
const (
	SchemaFormatSQL      = "sql"
	SchemaFormatMarkdown = "md"
)

// SchemaUseCase vuelca las definiciones vigentes de tablas, restricciones e
// índices para respaldo o auditoría. Sólo lectura sobre el catálogo de la DB.
type SchemaUseCase struct {
	repo repository.SchemaRepository
}

// NewSchemaUseCase construye el caso de uso.
func NewSchemaUseCase(repo repository.SchemaRepository) *SchemaUseCase {
	return &SchemaUseCase{repo: repo}
}

// Export serializa el esquema en el formato pedido.
func (uc *SchemaUseCase) Export(ctx context.Context, format string) (string, error) {
	tables, err := uc.repo.Tables(ctx)
	if err != nil {
		return "", err
	}
	switch format {
	case SchemaFormatSQL, "":
		return renderSQL(tables), nil
	case SchemaFormatMarkdown, "markdown":
		return renderMarkdown(tables), nil
	default:
		return "", fmt.Errorf("formato %q (sql|md): %w", format, domain.ErrInvalidInput)
	}
}

func renderSQL(tables []repository.TableDef) string {
	var b strings.Builder
	b.WriteString("-- Esquema exportado desde el catálogo de la base de datos\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "\nCREATE TABLE %s (\n", t.Name)
		parts := make([]string, 0, len(t.Columns)+len(t.Constraints))
		for _, c := range t.Columns {
			col := fmt.Sprintf("    %s %s", c.Name, c.DataType)
			if !c.Nullable {
				col += " NOT NULL"
			}
			if c.Default != "" {
				col += " DEFAULT " + c.Default
			}
			parts = append(parts, col)
		}
		for _, cons := range t.Constraints {
			parts = append(parts, "    "+cons)
		}
		b.WriteString(strings.Join(parts, ",\n"))
		b.WriteString("\n);\n")
		for _, idx := range t.Indexes {
			b.WriteString(idx + ";\n")
		}
	}
	return b.String()
}

func renderMarkdown(tables []repository.TableDef) string {
	var b strings.Builder
	b.WriteString("# Esquema de la base de datos\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "\n## %s\n\n", t.Name)
		b.WriteString("| Columna | Tipo | Nulo | Default |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, c := range t.Columns {
			nullable := "no"
			if c.Nullable {
				nullable = "sí"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Name, c.DataType, nullable, c.Default)
		}
		if len(t.Constraints) > 0 {
			b.WriteString("\nRestricciones:\n")
			for _, cons := range t.Constraints {
				b.WriteString("- `" + cons + "`\n")
			}
		}
		if len(t.Indexes) > 0 {
			b.WriteString("\nÍndices:\n")
			for _, idx := range t.Indexes {
				b.WriteString("- `" + idx + "`\n")
			}
		}
	}
	return b.String()
}
