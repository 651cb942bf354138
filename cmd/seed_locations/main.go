// seed_locations genera un script SQL idempotente con la cuadrícula de
// ubicaciones de un cuarto: {room}-{cabinet}-S{shelf:02d}-P{position:02d}.
//
// Uso: go run ./cmd/seed_locations -room C409 -cabinets G01:3,G02:4 [-positions 10]
// Escribe: internal/infrastructure/postgres/migrations/010_seed_grid.sql
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func main() {
	room := flag.String("room", "", "código del cuarto, ej. C409")
	cabinets := flag.String("cabinets", "", "gabinetes con estantes, ej. G01:3,G02:4")
	positions := flag.Int("positions", 10, "posiciones por estante")
	flag.Parse()

	if *room == "" || *cabinets == "" {
		fmt.Fprintln(os.Stderr, "Uso: seed_locations -room C409 -cabinets G01:3,G02:4 [-positions 10]")
		os.Exit(1)
	}

	type cabinet struct {
		code    string
		shelves int
	}
	var cabs []cabinet
	for _, spec := range strings.Split(*cabinets, ",") {
		parts := strings.SplitN(strings.TrimSpace(spec), ":", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "Gabinete inválido %q (esperado CODIGO:ESTANTES)\n", spec)
			os.Exit(1)
		}
		shelves, err := strconv.Atoi(parts[1])
		if err != nil || shelves <= 0 {
			fmt.Fprintf(os.Stderr, "Estantes inválidos en %q\n", spec)
			os.Exit(1)
		}
		cabs = append(cabs, cabinet{code: parts[0], shelves: shelves})
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "010_seed_grid.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Cuadrícula de ubicaciones del cuarto %s\n", escapeSQL(*room))
	fmt.Fprintf(out, "-- Generado por cmd/seed_locations; idempotente (ON CONFLICT DO NOTHING)\n\n")
	out.WriteString("INSERT INTO locations (code, note) VALUES\n")

	var values []string
	for _, cab := range cabs {
		for shelf := 1; shelf <= cab.shelves; shelf++ {
			for pos := 1; pos <= *positions; pos++ {
				code := fmt.Sprintf("%s-%s-S%02d-P%02d", *room, cab.code, shelf, pos)
				note := fmt.Sprintf("%s %s estante %d posición %02d", *room, cab.code, shelf, pos)
				values = append(values, fmt.Sprintf("  ('%s', '%s')", escapeSQL(code), escapeSQL(note)))
			}
		}
	}
	out.WriteString(strings.Join(values, ",\n"))
	out.WriteString("\nON CONFLICT (code) DO NOTHING;\n")

	fmt.Printf("Generado %s: %d ubicaciones\n", outPath, len(values))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
