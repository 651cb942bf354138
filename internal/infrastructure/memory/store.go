// Package memory implementa los puertos de persistencia sobre mapas en
// memoria, con la misma semántica transaccional que la implementación de
// PostgreSQL: Run clona el estado, ejecuta el callback sobre el clon y sólo
// publica el clon si el callback devuelve nil. Pensado para pruebas.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// dataset estado completo del almacén. Las entidades se guardan por valor
// para que los llamadores no puedan mutar el estado por referencia compartida.
type dataset struct {
	parts     map[string]entity.Part     // por ID
	locations map[string]entity.Location // por código
	projects  map[string]entity.Project  // por ID
	bom       map[string]entity.BOMLine  // por ID
	stock     map[string]entity.Stock    // por clave part|location|condition
	allocs    map[string]entity.Allocation
	txns      []entity.TransactionHeader
	lines     []entity.TransactionLine
}

func newDataset() *dataset {
	return &dataset{
		parts:     make(map[string]entity.Part),
		locations: make(map[string]entity.Location),
		projects:  make(map[string]entity.Project),
		bom:       make(map[string]entity.BOMLine),
		stock:     make(map[string]entity.Stock),
		allocs:    make(map[string]entity.Allocation),
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.parts {
		c.parts[k] = v
	}
	for k, v := range d.locations {
		c.locations[k] = v
	}
	for k, v := range d.projects {
		c.projects[k] = v
	}
	for k, v := range d.bom {
		c.bom[k] = v
	}
	for k, v := range d.stock {
		c.stock[k] = v
	}
	for k, v := range d.allocs {
		c.allocs[k] = v
	}
	c.txns = append([]entity.TransactionHeader(nil), d.txns...)
	c.lines = append([]entity.TransactionLine(nil), d.lines...)
	return c
}

// Store almacén en memoria. Los repositorios atados al Store serializan cada
// operación con el mutex; los repositorios de una transacción operan sobre el
// clon sin bloquear (el mutex queda tomado durante toda la unidad).
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

var _ ledger.TxRunner = (*Store)(nil)

// Run ejecuta fn como unidad atómica: clona el estado, corre fn sobre el clon
// y publica el clon sólo si fn devuelve nil. Un error descarta el clon entero,
// igual que el rollback de una transacción serializable.
func (s *Store) Run(ctx context.Context, fn func(r ledger.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := s.data.clone()
	if err := fn(newTxRepos(clone)); err != nil {
		return err
	}
	s.data = clone
	return nil
}

// Repos devuelve el set de repositorios atados al Store, para lecturas y
// escrituras fuera de transacción.
func (s *Store) Repos() ledger.TxRepos {
	a := &accessor{store: s}
	return reposFor(a)
}

// newTxRepos ata los repositorios a un clon (sin bloqueo propio).
func newTxRepos(d *dataset) ledger.TxRepos {
	a := &accessor{data: d}
	return reposFor(a)
}

func reposFor(a *accessor) ledger.TxRepos {
	return ledger.TxRepos{
		Parts:        &PartRepo{a: a},
		Locations:    &LocationRepo{a: a},
		Projects:     &ProjectRepo{a: a},
		BOM:          &BOMRepo{a: a},
		Stock:        &StockRepo{a: a},
		Allocations:  &AllocationRepo{a: a},
		Transactions: &TransactionRepo{a: a},
	}
}

// accessor da acceso al dataset vigente: el del Store (con bloqueo por
// operación) o el clon de una transacción (sin bloqueo).
type accessor struct {
	store *Store
	data  *dataset
}

// with ejecuta fn con el dataset vigente, bloqueando si corresponde.
func (a *accessor) with(fn func(d *dataset) error) error {
	if a.store != nil {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
		return fn(a.store.data)
	}
	return fn(a.data)
}

func stockKey(partID, location, condition string) string {
	return partID + "|" + location + "|" + condition
}
