package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL
// SERIALIZABLE, con repositorios atados a la tx. Ante un conflicto de
// serialización, deadlock o lock no disponible reintenta la unidad completa
// con backoff exponencial; agotados los reintentos devuelve ErrStoreBusy
// (transitorio, el llamador puede volver a intentar).
type TxRunner struct {
	pool       *pgxpool.Pool
	maxRetries int
	backoff    time.Duration
}

// NewTxRunner construye el runner. maxRetries <= 0 usa 3; backoff <= 0 usa 50ms.
func NewTxRunner(pool *pgxpool.Pool, maxRetries int, backoff time.Duration) *TxRunner {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if backoff <= 0 {
		backoff = 50 * time.Millisecond
	}
	return &TxRunner{pool: pool, maxRetries: maxRetries, backoff: backoff}
}

// Run ejecuta fn dentro de una unidad atómica serializable. Commit sólo si fn
// devuelve nil; cualquier error revierte la unidad completa sin efecto
// parcial visible.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			wait := r.backoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("transacción abortada tras %d reintentos (%v): %w",
		r.maxRetries, lastErr, domain.ErrStoreBusy)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos ledger.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTxRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewTxRepos construye el set de repositorios sobre un Querier (pool o tx).
func NewTxRepos(q Querier) ledger.TxRepos {
	return ledger.TxRepos{
		Parts:        NewPartRepository(q),
		Locations:    NewLocationRepository(q),
		Projects:     NewProjectRepository(q),
		BOM:          NewBOMRepository(q),
		Stock:        NewStockRepository(q),
		Allocations:  NewAllocationRepository(q),
		Transactions: NewTransactionRepository(q),
	}
}
