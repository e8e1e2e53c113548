package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/fkaradag/digital-wallet/internal/domain"
)

type scanner interface {
	Scan(dest ...any) error
}

type DB struct {
	pool *sql.DB
}

func NewDB(pool *sql.DB) *DB {
	return &DB{pool: pool}
}

func (d *DB) Conn() *sql.DB {
	return d.pool
}

const txMaxAttempts = 3

// RunInTx runs fn inside a transaction, committing on success and rolling
// back on error. Version conflicts and postgres serialization failures are
// retried up to txMaxAttempts before surfacing as ErrConflict; callers may
// safely repeat the whole request on that error.
func (d *DB) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 0; attempt < txMaxAttempts; attempt++ {
		err = d.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
	}
	return fmt.Errorf("RunInTx: attempts exhausted: %w (%v)", domain.ErrConflict, err)
}

func (d *DB) runOnce(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("runOnce: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("runOnce: commit: %w", err)
	}
	return nil
}

func retryable(err error) bool {
	if errors.Is(err, domain.ErrVersionConflict) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
