// Package postgres implements the records stores on PostgreSQL with PostGIS.
// Geometry writes go through ST_GeomFromText, equality checks through
// ST_Equals, and exports through ST_AsGeoJSON.
package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"

	"geodocs/internal/records/store"
	dErrors "geodocs/pkg/domain-errors"
	"geodocs/pkg/platform/sentinel"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same store code serves both pooled and transactional execution.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewStores binds every records store to the given pool.
func NewStores(db *sql.DB) store.Stores {
	return newStores(db)
}

func newStores(q querier) store.Stores {
	return store.Stores{
		Areas:      &AreaStore{q: q},
		Vocabulary: &VocabularyStore{q: q},
		Documents:  &DocumentStore{q: q},
		Links:      &LinkStore{q: q},
	}
}

const defaultTxTimeout = 5 * time.Second

// Tx runs multi-row writes inside a single database transaction.
type Tx struct {
	db      *sql.DB
	timeout time.Duration
}

func NewTx(db *sql.DB) *Tx {
	return &Tx{db: db}
}

// RunInTx begins a transaction, hands transaction-bound stores to fn, and
// commits. Any error from fn or commit rolls the transaction back before the
// error propagates; no partial state stays visible.
func (t *Tx) RunInTx(ctx context.Context, fn func(s store.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction context expired before begin")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError(err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(newStores(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError translates driver failures into sentinel errors so services never
// inspect pq internals.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %v", sentinel.ErrConflict, err)
		case "23503":
			return fmt.Errorf("%w: %v", sentinel.ErrNotFound, err)
		}
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", sentinel.ErrUnavailable, err)
	}
	return err
}
