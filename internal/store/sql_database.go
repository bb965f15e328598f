package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/gig-sync/internal/logger"
)

// Querier is the subset of *sql.DB and *sql.Tx the repositories use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps a database handle with transaction scoping and, on the client,
// change notification.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	feed               *ChangeFeed
	logger             *logger.Logger
}

type txKey struct{}

type txState struct {
	tx      *sql.Tx
	changed map[string]struct{}
}

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WithinTx runs fn inside a transaction carried by the context passed to fn.
// Repositories called with that context join the transaction. A nested call
// joins the outer transaction. The transaction is rolled back if fn returns
// an error; otherwise it is committed and tables touched by fn are announced
// on the change feed.
func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	state := &txState{tx: tx, changed: make(map[string]struct{})}
	if err = fn(context.WithValue(ctx, txKey{}, state)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.FromContext(ctx).Err(rbErr).Str("func", "DB.WithinTx").Msg("rollback failed")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	db.publish(state.changed)
	return nil
}

// conn returns the transaction carried by ctx or the pool.
func (db *DB) conn(ctx context.Context) Querier {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state.tx
	}
	return db.DB
}

// touch records that tables changed. Inside a transaction the notification is
// deferred until commit.
func (db *DB) touch(ctx context.Context, tables ...string) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		for _, t := range tables {
			state.changed[t] = struct{}{}
		}
		return
	}

	changed := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		changed[t] = struct{}{}
	}
	db.publish(changed)
}

func (db *DB) publish(changed map[string]struct{}) {
	if db.feed == nil || len(changed) == 0 {
		return
	}
	for t := range changed {
		db.feed.Publish(t)
	}
}

// Changes returns the change feed of the store, or nil when the store does
// not publish changes.
func (db *DB) Changes() *ChangeFeed {
	return db.feed
}
