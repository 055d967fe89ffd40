package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx is one transaction on the shared store.
//
// Hooks registered with AfterCommit run, in order, once the transaction has
// committed. They never run for a rolled-back transaction, which lets
// consumers stage side effects (event publication) alongside their writes.
type Tx struct {
	tx          *sql.Tx
	store       *Store
	afterCommit []func()
	appended    bool
}

// Update runs fn in a read-write transaction and commits it if fn returns nil.
// Appending to the change log inside fn also enforces the retention policy
// before commit. The write lock is taken when the transaction begins.
func (s *Store) Update(ctx context.Context, fn func(*Tx) error) error {
	sqlTx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	tx := &Tx{tx: sqlTx, store: s}
	if err := fn(tx); err != nil {
		return err
	}

	if tx.appended {
		if err := tx.enforceRetention(ctx); err != nil {
			return err
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	for _, hook := range tx.afterCommit {
		hook()
	}
	return nil
}

// View runs fn in a short-lived transaction that is always rolled back.
func (s *Store) View(ctx context.Context, fn func(*Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	return fn(&Tx{tx: sqlTx, store: s})
}

// AfterCommit registers fn to run after a successful commit.
// In a View transaction hooks never run.
func (t *Tx) AfterCommit(fn func()) {
	t.afterCommit = append(t.afterCommit, fn)
}

// Author returns the process kind committing this transaction.
func (t *Tx) Author() string {
	return string(t.store.author)
}

// ExecContext executes a statement inside the transaction.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

// QueryContext runs a query inside the transaction.
// Callers are responsible for closing the returned rows.
func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

// QueryRowContext runs a single-row query inside the transaction.
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}
