package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/roach88/msgcore/internal/ir"
	"github.com/roach88/msgcore/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on upload_tasks(channel_id, created_at)
const currentSchemaVersion = 1

// RetentionPolicy caps how much change history is kept regardless of
// whether every process consumed it. Zero values disable a cap.
type RetentionPolicy struct {
	MaxRecords int
	MaxAge     time.Duration
}

// Store is the shared durable store. Every process kind opens the same file.
// Uses SQLite with WAL mode so readers in one process never block writers in
// another.
type Store struct {
	db        *sql.DB
	writer    *sql.DB
	author    ir.ProcessKind
	retention RetentionPolicy
	log       *zap.Logger
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithAuthor sets the process kind recorded on every change this store commits.
func WithAuthor(kind ir.ProcessKind) Option {
	return func(s *Store) { s.author = kind }
}

// WithRetention sets the history retention cap.
func WithRetention(p RetentionPolicy) Option {
	return func(s *Store) { s.retention = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = logging.OrNop(l) }
}

// WithClock overrides the wall clock used for commit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for cross-process lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times, from several
// processes.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time; one connection per process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	// Write transactions take the write lock at BEGIN, so a read inside one
	// never sees a snapshot another process has since committed past.
	writer, err := sql.Open("sqlite3", immediateDSN(path))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open write connection: %w", err)
	}
	writer.SetMaxOpenConns(1)
	writer.SetMaxIdleConns(1)
	if err := applyPragmas(writer); err != nil {
		writer.Close()
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	s := &Store{
		db:     db,
		writer: writer,
		author: ir.ProcessMainApp,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the read and write connections.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	werr := s.writer.Close()
	if err := s.db.Close(); err != nil {
		return err
	}
	return werr
}

// immediateDSN makes every transaction begun on the connection BEGIN IMMEDIATE.
func immediateDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_txlock=immediate"
	}
	return path + "?_txlock=immediate"
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Author returns the process kind this store commits as.
func (s *Store) Author() ir.ProcessKind {
	return s.author
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the reattach lookup index on upload_tasks.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_upload_tasks_channel
		ON upload_tasks(channel_id, created_at)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

// CurrentLogPosition returns the head of the change log outside of any
// caller transaction.
func (s *Store) CurrentLogPosition(ctx context.Context) (ir.LogCursor, error) {
	var head ir.LogCursor
	err := s.View(ctx, func(tx *Tx) error {
		var err error
		head, err = tx.CurrentLogPosition(ctx)
		return err
	})
	return head, err
}
