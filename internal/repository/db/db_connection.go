package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know by name.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Options selects and configures the backing store.
type Options struct {
	Driver string
	DSN    string
	// ResetOnStart drops all stored data before the schema is applied.
	ResetOnStart bool
}

// InitDB opens the configured database and ensures tables exist.
func InitDB(opts Options) (*sqlx.DB, error) {
	switch opts.Driver {
	case DriverSQLite:
		return initSQLite(opts)
	case DriverPostgres:
		return initPostgres(opts)
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}
}

func initSQLite(opts Options) (*sqlx.DB, error) {
	if opts.ResetOnStart {
		if err := removeSQLiteFiles(opts.DSN); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(DriverSQLite, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", opts.DSN, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", strings.TrimSuffix(pragma, ";"), err)
		}
	}

	if err := ensureSchema(db, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

func initPostgres(opts Options) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverPostgres, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if opts.ResetOnStart {
		if err := applyStatements(db, postgresDrop); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("reset postgres: %w", err)
		}
	}

	if err := ensureSchema(db, postgresSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqliteFilePath extracts the file path from a modernc DSN. In-memory
// databases yield "".
func sqliteFilePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}

// removeSQLiteFiles deletes the database file together with its WAL and shared-memory companions.
func removeSQLiteFiles(dsn string) error {
	path := sqliteFilePath(dsn)
	if path == "" {
		return nil
	}
	for _, file := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %q: %w", file, err)
		}
	}
	return nil
}

func ensureSchema(db *sqlx.DB, stmts []string) error {
	if err := applyStatements(db, stmts); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// applyStatements runs stmts in a single transaction.
func applyStatements(db *sqlx.DB, stmts []string) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback()
	}()

	for i, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
