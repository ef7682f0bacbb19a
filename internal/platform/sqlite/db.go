package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hayashikun/kotoba/internal/store"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open opens (creating if necessary) the SQLite database at path.
//
// The DSN enables foreign key enforcement, so membership links cascade when a
// word or collection is deleted, and case-sensitive LIKE so substring search
// compares bytes exactly. The pool is capped at one connection: the tool is
// single-user and synchronous, and a single connection keeps ":memory:"
// databases coherent across calls.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_case_sensitive_like=on", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database at %s: %w", path, err)
	}

	return db, nil
}

// gooseLogger adapts goose's logger interface onto slog.
type gooseLogger struct {
	log *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// MigrateUp applies any pending schema migrations. It is idempotent and safe
// to call on every startup. Migration output is tagged with a correlation ID
// so one run's log lines can be traced together.
func MigrateUp(db *sql.DB, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	migrationLog := log.With(
		slog.String("component", "migrations"),
		slog.String("correlation_id", uuid.New().String()),
	)

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{log: migrationLog})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		migrationLog.Error("schema migration failed", slog.String("error", err.Error()))
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	migrationLog.Info("schema migrations applied")
	return nil
}

// ResetCollections wipes every collection row, cascading to the membership
// links, and resets the collections ID sequence so fresh collections start
// from 1. Words, review stats, and session history survive. Only called when
// the destructive startup option is enabled.
func ResetCollections(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM collections`)
		if err != nil {
			return MapError(err)
		}

		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}

		// sqlite_sequence only exists after the first AUTOINCREMENT insert.
		if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'collections'`); err != nil {
			if !strings.Contains(err.Error(), "no such table") {
				return err
			}
		}

		log.Warn("reset collections on startup",
			slog.Int64("collections_removed", removed))
		return nil
	})
}

// Initialize opens the database, applies migrations, and optionally performs
// the destructive collections reset. This is the single entry point callers
// use before touching any store.
func Initialize(ctx context.Context, path string, resetCollections bool, log *slog.Logger) (*sql.DB, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}

	if err := MigrateUp(db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	if resetCollections {
		if err := ResetCollections(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}
