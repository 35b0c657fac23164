package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// Migrate brings the schema up to date. Badger has no schema and is a no-op.
func (h *Handle) Migrate(ctx context.Context) error {
	switch h.Driver {
	case DriverSQLite:
		return runGoose(ctx, h.SQL, goose.DialectSQLite3, "migrations/sqlite")
	case DriverPostgres:
		db := stdlib.OpenDBFromPool(h.Pool)
		defer db.Close()
		return runGoose(ctx, db, goose.DialectPostgres, "migrations/postgres")
	case DriverBadger:
		log.Debug("Badger store has no schema to migrate")
		return nil
	}
	return fmt.Errorf("unknown driver %q", h.Driver)
}

func runGoose(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	gooseMu.Lock()
	defer func() {
		goose.SetBaseFS(nil)
		gooseMu.Unlock()
	}()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(log.StandardLogger())
	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("%s: set goose dialect: %w", dialect, err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("%s: apply migrations: %w", dialect, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("%s: read schema version: %w", dialect, err)
	}
	log.WithFields(log.Fields{
		"dialect": dialect,
		"version": version,
	}).Info("Migrations applied")
	return nil
}
