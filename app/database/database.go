// Package database opens the storage backend named by a connection URL.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	// Register the pure-Go SQLite driver with database/sql.
	_ "modernc.org/sqlite"
)

// Driver identifies a storage backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverBadger   Driver = "badger"
)

const (
	memoryPath         = ":memory:"
	defaultPingTimeout = 3 * time.Second
	sqliteBusyTimeout  = 5000
)

var ErrUnsupportedURL = errors.New("unsupported database url")

// Handle owns the open connection pool of exactly one driver.
type Handle struct {
	Driver Driver
	SQL    *sql.DB
	Pool   *pgxpool.Pool
	Badger *badger.DB
}

// Target is a parsed connection URL.
type Target struct {
	Driver Driver
	// Path is the file or directory for embedded drivers, ":memory:" for an
	// in-memory store, or the full URL for PostgreSQL.
	Path string
}

// ParseURL splits a connection URL into driver and location.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "sqlite://"):
		return Target{Driver: DriverSQLite, Path: embeddedPath(strings.TrimPrefix(raw, "sqlite://"))}, nil
	case strings.HasPrefix(raw, "badger://"):
		return Target{Driver: DriverBadger, Path: embeddedPath(strings.TrimPrefix(raw, "badger://"))}, nil
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return Target{Driver: DriverPostgres, Path: raw}, nil
	default:
		return Target{}, fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}
}

func embeddedPath(p string) string {
	if p == "" || p == memoryPath {
		return memoryPath
	}
	return p
}

// InMemory reports whether the target lives only in process memory.
func (t Target) InMemory() bool {
	return t.Driver != DriverPostgres && t.Path == memoryPath
}

// Open connects to the backend named by rawURL and verifies it answers.
func Open(ctx context.Context, rawURL string) (*Handle, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	var h *Handle
	switch target.Driver {
	case DriverSQLite:
		h, err = openSQLite(target)
	case DriverPostgres:
		h, err = openPostgres(ctx, target)
	case DriverBadger:
		h, err = openBadger(target)
	}
	if err != nil {
		return nil, err
	}

	if err := h.Ping(ctx); err != nil {
		h.Close()
		return nil, err
	}

	log.WithFields(log.Fields{
		"driver":    target.Driver,
		"in_memory": target.InMemory(),
	}).Info("Database opened")
	return h, nil
}

func openSQLite(target Target) (*Handle, error) {
	dsn := sqliteDSN(target)
	if !target.InMemory() {
		if err := os.MkdirAll(filepath.Dir(target.Path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	if target.InMemory() {
		// Every connection to ":memory:" is a separate database; pin one.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(8)
		db.SetMaxIdleConns(4)
		db.SetConnMaxLifetime(time.Hour)
		db.SetConnMaxIdleTime(time.Hour)
	}

	return &Handle{Driver: DriverSQLite, SQL: db}, nil
}

func sqliteDSN(target Target) string {
	pragmas := fmt.Sprintf("_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", sqliteBusyTimeout)
	if target.InMemory() {
		return "file::memory:?" + pragmas
	}
	return "file:" + target.Path + "?" + pragmas + "&_pragma=journal_mode(WAL)"
}

func openPostgres(ctx context.Context, target Target) (*Handle, error) {
	cfg, err := pgxpool.ParseConfig(target.Path)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: new pool: %w", err)
	}
	log.WithFields(log.Fields{
		"host":      cfg.ConnConfig.Host,
		"database":  cfg.ConnConfig.Database,
		"max_conns": cfg.MaxConns,
	}).Debug("Postgres pool configured")
	return &Handle{Driver: DriverPostgres, Pool: pool}, nil
}

func openBadger(target Target) (*Handle, error) {
	opts := badger.DefaultOptions(target.Path)
	if target.InMemory() {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.
		WithLogger(log.WithField("component", "badger")).
		WithLoggingLevel(badger.WARNING).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open: %w", err)
	}
	return &Handle{Driver: DriverBadger, Badger: db}, nil
}

// Ping checks that the backend is reachable.
func (h *Handle) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	switch h.Driver {
	case DriverSQLite:
		if err := h.SQL.PingContext(ctx); err != nil {
			return fmt.Errorf("sqlite: ping: %w", err)
		}
	case DriverPostgres:
		if err := h.Pool.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: ping: %w", err)
		}
	case DriverBadger:
		if h.Badger.IsClosed() {
			return errors.New("badger: database is closed")
		}
	default:
		return fmt.Errorf("unknown driver %q", h.Driver)
	}
	return nil
}

// Close releases the underlying pool.
func (h *Handle) Close() error {
	switch h.Driver {
	case DriverSQLite:
		return h.SQL.Close()
	case DriverPostgres:
		h.Pool.Close()
		return nil
	case DriverBadger:
		return h.Badger.Close()
	}
	return nil
}
