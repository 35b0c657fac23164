package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     Target
		inMemory bool
		wantErr  bool
	}{
		{
			name: "sqlite relative path",
			raw:  "sqlite://data/postboard.db",
			want: Target{Driver: DriverSQLite, Path: "data/postboard.db"},
		},
		{
			name: "sqlite absolute path",
			raw:  "sqlite:///var/lib/postboard.db",
			want: Target{Driver: DriverSQLite, Path: "/var/lib/postboard.db"},
		},
		{
			name:     "sqlite in memory",
			raw:      "sqlite://:memory:",
			want:     Target{Driver: DriverSQLite, Path: ":memory:"},
			inMemory: true,
		},
		{
			name:     "badger without path is in memory",
			raw:      "badger://",
			want:     Target{Driver: DriverBadger, Path: ":memory:"},
			inMemory: true,
		},
		{
			name: "postgres keeps full url",
			raw:  "postgres://user:pw@localhost:5432/posts?sslmode=disable",
			want: Target{Driver: DriverPostgres, Path: "postgres://user:pw@localhost:5432/posts?sslmode=disable"},
		},
		{
			name: "postgresql scheme",
			raw:  "postgresql://localhost/posts",
			want: Target{Driver: DriverPostgres, Path: "postgresql://localhost/posts"},
		},
		{
			name:    "unknown scheme",
			raw:     "mysql://localhost/posts",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURL(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.inMemory, got.InMemory())
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	t.Run("file path enables WAL", func(t *testing.T) {
		dsn := sqliteDSN(Target{Driver: DriverSQLite, Path: "/tmp/posts.db"})
		assert.Contains(t, dsn, "file:/tmp/posts.db?")
		assert.Contains(t, dsn, "_pragma=journal_mode(WAL)")
		assert.Contains(t, dsn, "_pragma=busy_timeout(5000)")
	})

	t.Run("memory skips WAL", func(t *testing.T) {
		dsn := sqliteDSN(Target{Driver: DriverSQLite, Path: ":memory:"})
		assert.Contains(t, dsn, "file::memory:")
		assert.NotContains(t, dsn, "journal_mode")
	})
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "posts.db")

	h, err := Open(ctx, "sqlite://"+path)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, DriverSQLite, h.Driver)
	require.NoError(t, h.Migrate(ctx))
	// Running again is a no-op.
	require.NoError(t, h.Migrate(ctx))

	var count int
	err = h.SQL.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, h.Ping(ctx))
}

func TestOpenSQLiteInMemory(t *testing.T) {
	ctx := context.Background()
	h, err := Open(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Migrate(ctx))
	_, err = h.SQL.ExecContext(ctx,
		"INSERT INTO posts (title, content, author, created_at) VALUES ('t', 'c', 'a', CURRENT_TIMESTAMP)")
	require.NoError(t, err)

	var count int
	require.NoError(t, h.SQL.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestBadgerPing(t *testing.T) {
	ctx := context.Background()
	h, err := Open(ctx, "badger://")
	require.NoError(t, err)

	assert.NoError(t, h.Migrate(ctx))
	assert.NoError(t, h.Ping(ctx))

	require.NoError(t, h.Close())
	assert.Error(t, h.Ping(ctx))
}

func TestPingAfterClose(t *testing.T) {
	ctx := context.Background()
	h, err := Open(ctx, "sqlite://"+filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	assert.Error(t, h.Ping(ctx))
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), "redis://localhost:6379")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
}
