package repositories

import (
	"errors"
	"fmt"

	"postboard/app/database"
)

var (
	ErrNotFound = errors.New("record not found")
)

const postsTable = "posts"

var postColumns = []string{"id", "title", "content", "author", "created_at"}

// NewPostRepository returns the post repository for the handle's driver.
func NewPostRepository(h *database.Handle) (PostRepository, error) {
	switch h.Driver {
	case database.DriverSQLite:
		return NewSQLitePostRepository(h.SQL), nil
	case database.DriverPostgres:
		return NewPostgresPostRepository(h.Pool), nil
	case database.DriverBadger:
		return NewBadgerPostRepository(h.Badger), nil
	}
	return nil, fmt.Errorf("no post repository for driver %q", h.Driver)
}
