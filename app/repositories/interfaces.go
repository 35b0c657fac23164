package repositories

import (
	"context"

	"postboard/app/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create persists post and sets its ID. CreatedAt must already be set.
	Create(ctx context.Context, post *models.Post) error
	// GetByID returns ErrNotFound when no post has the given id.
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	// List returns at most limit posts, newest first.
	List(ctx context.Context, limit int) ([]*models.Post, error)
	// Update overwrites title and content and returns the stored post.
	Update(ctx context.Context, id int64, title, content string) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}
