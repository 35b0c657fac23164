package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"postboard/app/models"
)

// PgxQuerier is the slice of *pgxpool.Pool the repository needs.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresPostRepository implements PostRepository using PostgreSQL
type PostgresPostRepository struct {
	db PgxQuerier
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db PgxQuerier) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new row and reads back the generated id
func (r *PostgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	query, args, err := psql().Insert(postsTable).
		Columns("title", "content", "author", "created_at").
		Values(post.Title, post.Content, post.Author, post.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert query: %w", err)
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&post.ID); err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *PostgresPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query, args, err := psql().Select(postColumns...).
		From(postsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

// List retrieves the newest posts
func (r *PostgresPostRepository) List(ctx context.Context, limit int) ([]*models.Post, error) {
	query, args, err := psql().Select(postColumns...).
		From(postsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}
	posts := make([]*models.Post, 0, limit)
	if err := pgxscan.Select(ctx, r.db, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("scanning posts: %w", err)
	}
	for _, p := range posts {
		p.CreatedAt = p.CreatedAt.UTC()
	}
	return posts, nil
}

// Update overwrites title and content in one statement
func (r *PostgresPostRepository) Update(ctx context.Context, id int64, title, content string) (*models.Post, error) {
	query, args, err := psql().Update(postsTable).
		Set("title", title).
		Set("content", content).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, title, content, author, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

// Delete deletes a post by ID
func (r *PostgresPostRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql().Delete(postsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) getOne(ctx context.Context, query string, args []any) (*models.Post, error) {
	var post models.Post
	if err := pgxscan.Get(ctx, r.db, &post, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning post: %w", err)
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return &post, nil
}
