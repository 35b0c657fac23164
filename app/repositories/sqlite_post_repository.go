package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	log "github.com/sirupsen/logrus"

	"postboard/app/models"
)

// SQLitePostRepository implements PostRepository on top of a SQLite *sql.DB.
type SQLitePostRepository struct {
	db *sql.DB
}

// NewSQLitePostRepository creates a new SQLitePostRepository
func NewSQLitePostRepository(db *sql.DB) *SQLitePostRepository {
	return &SQLitePostRepository{db: db}
}

// Create inserts a new row and reads back the generated id
func (r *SQLitePostRepository) Create(ctx context.Context, post *models.Post) error {
	query, args, err := squirrel.Insert(postsTable).
		Columns("title", "content", "author", "created_at").
		Values(post.Title, post.Content, post.Author, post.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build insert: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&post.ID); err != nil {
		return fmt.Errorf("sqlite: create post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by ID
func (r *SQLitePostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return r.get(ctx, r.db, id)
}

func (r *SQLitePostRepository) get(ctx context.Context, q sqlscan.Querier, id int64) (*models.Post, error) {
	query, args, err := squirrel.Select(postColumns...).
		From(postsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build select: %w", err)
	}
	var post models.Post
	if err := sqlscan.Get(ctx, q, &post, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: get post: %w", err)
	}
	post.CreatedAt = post.CreatedAt.UTC()
	return &post, nil
}

// List retrieves the newest posts
func (r *SQLitePostRepository) List(ctx context.Context, limit int) ([]*models.Post, error) {
	query, args, err := squirrel.Select(postColumns...).
		From(postsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build list: %w", err)
	}
	posts := make([]*models.Post, 0, limit)
	if err := sqlscan.Select(ctx, r.db, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("sqlite: list posts: %w", err)
	}
	for _, p := range posts {
		p.CreatedAt = p.CreatedAt.UTC()
	}
	return posts, nil
}

// Update overwrites title and content of an existing post
func (r *SQLitePostRepository) Update(ctx context.Context, id int64, title, content string) (post *models.Post, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rb := tx.Rollback(); rb != nil {
				log.WithError(rb).Warn("sqlite: rollback failed")
			}
		}
	}()

	query, args, err := squirrel.Update(postsTable).
		Set("title", title).
		Set("content", content).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build update: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: update post: %w", err)
	}
	if err = expectOneRow(res); err != nil {
		return nil, err
	}

	post, err = r.get(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: commit update: %w", err)
	}
	return post, nil
}

// Delete deletes a post by ID
func (r *SQLitePostRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := squirrel.Delete(postsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlite: delete post: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
