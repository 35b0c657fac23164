package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"postboard/app/models"
	"postboard/app/repositories"
)

// ListLimit caps how many posts ListPosts returns.
const ListLimit = 10

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (s *PostService) SetClock(now func() time.Time) {
	s.now = now
}

// CreatePost validates the payload and stores a new post
func (s *PostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post := req.NewPost()
	post.CreatedAt = s.timestamp()

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts retrieves the most recent posts, newest first
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// UpdatePost replaces the title and content of an existing post
func (s *PostService) UpdatePost(ctx context.Context, id int64, req *models.UpdatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.postRepo.Update(ctx, id, req.Title, req.Content)
}

// DeletePost permanently removes a post
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	return s.postRepo.Delete(ctx, id)
}

// timestamp returns a UTC time at storage precision that never goes
// backwards, even if the wall clock does.
func (s *PostService) timestamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UTC().Truncate(time.Microsecond)
	if t.Before(s.last) {
		t = s.last
	}
	s.last = t
	return t
}
