package mock

import (
	"context"
	"sort"
	"sync"

	"postboard/app/models"
	"postboard/app/repositories"
)

// PostRepository is an in-memory repositories.PostRepository for tests.
type PostRepository struct {
	posts  map[int64]*models.Post
	nextID int64
	mutex  sync.RWMutex

	// Err, when set, is returned by every call.
	Err error
	// Writes counts successful Create, Update and Delete calls.
	Writes int
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int64]*models.Post),
		nextID: 1,
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.posts = make(map[int64]*models.Post)
	m.nextID = 1
	m.Writes = 0
}

func (m *PostRepository) Create(_ context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	post.ID = m.nextID
	m.nextID++
	stored := *post
	m.posts[post.ID] = &stored
	m.Writes++
	return nil
}

func (m *PostRepository) GetByID(_ context.Context, id int64) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	out := *post
	return &out, nil
}

func (m *PostRepository) List(_ context.Context, limit int) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		out := *post
		posts = append(posts, &out)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *PostRepository) Update(_ context.Context, id int64, title, content string) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post.Title = title
	post.Content = content
	m.Writes++
	out := *post
	return &out, nil
}

func (m *PostRepository) Delete(_ context.Context, id int64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	m.Writes++
	return nil
}
