package posts

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*Post
	bySource map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory post repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:     make(map[uuid.UUID]*Post),
		bySource: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, post *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := clonePost(post)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.byID[cloned.ID] = cloned
	m.bySource[cloned.SourceKey] = cloned.ID
	return clonePost(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return clonePost(record), nil
}

func (m *memoryRepository) GetBySourceKey(_ context.Context, key string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySource[key]
	if !ok {
		return nil, &NotFoundError{Key: key}
	}
	return clonePost(m.byID[id]), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.Slug == slug {
			return clonePost(record), nil
		}
	}
	return nil, &NotFoundError{Key: slug}
}

func (m *memoryRepository) List(_ context.Context) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Post, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, clonePost(record))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].SourceKey < records[j].SourceKey })
	return records, nil
}

func (m *memoryRepository) Update(_ context.Context, post *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[post.ID]
	if !ok {
		return nil, &NotFoundError{Key: post.ID.String()}
	}
	if existing.SourceKey != post.SourceKey {
		delete(m.bySource, existing.SourceKey)
	}
	cloned := clonePost(post)
	m.byID[cloned.ID] = cloned
	m.bySource[cloned.SourceKey] = cloned.ID
	return clonePost(cloned), nil
}
