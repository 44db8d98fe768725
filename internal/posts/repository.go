package posts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("posts: not found")

// Repository persists imported posts.
type Repository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySourceKey(ctx context.Context, key string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Update(ctx context.Context, post *Post) (*Post, error)
}

// NotFoundError is returned when a post cannot be located.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return "post not found"
	}
	return fmt.Sprintf("post %q not found", e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
