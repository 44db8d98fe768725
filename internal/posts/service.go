package posts

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-notion2wp/internal/identity"
	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// ErrSourceIDRequired is returned for payloads without a source id.
var ErrSourceIDRequired = errors.New("posts: source id required")

// maxSlugAttempts bounds the suffixes tried when a slug is taken.
const maxSlugAttempts = 100

// Service writes imported pages as posts, one post per source page.
// Upserts are serialised: the source key lookup, slug reservation and write
// run as one step.
type Service struct {
	mu     sync.Mutex
	repo   Repository
	now    func() time.Time
	logger interfaces.Logger
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for sync timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

var _ interfaces.PostSink = (*Service)(nil)

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// NewService builds a Service over repo.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// UpsertPost updates the post mapped to payload.SourceID, or creates it
// with an id derived from the source id.
func (s *Service) UpsertPost(ctx context.Context, payload interfaces.PostPayload) (interfaces.UpsertResult, error) {
	key := identity.NormalizeSourceID(payload.SourceID)
	if key == "" {
		return interfaces.UpsertResult{}, ErrSourceIDRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.GetBySourceKey(ctx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return interfaces.UpsertResult{}, fmt.Errorf("posts: lookup %s: %w", payload.SourceID, err)
	}

	now := s.now()
	post := &Post{ID: identity.PostUUID(key), CreatedAt: now}
	if existing != nil {
		post = existing
	}
	s.apply(post, key, payload, now)

	post.Slug, err = s.uniqueSlug(ctx, post.ID, post.Slug)
	if err != nil {
		return interfaces.UpsertResult{}, err
	}

	logger := logging.WithPageContext(s.logger, payload.SourceID, post.ID.String(), "")
	if existing != nil {
		if _, err := s.repo.Update(ctx, post); err != nil {
			return interfaces.UpsertResult{}, fmt.Errorf("posts: update %s: %w", post.ID, err)
		}
		if err := s.invalidateCache(ctx); err != nil {
			return interfaces.UpsertResult{}, err
		}
		logger.Debug("posts.updated", "slug", post.Slug)
		return interfaces.UpsertResult{PostID: post.ID.String()}, nil
	}

	if _, err := s.repo.Create(ctx, post); err != nil {
		return interfaces.UpsertResult{}, fmt.Errorf("posts: create %s: %w", post.ID, err)
	}
	if err := s.invalidateCache(ctx); err != nil {
		return interfaces.UpsertResult{}, err
	}
	logger.Debug("posts.created", "slug", post.Slug)
	return interfaces.UpsertResult{PostID: post.ID.String(), Created: true}, nil
}

// Get returns the post with the supplied id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySourceID returns the post imported from a source page.
func (s *Service) GetBySourceID(ctx context.Context, sourceID string) (*Post, error) {
	return s.repo.GetBySourceKey(ctx, identity.NormalizeSourceID(sourceID))
}

// List returns every imported post ordered by source id.
func (s *Service) List(ctx context.Context) ([]*Post, error) {
	return s.repo.List(ctx)
}

func (s *Service) invalidateCache(ctx context.Context) error {
	invalidator, ok := s.repo.(cacheInvalidator)
	if !ok {
		return nil
	}
	if err := invalidator.InvalidateCache(ctx); err != nil {
		return fmt.Errorf("posts: invalidate cache: %w", err)
	}
	return nil
}

func (s *Service) apply(post *Post, key string, payload interfaces.PostPayload, now time.Time) {
	post.SourceID = strings.TrimSpace(payload.SourceID)
	post.SourceKey = key
	post.Title = payload.Title
	post.Content = payload.Content
	post.Excerpt = payload.Excerpt
	post.Status = firstNonEmpty(payload.Status, DefaultStatus)
	post.Type = firstNonEmpty(payload.Type, DefaultType)
	post.AuthorID = payload.AuthorID
	post.CoverURL = payload.CoverURL
	post.IconEmoji = payload.IconEmoji
	post.IconURL = payload.IconURL
	post.SourceCreatedAt = payload.CreatedAt.UTC()
	post.SourceModifiedAt = payload.ModifiedAt.UTC()
	post.UpdatedAt = now

	post.Meta = maps.Clone(payload.Meta)
	if post.Meta == nil {
		post.Meta = map[string]string{}
	}
	post.Meta[MetaSyncedAt] = now.Format(time.RFC3339)

	post.Slug = slugFor(payload.Slug, payload.Title, key)
}

func slugFor(candidates ...string) string {
	for _, candidate := range candidates {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if normalized, err := slug.Normalize(candidate); err == nil && normalized != "" {
			return normalized
		}
	}
	return ""
}

// uniqueSlug appends -2, -3, ... while another post holds the slug.
func (s *Service) uniqueSlug(ctx context.Context, id uuid.UUID, base string) (string, error) {
	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts+1; attempt++ {
		holder, err := s.repo.GetBySlug(ctx, candidate)
		switch {
		case errors.Is(err, ErrNotFound):
			return candidate, nil
		case err != nil:
			return "", fmt.Errorf("posts: lookup slug %q: %w", candidate, err)
		case holder.ID == id:
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(attempt)
	}
	return "", fmt.Errorf("posts: no free slug for %q", base)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
