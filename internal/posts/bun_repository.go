package posts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository implements Repository on go-repository-bun with optional
// read caching.
type BunRepository struct {
	repo         repository.Repository[*Post]
	cacheService cache.CacheService
}

const postCacheNamespace = "notion_post"

// NewBunRepository creates a post repository backed by db.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache wraps reads in cacheService when both the
// service and serializer are set.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := newPostRepository(db)
	if cacheService == nil || serializer == nil {
		return &BunRepository{repo: base}
	}
	return &BunRepository{
		repo:         repositorycache.New(base, cacheService, serializer),
		cacheService: cacheService,
	}
}

// InvalidateCache drops cached post reads. No-op without a cache.
func (r *BunRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, postCacheNamespace+cache.KeySeparator)
}

func newPostRepository(db *bun.DB) repository.Repository[*Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "source_key"
		},
		GetIdentifierValue: func(p *Post) string {
			return p.SourceKey
		},
	})
}

func (r *BunRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	return r.repo.Create(ctx, post)
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunRepository) GetBySourceKey(ctx context.Context, key string) (*Post, error) {
	record, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, key)
	}
	return record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Key: slug}
	}
	return records[0], nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.source_key ASC")
		}),
	)
	return records, err
}

func (r *BunRepository) Update(ctx context.Context, post *Post) (*Post, error) {
	record, err := r.repo.Update(ctx, post)
	if err != nil {
		return nil, mapRepositoryError(err, post.ID.String())
	}
	return record, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("post repository error: %w", err)
}

// Migrate creates the posts table and its indexes when missing.
func Migrate(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("posts: migrate requires a database")
	}
	if _, err := db.NewCreateTable().Model((*Post)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("posts: create table: %w", err)
	}
	if _, err := db.NewCreateIndex().Model((*Post)(nil)).Index("notion_posts_slug_idx").Column("slug").IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("posts: create slug index: %w", err)
	}
	return nil
}
