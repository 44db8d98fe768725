package posts

import (
	"context"
	"errors"
	"testing"
	"time"

	cache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-notion2wp/pkg/interfaces"
	"github.com/goliatone/go-notion2wp/pkg/testsupport"
)

func TestBunRepositoryUpsertBySourceID(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(NewBunRepository(db))
	ctx := context.Background()

	created, err := svc.UpsertPost(ctx, interfaces.PostPayload{
		SourceID: "abc-123",
		Title:    "Stored Post",
		Content:  "<p>body</p>",
		Meta:     map[string]string{"notion_archived": "false"},
	})
	if err != nil {
		t.Fatalf("UpsertPost create: %v", err)
	}
	if !created.Created {
		t.Fatal("expected create")
	}

	updated, err := svc.UpsertPost(ctx, interfaces.PostPayload{SourceID: "ABC123", Title: "Stored Post", Content: "<p>new</p>"})
	if err != nil {
		t.Fatalf("UpsertPost update: %v", err)
	}
	if updated.Created || updated.PostID != created.PostID {
		t.Fatalf("expected update of %s, got %+v", created.PostID, updated)
	}

	post, err := svc.Get(ctx, uuid.MustParse(created.PostID))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if post.Content != "<p>new</p>" || post.Slug != "stored-post" {
		t.Fatalf("unexpected stored post %+v", post)
	}
	if post.Meta[MetaSyncedAt] == "" {
		t.Fatalf("expected sync meta, got %v", post.Meta)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one post, got %d", len(all))
	}
}

func TestBunRepositoryNotFound(t *testing.T) {
	repo := NewBunRepository(newTestDB(t))
	if _, err := repo.GetBySourceKey(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetBySlug(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db := testsupport.NewSQLiteMemoryDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCachedBunRepositoryServesImportedPosts(t *testing.T) {
	db := newTestDB(t)
	cacheCfg := cache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := cache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	repo := NewBunRepositoryWithCache(db, cacheService, cache.NewDefaultKeySerializer())
	svc := newTestService(repo)
	ctx := context.Background()

	for _, id := range []string{"cache-1", "cache-2"} {
		if _, err := svc.UpsertPost(ctx, interfaces.PostPayload{SourceID: id, Title: "Cached " + id}); err != nil {
			t.Fatalf("UpsertPost %s: %v", id, err)
		}
	}

	post, err := svc.GetBySourceID(ctx, "cache-2")
	if err != nil {
		t.Fatalf("GetBySourceID: %v", err)
	}
	if post.Title != "Cached cache-2" {
		t.Fatalf("unexpected cached post %+v", post)
	}
	if err := repo.InvalidateCache(ctx); err != nil {
		t.Fatalf("InvalidateCache: %v", err)
	}
	if err := NewBunRepository(db).InvalidateCache(ctx); err != nil {
		t.Fatalf("expected uncached invalidation to be a no-op, got %v", err)
	}
}
