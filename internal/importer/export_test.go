package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-notion2wp/internal/posts"
	"github.com/goliatone/go-notion2wp/internal/source/jsonexport"
	"github.com/goliatone/go-notion2wp/pkg/testsupport"
)

const exportPageID = "0f3c9a2e-4b7d-4e8f-9a1b-2c3d4e5f6a7b"

func TestImportPageFromJSONExport(t *testing.T) {
	src, err := jsonexport.New(testsupport.FixtureFS(t, "testdata/export"))
	if err != nil {
		t.Fatalf("jsonexport.New: %v", err)
	}
	svc := posts.NewService(posts.NewMemoryRepository())
	imp, err := New(src, svc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	result, err := imp.ImportPage(ctx, exportPageID)
	if err != nil {
		t.Fatalf("ImportPage: %v", err)
	}
	if result.Title != "Release checklist" {
		t.Fatalf("unexpected title %q", result.Title)
	}

	post, err := svc.GetBySourceID(ctx, exportPageID)
	if err != nil {
		t.Fatalf("GetBySourceID: %v", err)
	}
	if post.Slug != "release-checklist" || post.IconEmoji != "🚀" {
		t.Fatalf("unexpected post %+v", post)
	}

	for _, fragment := range []string{
		`<!-- wp:core/heading {"level":2} -->`,
		"<h2>Before shipping</h2>",
		"runbook</em></a>",
		`<!-- wp:core/list {"ordered":true} -->`,
		"<li>Tag the build</li><li>Publish notes</li>",
		"<summary>Rollback plan</summary>",
		"Revert the tag.",
		`<!-- wp:core/code {"language":"bash"} -->`,
		"make release &amp;&amp; echo ok",
		"<!-- wp:core/separator -->",
	} {
		if !strings.Contains(post.Content, fragment) {
			t.Fatalf("expected content to contain %q, got %q", fragment, post.Content)
		}
	}

	meta := post.Meta
	if meta["notion_parent_type"] != "database_id" || meta["notion_parent_id"] != "db-releases" {
		t.Fatalf("unexpected parent meta %v", meta)
	}
	if meta["notion_created_by"] != "user-1" || meta["notion_icon_emoji"] != "🚀" {
		t.Fatalf("unexpected user/icon meta %v", meta)
	}
	if meta["notion_last_edited_time"] != "2025-03-04T17:30:00Z" {
		t.Fatalf("unexpected last edited meta %q", meta["notion_last_edited_time"])
	}
}
