package source

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-notion2wp/notion"
)

type mapLister struct {
	children map[string][]notion.Block
	calls    []string
	fail     map[string]error
}

func (m *mapLister) GetBlockChildren(_ context.Context, id string) ([]notion.Block, error) {
	m.calls = append(m.calls, id)
	if err := m.fail[id]; err != nil {
		return nil, err
	}
	return m.children[id], nil
}

func parent(id, blockType string) notion.Block {
	return notion.Block{ID: id, Type: blockType, HasChildren: true}
}

func leaf(id string) notion.Block {
	return notion.Block{ID: id, Type: notion.TypeParagraph}
}

func TestTreeFetcherSplicesDescendantsDepthFirst(t *testing.T) {
	lister := &mapLister{children: map[string][]notion.Block{
		"page": {parent("a", notion.TypeToggle), leaf("b"), parent("c", notion.TypeBulletedListItem)},
		"a":    {parent("a1", notion.TypeToggle)},
		"a1":   {leaf("a1x")},
		"c":    {leaf("c1")},
	}}

	blocks, err := NewTreeFetcher(lister).Fetch(context.Background(), "page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("expected 3 top level blocks, got %d", len(blocks))
	}
	if got := blocks[0].Children[0].Children[0].ID; got != "a1x" {
		t.Fatalf("expected nested grandchild, got %q", got)
	}
	if got := blocks[2].Children[0].ID; got != "c1" {
		t.Fatalf("expected c1 child, got %q", got)
	}

	want := []string{"page", "a", "a1", "c"}
	if len(lister.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, lister.calls)
	}
	for i := range want {
		if lister.calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, lister.calls)
		}
	}
}

func TestTreeFetcherKeepsInlineChildren(t *testing.T) {
	inline := notion.NewBlock(notion.TypeToggle, nil, leaf("inline-child"))
	inline.ID = "t"
	lister := &mapLister{children: map[string][]notion.Block{"page": {inline}}}

	blocks, err := NewTreeFetcher(lister).Fetch(context.Background(), "page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lister.calls) != 1 {
		t.Fatalf("expected inline children to skip fetching, got calls %v", lister.calls)
	}
	if blocks[0].Children[0].ID != "inline-child" {
		t.Fatalf("expected inline child kept, got %+v", blocks[0].Children)
	}
}

func TestTreeFetcherFailsWholeTreeOnChildError(t *testing.T) {
	boom := errors.New("rate limited")
	lister := &mapLister{
		children: map[string][]notion.Block{"page": {leaf("x"), parent("y", notion.TypeToggle)}},
		fail:     map[string]error{"y": boom},
	}
	blocks, err := NewTreeFetcher(lister).Fetch(context.Background(), "page")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped child error, got %v", err)
	}
	if blocks != nil {
		t.Fatalf("expected no partial tree, got %+v", blocks)
	}
}

func TestTreeFetcherDepthGuard(t *testing.T) {
	lister := &mapLister{children: map[string][]notion.Block{
		"page": {parent("d1", notion.TypeToggle)},
		"d1":   {parent("d2", notion.TypeToggle)},
		"d2":   {parent("d3", notion.TypeToggle)},
		"d3":   {leaf("end")},
	}}

	if _, err := NewTreeFetcher(lister, WithMaxDepth(4)).Fetch(context.Background(), "page"); err != nil {
		t.Fatalf("expected depth 4 to fit, got %v", err)
	}
	_, err := NewTreeFetcher(lister, WithMaxDepth(3)).Fetch(context.Background(), "page")
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded, got %v", err)
	}
}

func TestTreeFetcherHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewTreeFetcher(&mapLister{}).Fetch(ctx, "page")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTreeFetcherRequiresLister(t *testing.T) {
	if _, err := NewTreeFetcher(nil).Fetch(context.Background(), "page"); !errors.Is(err, ErrListerRequired) {
		t.Fatalf("expected ErrListerRequired, got %v", err)
	}
}
