// Package source resolves Notion block trees from a content source and
// hosts the filesystem backed sources used by the CLIs and tests.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/notion"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// DefaultMaxDepth bounds how deep the tree fetcher descends.
const DefaultMaxDepth = 64

var (
	// ErrMaxDepthExceeded is returned when a page nests deeper than the
	// configured limit.
	ErrMaxDepthExceeded = errors.New("source: maximum block depth exceeded")
	// ErrListerRequired is returned when a TreeFetcher has no lister.
	ErrListerRequired = errors.New("source: block lister required")
	// ErrNotFound is returned by sources for unknown page or block ids.
	ErrNotFound = errors.New("source: not found")
)

// TreeFetcher resolves a full block tree over a non recursive BlockLister.
// Children are fetched sequentially, depth first, and spliced into every
// block flagged HasChildren. Blocks that already carry children are kept as
// they are.
type TreeFetcher struct {
	lister   interfaces.BlockLister
	maxDepth int
	logger   interfaces.Logger
}

// TreeOption customises a TreeFetcher.
type TreeOption func(*TreeFetcher)

// WithMaxDepth overrides DefaultMaxDepth. Values below one are ignored.
func WithMaxDepth(depth int) TreeOption {
	return func(t *TreeFetcher) {
		if depth > 0 {
			t.maxDepth = depth
		}
	}
}

// WithLogger sets the fetcher logger.
func WithLogger(logger interfaces.Logger) TreeOption {
	return func(t *TreeFetcher) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTreeFetcher builds a fetcher over lister.
func NewTreeFetcher(lister interfaces.BlockLister, opts ...TreeOption) *TreeFetcher {
	t := &TreeFetcher{
		lister:   lister,
		maxDepth: DefaultMaxDepth,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Fetch returns the complete tree below id, or an error. It never returns
// a partial tree.
func (t *TreeFetcher) Fetch(ctx context.Context, id string) ([]notion.Block, error) {
	if t == nil || t.lister == nil {
		return nil, ErrListerRequired
	}
	blocks, err := t.fetch(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("source.tree.fetched", "id", id, "blocks", len(blocks))
	return blocks, nil
}

func (t *TreeFetcher) fetch(ctx context.Context, id string, depth int) ([]notion.Block, error) {
	if depth >= t.maxDepth {
		return nil, fmt.Errorf("%w: %s at depth %d", ErrMaxDepthExceeded, id, depth)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	children, err := t.lister.GetBlockChildren(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("source: list children of %s: %w", id, err)
	}
	return t.expand(ctx, children, depth)
}

func (t *TreeFetcher) expand(ctx context.Context, blocks []notion.Block, depth int) ([]notion.Block, error) {
	out := make([]notion.Block, len(blocks))
	for i, block := range blocks {
		switch {
		case len(block.Children) > 0:
			if depth+1 >= t.maxDepth {
				return nil, fmt.Errorf("%w: %s at depth %d", ErrMaxDepthExceeded, block.ID, depth+1)
			}
			nested, err := t.expand(ctx, block.Children, depth+1)
			if err != nil {
				return nil, err
			}
			block.Children = nested
			block.HasChildren = true
		case block.HasChildren && block.ID != "":
			nested, err := t.fetch(ctx, block.ID, depth+1)
			if err != nil {
				return nil, err
			}
			block.Children = nested
		}
		out[i] = block
	}
	return out, nil
}
