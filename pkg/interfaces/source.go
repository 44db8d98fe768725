package interfaces

import (
	"context"
	"time"

	"github.com/goliatone/go-notion2wp/notion"
)

// BlockLister returns the direct children of a page or block. Pagination is
// resolved by the implementation; callers never see a cursor.
type BlockLister interface {
	GetBlockChildren(ctx context.Context, id string) ([]notion.Block, error)
}

// ContentSource provides page metadata and block trees.
// GetAllBlockChildrenRecursive returns the complete tree or an error, never a
// partial result.
type ContentSource interface {
	BlockLister
	GetPage(ctx context.Context, id string) (*notion.Page, error)
	GetAllBlockChildrenRecursive(ctx context.Context, id string) ([]notion.Block, error)
}

// PageSummary is a display row for pages a source can import.
type PageSummary struct {
	ID             string
	Object         string
	Title          string
	URL            string
	CreatedTime    time.Time
	LastEditedTime time.Time
	Archived       bool
	ParentType     string
	ParentID       string
}

// PageLister is an optional ContentSource capability that enumerates
// importable pages.
type PageLister interface {
	ListPages(ctx context.Context) ([]notion.Page, error)
}
