package convert

import (
	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/notion"
)

// Divider renders a separator.
type Divider struct{ base }

func (Divider) Supports(block notion.Block) bool {
	return block.Type == notion.TypeDivider
}

func (Divider) Convert(*Context, notion.Block) (string, error) {
	return gutenberg.Block("core/separator", `<hr class="wp-block-separator has-alpha-channel-opacity"/>`, nil), nil
}

// Columns converts column_list blocks and their column children.
type Columns struct{ base }

func (Columns) Supports(block notion.Block) bool {
	return block.Type == notion.TypeColumnList || block.Type == notion.TypeColumn
}

func (Columns) Convert(ctx *Context, block notion.Block) (string, error) {
	children, err := ctx.ConvertChildren(block.Children)
	if err != nil {
		return "", err
	}
	if block.Type == notion.TypeColumn {
		return gutenberg.Block("core/column", `<div class="wp-block-column">`+children+"</div>", nil), nil
	}
	return gutenberg.Block("core/columns", `<div class="wp-block-columns">`+children+"</div>", nil), nil
}

// SyncedBlock is transparent: only its children are emitted.
type SyncedBlock struct{ base }

func (SyncedBlock) Supports(block notion.Block) bool {
	return block.Type == notion.TypeSyncedBlock
}

func (SyncedBlock) Convert(ctx *Context, block notion.Block) (string, error) {
	return ctx.ConvertChildren(block.Children)
}
