package convert

import (
	"strings"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/notion"
)

// FallbackPriority is the priority of the Unsupported converter.
const FallbackPriority = 1

// Unsupported accepts every block and emits a comment naming its type.
type Unsupported struct{}

func (Unsupported) Supports(notion.Block) bool { return true }

func (Unsupported) Priority() int { return FallbackPriority }

func (Unsupported) Convert(ctx *Context, block notion.Block) (string, error) {
	blockType := strings.TrimSpace(block.Type)
	if blockType == "" {
		blockType = "unknown"
	}
	if ctx != nil {
		ctx.Logger().Debug("convert.block.unsupported", "block_type", blockType, "block_id", block.ID)
	}
	return gutenberg.Comment("Unsupported Notion block type: " + blockType), nil
}
