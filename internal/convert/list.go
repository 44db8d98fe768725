package convert

import (
	"strings"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/internal/richtext"
	"github.com/goliatone/go-notion2wp/notion"
)

// List converts bulleted and numbered list items, grouped or single.
type List struct{ base }

func (List) Supports(block notion.Block) bool {
	return block.Type == notion.TypeBulletedListItem || block.Type == notion.TypeNumberedListItem
}

func (List) Convert(ctx *Context, block notion.Block) (string, error) {
	items := members(block)
	if len(items) == 0 {
		return "", nil
	}

	ordered := block.Type == notion.TypeNumberedListItem
	tag := "ul"
	if ordered {
		tag = "ol"
	}

	var b strings.Builder
	b.WriteString("<" + tag + ">")
	for _, item := range items {
		li, err := listItem(ctx, item, "")
		if err != nil {
			return "", err
		}
		b.WriteString(li)
	}
	b.WriteString("</" + tag + ">")

	// One colour for the whole list: the first member that sets one.
	attrs := colorAttrs(listColor(items))
	attrs["ordered"] = ordered
	return gutenberg.Block("core/list", b.String(), attrs), nil
}

func listColor(items []notion.Block) string {
	for _, item := range items {
		if color := item.Color(); color != notion.DefaultColor {
			return color
		}
	}
	return notion.DefaultColor
}

func listItem(ctx *Context, item notion.Block, prefix string) (string, error) {
	children, err := ctx.ConvertChildren(item.Children)
	if err != nil {
		return "", err
	}
	return "<li>" + prefix + richtext.Render(item.Text()) + children + "</li>", nil
}

// Todo converts to_do items into a checklist.
type Todo struct{ base }

const (
	glyphChecked   = "☑"
	glyphUnchecked = "☐"
)

func (Todo) Supports(block notion.Block) bool {
	return block.Type == notion.TypeToDo
}

func (Todo) Convert(ctx *Context, block notion.Block) (string, error) {
	items := members(block)
	if len(items) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		glyph := glyphUnchecked
		if item.Bool("checked") {
			glyph = glyphChecked
		}
		li, err := listItem(ctx, item, glyph+" ")
		if err != nil {
			return "", err
		}
		b.WriteString(li)
	}
	b.WriteString("</ul>")
	return gutenberg.Block("core/list", b.String(), nil), nil
}
