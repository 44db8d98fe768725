package convert

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/internal/richtext"
	"github.com/goliatone/go-notion2wp/notion"
)

// base supplies the default priority.
type base struct{}

func (base) Priority() int { return DefaultPriority }

func colorAttrs(color string) gutenberg.Attrs {
	attrs := gutenberg.Attrs{}
	if class := gutenberg.ColorClass(color); class != "" {
		attrs["className"] = class
	}
	return attrs
}

// Paragraph converts paragraph blocks.
type Paragraph struct{ base }

func (Paragraph) Supports(block notion.Block) bool {
	return block.Type == notion.TypeParagraph
}

func (Paragraph) Convert(ctx *Context, block notion.Block) (string, error) {
	children, err := ctx.ConvertChildren(block.Children)
	if err != nil {
		return "", err
	}
	html := "<p>" + richtext.RenderOrPlaceholder(block.Text()) + "</p>" + children
	return gutenberg.Block("core/paragraph", html, colorAttrs(block.Color())), nil
}

// Heading converts heading_1 to heading_3. Children are only rendered for
// toggleable headings.
type Heading struct{ base }

func (Heading) Supports(block notion.Block) bool {
	return block.IsHeading()
}

func (Heading) Convert(ctx *Context, block notion.Block) (string, error) {
	level := headingLevel(block.Type)
	tag := "h" + strconv.Itoa(level)

	html := "<" + tag + ">" + richtext.Render(block.Text()) + "</" + tag + ">"
	if block.Bool("is_toggleable") {
		children, err := ctx.ConvertChildren(block.Children)
		if err != nil {
			return "", err
		}
		html += children
	}

	attrs := colorAttrs(block.Color())
	attrs["level"] = level
	return gutenberg.Block("core/heading", html, attrs), nil
}

func headingLevel(blockType string) int {
	if idx := strings.LastIndexByte(blockType, '_'); idx >= 0 {
		if level, err := strconv.Atoi(blockType[idx+1:]); err == nil && level >= 1 && level <= 6 {
			return level
		}
	}
	return 2
}

// Quote converts quote blocks.
type Quote struct{ base }

func (Quote) Supports(block notion.Block) bool {
	return block.Type == notion.TypeQuote
}

func (Quote) Convert(ctx *Context, block notion.Block) (string, error) {
	children, err := ctx.ConvertChildren(block.Children)
	if err != nil {
		return "", err
	}
	html := `<blockquote class="wp-block-quote"><p>` + richtext.Render(block.Text()) + "</p>" + children + "</blockquote>"
	return gutenberg.Block("core/quote", html, colorAttrs(block.Color())), nil
}

// Callout renders a callout as a group holding the icon, text and children.
type Callout struct{ base }

func (Callout) Supports(block notion.Block) bool {
	return block.Type == notion.TypeCallout
}

func (Callout) Convert(ctx *Context, block notion.Block) (string, error) {
	children, err := ctx.ConvertChildren(block.Children)
	if err != nil {
		return "", err
	}

	icon := block.Icon()
	lead := ""
	switch {
	case icon.Emoji != "":
		lead = gutenberg.EscapeHTML(icon.Emoji) + " "
	case icon.URL() != "":
		lead = `<img class="notion-callout__icon" src="` + gutenberg.EscapeURL(icon.URL()) + `" alt=""/> `
	}

	var b strings.Builder
	b.WriteString(`<div class="wp-block-group notion-callout"`)
	attrs := gutenberg.Attrs{}
	if color := block.Color(); color != notion.DefaultColor {
		value := ctx.Color(color)
		property, key := "color", "text"
		if gutenberg.IsBackground(color) {
			property, key = "background-color", "background"
		}
		b.WriteString(` style="` + property + ":" + gutenberg.EscapeHTML(value) + `"`)
		attrs["style"] = map[string]any{"color": map[string]any{key: value}}
	}
	b.WriteString(">")
	b.WriteString("<!-- wp:paragraph --><p>")
	b.WriteString(lead)
	b.WriteString(richtext.Render(block.Text()))
	b.WriteString("</p><!-- /wp:paragraph -->")
	b.WriteString(children)
	b.WriteString("</div>")
	return gutenberg.Block("core/group", b.String(), attrs), nil
}

// Toggle renders a disclosure widget.
type Toggle struct{ base }

func (Toggle) Supports(block notion.Block) bool {
	return block.Type == notion.TypeToggle
}

func (Toggle) Convert(ctx *Context, block notion.Block) (string, error) {
	children, err := ctx.ConvertChildren(block.Children)
	if err != nil {
		return "", err
	}
	html := `<details class="wp-block-details"><summary>` + richtext.Render(block.Text()) + "</summary>" + children + "</details>"
	return gutenberg.Block("core/details", html, nil), nil
}
