package convert

import (
	"strings"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/internal/richtext"
	"github.com/goliatone/go-notion2wp/notion"
)

const plainTextLanguage = "plaintext"

// Code renders code blocks from unformatted text.
type Code struct{ base }

func (Code) Supports(block notion.Block) bool {
	return block.Type == notion.TypeCode
}

func (Code) Convert(_ *Context, block notion.Block) (string, error) {
	html := `<pre class="wp-block-code"><code>` + richtext.Escaped(block.Text()) + "</code></pre>"
	if caption := richtext.Render(block.Caption()); caption != "" {
		html += figcaption(caption)
	}

	attrs := gutenberg.Attrs{}
	if language := strings.TrimSpace(block.String("language")); language != "" && language != plainTextLanguage {
		attrs["language"] = language
	}
	return gutenberg.Block("core/code", html, attrs), nil
}

func figcaption(caption string) string {
	return `<figcaption class="wp-element-caption">` + caption + "</figcaption>"
}
