// Package richtext renders Notion rich text spans as inline HTML.
package richtext

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/notion"
)

// Nbsp is emitted for paragraphs with no visible text.
const Nbsp = "&nbsp;"

// Render converts spans into escaped inline HTML. Annotations nest from the
// innermost outwards as code, bold, italic, strikethrough, underline, and
// the link wraps everything. Spans with empty text are skipped.
func Render(spans []notion.RichText) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(renderSpan(span))
	}
	return b.String()
}

func renderSpan(span notion.RichText) string {
	if span.PlainText == "" {
		return ""
	}
	out := gutenberg.EscapeHTML(span.PlainText)
	ann := span.Annotations
	if ann.Code {
		out = "<code>" + out + "</code>"
	}
	if ann.Bold {
		out = "<strong>" + out + "</strong>"
	}
	if ann.Italic {
		out = "<em>" + out + "</em>"
	}
	if ann.Strikethrough {
		out = "<s>" + out + "</s>"
	}
	if ann.Underline {
		out = "<u>" + out + "</u>"
	}
	if href := gutenberg.EscapeURL(span.Href); href != "" {
		out = `<a href="` + href + `">` + out + "</a>"
	}
	return out
}

// PlainText concatenates the raw span text without markup.
func PlainText(spans []notion.RichText) string {
	return notion.PlainText(spans)
}

// Escaped returns the plain text of spans, HTML escaped.
func Escaped(spans []notion.RichText) string {
	return gutenberg.EscapeHTML(PlainText(spans))
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// IsBlank reports whether rendered HTML has no visible text once tags are
// stripped.
func IsBlank(rendered string) bool {
	return strings.TrimSpace(tagPattern.ReplaceAllString(rendered, "")) == ""
}

// Placeholder returns Nbsp when rendered has no visible text, otherwise
// rendered unchanged.
func Placeholder(rendered string) string {
	if IsBlank(rendered) {
		return Nbsp
	}
	return rendered
}

// RenderOrPlaceholder is Placeholder(Render(spans)).
func RenderOrPlaceholder(spans []notion.RichText) string {
	return Placeholder(Render(spans))
}
