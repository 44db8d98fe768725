package mdexport

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-notion2wp/notion"
)

// inline flattens the inline children of n into rich text spans, carrying
// formatting down from enclosing emphasis, links and strikethrough.
func (b *builder) inline(n ast.Node) []notion.RichText {
	var spans []notion.RichText
	b.collect(n, notion.RichText{}, &spans)
	return mergeSpans(spans)
}

func (b *builder) collect(n ast.Node, style notion.RichText, out *[]notion.RichText) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			text := string(node.Segment.Value(b.source))
			switch {
			case node.HardLineBreak():
				text += "\n"
			case node.SoftLineBreak():
				text += " "
			}
			appendSpan(out, style, text)

		case *ast.String:
			appendSpan(out, style, string(node.Value))

		case *ast.Emphasis:
			next := style
			if node.Level >= 2 {
				next.Annotations.Bold = true
			} else {
				next.Annotations.Italic = true
			}
			b.collect(node, next, out)

		case *ast.CodeSpan:
			next := style
			next.Annotations.Code = true
			appendSpan(out, next, string(node.Text(b.source)))

		case *ast.Link:
			next := style
			next.Href = string(node.Destination)
			b.collect(node, next, out)

		case *ast.AutoLink:
			url := string(node.URL(b.source))
			next := style
			next.Href = url
			appendSpan(out, next, url)

		case *ast.Image:
			next := style
			next.Href = string(node.Destination)
			alt := string(node.Text(b.source))
			if alt == "" {
				alt = next.Href
			}
			appendSpan(out, next, alt)

		case *extast.Strikethrough:
			next := style
			next.Annotations.Strikethrough = true
			b.collect(node, next, out)

		case *extast.TaskCheckBox, *ast.RawHTML:
			continue

		default:
			if child.HasChildren() {
				b.collect(child, style, out)
			}
		}
	}
}

func appendSpan(out *[]notion.RichText, style notion.RichText, text string) {
	if text == "" {
		return
	}
	span := style
	span.PlainText = text
	*out = append(*out, span)
}

// mergeSpans joins neighbours that share formatting and trims the leading
// and trailing whitespace of the run.
func mergeSpans(spans []notion.RichText) []notion.RichText {
	var merged []notion.RichText
	for _, span := range spans {
		if last := len(merged) - 1; last >= 0 && merged[last].Href == span.Href && merged[last].Annotations == span.Annotations {
			merged[last].PlainText += span.PlainText
			continue
		}
		merged = append(merged, span)
	}
	for len(merged) > 0 {
		trimmed := strings.TrimLeft(merged[0].PlainText, " \t")
		if trimmed != "" {
			merged[0].PlainText = trimmed
			break
		}
		merged = merged[1:]
	}
	if last := len(merged) - 1; last >= 0 {
		trimmed := trimTrailingBreak(merged[last].PlainText)
		if trimmed == "" {
			merged = merged[:last]
		} else {
			merged[last].PlainText = trimmed
		}
	}
	return merged
}

func trimTrailingBreak(text string) string {
	return strings.TrimRight(text, " \n")
}
