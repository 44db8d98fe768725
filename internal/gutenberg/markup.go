// Package gutenberg holds the low level helpers used to emit block editor
// markup: block comment delimiters, escaping and Notion colour mapping.
package gutenberg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strings"
)

// Attrs are the JSON attributes serialised into a block comment.
type Attrs map[string]any

// Block wraps content in block comment delimiters:
//
//	<!-- wp:name {"attr":"value"} -->
//	content
//	<!-- /wp:name -->
//
// Attributes are omitted when empty. Keys are serialised in sorted order so
// output is stable across runs.
func Block(name, content string, attrs Attrs) string {
	return fmt.Sprintf("<!-- wp:%s%s -->\n%s\n<!-- /wp:%s -->\n", name, encodeAttrs(attrs), content, name)
}

// HTML wraps raw markup in a core/html block.
func HTML(content string) string {
	return Block("core/html", content, nil)
}

// Comment renders an HTML comment. The text is escaped so it cannot close
// the comment early.
func Comment(text string) string {
	text = strings.ReplaceAll(EscapeHTML(text), "--", "&#45;&#45;")
	return "<!-- " + text + " -->\n"
}

func encodeAttrs(attrs Attrs) string {
	if len(attrs) == 0 {
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]any(attrs)); err != nil {
		return ""
	}
	// "--" inside a comment would terminate it early in some parsers.
	encoded := strings.ReplaceAll(strings.TrimSpace(buf.String()), "--", "\\u002d\\u002d")
	return " " + encoded
}

// EscapeHTML escapes text for use in element content or attribute values.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

var allowedSchemes = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
	"tel":    {},
	"ftp":    {},
	"ftps":   {},
	"news":   {},
	"irc":    {},
	"sms":    {},
}

// CleanURL trims the URL and rejects schemes outside the allow list
// (javascript:, data:, ...). Relative URLs and fragments pass through.
// The result is not escaped.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" {
		if _, ok := allowedSchemes[strings.ToLower(parsed.Scheme)]; !ok {
			return ""
		}
	}
	return raw
}

// EscapeURL cleans the URL and escapes it for an attribute value.
func EscapeURL(raw string) string {
	return EscapeHTML(CleanURL(raw))
}
