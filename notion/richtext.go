package notion

import "strings"

// Annotations are the independent inline formatting flags of a span.
type Annotations struct {
	Bold          bool   `json:"bold"`
	Italic        bool   `json:"italic"`
	Strikethrough bool   `json:"strikethrough"`
	Underline     bool   `json:"underline"`
	Code          bool   `json:"code"`
	Color         string `json:"color,omitempty"`
}

// RichText is a single formatting run.
type RichText struct {
	PlainText   string      `json:"plain_text"`
	Href        string      `json:"href,omitempty"`
	Annotations Annotations `json:"annotations"`
}

// Text builds an unformatted span.
func Text(content string) RichText {
	return RichText{PlainText: content}
}

// Link builds an unformatted span pointing at href.
func Link(content, href string) RichText {
	return RichText{PlainText: content, Href: href}
}

// RichTextFrom decodes a rich text array. It accepts the decoded JSON form
// ([]any of objects) as well as native []RichText values so hand-built
// payloads and API payloads share accessors.
func RichTextFrom(value any) []RichText {
	switch items := value.(type) {
	case []RichText:
		out := make([]RichText, len(items))
		copy(out, items)
		return out
	case RichText:
		return []RichText{items}
	case []any:
		out := make([]RichText, 0, len(items))
		for _, item := range items {
			if span, ok := richTextFromMap(mapValue(item)); ok {
				out = append(out, span)
			}
		}
		return out
	default:
		return nil
	}
}

func richTextFromMap(raw map[string]any) (RichText, bool) {
	if len(raw) == 0 {
		return RichText{}, false
	}
	text := mapValue(raw["text"])
	span := RichText{
		PlainText: stringValue(raw["plain_text"]),
		Href:      stringValue(raw["href"]),
	}
	if span.PlainText == "" {
		span.PlainText = stringValue(text["content"])
	}
	if span.Href == "" {
		span.Href = stringValue(mapValue(text["link"])["url"])
	}
	annotations := mapValue(raw["annotations"])
	span.Annotations = Annotations{
		Bold:          boolValue(annotations["bold"]),
		Italic:        boolValue(annotations["italic"]),
		Strikethrough: boolValue(annotations["strikethrough"]),
		Underline:     boolValue(annotations["underline"]),
		Code:          boolValue(annotations["code"]),
		Color:         stringValue(annotations["color"]),
	}
	return span, true
}

// PlainText concatenates the raw text of spans.
func PlainText(spans []RichText) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.PlainText)
	}
	return b.String()
}
