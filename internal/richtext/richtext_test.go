package richtext

import (
	"testing"

	"github.com/goliatone/go-notion2wp/notion"
)

func TestRenderAnnotationNestingOrder(t *testing.T) {
	span := notion.RichText{
		PlainText: "x",
		Href:      "https://example.com",
		Annotations: notion.Annotations{
			Bold:          true,
			Italic:        true,
			Strikethrough: true,
			Underline:     true,
			Code:          true,
		},
	}
	want := `<a href="https://example.com"><u><s><em><strong><code>x</code></strong></em></s></u></a>`
	if got := Render([]notion.RichText{span}); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderAnnotationSubsets(t *testing.T) {
	tests := []struct {
		name string
		ann  notion.Annotations
		href string
		want string
	}{
		{"code underline", notion.Annotations{Code: true, Underline: true}, "", "<u><code>x</code></u>"},
		{"bold strikethrough link", notion.Annotations{Bold: true, Strikethrough: true}, "https://example.com", `<a href="https://example.com"><s><strong>x</strong></s></a>`},
		{"italic only", notion.Annotations{Italic: true}, "", "<em>x</em>"},
		{"code italic", notion.Annotations{Code: true, Italic: true}, "", "<em><code>x</code></em>"},
		{"bold underline", notion.Annotations{Bold: true, Underline: true}, "", "<u><strong>x</strong></u>"},
		{"strikethrough underline link", notion.Annotations{Strikethrough: true, Underline: true}, "https://example.com", `<a href="https://example.com"><u><s>x</s></u></a>`},
		{"link only", notion.Annotations{}, "https://example.com", `<a href="https://example.com">x</a>`},
		{"code unsafe link", notion.Annotations{Code: true}, "javascript:alert(1)", "<code>x</code>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := notion.RichText{PlainText: "x", Href: tt.href, Annotations: tt.ann}
			if got := Render([]notion.RichText{span}); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderConcatenatesAndEscapes(t *testing.T) {
	spans := []notion.RichText{
		notion.Text("a < b & "),
		{PlainText: "c", Annotations: notion.Annotations{Italic: true}},
	}
	if got := Render(spans); got != "a &lt; b &amp; <em>c</em>" {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestRenderSkipsEmptySpans(t *testing.T) {
	spans := []notion.RichText{
		{PlainText: "", Annotations: notion.Annotations{Bold: true}},
		notion.Link("", "https://example.com"),
		notion.Text("kept"),
	}
	if got := Render(spans); got != "kept" {
		t.Fatalf("expected empty spans skipped, got %q", got)
	}
}

func TestRenderDropsUnsafeLinks(t *testing.T) {
	got := Render([]notion.RichText{notion.Link("click", "javascript:alert(1)")})
	if got != "click" {
		t.Fatalf("expected link dropped, got %q", got)
	}
}

func TestRenderEscapesHref(t *testing.T) {
	got := Render([]notion.RichText{notion.Link("q", `https://a.test/?x=1&y=2`)})
	if got != `<a href="https://a.test/?x=1&amp;y=2">q</a>` {
		t.Fatalf("unexpected link %q", got)
	}
}

func TestRenderOrPlaceholder(t *testing.T) {
	cases := []struct {
		name  string
		spans []notion.RichText
		want  string
	}{
		{name: "nil", spans: nil, want: Nbsp},
		{name: "whitespace", spans: []notion.RichText{notion.Text("  ")}, want: Nbsp},
		{name: "text", spans: []notion.RichText{notion.Text("hi")}, want: "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RenderOrPlaceholder(tc.spans); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPlainTextAndEscaped(t *testing.T) {
	spans := []notion.RichText{notion.Text("Tom "), {PlainText: "& Jerry", Annotations: notion.Annotations{Bold: true}}}
	if got := PlainText(spans); got != "Tom & Jerry" {
		t.Fatalf("unexpected plain text %q", got)
	}
	if got := Escaped(spans); got != "Tom &amp; Jerry" {
		t.Fatalf("unexpected escaped text %q", got)
	}
}

func TestPlaceholderStripsTags(t *testing.T) {
	if got := Placeholder("<strong> </strong>"); got != Nbsp {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := Placeholder("<em>x</em>"); got != "<em>x</em>" {
		t.Fatalf("expected markup kept, got %q", got)
	}
}
