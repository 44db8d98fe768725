package importer

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/goliatone/go-notion2wp/internal/convert"
	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/notion"
)

func TestPostSanitizerKeepsBlockComments(t *testing.T) {
	markup := "<!-- wp:heading {\"level\":3} -->\n<h3>Title</h3>\n<!-- /wp:heading -->\n" +
		"<!-- wp:paragraph -->\n<p>ok<script>alert(1)</script></p>\n<!-- /wp:paragraph -->\n"

	out := NewPostSanitizer().Sanitize(markup)

	if !strings.Contains(out, `<!-- wp:heading {"level":3} -->`) {
		t.Fatalf("expected block comment with attributes intact, got %q", out)
	}
	if strings.Contains(out, "script") || strings.Contains(out, "alert") {
		t.Fatalf("expected script removed, got %q", out)
	}
	if !strings.Contains(out, "<h3>Title</h3>") || !strings.Contains(out, "<p>ok</p>") {
		t.Fatalf("expected safe markup kept, got %q", out)
	}
}

func TestPostSanitizerKeepsBlockMarkup(t *testing.T) {
	cases := []string{
		`<details class="wp-block-details"><summary>More</summary></details>`,
		`<figure class="wp-block-video"><video controls src="https://files.test/clip.mp4"></video></figure>`,
		`<hr class="wp-block-separator has-alpha-channel-opacity"/>`,
	}
	for _, markup := range cases {
		out := NewPostSanitizer().Sanitize(markup)
		for _, fragment := range []string{"wp-block-", "<"} {
			if !strings.Contains(out, fragment) {
				t.Fatalf("expected %q to survive in %q", fragment, out)
			}
		}
		if strings.Contains(markup, "<video") && !strings.Contains(out, "<video") {
			t.Fatalf("expected video element kept, got %q", out)
		}
		if strings.Contains(markup, "<summary>") && !strings.Contains(out, "<summary>More</summary>") {
			t.Fatalf("expected summary kept, got %q", out)
		}
	}
}

func TestPostSanitizerDropsEventHandlers(t *testing.T) {
	out := NewPostSanitizer().Sanitize(`<p onclick="steal()">hi</p>`)
	if out != "<p>hi</p>" {
		t.Fatalf("unexpected output %q", out)
	}
}

func sanitizedConversion(t *testing.T, blocks ...notion.Block) string {
	t.Helper()
	markup, err := convert.DefaultRegistry().ConvertTree(blocks, convert.Options{})
	if err != nil {
		t.Fatalf("ConvertTree: %v", err)
	}
	return NewPostSanitizer().Sanitize(markup)
}

// firstAttr returns the value of attr on the first element named tag.
func firstAttr(t *testing.T, markup, tag, attr string) (string, bool) {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse markup: %v", err)
	}
	var walk func(*html.Node) (string, bool)
	walk = func(n *html.Node) (string, bool) {
		if n.Type == html.ElementNode && n.Data == tag {
			for _, a := range n.Attr {
				if a.Key == attr {
					return a.Val, true
				}
			}
			return "", false
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if v, ok := walk(c); ok {
				return v, true
			}
		}
		return "", false
	}
	return walk(doc)
}

func TestPostSanitizerKeepsImageAltText(t *testing.T) {
	for _, caption := range []string{"a cat", "Revenue? 50%", "Q3 #1 result", `the "best" plan`} {
		block := notion.NewBlock(notion.TypeImage, notion.ExternalFile("https://img.test/a.png", notion.Text(caption)))
		out := sanitizedConversion(t, block)

		alt, ok := firstAttr(t, out, "img", "alt")
		if !ok || alt != caption {
			t.Fatalf("caption %q: expected alt to survive, got %q (present=%v) in %q", caption, alt, ok, out)
		}
	}
}

func TestPostSanitizerKeepsPlaceholderEntity(t *testing.T) {
	out := sanitizedConversion(t, notion.NewBlock(notion.TypeParagraph, map[string]any{"rich_text": []any{}}))
	if !strings.Contains(out, "<p>&nbsp;</p>") || strings.Contains(out, "\u00a0") {
		t.Fatalf("expected &nbsp; placeholder, got %q", out)
	}
}

func TestPostSanitizerKeepsCalloutBackground(t *testing.T) {
	block := notion.NewBlock(notion.TypeCallout, map[string]any{
		"color":     "blue_background",
		"rich_text": []notion.RichText{notion.Text("note")},
	})
	out := sanitizedConversion(t, block)

	style, ok := firstAttr(t, out, "div", "style")
	want := gutenberg.NewPalette(nil).Resolve("blue_background")
	if !ok || !strings.Contains(style, "background-color") || !strings.Contains(strings.ToLower(style), strings.ToLower(want)) {
		t.Fatalf("expected background colour %s to survive, got %q in %q", want, style, out)
	}
}
