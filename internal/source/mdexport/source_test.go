package mdexport

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-notion2wp/internal/source"
	"github.com/goliatone/go-notion2wp/notion"
)

const pageID = "0123456789abcdef0123456789abcdef"

const exportedPage = `---
url: https://www.notion.so/Launch-notes-0123456789abcdef0123456789abcdef
created: 2025-04-01T10:00:00Z
icon: "🚀"
team: platform
---
# Launch notes

Some **bold** and *italic* text with ` + "`code`" + ` and ~~gone~~ and a [link](https://example.com).

## Checklist

- [x] Write docs
- [ ] Ship it

1. First
2. Second
   - nested bullet

> Quoted words

` + "```go\nfmt.Println(\"hi\")\n```" + `

---

![Diagram](https://cdn.test/diagram.png)

| Name | Role |
| ---- | ---- |
| Ada  | Eng  |
`

func newSource() *Source {
	return New(fstest.MapFS{
		"Launch notes " + pageID + ".md": {Data: []byte(exportedPage), ModTime: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)},
		"Other/Plain.md":                 {Data: []byte("---\nid: custom-id\ntitle: Front title\n---\nBody text\n")},
		"readme.txt":                     {Data: []byte("skip")},
	})
}

func TestGetPageReadsFrontmatterAndHeading(t *testing.T) {
	page, err := newSource().GetPage(context.Background(), "01234567-89ab-cdef-0123-456789abcdef")
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.ID != pageID || page.PlainTitle() != "Launch notes" {
		t.Fatalf("unexpected page identity %q %q", page.ID, page.PlainTitle())
	}
	if page.CreatedTime.Day() != 1 || page.LastEditedTime.Month() != time.May {
		t.Fatalf("unexpected timestamps %v %v", page.CreatedTime, page.LastEditedTime)
	}
	if page.Icon == nil || page.Icon.Emoji != "🚀" {
		t.Fatalf("expected emoji icon, got %+v", page.Icon)
	}
	if prop := page.Properties["team"]; notion.PlainText(prop.RichText()) != "platform" {
		t.Fatalf("expected extra frontmatter property, got %+v", prop)
	}
}

func TestFrontmatterIDAndTitle(t *testing.T) {
	page, err := newSource().GetPage(context.Background(), "custom-id")
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.PlainTitle() != "Front title" {
		t.Fatalf("unexpected title %q", page.PlainTitle())
	}
}

func TestBlocksMapMarkdownStructure(t *testing.T) {
	blocks, err := newSource().GetAllBlockChildrenRecursive(context.Background(), pageID)
	if err != nil {
		t.Fatalf("GetAllBlockChildrenRecursive: %v", err)
	}

	var types []string
	for _, block := range blocks {
		types = append(types, block.Type)
	}
	want := []string{
		notion.TypeParagraph,
		notion.TypeHeading2,
		notion.TypeToDo, notion.TypeToDo,
		notion.TypeNumberedListItem, notion.TypeNumberedListItem,
		notion.TypeQuote,
		notion.TypeCode,
		notion.TypeDivider,
		notion.TypeImage,
		notion.TypeTable,
	}
	if len(types) != len(want) {
		t.Fatalf("expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("block %d: expected %s, got %s (all %v)", i, want[i], types[i], types)
		}
	}

	if !blocks[2].Bool("checked") || blocks[3].Bool("checked") {
		t.Fatal("expected first task checked and second unchecked")
	}
	if got := notion.PlainText(blocks[2].Text()); got != "Write docs" {
		t.Fatalf("unexpected task text %q", got)
	}

	second := blocks[5]
	if len(second.Children) != 1 || second.Children[0].Type != notion.TypeBulletedListItem {
		t.Fatalf("expected nested bullet under second item, got %+v", second.Children)
	}

	if blocks[7].String("language") != "go" || notion.PlainText(blocks[7].Text()) != `fmt.Println("hi")` {
		t.Fatalf("unexpected code block %+v", blocks[7].Payload)
	}
	if blocks[9].File().URL() != "https://cdn.test/diagram.png" || notion.PlainText(blocks[9].Caption()) != "Diagram" {
		t.Fatalf("unexpected image %+v", blocks[9].Payload)
	}

	rows := blocks[10].Children
	if !blocks[10].Bool("has_column_header") || len(rows) != 2 {
		t.Fatalf("expected header and one body row, got %d", len(rows))
	}
	if cells := rows[1].Cells(); len(cells) != 2 || notion.PlainText(cells[0]) != "Ada" {
		t.Fatalf("unexpected body row %+v", cells)
	}
}

func TestInlineFormattingBecomesAnnotations(t *testing.T) {
	blocks, err := newSource().GetBlockChildren(context.Background(), pageID)
	if err != nil {
		t.Fatalf("GetBlockChildren: %v", err)
	}
	spans := blocks[0].Text()

	find := func(text string) notion.RichText {
		for _, span := range spans {
			if span.PlainText == text {
				return span
			}
		}
		t.Fatalf("span %q not found in %+v", text, spans)
		return notion.RichText{}
	}
	if !find("bold").Annotations.Bold {
		t.Fatal("expected bold annotation")
	}
	if !find("italic").Annotations.Italic {
		t.Fatal("expected italic annotation")
	}
	if !find("code").Annotations.Code {
		t.Fatal("expected code annotation")
	}
	if !find("gone").Annotations.Strikethrough {
		t.Fatal("expected strikethrough annotation")
	}
	if find("link").Href != "https://example.com" {
		t.Fatal("expected link href")
	}
	if spans[0].PlainText != "Some " {
		t.Fatalf("expected leading plain span, got %q", spans[0].PlainText)
	}
}

func TestBlockIDsResolveChildren(t *testing.T) {
	src := newSource()
	blocks, err := src.GetBlockChildren(context.Background(), pageID)
	if err != nil {
		t.Fatalf("GetBlockChildren: %v", err)
	}
	children, err := src.GetBlockChildren(context.Background(), blocks[5].ID)
	if err != nil {
		t.Fatalf("GetBlockChildren(%s): %v", blocks[5].ID, err)
	}
	if len(children) != 1 {
		t.Fatalf("expected one nested child, got %d", len(children))
	}
	if _, err := src.GetBlockChildren(context.Background(), pageID+"#999"); !errors.Is(err, source.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPages(t *testing.T) {
	pages, err := newSource().ListPages(context.Background())
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	if len(pages) != 2 || pages[0].ID != pageID || pages[1].ID != "custom-id" {
		t.Fatalf("unexpected pages %+v", pages)
	}
}
