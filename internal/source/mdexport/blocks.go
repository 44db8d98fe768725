package mdexport

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-notion2wp/notion"
)

const codeLanguageDefault = "plaintext"

// builder maps a goldmark document to Notion blocks. Block ids are derived
// from the page id and a pre-order counter so they are stable across reads.
type builder struct {
	pageID string
	source []byte
	next   int
}

func (b *builder) id() string {
	b.next++
	return b.pageID + "#" + strconv.Itoa(b.next)
}

func (b *builder) newBlock(blockType string, payload map[string]any, children []notion.Block) notion.Block {
	block := notion.NewBlock(blockType, payload, children...)
	block.ID = b.id()
	return block
}

func (b *builder) blocks(parent ast.Node) []notion.Block {
	var out []notion.Block
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, b.block(child)...)
	}
	return out
}

func (b *builder) block(n ast.Node) []notion.Block {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if image, ok := soleImage(node); ok {
			return []notion.Block{b.newBlock(notion.TypeImage, notion.ExternalFile(string(image.Destination), notion.Text(string(image.Text(b.source)))), nil)}
		}
		spans := b.inline(node)
		if len(spans) == 0 {
			return nil
		}
		return []notion.Block{b.newBlock(notion.TypeParagraph, richPayload(spans), nil)}

	case *ast.Heading:
		level := node.Level
		if level > 3 {
			level = 3
		}
		blockType := "heading_" + strconv.Itoa(level)
		return []notion.Block{b.newBlock(blockType, richPayload(b.inline(node)), nil)}

	case *ast.List:
		return b.listItems(node)

	case *ast.FencedCodeBlock:
		language := strings.TrimSpace(string(node.Language(b.source)))
		if language == "" {
			language = codeLanguageDefault
		}
		payload := richPayload([]notion.RichText{notion.Text(b.lines(node))})
		payload["language"] = language
		return []notion.Block{b.newBlock(notion.TypeCode, payload, nil)}

	case *ast.CodeBlock:
		payload := richPayload([]notion.RichText{notion.Text(b.lines(node))})
		payload["language"] = codeLanguageDefault
		return []notion.Block{b.newBlock(notion.TypeCode, payload, nil)}

	case *ast.Blockquote:
		return []notion.Block{b.container(notion.TypeQuote, node)}

	case *ast.ThematicBreak:
		return []notion.Block{b.newBlock(notion.TypeDivider, nil, nil)}

	case *extast.Table:
		return []notion.Block{b.table(node)}

	default:
		if n.Type() == ast.TypeBlock && n.HasChildren() {
			return b.blocks(n)
		}
		return nil
	}
}

// container uses the first paragraph as the block text and nests the rest.
func (b *builder) container(blockType string, n ast.Node) notion.Block {
	id := b.id()
	var spans []notion.RichText
	first := n.FirstChild()
	if first != nil && (first.Kind() == ast.KindParagraph || first.Kind() == ast.KindTextBlock) {
		spans = b.inline(first)
		first = first.NextSibling()
	}
	var children []notion.Block
	for child := first; child != nil; child = child.NextSibling() {
		children = append(children, b.block(child)...)
	}
	block := notion.NewBlock(blockType, richPayload(spans), children...)
	block.ID = id
	return block
}

func (b *builder) listItems(list *ast.List) []notion.Block {
	itemType := notion.TypeBulletedListItem
	if list.IsOrdered() {
		itemType = notion.TypeNumberedListItem
	}
	var out []notion.Block
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		li, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		blockType := itemType
		checked, isTask := taskState(li)
		if isTask {
			blockType = notion.TypeToDo
		}
		block := b.container(blockType, li)
		if isTask {
			block.Payload["checked"] = checked
		}
		out = append(out, block)
	}
	return out
}

func taskState(li *ast.ListItem) (checked, ok bool) {
	first := li.FirstChild()
	if first == nil {
		return false, false
	}
	box, ok := first.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return false, false
	}
	return box.IsChecked, true
}

func (b *builder) table(table *extast.Table) notion.Block {
	id := b.id()
	var rows []notion.Block
	width := 0
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *extast.TableHeader, *extast.TableRow:
			cells := make([][]notion.RichText, 0, child.ChildCount())
			for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, b.inline(cell))
			}
			if len(cells) > width {
				width = len(cells)
			}
			rows = append(rows, b.newBlock(notion.TypeTableRow, map[string]any{"cells": cells}, nil))
		}
	}
	block := notion.NewBlock(notion.TypeTable, map[string]any{
		"table_width":       width,
		"has_column_header": true,
		"has_row_header":    false,
	}, rows...)
	block.ID = id
	return block
}

func (b *builder) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(b.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func soleImage(n ast.Node) (*ast.Image, bool) {
	if n.ChildCount() != 1 {
		return nil, false
	}
	image, ok := n.FirstChild().(*ast.Image)
	return image, ok
}

func richPayload(spans []notion.RichText) map[string]any {
	if spans == nil {
		spans = []notion.RichText{}
	}
	return map[string]any{"rich_text": spans, "color": notion.DefaultColor}
}
