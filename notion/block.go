package notion

import (
	"encoding/json"
	"strings"
)

// Block types understood by the converters. The source API may emit more;
// unknown values are preserved verbatim in Block.Type.
const (
	TypeParagraph        = "paragraph"
	TypeHeading1         = "heading_1"
	TypeHeading2         = "heading_2"
	TypeHeading3         = "heading_3"
	TypeBulletedListItem = "bulleted_list_item"
	TypeNumberedListItem = "numbered_list_item"
	TypeToDo             = "to_do"
	TypeQuote            = "quote"
	TypeCode             = "code"
	TypeImage            = "image"
	TypeDivider          = "divider"
	TypeCallout          = "callout"
	TypeToggle           = "toggle"
	TypeTable            = "table"
	TypeTableRow         = "table_row"
	TypeBookmark         = "bookmark"
	TypeEmbed            = "embed"
	TypeLinkPreview      = "link_preview"
	TypeFile             = "file"
	TypePDF              = "pdf"
	TypeVideo            = "video"
	TypeAudio            = "audio"
	TypeColumnList       = "column_list"
	TypeColumn           = "column"
	TypeSyncedBlock      = "synced_block"
)

// DefaultColor is the colour Notion reports for uncoloured content.
const DefaultColor = "default"

// Block is one node of a Notion content tree. Payload holds the object the
// API stores under the key named by Type; every accessor tolerates missing
// or mistyped keys and returns the zero value instead.
//
// Grouped and Members are only populated by the sibling grouper: a grouped
// block stands for a run of consecutive list items that share Type.
type Block struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	HasChildren bool           `json:"has_children"`
	Children    []Block        `json:"children,omitempty"`
	Payload     map[string]any `json:"-"`

	Grouped bool    `json:"-"`
	Members []Block `json:"-"`
}

// NewBlock builds a block with the supplied payload and children.
func NewBlock(blockType string, payload map[string]any, children ...Block) Block {
	if payload == nil {
		payload = map[string]any{}
	}
	return Block{
		Type:        blockType,
		Payload:     payload,
		Children:    children,
		HasChildren: len(children) > 0,
	}
}

// UnmarshalJSON decodes the API block shape, moving the type-keyed object
// into Payload.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = BlockFromMap(raw)
	return nil
}

// MarshalJSON writes the block back in API shape.
func (b Block) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"object":       "block",
		"type":         b.Type,
		"has_children": b.HasChildren,
	}
	if b.ID != "" {
		out["id"] = b.ID
	}
	if b.Type != "" {
		out[b.Type] = b.Data()
	}
	if len(b.Children) > 0 {
		out["children"] = b.Children
	}
	return json.Marshal(out)
}

// BlockFromMap converts a decoded JSON object into a Block.
func BlockFromMap(raw map[string]any) Block {
	blockType := strings.TrimSpace(stringValue(raw["type"]))
	block := Block{
		ID:          stringValue(raw["id"]),
		Type:        blockType,
		HasChildren: boolValue(raw["has_children"]),
		Payload:     mapValue(raw[blockType]),
	}
	for _, child := range sliceValue(raw["children"]) {
		if m := mapValue(child); len(m) > 0 {
			block.Children = append(block.Children, BlockFromMap(m))
		}
	}
	return block
}

// BlocksFromSlice converts a decoded JSON array into blocks, skipping entries
// that are not objects.
func BlocksFromSlice(items []any) []Block {
	blocks := make([]Block, 0, len(items))
	for _, item := range items {
		if m := mapValue(item); len(m) > 0 {
			blocks = append(blocks, BlockFromMap(m))
		}
	}
	return blocks
}

// Data returns the type-keyed payload, never nil.
func (b Block) Data() map[string]any {
	if b.Payload == nil {
		return map[string]any{}
	}
	return b.Payload
}

// String reads a string field from the payload.
func (b Block) String(key string) string {
	return stringValue(b.Data()[key])
}

// Bool reads a boolean field from the payload.
func (b Block) Bool(key string) bool {
	return boolValue(b.Data()[key])
}

// RichText reads a rich text array stored under key.
func (b Block) RichText(key string) []RichText {
	return RichTextFrom(b.Data()[key])
}

// Text is shorthand for RichText("rich_text").
func (b Block) Text() []RichText {
	return b.RichText("rich_text")
}

// Caption is shorthand for RichText("caption").
func (b Block) Caption() []RichText {
	return b.RichText("caption")
}

// Color returns the payload colour or DefaultColor.
func (b Block) Color() string {
	if color := strings.TrimSpace(b.String("color")); color != "" {
		return color
	}
	return DefaultColor
}

// File interprets the payload as a file object (image, video, file, ...).
func (b Block) File() FileRef {
	return FileRefFrom(b.Data())
}

// Icon reads the payload icon (callouts).
func (b Block) Icon() Icon {
	return IconFrom(b.Data()["icon"])
}

// Cells reads the cells of a table_row payload.
func (b Block) Cells() [][]RichText {
	switch cells := b.Data()["cells"].(type) {
	case [][]RichText:
		out := make([][]RichText, len(cells))
		copy(out, cells)
		return out
	case []any:
		out := make([][]RichText, 0, len(cells))
		for _, cell := range cells {
			out = append(out, RichTextFrom(cell))
		}
		return out
	default:
		return nil
	}
}

// IsHeading reports whether the block is one of the heading types.
func (b Block) IsHeading() bool {
	switch b.Type {
	case TypeHeading1, TypeHeading2, TypeHeading3:
		return true
	default:
		return false
	}
}
