package notion

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// Object kinds returned by the source API.
const (
	ObjectPage       = "page"
	ObjectDatabase   = "database"
	ObjectDataSource = "data_source"
)

// UntitledTitle is used when a page carries no title.
const UntitledTitle = "(Untitled)"

// Page is the metadata of a page or database object.
type Page struct {
	ID             string
	Object         string
	URL            string
	PublicURL      string
	CreatedTime    time.Time
	LastEditedTime time.Time
	Archived       bool
	InTrash        bool
	Properties     map[string]Property
	Title          []RichText
	Description    []RichText
	Cover          *FileRef
	Icon           *Icon
	Parent         Parent
	CreatedBy      string
	LastEditedBy   string
}

// Parent identifies the container of a page.
type Parent struct {
	Type string
	ID   string
}

// Property is one page property; Payload is the object stored under Type.
type Property struct {
	Name    string
	ID      string
	Type    string
	Payload any
}

// RichText returns the property value for rich text shaped properties
// (title, rich_text).
func (p Property) RichText() []RichText {
	return RichTextFrom(p.Payload)
}

// UnmarshalJSON decodes the API page/database shape.
func (p *Page) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PageFromMap(raw)
	return nil
}

// PageFromMap converts a decoded JSON object into a Page.
func PageFromMap(raw map[string]any) Page {
	page := Page{
		ID:             stringValue(raw["id"]),
		Object:         stringValue(raw["object"]),
		URL:            stringValue(raw["url"]),
		PublicURL:      stringValue(raw["public_url"]),
		CreatedTime:    timeValue(raw["created_time"]),
		LastEditedTime: timeValue(raw["last_edited_time"]),
		Archived:       boolValue(raw["archived"]),
		InTrash:        boolValue(raw["in_trash"]),
		Title:          RichTextFrom(raw["title"]),
		Description:    RichTextFrom(raw["description"]),
		Parent:         parentFrom(raw["parent"]),
		CreatedBy:      stringValue(mapValue(raw["created_by"])["id"]),
		LastEditedBy:   stringValue(mapValue(raw["last_edited_by"])["id"]),
	}
	if page.Object == "" {
		page.Object = ObjectPage
	}
	if cover := mapValue(raw["cover"]); len(cover) > 0 {
		ref := FileRefFrom(cover)
		page.Cover = &ref
	}
	if icon := mapValue(raw["icon"]); len(icon) > 0 {
		decoded := IconFrom(icon)
		page.Icon = &decoded
	}
	if props := mapValue(raw["properties"]); len(props) > 0 {
		page.Properties = make(map[string]Property, len(props))
		for name, value := range props {
			prop := mapValue(value)
			propType := stringValue(prop["type"])
			page.Properties[name] = Property{
				Name:    name,
				ID:      stringValue(prop["id"]),
				Type:    propType,
				Payload: prop[propType],
			}
		}
	}
	return page
}

// TitleProperty returns the first title typed property in name order.
func (p Page) TitleProperty() (Property, bool) {
	names := make([]string, 0, len(p.Properties))
	for name := range p.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if prop := p.Properties[name]; prop.Type == "title" {
			return prop, true
		}
	}
	return Property{}, false
}

// PlainTitle extracts the display title. Pages use their title property,
// databases and data sources their own title field; anything else falls
// back to UntitledTitle.
func (p Page) PlainTitle() string {
	switch p.Object {
	case ObjectPage:
		if prop, ok := p.TitleProperty(); ok {
			return PlainText(prop.RichText())
		}
	case ObjectDatabase, ObjectDataSource:
		if len(p.Title) > 0 {
			return PlainText(p.Title)
		}
	}
	return UntitledTitle
}

// IsContainer reports whether the object is a database or data source.
func (p Page) IsContainer() bool {
	return p.Object == ObjectDatabase || p.Object == ObjectDataSource
}

func parentFrom(value any) Parent {
	raw := mapValue(value)
	parentType := stringValue(raw["type"])
	parent := Parent{Type: parentType}
	switch parentType {
	case "workspace":
		parent.ID = "workspace"
	case "":
	default:
		parent.ID = stringValue(raw[parentType])
	}
	return parent
}

func timeValue(value any) time.Time {
	str := strings.TrimSpace(stringValue(value))
	if str == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}
