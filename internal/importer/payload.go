package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-notion2wp/notion"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// MetaPrefix namespaces page metadata stored on posts.
const MetaPrefix = "notion_"

// PostDefaults are applied to every payload built by the importer.
type PostDefaults struct {
	Status   string
	Type     string
	AuthorID string
}

// Title returns the display title of a page or database object, falling
// back to notion.UntitledTitle when it is blank.
func Title(page notion.Page) string {
	if title := strings.TrimSpace(page.PlainTitle()); title != "" {
		return title
	}
	return notion.UntitledTitle
}

// Metadata flattens the page attributes kept alongside a post. Keys carry
// MetaPrefix and empty values are omitted.
func Metadata(page notion.Page) map[string]string {
	meta := map[string]string{}
	put := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			meta[MetaPrefix+key] = value
		}
	}
	putTime := func(key string, value time.Time) {
		if !value.IsZero() {
			put(key, value.UTC().Format(time.RFC3339))
		}
	}

	put("page_id", page.ID)
	put("object", page.Object)
	putTime("created_time", page.CreatedTime)
	putTime("last_edited_time", page.LastEditedTime)
	put("archived", strconv.FormatBool(page.Archived))
	put("in_trash", strconv.FormatBool(page.InTrash))
	put("url", page.URL)
	put("public_url", page.PublicURL)
	put("created_by", page.CreatedBy)
	put("last_edited_by", page.LastEditedBy)
	put("description", notion.PlainText(page.Description))
	if page.Parent.Type != "" {
		put("parent_type", page.Parent.Type)
		put("parent_id", page.Parent.ID)
	}
	if page.Cover != nil {
		put("cover_url", page.Cover.URL())
	}
	if page.Icon != nil {
		switch {
		case page.Icon.Emoji != "":
			put("icon_type", "emoji")
			put("icon_emoji", page.Icon.Emoji)
		case page.Icon.URL() != "":
			put("icon_type", "file")
			put("icon_url", page.Icon.URL())
		}
	}
	return meta
}

// Summarize turns a page into a listing row.
func Summarize(page notion.Page) interfaces.PageSummary {
	return interfaces.PageSummary{
		ID:             page.ID,
		Object:         page.Object,
		Title:          Title(page),
		URL:            page.URL,
		CreatedTime:    page.CreatedTime,
		LastEditedTime: page.LastEditedTime,
		Archived:       page.Archived,
		ParentType:     page.Parent.Type,
		ParentID:       page.Parent.ID,
	}
}

func buildPayload(pageID string, page notion.Page, content string, defaults PostDefaults) interfaces.PostPayload {
	payload := interfaces.PostPayload{
		SourceID:   pageID,
		Title:      Title(page),
		Content:    content,
		Excerpt:    notion.PlainText(page.Description),
		Status:     defaults.Status,
		Type:       defaults.Type,
		AuthorID:   defaults.AuthorID,
		CreatedAt:  page.CreatedTime,
		ModifiedAt: page.LastEditedTime,
		Meta:       Metadata(page),
	}
	if page.Cover != nil {
		payload.CoverURL = page.Cover.URL()
	}
	if page.Icon != nil {
		payload.IconEmoji = page.Icon.Emoji
		payload.IconURL = page.Icon.URL()
	}
	return payload
}
