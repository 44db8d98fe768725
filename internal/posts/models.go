package posts

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Default post status and type applied when a payload leaves them empty.
const (
	DefaultStatus = "draft"
	DefaultType   = "post"
)

// MetaSyncedAt records when a post was last written from its source page.
const MetaSyncedAt = "notion_synced_at"

// Post is an imported destination post. SourceKey is the normalised source
// page id and is unique per post.
type Post struct {
	bun.BaseModel `bun:"table:notion_posts,alias:np"`

	ID               uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	SourceID         string            `bun:"source_id,notnull" json:"source_id"`
	SourceKey        string            `bun:"source_key,notnull,unique" json:"source_key"`
	Title            string            `bun:"title,notnull" json:"title"`
	Slug             string            `bun:"slug,notnull" json:"slug"`
	Content          string            `bun:"content,notnull" json:"content"`
	Excerpt          string            `bun:"excerpt" json:"excerpt,omitempty"`
	Status           string            `bun:"status,notnull,default:'draft'" json:"status"`
	Type             string            `bun:"type,notnull,default:'post'" json:"type"`
	AuthorID         string            `bun:"author_id" json:"author_id,omitempty"`
	CoverURL         string            `bun:"cover_url" json:"cover_url,omitempty"`
	IconEmoji        string            `bun:"icon_emoji" json:"icon_emoji,omitempty"`
	IconURL          string            `bun:"icon_url" json:"icon_url,omitempty"`
	Meta             map[string]string `bun:"meta,type:jsonb" json:"meta,omitempty"`
	SourceCreatedAt  time.Time         `bun:"source_created_at,nullzero" json:"source_created_at,omitempty"`
	SourceModifiedAt time.Time         `bun:"source_modified_at,nullzero" json:"source_modified_at,omitempty"`
	CreatedAt        time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt        time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func clonePost(post *Post) *Post {
	if post == nil {
		return nil
	}
	cloned := *post
	cloned.Meta = maps.Clone(post.Meta)
	return &cloned
}
