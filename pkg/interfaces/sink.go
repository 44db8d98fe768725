package interfaces

import (
	"context"
	"time"
)

// PostPayload is the destination post built from one source page.
type PostPayload struct {
	SourceID   string
	Title      string
	Slug       string
	Content    string
	Excerpt    string
	Status     string
	Type       string
	AuthorID   string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Meta       map[string]string
	CoverURL   string
	IconEmoji  string
	IconURL    string
}

// UpsertResult reports the post written for a payload.
type UpsertResult struct {
	PostID  string
	Created bool
}

// PostSink writes posts keyed by PostPayload.SourceID: an existing mapping is
// updated, otherwise a post is created.
type PostSink interface {
	UpsertPost(ctx context.Context, payload PostPayload) (UpsertResult, error)
}

// ImportAction describes what an import did to the destination.
type ImportAction string

const (
	ImportActionCreated ImportAction = "created"
	ImportActionUpdated ImportAction = "updated"
	ImportActionFailed  ImportAction = "failed"
)

// ImportResult is the outcome for one source page. Successful imports carry
// PostID, failures carry Error.
type ImportResult struct {
	SourceID string
	PostID   string
	Title    string
	Action   ImportAction
	Error    string
}

// Failed reports whether the result represents a failure.
func (r ImportResult) Failed() bool {
	return r.Error != ""
}

// BatchResult aggregates per page outcomes of a batch import.
type BatchResult struct {
	Successes []ImportResult
	Failures  []ImportResult
}

// Total is the number of pages attempted.
func (b BatchResult) Total() int {
	return len(b.Successes) + len(b.Failures)
}
