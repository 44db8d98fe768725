package importer

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans converted markup before it reaches the sink.
type Sanitizer interface {
	Sanitize(markup string) string
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(string) string

func (f SanitizerFunc) Sanitize(markup string) string {
	return f(markup)
}

var (
	blockCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	// alt mirrors the block's plain-text caption, so any text is allowed.
	anyText = regexp.MustCompile(`(?s)^.*$`)
)

// PostSanitizer filters the HTML between block comments with a policy close
// to what a post editor accepts, and keeps the comments themselves
// verbatim so block attributes survive.
type PostSanitizer struct {
	policy *bluemonday.Policy
}

// NewPostSanitizer builds the default post content sanitizer.
func NewPostSanitizer() *PostSanitizer {
	return &PostSanitizer{policy: postPolicy()}
}

func postPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption", "details", "summary", "hr", "video", "audio", "source")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("style").Globally()
	p.AllowStyles("color", "background-color").Globally()
	p.AllowAttrs("alt").Matching(anyText).OnElements("img")
	p.AllowAttrs("open").OnElements("details")
	p.AllowAttrs("download").OnElements("a")
	p.AllowAttrs("src", "controls", "preload").OnElements("video", "audio", "source")
	p.AllowAttrs("type").OnElements("source")
	p.RequireNoFollowOnLinks(false)
	return p
}

// Sanitize implements Sanitizer. Non-breaking spaces decoded by the policy
// are written back as &nbsp; so empty-block placeholders stay intact.
func (s *PostSanitizer) Sanitize(markup string) string {
	if s == nil || s.policy == nil || markup == "" {
		return markup
	}
	var b strings.Builder
	last := 0
	for _, loc := range blockCommentPattern.FindAllStringIndex(markup, -1) {
		b.WriteString(s.clean(markup[last:loc[0]]))
		b.WriteString(markup[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(s.clean(markup[last:]))
	return b.String()
}

func (s *PostSanitizer) clean(fragment string) string {
	return strings.ReplaceAll(s.policy.Sanitize(fragment), "\u00a0", "&nbsp;")
}
