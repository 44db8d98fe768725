package convert

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/internal/richtext"
	"github.com/goliatone/go-notion2wp/notion"
)

// Bookmark renders a bookmarked URL as an embed.
type Bookmark struct{ base }

func (Bookmark) Supports(block notion.Block) bool {
	return block.Type == notion.TypeBookmark
}

func (Bookmark) Convert(_ *Context, block notion.Block) (string, error) {
	return embedBlock(block.String("url"), block.Caption(), "")
}

// Embed renders embed and link_preview blocks, tagging known providers.
type Embed struct{ base }

func (Embed) Supports(block notion.Block) bool {
	return block.Type == notion.TypeEmbed || block.Type == notion.TypeLinkPreview
}

func (Embed) Convert(_ *Context, block notion.Block) (string, error) {
	target := block.String("url")
	return embedBlock(target, block.Caption(), providerSlug(target))
}

func embedBlock(target string, caption []notion.RichText, provider string) (string, error) {
	target = strings.TrimSpace(target)
	if gutenberg.CleanURL(target) == "" {
		return "", nil
	}

	class := "wp-block-embed"
	attrs := gutenberg.Attrs{"url": target}
	if provider != "" {
		class += " is-provider-" + provider + " wp-block-embed-" + provider
		attrs["providerNameSlug"] = provider
	}

	html := `<figure class="` + class + `"><div class="wp-block-embed__wrapper">` + gutenberg.EscapeURL(target) + "</div>"
	if rendered := richtext.Render(caption); rendered != "" {
		html += figcaption(rendered)
	}
	html += "</figure>"
	return gutenberg.Block("core/embed", html, attrs), nil
}

var providers = []struct {
	suffix string
	slug   string
}{
	{"youtube.com", "youtube"},
	{"youtu.be", "youtube"},
	{"vimeo.com", "vimeo"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
	{"spotify.com", "spotify"},
	{"soundcloud.com", "soundcloud"},
	{"flickr.com", "flickr"},
	{"tiktok.com", "tiktok"},
	{"reddit.com", "reddit"},
	{"codepen.io", "codepen"},
}

// providerSlug guesses the embed provider from the URL host.
func providerSlug(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range providers {
		if host == p.suffix || strings.HasSuffix(host, "."+p.suffix) {
			return p.slug
		}
	}
	return ""
}
