package convert

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/internal/richtext"
	"github.com/goliatone/go-notion2wp/notion"
)

// Image converts image blocks; the plain caption doubles as alt text.
type Image struct{ base }

func (Image) Supports(block notion.Block) bool {
	return block.Type == notion.TypeImage
}

func (Image) Convert(_ *Context, block notion.Block) (string, error) {
	file := block.File()
	src := gutenberg.CleanURL(file.URL())
	if src == "" {
		return "", nil
	}
	alt := richtext.PlainText(file.Caption)

	html := `<figure class="wp-block-image"><img src="` + gutenberg.EscapeURL(src) + `" alt="` + gutenberg.EscapeHTML(alt) + `"/>`
	if caption := richtext.Render(file.Caption); caption != "" {
		html += figcaption(caption)
	}
	html += "</figure>"
	return gutenberg.Block("core/image", html, gutenberg.Attrs{"url": src, "alt": alt}), nil
}

// File converts file and pdf blocks into a link plus download button.
type File struct{ base }

func (File) Supports(block notion.Block) bool {
	return block.Type == notion.TypeFile || block.Type == notion.TypePDF
}

func (File) Convert(_ *Context, block notion.Block) (string, error) {
	file := block.File()
	href := gutenberg.CleanURL(file.URL())
	if href == "" {
		return "", nil
	}
	escaped := gutenberg.EscapeURL(href)

	var b strings.Builder
	b.WriteString(`<div class="wp-block-file">`)
	b.WriteString(`<a href="` + escaped + `">` + gutenberg.EscapeHTML(fileName(file)) + "</a>")
	b.WriteString(`<a href="` + escaped + `" class="wp-block-file__button wp-element-button" download>Download</a>`)
	b.WriteString("</div>")
	return gutenberg.Block("core/file", b.String(), gutenberg.Attrs{"href": href}), nil
}

// fileName prefers the explicit name, then the caption, then the last URL
// path segment.
func fileName(file notion.FileRef) string {
	if name := strings.TrimSpace(file.Name); name != "" {
		return name
	}
	if caption := strings.TrimSpace(richtext.PlainText(file.Caption)); caption != "" {
		return caption
	}
	if parsed, err := url.Parse(file.URL()); err == nil {
		if base := path.Base(parsed.Path); base != "" && base != "." && base != "/" {
			if unescaped, err := url.PathUnescape(base); err == nil {
				return unescaped
			}
			return base
		}
	}
	return "file"
}

var videoEmbedHosts = regexp.MustCompile(`(?i)(youtube\.com|youtu\.be|vimeo\.com)`)

// Video embeds known video hosts and uses the native player otherwise.
type Video struct{ base }

func (Video) Supports(block notion.Block) bool {
	return block.Type == notion.TypeVideo
}

func (Video) Convert(_ *Context, block notion.Block) (string, error) {
	file := block.File()
	src := gutenberg.CleanURL(file.URL())
	if src == "" {
		return "", nil
	}
	caption := richtext.Render(file.Caption)
	if caption != "" {
		caption = figcaption(caption)
	}

	if videoEmbedHosts.MatchString(src) {
		html := `<figure class="wp-block-embed is-type-video"><div class="wp-block-embed__wrapper">` + gutenberg.EscapeURL(src) + "</div>" + caption + "</figure>"
		attrs := gutenberg.Attrs{"url": src, "type": "video"}
		if provider := providerSlug(src); provider != "" {
			attrs["providerNameSlug"] = provider
		}
		return gutenberg.Block("core/embed", html, attrs), nil
	}

	html := `<figure class="wp-block-video"><video controls src="` + gutenberg.EscapeURL(src) + `"></video>` + caption + "</figure>"
	return gutenberg.Block("core/video", html, gutenberg.Attrs{"src": src}), nil
}

// Audio converts audio blocks into a native player.
type Audio struct{ base }

func (Audio) Supports(block notion.Block) bool {
	return block.Type == notion.TypeAudio
}

func (Audio) Convert(_ *Context, block notion.Block) (string, error) {
	file := block.File()
	src := gutenberg.CleanURL(file.URL())
	if src == "" {
		return "", nil
	}
	html := `<figure class="wp-block-audio"><audio controls src="` + gutenberg.EscapeURL(src) + `"></audio>`
	if caption := richtext.Render(file.Caption); caption != "" {
		html += figcaption(caption)
	}
	html += "</figure>"
	return gutenberg.Block("core/audio", html, gutenberg.Attrs{"src": src}), nil
}
