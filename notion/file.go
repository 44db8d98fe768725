package notion

import "strings"

// File object variants.
const (
	FileTypeExternal   = "external"
	FileTypeHosted     = "file"
	FileTypeFileUpload = "file_upload"
)

// FileRef describes a media or file reference. Hosted URLs expire upstream;
// the converters pass them through untouched.
type FileRef struct {
	Type        string
	ExternalURL string
	HostedURL   string
	Name        string
	Caption     []RichText
}

// URL resolves the reference: the external URL wins, then the hosted one.
// File uploads need an extra API round trip and resolve to "".
func (f FileRef) URL() string {
	if url := strings.TrimSpace(f.ExternalURL); url != "" {
		return url
	}
	return strings.TrimSpace(f.HostedURL)
}

// FileRefFrom decodes a file object.
func FileRefFrom(value any) FileRef {
	raw := mapValue(value)
	if len(raw) == 0 {
		return FileRef{}
	}
	return FileRef{
		Type:        stringValue(raw["type"]),
		ExternalURL: stringValue(mapValue(raw[FileTypeExternal])["url"]),
		HostedURL:   stringValue(mapValue(raw[FileTypeHosted])["url"]),
		Name:        stringValue(raw["name"]),
		Caption:     RichTextFrom(raw["caption"]),
	}
}

// ExternalFile builds an external file payload, as found under image/video/... keys.
func ExternalFile(url string, caption ...RichText) map[string]any {
	return map[string]any{
		"type":           FileTypeExternal,
		FileTypeExternal: map[string]any{"url": url},
		"caption":        caption,
	}
}

// HostedFile builds a Notion-hosted file payload.
func HostedFile(url string, caption ...RichText) map[string]any {
	return map[string]any{
		"type":         FileTypeHosted,
		FileTypeHosted: map[string]any{"url": url},
		"caption":      caption,
	}
}

// Icon is a page or callout icon.
type Icon struct {
	Type  string
	Emoji string
	File  FileRef
}

// URL returns the icon image URL, if any.
func (i Icon) URL() string {
	return i.File.URL()
}

// IconFrom decodes an icon object.
func IconFrom(value any) Icon {
	raw := mapValue(value)
	if len(raw) == 0 {
		return Icon{}
	}
	return Icon{
		Type:  stringValue(raw["type"]),
		Emoji: stringValue(raw["emoji"]),
		File:  FileRefFrom(raw),
	}
}
