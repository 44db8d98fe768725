package gutenberg

import "strings"

// DefaultColors maps Notion colour names to hex values.
var DefaultColors = map[string]string{
	"default":           "#E6E6E4",
	"blue":              "#0B6E99",
	"blue_background":   "#CCE4F9",
	"brown":             "#684B3F",
	"brown_background":  "#E8D5CC",
	"gray":              "#8F8E8A",
	"gray_background":   "#D7D7D5",
	"green":             "#A7F3D0",
	"green_background":  "#A7F3D0",
	"orange":            "#D9730D",
	"orange_background": "#FDDFCC",
	"pink":              "#B2297B",
	"pink_background":   "#F8CCE6",
	"purple":            "#6940A5",
	"purple_background": "#E1D3F8",
	"red":               "#E14646",
	"red_background":    "#FFCCD1",
	"yellow":            "#DFAC03",
	"yellow_background": "#FBEECC",
}

// Palette resolves colour names to values. Overrides take precedence over
// DefaultColors; unknown names resolve to themselves.
type Palette struct {
	overrides map[string]string
}

// NewPalette builds a palette from configuration overrides.
func NewPalette(overrides map[string]string) Palette {
	cloned := make(map[string]string, len(overrides))
	for key, value := range overrides {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		cloned[key] = strings.TrimSpace(value)
	}
	return Palette{overrides: cloned}
}

// Resolve maps a Notion colour to its configured value.
func (p Palette) Resolve(color string) string {
	if value, ok := p.overrides[color]; ok && value != "" {
		return value
	}
	if value, ok := DefaultColors[color]; ok {
		return value
	}
	return color
}

// ColorClass returns the has-<color>-color class for non-default colours.
func ColorClass(color string) string {
	color = strings.TrimSpace(color)
	if color == "" || color == "default" {
		return ""
	}
	return "has-" + EscapeHTML(color) + "-color"
}

// IsBackground reports whether the Notion colour is a background variant.
func IsBackground(color string) bool {
	return strings.HasSuffix(color, "_background")
}
