package mdexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// frontMatter is the optional YAML header of an exported page.
type frontMatter struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	URL      string         `yaml:"url"`
	Created  time.Time      `yaml:"created"`
	Updated  time.Time      `yaml:"updated"`
	Archived bool           `yaml:"archived"`
	Cover    string         `yaml:"cover"`
	Icon     string         `yaml:"icon"`
	Extra    map[string]any `yaml:",inline"`
}

func parseFrontMatter(source []byte) (frontMatter, []byte, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return frontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}
