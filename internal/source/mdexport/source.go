// Package mdexport reads pages from a Notion "Markdown & CSV" style export:
// one Markdown file per page, optional YAML frontmatter, and Notion ids as
// the trailing 32 hex characters of file names.
package mdexport

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/internal/source"
	"github.com/goliatone/go-notion2wp/notion"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

var notionIDPattern = regexp.MustCompile(`(?i)\s*([0-9a-f]{32})$`)

// Source implements interfaces.ContentSource and interfaces.PageLister.
type Source struct {
	fsys     fs.FS
	markdown goldmark.Markdown
	tree     *source.TreeFetcher
	logger   interfaces.Logger
}

// Option customises a Source.
type Option func(*Source)

// WithLogger sets the source logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

var (
	_ interfaces.ContentSource = (*Source)(nil)
	_ interfaces.PageLister    = (*Source)(nil)
)

// New builds a Source over fsys.
func New(fsys fs.FS, opts ...Option) *Source {
	s := &Source{
		fsys: fsys,
		markdown: goldmark.New(goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			extension.TaskList,
		)),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.tree = source.NewTreeFetcher(s, source.WithLogger(s.logger))
	return s
}

type parsedPage struct {
	page   notion.Page
	blocks []notion.Block
}

// GetPage returns the metadata of a page file.
func (s *Source) GetPage(ctx context.Context, id string) (*notion.Page, error) {
	parsed, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &parsed.page, nil
}

// GetBlockChildren returns the blocks of a page, or the children of a block
// id produced by this source.
func (s *Source) GetBlockChildren(ctx context.Context, id string) ([]notion.Block, error) {
	pageID, _, isBlock := strings.Cut(id, "#")
	parsed, err := s.load(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if !isBlock {
		return parsed.blocks, nil
	}
	if block, ok := findBlock(parsed.blocks, id); ok {
		return block.Children, nil
	}
	return nil, fmt.Errorf("%w: block %s", source.ErrNotFound, id)
}

// GetAllBlockChildrenRecursive resolves the full tree below id.
func (s *Source) GetAllBlockChildrenRecursive(ctx context.Context, id string) ([]notion.Block, error) {
	return s.tree.Fetch(ctx, id)
}

// ListPages returns every page in the export, ordered by id.
func (s *Source) ListPages(ctx context.Context) ([]notion.Page, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	pages := make([]notion.Page, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parsed, err := s.parse(file)
		if err != nil {
			s.logger.Warn("source.markdown.skipped", "file", file, "error", err)
			continue
		}
		pages = append(pages, parsed.page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })
	return pages, nil
}

func (s *Source) load(ctx context.Context, id string) (parsedPage, error) {
	if err := ctx.Err(); err != nil {
		return parsedPage{}, err
	}
	files, err := s.files()
	if err != nil {
		return parsedPage{}, err
	}
	want := normalizeID(id)
	for _, file := range files {
		if fileID(file) == want {
			return s.parse(file)
		}
	}
	// Frontmatter ids need a parse to be discovered.
	for _, file := range files {
		parsed, err := s.parse(file)
		if err == nil && normalizeID(parsed.page.ID) == want {
			return parsed, nil
		}
	}
	return parsedPage{}, fmt.Errorf("%w: page %s", source.ErrNotFound, id)
}

func (s *Source) files() ([]string, error) {
	var files []string
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), ".md") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mdexport: walk export: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func (s *Source) parse(file string) (parsedPage, error) {
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		return parsedPage{}, fmt.Errorf("mdexport: read %s: %w", file, err)
	}
	meta, body, err := parseFrontMatter(data)
	if err != nil {
		return parsedPage{}, fmt.Errorf("mdexport: %s: %w", file, err)
	}

	id := strings.TrimSpace(meta.ID)
	if id == "" {
		id = fileID(file)
	}

	doc := s.markdown.Parser().Parse(text.NewReader(body))
	title := strings.TrimSpace(meta.Title)
	if first, ok := doc.FirstChild().(*ast.Heading); ok && first.Level == 1 {
		if title == "" {
			title = string(first.Text(body))
		}
		doc.RemoveChild(doc, first)
	}
	if title == "" {
		title = fileTitle(file)
	}

	b := &builder{pageID: id, source: body}
	page := notion.Page{
		ID:             id,
		Object:         notion.ObjectPage,
		URL:            meta.URL,
		CreatedTime:    meta.Created.UTC(),
		LastEditedTime: meta.Updated.UTC(),
		Archived:       meta.Archived,
		Properties: map[string]notion.Property{
			"title": {Name: "title", ID: "title", Type: "title", Payload: []notion.RichText{notion.Text(title)}},
		},
	}
	if meta.Updated.IsZero() {
		if info, err := fs.Stat(s.fsys, file); err == nil && !info.ModTime().IsZero() {
			page.LastEditedTime = info.ModTime().UTC()
		}
	}
	for key, value := range meta.Extra {
		page.Properties[key] = notion.Property{
			Name:    key,
			Type:    "rich_text",
			Payload: []notion.RichText{notion.Text(fmt.Sprint(value))},
		}
	}
	if cover := strings.TrimSpace(meta.Cover); cover != "" {
		page.Cover = &notion.FileRef{Type: notion.FileTypeExternal, ExternalURL: cover}
	}
	if icon := strings.TrimSpace(meta.Icon); icon != "" {
		page.Icon = iconFrom(icon)
	}

	return parsedPage{page: page, blocks: b.blocks(doc)}, nil
}

func iconFrom(value string) *notion.Icon {
	if strings.Contains(value, "://") {
		return &notion.Icon{Type: notion.FileTypeExternal, File: notion.FileRef{Type: notion.FileTypeExternal, ExternalURL: value}}
	}
	return &notion.Icon{Type: "emoji", Emoji: value}
}

// fileID returns the Notion id embedded in a file name, or a slug of the
// name when there is none.
func fileID(file string) string {
	stem := strings.TrimSuffix(path.Base(file), path.Ext(file))
	if match := notionIDPattern.FindStringSubmatch(stem); match != nil {
		return strings.ToLower(match[1])
	}
	if normalized, err := slug.Normalize(stem); err == nil && normalized != "" {
		return normalized
	}
	return strings.ToLower(stem)
}

func fileTitle(file string) string {
	stem := strings.TrimSuffix(path.Base(file), path.Ext(file))
	return strings.TrimSpace(notionIDPattern.ReplaceAllString(stem, ""))
}

func normalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if compact := strings.ReplaceAll(id, "-", ""); notionIDPattern.MatchString(compact) && len(compact) == 32 {
		return compact
	}
	return id
}

func findBlock(blocks []notion.Block, id string) (notion.Block, bool) {
	for _, block := range blocks {
		if block.ID == id {
			return block, true
		}
		if found, ok := findBlock(block.Children, id); ok {
			return found, true
		}
	}
	return notion.Block{}, false
}
