// Package jsonexport reads pages from a directory of JSON exports. Each page
// lives in <page-id>.json as {"page": {...}, "blocks": [...]} using the
// Notion API object shapes. Block children are either inline under
// "children" or stored in blocks/<block-id>.json as an array or a
// {"results": [...]} list response.
package jsonexport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/internal/source"
	"github.com/goliatone/go-notion2wp/notion"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

const blocksDir = "blocks"

// Source implements interfaces.ContentSource and interfaces.PageLister
// over an fs.FS.
type Source struct {
	fsys    fs.FS
	schemas schemas
	tree    *source.TreeFetcher
	logger  interfaces.Logger
}

// Option customises a Source.
type Option func(*config)

type config struct {
	maxDepth int
	logger   interfaces.Logger
}

// WithMaxDepth bounds recursive child resolution.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// WithLogger sets the source logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *config) { c.logger = logger }
}

var (
	_ interfaces.ContentSource = (*Source)(nil)
	_ interfaces.PageLister    = (*Source)(nil)
)

// New builds a Source rooted at fsys.
func New(fsys fs.FS, opts ...Option) (*Source, error) {
	if fsys == nil {
		return nil, errors.New("jsonexport: filesystem required")
	}
	cfg := config{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	compiled, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	s := &Source{fsys: fsys, schemas: compiled, logger: cfg.logger}
	s.tree = source.NewTreeFetcher(s, source.WithMaxDepth(cfg.maxDepth), source.WithLogger(cfg.logger))
	return s, nil
}

type document struct {
	page   notion.Page
	blocks []notion.Block
}

// GetPage returns the metadata of a page export.
func (s *Source) GetPage(ctx context.Context, id string) (*notion.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := s.readDocument(id)
	if err != nil {
		return nil, err
	}
	return &doc.page, nil
}

// GetBlockChildren returns the direct children of a page or block.
func (s *Source) GetBlockChildren(ctx context.Context, id string) ([]notion.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := s.readDocument(id)
	if err == nil {
		return doc.blocks, nil
	}
	if !errors.Is(err, source.ErrNotFound) {
		return nil, err
	}
	return s.readChildren(id)
}

// GetAllBlockChildrenRecursive resolves the full tree below id.
func (s *Source) GetAllBlockChildrenRecursive(ctx context.Context, id string) ([]notion.Block, error) {
	return s.tree.Fetch(ctx, id)
}

// ListPages returns every page export in the root directory, ordered by id.
func (s *Source) ListPages(ctx context.Context) ([]notion.Page, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("jsonexport: list pages: %w", err)
	}
	var pages []notion.Page
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		doc, err := s.readFile(entry.Name())
		if err != nil {
			s.logger.Warn("source.json.skipped", "file", entry.Name(), "error", err)
			continue
		}
		pages = append(pages, doc.page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID < pages[j].ID })
	return pages, nil
}

func (s *Source) readDocument(id string) (document, error) {
	for _, name := range candidates(id) {
		doc, err := s.readFile(name + ".json")
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return doc, err
	}
	return document{}, fmt.Errorf("%w: page %s", source.ErrNotFound, id)
}

func (s *Source) readFile(name string) (document, error) {
	raw, err := readJSON(s.fsys, name)
	if err != nil {
		return document{}, err
	}
	if err := validate(s.schemas.page, name, raw); err != nil {
		return document{}, err
	}
	root, _ := raw.(map[string]any)
	page, _ := root["page"].(map[string]any)
	blocks, _ := root["blocks"].([]any)
	return document{
		page:   notion.PageFromMap(page),
		blocks: notion.BlocksFromSlice(blocks),
	}, nil
}

func (s *Source) readChildren(id string) ([]notion.Block, error) {
	for _, name := range candidates(id) {
		file := path.Join(blocksDir, name+".json")
		raw, err := readJSON(s.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if list, ok := raw.(map[string]any); ok {
			raw = list["results"]
		}
		if err := validate(s.schemas.children, file, raw); err != nil {
			return nil, err
		}
		items, _ := raw.([]any)
		return notion.BlocksFromSlice(items), nil
	}
	return nil, fmt.Errorf("%w: block %s", source.ErrNotFound, id)
}

func readJSON(fsys fs.FS, name string) (any, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("jsonexport: decode %s: %w", name, err)
	}
	return raw, nil
}

// candidates lists file stems for id: as given, then without dashes.
func candidates(id string) []string {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil
	}
	out := []string{id}
	if compact := strings.ReplaceAll(id, "-", ""); compact != id {
		out = append(out, compact)
	}
	return out
}
