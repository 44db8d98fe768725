// Package convert turns Notion block trees into block editor markup. A
// Registry holds prioritised converters; ConvertTree groups sibling list
// items and dispatches every node to the first converter that supports it.
package convert

import (
	"errors"

	"github.com/goliatone/go-notion2wp/internal/gutenberg"
	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/notion"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// DefaultPriority is used by the built-in converters. The fallback
// converter registers below it.
const DefaultPriority = 10

// DefaultMaxDepth bounds block nesting during conversion.
const DefaultMaxDepth = 64

// ErrMaxDepthExceeded is returned when a tree nests deeper than
// Options.MaxDepth.
var ErrMaxDepthExceeded = errors.New("convert: maximum block depth exceeded")

// Converter renders one family of blocks.
type Converter interface {
	Supports(block notion.Block) bool
	Convert(ctx *Context, block notion.Block) (string, error)
	Priority() int
}

// Options tune a conversion run.
type Options struct {
	// MaxDepth is the deepest nesting level converted; zero means
	// DefaultMaxDepth.
	MaxDepth int
	// Colors overrides entries of gutenberg.DefaultColors.
	Colors map[string]string
	Logger interfaces.Logger
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Context is passed to converters so they can recurse into children and
// read per-run configuration.
type Context struct {
	registry *Registry
	depth    int
	options  Options
	palette  gutenberg.Palette
}

func newContext(registry *Registry, opts Options) *Context {
	return &Context{
		registry: registry,
		options:  opts,
		palette:  gutenberg.NewPalette(opts.Colors),
	}
}

// Depth is the nesting level of the block being converted; top level
// blocks are at depth 0.
func (c *Context) Depth() int {
	return c.depth
}

// Options returns the run options.
func (c *Context) Options() Options {
	return c.options
}

// Color resolves a Notion colour through the configured palette.
func (c *Context) Color(name string) string {
	return c.palette.Resolve(name)
}

// Logger returns the run logger, never nil.
func (c *Context) Logger() interfaces.Logger {
	if c.options.Logger == nil {
		return logging.NoOp()
	}
	return c.options.Logger
}

// Registry returns the registry driving the run.
func (c *Context) Registry() *Registry {
	return c.registry
}

// ConvertChildren converts blocks one level below the current block. The
// children are regrouped before dispatch.
func (c *Context) ConvertChildren(children []notion.Block) (string, error) {
	if len(children) == 0 {
		return "", nil
	}
	child := *c
	child.depth = c.depth + 1
	return child.registry.convertAt(&child, children)
}
