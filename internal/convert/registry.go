package convert

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-notion2wp/notion"
)

type descriptor struct {
	converter Converter
	priority  int
	seq       int
}

// Registry dispatches blocks to converters ordered by descending priority;
// equal priorities keep registration order. It is safe for concurrent use
// once populated.
type Registry struct {
	mu          sync.RWMutex
	descriptors []descriptor
	next        int
	fallback    Converter
	options     Options
}

// RegistryOption customises a Registry.
type RegistryOption func(*Registry)

// WithOptions sets the default Options used by ConvertTree when called with
// a zero Options value.
func WithOptions(opts Options) RegistryOption {
	return func(r *Registry) {
		r.options = opts
	}
}

// WithFallback replaces the converter used when nothing else supports a
// block.
func WithFallback(c Converter) RegistryOption {
	return func(r *Registry) {
		if c != nil {
			r.fallback = c
		}
	}
}

// NewRegistry returns an empty registry. Dispatch always succeeds because
// unmatched blocks go to the fallback converter.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{fallback: Unsupported{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds converters. Nil values are ignored.
func (r *Registry) Register(converters ...Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range converters {
		if c == nil {
			continue
		}
		r.descriptors = append(r.descriptors, descriptor{converter: c, priority: c.Priority(), seq: r.next})
		r.next++
	}
	sort.SliceStable(r.descriptors, func(i, j int) bool {
		if r.descriptors[i].priority != r.descriptors[j].priority {
			return r.descriptors[i].priority > r.descriptors[j].priority
		}
		return r.descriptors[i].seq < r.descriptors[j].seq
	})
}

// Converters returns the registered converters in dispatch order.
func (r *Registry) Converters() []Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Converter, len(r.descriptors))
	for i, d := range r.descriptors {
		out[i] = d.converter
	}
	return out
}

// Resolve returns the converter that handles block.
func (r *Registry) Resolve(block notion.Block) Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.descriptors {
		if d.converter.Supports(block) {
			return d.converter
		}
	}
	return r.fallback
}

// Dispatch converts one block with the first supporting converter.
func (r *Registry) Dispatch(ctx *Context, block notion.Block) (string, error) {
	if ctx == nil {
		ctx = newContext(r, r.options)
	}
	return r.Resolve(block).Convert(ctx, block)
}

// ConvertTree groups the top level blocks and converts them in order. Zero
// fields of opts fall back to the registry defaults field by field.
func (r *Registry) ConvertTree(blocks []notion.Block, opts Options) (string, error) {
	return r.convertAt(newContext(r, r.withDefaults(opts)), blocks)
}

func (r *Registry) convertAt(ctx *Context, blocks []notion.Block) (string, error) {
	if ctx.depth >= ctx.options.maxDepth() {
		return "", fmt.Errorf("%w: depth %d", ErrMaxDepthExceeded, ctx.depth)
	}
	var b strings.Builder
	for _, block := range Group(blocks) {
		out, err := r.Dispatch(ctx, block)
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func (r *Registry) withDefaults(opts Options) Options {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = r.options.MaxDepth
	}
	if len(opts.Colors) == 0 {
		opts.Colors = r.options.Colors
	}
	if opts.Logger == nil {
		opts.Logger = r.options.Logger
	}
	return opts
}
