// Package notion2wp converts Notion pages into Gutenberg block markup and
// stores them as posts. New wires an export source, the converter registry,
// the import orchestrator and a post store from a Config.
package notion2wp

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-notion2wp/internal/commands/importcmd"
	"github.com/goliatone/go-notion2wp/internal/convert"
	"github.com/goliatone/go-notion2wp/internal/di"
	"github.com/goliatone/go-notion2wp/internal/importer"
	"github.com/goliatone/go-notion2wp/internal/posts"
	"github.com/goliatone/go-notion2wp/notion"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
	"github.com/uptrace/bun"
)

// Importer exports the import orchestrator.
type Importer = *importer.Importer

// PostService exports the post store service.
type PostService = *posts.Service

// Registry exports the converter registry.
type Registry = *convert.Registry

// CommandHandlers exports the import command handler set.
type CommandHandlers = *importcmd.HandlerSet

// Option customises module wiring.
type Option = di.Option

// WithLoggerProvider overrides the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithSourceFS reads the export from fsys instead of Source.Dir.
func WithSourceFS(fsys fs.FS) Option {
	return di.WithSourceFS(fsys)
}

// WithContentSource replaces the export source.
func WithContentSource(src interfaces.ContentSource) Option {
	return di.WithContentSource(src)
}

// WithPostSink sends imported posts to sink instead of the post store.
func WithPostSink(sink interfaces.PostSink) Option {
	return di.WithPostSink(sink)
}

// WithBunDB stores posts in db; the caller keeps ownership.
func WithBunDB(db *bun.DB) Option {
	return di.WithBunDB(db)
}

// WithCommandRegistry registers the import command handlers with reg.
func WithCommandRegistry(reg importcmd.CommandRegistry) Option {
	return di.WithCommandRegistry(reg)
}

// Module is the top level façade of the importer.
type Module struct {
	container *di.Container
}

// New constructs a Module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Close releases storage opened by New.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Importer returns the import orchestrator.
func (m *Module) Importer() Importer {
	return m.container.Importer()
}

// Posts returns the post store, or nil when a custom sink was supplied.
func (m *Module) Posts() PostService {
	return m.container.Posts()
}

// Registry returns the converter registry.
func (m *Module) Registry() Registry {
	return m.container.Registry()
}

// Commands returns the import command handlers.
func (m *Module) Commands() CommandHandlers {
	return m.container.Commands()
}

// Source returns the configured content source.
func (m *Module) Source() interfaces.ContentSource {
	return m.container.Source()
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.container.Logger()
}

// Import imports pageIDs as one batch.
func (m *Module) Import(ctx context.Context, pageIDs ...string) (interfaces.BatchResult, error) {
	return m.container.Importer().ImportPages(ctx, pageIDs)
}

// Preview returns the block markup of a page without storing it.
func (m *Module) Preview(ctx context.Context, pageID string) (string, error) {
	return m.container.Importer().Convert(ctx, pageID)
}

// ConvertBlocks renders an already resolved block tree with the module's
// conversion settings.
func (m *Module) ConvertBlocks(blocks []notion.Block) (string, error) {
	cfg := m.container.Config.Convert
	return m.container.Registry().ConvertTree(blocks, convert.Options{
		MaxDepth: cfg.MaxDepth,
		Colors:   cfg.Colors,
		Logger:   m.container.Logger(),
	})
}
