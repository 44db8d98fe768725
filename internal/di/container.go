package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-notion2wp/internal/commands"
	"github.com/goliatone/go-notion2wp/internal/commands/importcmd"
	"github.com/goliatone/go-notion2wp/internal/convert"
	"github.com/goliatone/go-notion2wp/internal/importer"
	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/internal/posts"
	"github.com/goliatone/go-notion2wp/internal/runtimeconfig"
	"github.com/goliatone/go-notion2wp/internal/source/jsonexport"
	"github.com/goliatone/go-notion2wp/internal/source/mdexport"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// Container wires the importer and its collaborators from a runtime
// configuration. Overrides supplied through options win over anything the
// configuration would build.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	sourceFS fs.FS
	source   interfaces.ContentSource
	sink     interfaces.PostSink

	bunDB    *bun.DB
	ownsDB   bool
	postRepo posts.Repository
	postSvc  *posts.Service

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	registry   *convert.Registry
	importer   *importer.Importer
	commandReg importcmd.CommandRegistry
	commandOps []importcmd.Option
	handlers   *importcmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithSourceFS reads the export from fsys instead of Source.Dir.
func WithSourceFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.sourceFS = fsys
	}
}

// WithContentSource replaces the export source entirely.
func WithContentSource(src interfaces.ContentSource) Option {
	return func(c *Container) {
		c.source = src
	}
}

// WithPostSink sends payloads to sink instead of the posts service.
func WithPostSink(sink interfaces.PostSink) Option {
	return func(c *Container) {
		c.sink = sink
	}
}

// WithBunDB uses db for post storage regardless of Storage.Driver. The
// caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache injects the cache used for bun post reads. It only takes effect
// when Storage.Cache is enabled.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithPostRepository overrides the post repository.
func WithPostRepository(repo posts.Repository) Option {
	return func(c *Container) {
		c.postRepo = repo
	}
}

// WithRegistry replaces the converter registry.
func WithRegistry(registry *convert.Registry) Option {
	return func(c *Container) {
		c.registry = registry
	}
}

// WithCommandRegistry registers the import command handlers with reg.
func WithCommandRegistry(reg importcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandReg = reg
	}
}

// WithCommandOptions forwards options to the import command wiring.
func WithCommandOptions(opts ...importcmd.Option) Option {
	return func(c *Container) {
		c.commandOps = append(c.commandOps, opts...)
	}
}

// NewContainer validates cfg and builds every component.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "notion2wp")

	if err := c.configureSource(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(context.Background()); err != nil {
		return nil, err
	}
	if err := c.configureImporter(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}

	c.logger.Debug("container.configured",
		"source", c.Config.Source.Kind,
		"storage", c.Config.Storage.Driver,
		"workers", c.Config.Import.Workers,
	)
	return c, nil
}

func (c *Container) configureSource() error {
	if c.source != nil {
		return nil
	}
	fsys := c.sourceFS
	if fsys == nil {
		dir := strings.TrimSpace(c.Config.Source.Dir)
		if info, err := os.Stat(dir); err != nil {
			return fmt.Errorf("source directory %q: %w", dir, err)
		} else if !info.IsDir() {
			return fmt.Errorf("source directory %q: not a directory", dir)
		}
		fsys = os.DirFS(dir)
	}

	logger := logging.SourceLogger(c.loggerProvider)
	switch strings.ToLower(strings.TrimSpace(c.Config.Source.Kind)) {
	case runtimeconfig.SourceMarkdown:
		c.source = mdexport.New(fsys, mdexport.WithLogger(logger))
	default:
		src, err := jsonexport.New(fsys,
			jsonexport.WithMaxDepth(c.Config.Source.MaxDepth),
			jsonexport.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("json export source: %w", err)
		}
		c.source = src
	}
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.sink != nil {
		return nil
	}
	if c.postRepo == nil {
		if c.bunDB == nil {
			db, err := openBunDB(c.Config.Storage)
			if err != nil {
				return err
			}
			if db != nil {
				c.bunDB = db
				c.ownsDB = true
			}
		}
		if c.bunDB != nil {
			if c.Config.Storage.Migrate {
				if err := posts.Migrate(ctx, c.bunDB); err != nil {
					c.Close()
					return fmt.Errorf("migrate posts: %w", err)
				}
			}
			repo, err := c.newBunPostRepository()
			if err != nil {
				c.Close()
				return err
			}
			c.postRepo = repo
		} else {
			c.postRepo = posts.NewMemoryRepository()
		}
	}
	c.postSvc = posts.NewService(c.postRepo, posts.WithLogger(logging.PostsLogger(c.loggerProvider)))
	c.sink = c.postSvc
	return nil
}

func (c *Container) newBunPostRepository() (*posts.BunRepository, error) {
	if !c.Config.Storage.Cache {
		return posts.NewBunRepository(c.bunDB), nil
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Storage.CacheTTL > 0 {
			cfg.TTL = c.Config.Storage.CacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			return nil, fmt.Errorf("post cache: %w", err)
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return posts.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer), nil
}

func (c *Container) configureImporter() error {
	convertOpts := convert.Options{
		MaxDepth: c.Config.Convert.MaxDepth,
		Colors:   c.Config.Convert.Colors,
		Logger:   logging.ConvertLogger(c.loggerProvider),
	}
	if c.registry == nil {
		c.registry = convert.DefaultRegistry(convert.WithOptions(convertOpts))
	}

	importCfg := c.Config.Import
	opts := []importer.Option{
		importer.WithRegistry(c.registry),
		importer.WithConvertOptions(convertOpts),
		importer.WithDefaults(importer.PostDefaults{
			Status:   importCfg.Status,
			Type:     importCfg.Type,
			AuthorID: importCfg.AuthorID,
		}),
		importer.WithWorkers(importCfg.Workers),
		importer.WithPageTimeout(importCfg.PageTimeout),
		importer.WithLogger(logging.ImporterLogger(c.loggerProvider)),
	}
	if !importCfg.Sanitize {
		opts = append(opts, importer.WithSanitizer(nil))
	}

	imp, err := importer.New(c.source, c.sink, opts...)
	if err != nil {
		return err
	}
	c.importer = imp
	return nil
}

func (c *Container) configureCommands() error {
	opts := make([]importcmd.Option, 0, len(c.commandOps)+1)
	if c.Config.Import.PageTimeout > 0 {
		// pages are already bounded individually; batches may run long
		opts = append(opts, importcmd.WithImportHandlerOptions(
			commands.WithTimeout[importcmd.ImportPagesCommand](0),
		))
	}
	opts = append(opts, c.commandOps...)
	set, err := importcmd.RegisterImportCommands(c.commandReg, c.importer, c.loggerProvider, opts...)
	if err != nil {
		return fmt.Errorf("register import commands: %w", err)
	}
	c.handlers = set
	return nil
}

// Close releases the database handle when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownsDB = false
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns the root module logger.
func (c *Container) Logger() interfaces.Logger {
	return c.logger
}

// Source returns the content source.
func (c *Container) Source() interfaces.ContentSource {
	return c.source
}

// Sink returns the post sink.
func (c *Container) Sink() interfaces.PostSink {
	return c.sink
}

// Posts returns the posts service, or nil when a custom sink was supplied.
func (c *Container) Posts() *posts.Service {
	return c.postSvc
}

// BunDB returns the post database, if any.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Registry returns the converter registry.
func (c *Container) Registry() *convert.Registry {
	return c.registry
}

// Importer returns the import orchestrator.
func (c *Container) Importer() *importer.Importer {
	return c.importer
}

// Commands returns the import command handlers.
func (c *Container) Commands() *importcmd.HandlerSet {
	return c.handlers
}
