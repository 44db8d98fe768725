package importcmd

import (
	"errors"

	"github.com/goliatone/go-notion2wp/internal/commands"
	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers built by RegisterImportCommands.
type HandlerSet struct {
	Import *ImportPagesHandler
	List   *ListPagesHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importOpts []commands.HandlerOption[ImportPagesCommand]
	listOpts   []commands.HandlerOption[ListPagesCommand]
	onImported func(interfaces.BatchResult)
	onListed   func([]interfaces.PageSummary)
}

// WithImportHandlerOptions forwards options to the import handler.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportPagesCommand]) Option {
	return func(cfg *options) {
		cfg.importOpts = append(cfg.importOpts, opts...)
	}
}

// WithListHandlerOptions forwards options to the list handler.
func WithListHandlerOptions(opts ...commands.HandlerOption[ListPagesCommand]) Option {
	return func(cfg *options) {
		cfg.listOpts = append(cfg.listOpts, opts...)
	}
}

// OnImported observes batch results.
func OnImported(fn func(interfaces.BatchResult)) Option {
	return func(cfg *options) {
		cfg.onImported = fn
	}
}

// OnListed observes page listings.
func OnListed(fn func([]interfaces.PageSummary)) Option {
	return func(cfg *options) {
		cfg.onListed = fn
	}
}

// RegisterImportCommands builds the import handlers and registers them with
// reg when it is non-nil.
func RegisterImportCommands(reg CommandRegistry, importer PageImporter, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if importer == nil {
		return nil, errors.New("import command registration: importer is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandLogger(provider, "import")
	set := &HandlerSet{
		Import: NewImportPagesHandler(importer, logger, cfg.onImported, cfg.importOpts...),
		List:   NewListPagesHandler(importer, logger, cfg.onListed, cfg.listOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Import); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.List); err != nil {
			return nil, err
		}
	}
	return set, nil
}
