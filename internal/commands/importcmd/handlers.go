package importcmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-notion2wp/internal/commands"
	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

const (
	importOperation = "import.pages"
	listOperation   = "import.list_pages"
)

// ErrImportIncomplete is returned by FailOnError imports with failures.
var ErrImportIncomplete = errors.New("import command: some pages failed")

// PageImporter is the importer surface the handlers drive.
type PageImporter interface {
	ImportPages(ctx context.Context, pageIDs []string) (interfaces.BatchResult, error)
	ListImportable(ctx context.Context) ([]interfaces.PageSummary, error)
}

var (
	_ command.Commander[ImportPagesCommand] = (*ImportPagesHandler)(nil)
	_ command.Commander[ListPagesCommand]   = (*ListPagesHandler)(nil)
)

// ImportPagesHandler runs batch imports.
type ImportPagesHandler struct {
	inner *commands.Handler[ImportPagesCommand]
}

// NewImportPagesHandler binds a handler to importer. onResult, when set,
// receives every batch result, including those of failing commands.
func NewImportPagesHandler(importer PageImporter, logger interfaces.Logger, onResult func(interfaces.BatchResult), opts ...commands.HandlerOption[ImportPagesCommand]) *ImportPagesHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportPagesCommand) error {
		batch, err := importer.ImportPages(ctx, msg.PageIDs)
		if err != nil {
			return err
		}
		if onResult != nil {
			onResult(batch)
		}
		logging.WithFields(logger, map[string]any{
			"succeeded": len(batch.Successes),
			"failed":    len(batch.Failures),
		}).Info("import.command.pages.completed")

		if msg.FailOnError && len(batch.Failures) > 0 {
			return fmt.Errorf("%w: %d of %d", ErrImportIncomplete, len(batch.Failures), batch.Total())
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportPagesCommand]{
		commands.WithLogger[ImportPagesCommand](logger),
		commands.WithOperation[ImportPagesCommand](importOperation),
		commands.WithMessageFields(func(msg ImportPagesCommand) map[string]any {
			return map[string]any{"page_count": len(msg.PageIDs)}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportPagesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *ImportPagesHandler) Execute(ctx context.Context, msg ImportPagesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListPagesHandler lists importable pages.
type ListPagesHandler struct {
	inner *commands.Handler[ListPagesCommand]
}

// NewListPagesHandler binds a handler to importer; onResult receives the
// summaries.
func NewListPagesHandler(importer PageImporter, logger interfaces.Logger, onResult func([]interfaces.PageSummary), opts ...commands.HandlerOption[ListPagesCommand]) *ListPagesHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, _ ListPagesCommand) error {
		pages, err := importer.ListImportable(ctx)
		if err != nil {
			return err
		}
		if onResult != nil {
			onResult(pages)
		}
		logger.Debug("import.command.list_pages.completed", "count", len(pages))
		return nil
	}

	handlerOpts := []commands.HandlerOption[ListPagesCommand]{
		commands.WithLogger[ListPagesCommand](logger),
		commands.WithOperation[ListPagesCommand](listOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListPagesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *ListPagesHandler) Execute(ctx context.Context, msg ListPagesCommand) error {
	return h.inner.Execute(ctx, msg)
}
