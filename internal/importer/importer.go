// Package importer turns source pages into posts: it fetches page metadata
// and the resolved block tree, converts the tree to block markup and hands
// the resulting payload to a post sink.
package importer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-notion2wp/internal/convert"
	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/internal/source"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// Importer orchestrates page imports. It holds no per import state and is
// safe for concurrent use.
type Importer struct {
	source      interfaces.ContentSource
	sink        interfaces.PostSink
	registry    *convert.Registry
	convertOpts convert.Options
	defaults    PostDefaults
	sanitizer   Sanitizer
	workers     int
	pageTimeout time.Duration
	logger      interfaces.Logger
}

// Option customises an Importer.
type Option func(*Importer)

// WithRegistry replaces the default converter registry.
func WithRegistry(registry *convert.Registry) Option {
	return func(i *Importer) {
		if registry != nil {
			i.registry = registry
		}
	}
}

// WithConvertOptions sets the options of every conversion run.
func WithConvertOptions(opts convert.Options) Option {
	return func(i *Importer) {
		i.convertOpts = opts
	}
}

// WithDefaults sets post status, type and author.
func WithDefaults(defaults PostDefaults) Option {
	return func(i *Importer) {
		i.defaults = defaults
	}
}

// WithSanitizer sets the markup sanitizer; nil disables sanitising.
func WithSanitizer(sanitizer Sanitizer) Option {
	return func(i *Importer) {
		i.sanitizer = sanitizer
	}
}

// WithWorkers sets how many pages a batch imports at once.
func WithWorkers(workers int) Option {
	return func(i *Importer) {
		if workers > 0 {
			i.workers = workers
		}
	}
}

// WithPageTimeout bounds each page import; zero means no timeout.
func WithPageTimeout(timeout time.Duration) Option {
	return func(i *Importer) {
		if timeout >= 0 {
			i.pageTimeout = timeout
		}
	}
}

// WithLogger sets the importer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New builds an Importer reading from src and writing to sink.
func New(src interfaces.ContentSource, sink interfaces.PostSink, opts ...Option) (*Importer, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}
	if sink == nil {
		return nil, ErrSinkRequired
	}
	i := &Importer{
		source:    src,
		sink:      sink,
		defaults:  PostDefaults{Status: "draft", Type: "post"},
		sanitizer: NewPostSanitizer(),
		workers:   1,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(i)
		}
	}
	if i.registry == nil {
		i.registry = convert.DefaultRegistry(convert.WithOptions(i.convertOpts))
	}
	if i.convertOpts.Logger == nil {
		i.convertOpts.Logger = i.logger
	}
	return i, nil
}

// ImportPage imports one page. The returned result mirrors the error: a
// failed import yields a result with Action failed and a non-nil error.
func (i *Importer) ImportPage(ctx context.Context, pageID string) (interfaces.ImportResult, error) {
	pageID = strings.TrimSpace(pageID)
	result := interfaces.ImportResult{SourceID: pageID}
	if pageID == "" {
		return failed(result, ErrPageIDRequired)
	}
	if i.pageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.pageTimeout)
		defer cancel()
	}

	logger := logging.WithPageContext(i.logger, pageID, "", "")

	page, err := i.source.GetPage(ctx, pageID)
	if err == nil && page == nil {
		err = fmt.Errorf("%w: page %s", source.ErrNotFound, pageID)
	}
	if err != nil {
		logger.Warn("importer.page.fetch_failed", "error", err)
		return failed(result, wrapSourceError(err, "fetch page"))
	}
	result.Title = Title(*page)

	blocks, err := i.source.GetAllBlockChildrenRecursive(ctx, pageID)
	if err != nil {
		logger.Warn("importer.blocks.fetch_failed", "error", err)
		return failed(result, wrapSourceError(err, "fetch blocks"))
	}

	content, err := i.registry.ConvertTree(blocks, i.convertOpts)
	if err != nil {
		logger.Warn("importer.convert.failed", "error", err)
		return failed(result, wrapConvertError(err))
	}
	if i.sanitizer != nil {
		content = i.sanitizer.Sanitize(content)
	}

	written, err := i.sink.UpsertPost(ctx, buildPayload(pageID, *page, content, i.defaults))
	if err != nil {
		logger.Warn("importer.sink.failed", "error", err)
		return failed(result, wrapSinkError(err))
	}

	result.PostID = written.PostID
	result.Action = interfaces.ImportActionUpdated
	if written.Created {
		result.Action = interfaces.ImportActionCreated
	}
	logging.WithPageContext(i.logger, pageID, written.PostID, "").
		Info("importer.page.imported", "action", string(result.Action), "blocks", len(blocks))
	return result, nil
}

// ImportPages imports every id independently. A failing page never stops
// the batch; results keep the input order in both lists.
func (i *Importer) ImportPages(ctx context.Context, pageIDs []string) (interfaces.BatchResult, error) {
	if len(pageIDs) == 0 {
		return interfaces.BatchResult{}, ErrNoPages
	}

	results := make([]interfaces.ImportResult, len(pageIDs))
	if i.workers <= 1 || len(pageIDs) == 1 {
		for idx, id := range pageIDs {
			results[idx], _ = i.ImportPage(ctx, id)
		}
	} else {
		i.importConcurrently(ctx, pageIDs, results)
	}

	var batch interfaces.BatchResult
	for _, result := range results {
		if result.Failed() {
			batch.Failures = append(batch.Failures, result)
			continue
		}
		batch.Successes = append(batch.Successes, result)
	}
	i.logger.Info("importer.batch.completed",
		"total", batch.Total(),
		"succeeded", len(batch.Successes),
		"failed", len(batch.Failures),
	)
	return batch, nil
}

func (i *Importer) importConcurrently(ctx context.Context, pageIDs []string, results []interfaces.ImportResult) {
	workers := min(i.workers, len(pageIDs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx], _ = i.ImportPage(ctx, pageIDs[idx])
			}
		}()
	}
	for idx := range pageIDs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
}

// ListImportable returns summaries of the pages the source can list.
func (i *Importer) ListImportable(ctx context.Context) ([]interfaces.PageSummary, error) {
	lister, ok := i.source.(interfaces.PageLister)
	if !ok {
		return nil, ErrListingNotSupported
	}
	pages, err := lister.ListPages(ctx)
	if err != nil {
		return nil, wrapSourceError(err, "list pages")
	}
	summaries := make([]interfaces.PageSummary, 0, len(pages))
	for _, page := range pages {
		summaries = append(summaries, Summarize(page))
	}
	return summaries, nil
}

// Convert renders a block tree with the importer's registry and sanitizer,
// without touching the source or the sink.
func (i *Importer) Convert(ctx context.Context, pageID string) (string, error) {
	blocks, err := i.source.GetAllBlockChildrenRecursive(ctx, pageID)
	if err != nil {
		return "", wrapSourceError(err, "fetch blocks")
	}
	content, err := i.registry.ConvertTree(blocks, i.convertOpts)
	if err != nil {
		return "", wrapConvertError(err)
	}
	if i.sanitizer != nil {
		content = i.sanitizer.Sanitize(content)
	}
	return content, nil
}

func failed(result interfaces.ImportResult, err error) (interfaces.ImportResult, error) {
	result.Action = interfaces.ImportActionFailed
	result.Error = err.Error()
	return result, err
}
