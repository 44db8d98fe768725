package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-notion2wp/cmd/internal/bootstrap"
	"github.com/goliatone/go-notion2wp/internal/commands/importcmd"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runImport(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		log.Fatalf("notion import: %v", err)
	}
}

func runImport(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("notion-import", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	sourceDir := fs.String("source-dir", "", "Export directory (overrides source.dir)")
	sourceKind := fs.String("source-kind", "", "Export format: json or markdown")
	driver := fs.String("storage-driver", "", "Post store: memory, sqlite or postgres")
	dsn := fs.String("dsn", "", "Post store DSN for sql drivers")
	workers := fs.Int("workers", 0, "Pages imported concurrently (overrides import.workers)")
	pages := fs.String("pages", "", "Comma separated page ids to import")
	all := fs.Bool("all", false, "Import every page the source lists, skipping archived ones")
	list := fs.Bool("list", false, "List importable pages and exit")
	failOnError := fs.Bool("fail-on-error", false, "Exit non-zero when any page fails")
	logLevel := fs.String("log-level", "", "Log level override")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath:    *configPath,
		SourceDir:     *sourceDir,
		SourceKind:    *sourceKind,
		StorageDriver: *driver,
		StorageDSN:    *dsn,
		Workers:       *workers,
		LogLevel:      *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	importer := module.Module.Importer()

	if *list {
		handler := importcmd.NewListPagesHandler(importer, module.Logger, func(pages []interfaces.PageSummary) {
			printSummaries(out, pages)
		})
		if err := handler.Execute(ctx, importcmd.ListPagesCommand{}); err != nil {
			return fmt.Errorf("execute list command: %w", err)
		}
		return nil
	}

	ids := bootstrap.SplitIDs(*pages, fs.Args()...)
	if *all {
		summaries, err := importer.ListImportable(ctx)
		if err != nil {
			return fmt.Errorf("list pages: %w", err)
		}
		for _, summary := range summaries {
			if !summary.Archived {
				ids = append(ids, summary.ID)
			}
		}
	}
	if len(ids) == 0 {
		return errors.New("no pages given; use -pages, positional ids or -all")
	}

	handler := importcmd.NewImportPagesHandler(importer, module.Logger, func(batch interfaces.BatchResult) {
		printBatch(out, batch)
	})
	cmd := importcmd.ImportPagesCommand{
		PageIDs:     ids,
		FailOnError: *failOnError,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	return nil
}

func printSummaries(out io.Writer, pages []interfaces.PageSummary) {
	for _, page := range pages {
		archived := ""
		if page.Archived {
			archived = " (archived)"
		}
		fmt.Fprintf(out, "%s\t%s\t%s%s\n", page.ID, page.Object, page.Title, archived)
	}
	fmt.Fprintf(out, "%d pages\n", len(pages))
}

func printBatch(out io.Writer, batch interfaces.BatchResult) {
	for _, result := range batch.Successes {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", result.Action, result.SourceID, result.PostID, result.Title)
	}
	for _, result := range batch.Failures {
		fmt.Fprintf(out, "%s\t%s\t%s\n", result.Action, result.SourceID, result.Error)
	}
	fmt.Fprintf(out, "imported %d of %d pages\n", len(batch.Successes), batch.Total())
}
