package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/goliatone/go-notion2wp/cmd/internal/bootstrap"
	"github.com/goliatone/go-notion2wp/internal/importer"
	"github.com/goliatone/go-notion2wp/internal/logging/console"
)

const (
	formatBlocks   = "blocks"
	formatMarkdown = "markdown"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("notion preview: %v", err)
	}
}

func runPreview(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("notion-preview", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	sourceDir := fs.String("source-dir", "", "Export directory (overrides source.dir)")
	sourceKind := fs.String("source-kind", "", "Export format: json or markdown")
	pageID := fs.String("page", "", "Page id to preview")
	format := fs.String("format", formatBlocks, "Output format: blocks or markdown")
	verbose := fs.Bool("v", false, "Log debug output to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*pageID) == "" {
		return fmt.Errorf("-page is required")
	}
	switch *format {
	case formatBlocks, formatMarkdown:
	default:
		return fmt.Errorf("unsupported format %q", *format)
	}

	level := console.LevelWarn
	if *verbose {
		level = console.LevelDebug
	}
	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath:     *configPath,
		SourceDir:      *sourceDir,
		SourceKind:     *sourceKind,
		LoggerProvider: console.NewProvider(console.Options{MinLevel: level, OmitTime: true}),
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	page, err := module.Module.Source().GetPage(ctx, *pageID)
	if err != nil {
		return fmt.Errorf("load page: %w", err)
	}
	markup, err := module.Module.Preview(ctx, *pageID)
	if err != nil {
		return fmt.Errorf("convert page: %w", err)
	}

	fmt.Fprintf(out, "Title: %s\n", importer.Title(*page))
	meta := importer.Metadata(*page)
	for _, key := range []string{"notion_url", "notion_last_edited_time"} {
		if value := meta[key]; value != "" {
			fmt.Fprintf(out, "%s: %s\n", strings.TrimPrefix(key, importer.MetaPrefix), value)
		}
	}
	fmt.Fprintln(out)

	if *format == formatMarkdown {
		md, err := toMarkdown(markup)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprintln(out, md)
		return nil
	}
	fmt.Fprint(out, markup)
	return nil
}

func toMarkdown(markup string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	md, err := conv.ConvertString(markup)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
