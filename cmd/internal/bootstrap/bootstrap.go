package bootstrap

import (
	"fmt"
	"strings"

	notion2wp "github.com/goliatone/go-notion2wp"
	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// Options captures flag values shared by the CLIs. Empty values keep what
// the config file and environment resolved.
type Options struct {
	ConfigPath     string
	SourceDir      string
	SourceKind     string
	StorageDriver  string
	StorageDSN     string
	Workers        int
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the notion2wp module and the CLI logger.
type Module struct {
	Module *notion2wp.Module
	Logger interfaces.Logger
}

// LoadConfig resolves the configuration and applies flag overrides.
func LoadConfig(opts Options) (notion2wp.Config, error) {
	cfg, err := notion2wp.LoadConfig(opts.ConfigPath)
	if err != nil {
		return notion2wp.Config{}, fmt.Errorf("load config: %w", err)
	}
	if dir := strings.TrimSpace(opts.SourceDir); dir != "" {
		cfg.Source.Dir = dir
	}
	if kind := strings.TrimSpace(opts.SourceKind); kind != "" {
		cfg.Source.Kind = kind
	}
	if driver := strings.TrimSpace(opts.StorageDriver); driver != "" {
		cfg.Storage.Driver = driver
	}
	if dsn := strings.TrimSpace(opts.StorageDSN); dsn != "" {
		cfg.Storage.DSN = dsn
	}
	if opts.Workers > 0 {
		cfg.Import.Workers = opts.Workers
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// BuildModule constructs a module configured from opts.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	var moduleOpts []notion2wp.Option
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, notion2wp.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := notion2wp.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise notion2wp module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "notion2wp.cli"),
	}, nil
}

// SplitIDs parses comma separated page ids and positional arguments into a
// trimmed slice.
func SplitIDs(value string, args ...string) []string {
	var ids []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	for _, arg := range args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
