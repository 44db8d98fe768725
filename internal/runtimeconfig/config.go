package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sentinel validation errors.
var (
	ErrInvalidConfig          = errors.New("notion2wp config: invalid configuration")
	ErrSourceDirRequired      = errors.New("notion2wp config: source directory is required")
	ErrStorageDSNRequired     = errors.New("notion2wp config: storage dsn is required for sql drivers")
	ErrLoggingProviderUnknown = errors.New("notion2wp config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("notion2wp config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("notion2wp config: logging format is invalid")
	ErrColorOverrideInvalid   = errors.New("notion2wp config: colour overrides must map names to values")
)

// Source kinds.
const (
	SourceJSON     = "json"
	SourceMarkdown = "markdown"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the runtime configuration of the importer and its CLIs. It is
// passed explicitly into components and never read from globals.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Convert ConvertConfig `yaml:"convert"`
	Import  ImportConfig  `yaml:"import"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig selects where pages are read from.
type SourceConfig struct {
	Kind     string `yaml:"kind"`
	Dir      string `yaml:"dir"`
	MaxDepth int    `yaml:"max_depth" split_words:"true"`
}

// ConvertConfig tunes block conversion.
type ConvertConfig struct {
	MaxDepth int               `yaml:"max_depth" split_words:"true"`
	Colors   map[string]string `yaml:"colors"`
}

// ImportConfig holds post defaults and batch behaviour.
type ImportConfig struct {
	Status      string        `yaml:"status"`
	Type        string        `yaml:"type"`
	AuthorID    string        `yaml:"author_id" split_words:"true"`
	Workers     int           `yaml:"workers"`
	PageTimeout time.Duration `yaml:"page_timeout" split_words:"true"`
	Sanitize    bool          `yaml:"sanitize"`
}

// StorageConfig selects the post store.
type StorageConfig struct {
	Driver   string        `yaml:"driver"`
	DSN      string        `yaml:"dsn"`
	Migrate  bool          `yaml:"migrate"`
	Cache    bool          `yaml:"cache"`
	CacheTTL time.Duration `yaml:"cache_ttl" split_words:"true"`
}

// LoggingConfig selects the logger provider.
type LoggingConfig struct {
	Provider  string `yaml:"provider"`
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source" split_words:"true"`
}

// DefaultConfig returns defaults suitable for a local JSON export import
// into an in-memory store.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Kind:     SourceJSON,
			Dir:      "export",
			MaxDepth: 64,
		},
		Convert: ConvertConfig{
			MaxDepth: 64,
			Colors:   map[string]string{},
		},
		Import: ImportConfig{
			Status:      "draft",
			Type:        "post",
			Workers:     1,
			PageTimeout: time.Minute,
			Sanitize:    true,
		},
		Storage: StorageConfig{
			Driver:   DriverMemory,
			Migrate:  true,
			CacheTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate checks field ranges and cross-field consistency.
func (cfg Config) Validate() error {
	if err := cfg.validateFields(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(cfg.Source.Dir) == "" {
		return ErrSourceDirRequired
	}
	switch normalize(cfg.Storage.Driver) {
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	for name, value := range cfg.Convert.Colors {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %q", ErrColorOverrideInvalid, name)
		}
	}
	provider := normalize(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func (cfg Config) validateFields() error {
	return validation.Errors{
		"source": validation.ValidateStruct(&cfg.Source,
			validation.Field(&cfg.Source.Kind, validation.Required, validation.In(SourceJSON, SourceMarkdown)),
			validation.Field(&cfg.Source.MaxDepth, validation.Min(0)),
		),
		"convert": validation.ValidateStruct(&cfg.Convert,
			validation.Field(&cfg.Convert.MaxDepth, validation.Min(0)),
		),
		"import": validation.ValidateStruct(&cfg.Import,
			validation.Field(&cfg.Import.Status, validation.Required),
			validation.Field(&cfg.Import.Type, validation.Required),
			validation.Field(&cfg.Import.Workers, validation.Min(1)),
			validation.Field(&cfg.Import.PageTimeout, validation.Min(time.Duration(0))),
		),
		"storage": validation.ValidateStruct(&cfg.Storage,
			validation.Field(&cfg.Storage.Driver, validation.Required, validation.In(DriverMemory, DriverSQLite, DriverPostgres)),
		),
	}.Filter()
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
