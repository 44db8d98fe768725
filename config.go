package notion2wp

import "github.com/goliatone/go-notion2wp/internal/runtimeconfig"

var (
	ErrInvalidConfig          = runtimeconfig.ErrInvalidConfig
	ErrSourceDirRequired      = runtimeconfig.ErrSourceDirRequired
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrColorOverrideInvalid   = runtimeconfig.ErrColorOverrideInvalid
)

const (
	SourceJSON     = runtimeconfig.SourceJSON
	SourceMarkdown = runtimeconfig.SourceMarkdown
	DriverMemory   = runtimeconfig.DriverMemory
	DriverSQLite   = runtimeconfig.DriverSQLite
	DriverPostgres = runtimeconfig.DriverPostgres
)

type (
	Config        = runtimeconfig.Config
	SourceConfig  = runtimeconfig.SourceConfig
	ConvertConfig = runtimeconfig.ConvertConfig
	ImportConfig  = runtimeconfig.ImportConfig
	StorageConfig = runtimeconfig.StorageConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML file (optional) and NOTION2WP_* overrides.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
