package di

import (
	"strings"

	"github.com/goliatone/go-notion2wp/internal/logging/console"
	"github.com/goliatone/go-notion2wp/internal/logging/gologger"
)

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{
			MinLevel: console.ParseLevel(cfg.Level),
		})
	}
	return nil
}
