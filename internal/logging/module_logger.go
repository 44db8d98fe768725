package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

const (
	rootModule     = "notion2wp"
	convertModule  = "notion2wp.convert"
	importerModule = "notion2wp.importer"
	sourceModule   = "notion2wp.source"
	postsModule    = "notion2wp.posts"
	commandsModule = "notion2wp.commands"
)

const (
	fieldPageID    = "page_id"
	fieldPostID    = "post_id"
	fieldBlockID   = "block_id"
	fieldOperation = "operation"
)

// ModuleLogger returns the logger for module, tagged with a "module" field.
// A nil provider yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ConvertLogger is the logger of the block conversion pipeline.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// ImporterLogger is the logger of the page import orchestrator.
func ImporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importerModule)
}

// SourceLogger is the logger of content sources.
func SourceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sourceModule)
}

// PostsLogger is the logger of the post sink.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// CommandLogger returns the logger of a named command handler.
func CommandLogger(provider interfaces.LoggerProvider, command string) interfaces.Logger {
	command = strings.TrimSpace(command)
	if command == "" {
		return ModuleLogger(provider, commandsModule)
	}
	return ModuleLogger(provider, commandsModule+"."+command)
}

// WithPageContext adds page, post and block identifiers to logger, skipping
// empty values.
func WithPageContext(logger interfaces.Logger, pageID, postID, blockID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldPageID] = trimmed
	}
	if trimmed := strings.TrimSpace(postID); trimmed != "" {
		fields[fieldPostID] = trimmed
	}
	if trimmed := strings.TrimSpace(blockID); trimmed != "" {
		fields[fieldBlockID] = trimmed
	}
	return WithFields(logger, fields)
}

// WithOperation tags logger with the operation name.
func WithOperation(logger interfaces.Logger, operation string) interfaces.Logger {
	if strings.TrimSpace(operation) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldOperation: operation})
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
