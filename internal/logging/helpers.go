package logging

import (
	"maps"

	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// WithFields attaches fields when logger implements FieldsLogger and
// returns logger unchanged otherwise. The map is copied.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// Fields flattens key/value arguments into a map. Non string keys and a
// trailing key without value are dropped.
func Fields(args ...any) map[string]any {
	if len(args) < 2 {
		return nil
	}
	out := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok || key == "" {
			continue
		}
		out[key] = args[i+1]
	}
	return out
}
