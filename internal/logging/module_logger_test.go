package logging

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-notion2wp/pkg/interfaces"
)

// fieldSpy records WithFields and WithContext calls and discards entries.
type fieldSpy struct {
	interfaces.Logger
	fields   []map[string]any
	contexts int
}

func newFieldSpy() *fieldSpy {
	return &fieldSpy{Logger: NoOp()}
}

func (s *fieldSpy) WithFields(fields map[string]any) interfaces.Logger {
	s.fields = append(s.fields, maps.Clone(fields))
	return s
}

func (s *fieldSpy) WithContext(context.Context) interfaces.Logger {
	s.contexts++
	return s
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerWithoutProviderDiscards(t *testing.T) {
	logger := ModuleLogger(nil, importerModule)
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger, got %T", logger)
	}
	WithFields(logger.WithContext(context.Background()), map[string]any{"page_id": "p"}).Info("dropped")
}

func TestModuleLoggerTagsModule(t *testing.T) {
	cases := []struct {
		module string
		want   string
	}{
		{module: convertModule, want: convertModule},
		{module: "", want: rootModule},
	}
	for _, tc := range cases {
		spy := newFieldSpy()
		provider := &stubProvider{logger: spy}

		ModuleLogger(provider, tc.module).Info("tagged")

		if len(provider.requested) != 1 || provider.requested[0] != tc.want {
			t.Fatalf("module %q: expected provider lookup %s, got %v", tc.module, tc.want, provider.requested)
		}
		if len(spy.fields) != 1 || spy.fields[0]["module"] != tc.want {
			t.Fatalf("module %q: expected module field %s, got %v", tc.module, tc.want, spy.fields)
		}
	}
}

func TestNamedLoggersRequestTheirModules(t *testing.T) {
	cases := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{name: "importer", build: ImporterLogger, module: importerModule},
		{name: "source", build: SourceLogger, module: sourceModule},
		{name: "posts", build: PostsLogger, module: postsModule},
		{name: "command", build: func(p interfaces.LoggerProvider) interfaces.Logger {
			return CommandLogger(p, "import_pages")
		}, module: "notion2wp.commands.import_pages"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: newFieldSpy()}
			_ = tc.build(provider)
			if len(provider.requested) != 1 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithPageContextSkipsEmptyValues(t *testing.T) {
	rec := newFieldSpy()
	_ = WithPageContext(rec, " page-1 ", "", "block-9")
	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldPageID] != "page-1" || got[fieldBlockID] != "block-9" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got[fieldPostID]; ok {
		t.Fatalf("expected empty post id to be skipped, got %v", got)
	}
}

func TestContextFieldsMergeAndCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2})

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["b"] != 2 {
		t.Fatalf("expected merged fields, got %v", fields)
	}
	fields["a"] = 99
	if ContextFields(ctx)["a"] != 1 {
		t.Fatal("expected ContextFields to return a copy")
	}
}

func TestFieldsPairsArguments(t *testing.T) {
	got := Fields("page_id", "p1", 42, "ignored", "count", 3, "dangling")
	if len(got) != 2 || got["page_id"] != "p1" || got["count"] != 3 {
		t.Fatalf("unexpected fields %v", got)
	}
}
