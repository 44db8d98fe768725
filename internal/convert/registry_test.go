package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-notion2wp/notion"
)

type stubConverter struct {
	name     string
	types    []string
	priority int
}

func (s stubConverter) Supports(block notion.Block) bool {
	for _, t := range s.types {
		if t == block.Type {
			return true
		}
	}
	return false
}

func (s stubConverter) Convert(*Context, notion.Block) (string, error) {
	return s.name, nil
}

func (s stubConverter) Priority() int { return s.priority }

func TestRegistryOrdersByPriorityThenRegistration(t *testing.T) {
	r := NewRegistry()
	r.Register(
		stubConverter{name: "low", priority: 5},
		stubConverter{name: "first", priority: 10},
		stubConverter{name: "high", priority: 20},
		stubConverter{name: "second", priority: 10},
	)
	r.Register(stubConverter{name: "third", priority: 10})

	var names []string
	for _, c := range r.Converters() {
		names = append(names, c.(stubConverter).name)
	}
	if got := strings.Join(names, ","); got != "high,first,second,third,low" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestRegistryDispatchUsesFirstSupportingConverter(t *testing.T) {
	r := NewRegistry()
	r.Register(
		stubConverter{name: "generic", types: []string{"paragraph"}, priority: 10},
		stubConverter{name: "override", types: []string{"paragraph"}, priority: 50},
	)
	out, err := r.Dispatch(nil, notion.NewBlock("paragraph", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "override" {
		t.Fatalf("expected higher priority converter, got %q", out)
	}
}

func TestDispatchIsTotal(t *testing.T) {
	for _, r := range []*Registry{NewRegistry(), DefaultRegistry()} {
		out, err := r.ConvertTree([]notion.Block{notion.NewBlock("mystery_widget", nil)}, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "mystery_widget") {
			t.Fatalf("expected type named in output, got %q", out)
		}
	}
}

func TestUnsupportedEmptyTypeIsNamedUnknown(t *testing.T) {
	out, err := DefaultRegistry().Dispatch(nil, notion.Block{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<!-- Unsupported Notion block type: unknown -->\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWithFallbackReplacesUnsupported(t *testing.T) {
	r := NewRegistry(WithFallback(stubConverter{name: "custom"}))
	out, err := r.ConvertTree([]notion.Block{notion.NewBlock("x", nil)}, Options{})
	if err != nil || out != "custom" {
		t.Fatalf("expected custom fallback, got %q (%v)", out, err)
	}
}

func nestedToggles(depth int) notion.Block {
	block := notion.NewBlock(notion.TypeToggle, nil)
	for i := 1; i < depth; i++ {
		block = notion.NewBlock(notion.TypeToggle, nil, block)
	}
	return block
}

func TestConvertTreeDepthGuard(t *testing.T) {
	r := DefaultRegistry()

	if _, err := r.ConvertTree([]notion.Block{nestedToggles(3)}, Options{MaxDepth: 3}); err != nil {
		t.Fatalf("expected depth 3 to fit, got %v", err)
	}

	_, err := r.ConvertTree([]notion.Block{nestedToggles(4)}, Options{MaxDepth: 3})
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded, got %v", err)
	}
}

func TestConvertTreeDefaultDepthGuard(t *testing.T) {
	_, err := DefaultRegistry().ConvertTree([]notion.Block{nestedToggles(DefaultMaxDepth + 1)}, Options{})
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected default guard to trip, got %v", err)
	}
}

func TestRegistryOptionsApplyToZeroOptions(t *testing.T) {
	r := DefaultRegistry(WithOptions(Options{MaxDepth: 1}))
	_, err := r.ConvertTree([]notion.Block{nestedToggles(2)}, Options{})
	if !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected registry default max depth, got %v", err)
	}
}

func TestBuiltInRegistersFallbackLast(t *testing.T) {
	converters := DefaultRegistry().Converters()
	if _, ok := converters[len(converters)-1].(Unsupported); !ok {
		t.Fatalf("expected Unsupported last, got %T", converters[len(converters)-1])
	}
}
