package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

type syncPageMessage struct {
	PageID string
}

func (syncPageMessage) Type() string { return "notion2wp.test.sync_page" }

func (m syncPageMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.PageID, validation.Required),
	)
}

func TestHandlerExecuteOutcomes(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	slow := func(ctx context.Context, _ syncPageMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}

	tests := []struct {
		name       string
		ctx        context.Context
		msg        syncPageMessage
		exec       func(context.Context, syncPageMessage) error
		opts       []HandlerOption[syncPageMessage]
		wantErr    bool
		category   goerrors.Category
		target     error
		wantCalled bool
	}{
		{
			name:       "converted",
			ctx:        context.Background(),
			msg:        syncPageMessage{PageID: "p-1"},
			wantCalled: true,
		},
		{
			name:     "blank page id",
			ctx:      context.Background(),
			msg:      syncPageMessage{},
			wantErr:  true,
			category: goerrors.CategoryValidation,
		},
		{
			name:     "cancelled before start",
			ctx:      cancelled,
			msg:      syncPageMessage{PageID: "p-1"},
			wantErr:  true,
			category: goerrors.CategoryCommand,
			target:   context.Canceled,
		},
		{
			name: "sink failure",
			ctx:  context.Background(),
			msg:  syncPageMessage{PageID: "p-1"},
			exec: func(context.Context, syncPageMessage) error {
				return errors.New("sink unavailable")
			},
			wantErr:    true,
			category:   goerrors.CategoryCommand,
			wantCalled: true,
		},
		{
			name:       "page timeout",
			ctx:        context.Background(),
			msg:        syncPageMessage{PageID: "p-1"},
			exec:       slow,
			opts:       []HandlerOption[syncPageMessage]{WithTimeout[syncPageMessage](10 * time.Millisecond)},
			wantErr:    true,
			category:   goerrors.CategoryCommand,
			target:     context.DeadlineExceeded,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := NewHandler(func(ctx context.Context, msg syncPageMessage) error {
				called = true
				if tt.exec != nil {
					return tt.exec(ctx, msg)
				}
				return nil
			}, tt.opts...)

			err := h.Execute(tt.ctx, tt.msg)
			if called != tt.wantCalled {
				t.Fatalf("expected called=%v, got %v", tt.wantCalled, called)
			}
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !goerrors.IsCategory(err, tt.category) {
				t.Fatalf("expected %v category, got %v", tt.category, err)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("expected %v in chain, got %v", tt.target, err)
			}
		})
	}
}

type fieldMessage struct {
	PageCount int
}

func (fieldMessage) Type() string { return "notion2wp.test.fields" }

func TestHandlerTelemetryReceivesOutcome(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler[fieldMessage](func(ctx context.Context, msg fieldMessage) error {
		return errors.New("sink down")
	},
		WithOperation[fieldMessage]("import.pages"),
		WithMessageFields[fieldMessage](func(msg fieldMessage) map[string]any {
			return map[string]any{"page_count": msg.PageCount}
		}),
		WithTelemetry[fieldMessage](func(_ context.Context, _ fieldMessage, info TelemetryInfo) {
			got = info
		}),
	)

	err := h.Execute(context.Background(), fieldMessage{PageCount: 3})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if got.Status != TelemetryStatusFailed || got.Error == nil {
		t.Fatalf("expected failed telemetry, got %+v", got)
	}
	if got.Command != "notion2wp.test.fields" || got.Operation != "import.pages" {
		t.Fatalf("unexpected telemetry identity %+v", got)
	}
	if got.Fields["page_count"] != 3 {
		t.Fatalf("expected message fields, got %v", got.Fields)
	}
}

func TestHandlerMapsReturnedContextErrors(t *testing.T) {
	h := NewHandler(func(ctx context.Context, msg syncPageMessage) error {
		return context.Canceled
	})
	err := h.Execute(context.Background(), syncPageMessage{PageID: "p-1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected wrapped cancellation, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}
