package log_test

import (
	"context"
	"testing"

	"ai-task-planner/pkg/log"
)

func TestInit(t *testing.T) {
	configs := []log.ZapConfig{
		{Level: "debug", Mode: "development", Encoding: "console", ColorEnabled: true},
		{Level: "info", Mode: "production", Encoding: "json"},
		{Level: "not-a-level", Mode: "development", Encoding: "console"},
	}

	for _, cfg := range configs {
		l := log.Init(cfg)
		if l == nil {
			t.Fatalf("Init(%+v) returned nil", cfg)
		}
		ctx := log.WithTraceID(context.Background(), "trace-1")
		l.Infof(ctx, "logger initialized with level=%s", cfg.Level)
		l.Debug(ctx, "debug line")
	}
}

func TestTraceID(t *testing.T) {
	if got := log.TraceID(context.Background()); got != "" {
		t.Errorf("expected empty trace id, got %q", got)
	}

	ctx := log.WithTraceID(context.Background(), "abc")
	if got := log.TraceID(ctx); got != "abc" {
		t.Errorf("expected trace id abc, got %q", got)
	}
}
