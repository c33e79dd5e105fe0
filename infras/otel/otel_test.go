package otel_test

import (
	"context"
	"errors"
	"kampus/config"
	"kampus/infras/otel"
	"kampus/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewWithoutEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "kampus-test"

	ot := otel.New(cfg)

	ctx, scope := ot.NewScope(context.Background(), "service", "service.Test")
	require.NotNil(t, ctx)

	assert.NotPanics(t, func() {
		scope.SetAttributes(map[string]any{
			"bool":   true,
			"string": "x",
			"int":    1,
			"int64":  int64(2),
			"slice":  []string{"a"},
			"time":   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			"other":  3.14,
		})
		scope.AddEvent("event")
		scope.TraceIfError(nil)
		scope.TraceIfError(errors.New("boom"))
		scope.End()
	})

	assert.NoError(t, ot.Shutdown(context.Background()))
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantEvent  string
	}{
		{name: "rejection", err: failure.NotFound("facility not found"), wantStatus: codes.Unset, wantEvent: "rejected"},
		{name: "conflict", err: failure.Conflict("already approved"), wantStatus: codes.Unset, wantEvent: "rejected"},
		{name: "internal", err: errors.New("disk full"), wantStatus: codes.Error, wantEvent: "exception"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

			_, span := provider.Tracer("test").Start(context.Background(), "service.Test")
			scope := otel.NewScope(span)
			scope.TraceError(tt.err)
			scope.End()

			ended := recorder.Ended()
			require.Len(t, ended, 1)
			assert.Equal(t, tt.wantStatus, ended[0].Status().Code)
			require.Len(t, ended[0].Events(), 1)
			assert.Equal(t, tt.wantEvent, ended[0].Events()[0].Name)
		})
	}
}
