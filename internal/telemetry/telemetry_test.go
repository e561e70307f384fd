package telemetry

import (
	"context"
	"testing"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	t.Setenv(endpointEnv, "")
	ctx := context.Background()

	shutdown, err := Setup(ctx)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	_, span := Tracer("test").Start(ctx, "test.span")
	if span.SpanContext().IsValid() {
		t.Error("Setup() without endpoint should install a no-op provider")
	}
	span.End()

	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "test.noop")
	defer span.End()

	if span.IsRecording() {
		t.Error("NoopTracer() span should not record")
	}
}
