package postgres

import (
	"context"
	"testing"
	"time"
)

func TestWithHTTPMethod_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithHTTPMethod(context.Background(), "POST")
	if got := httpMethodFromContext(ctx); got != "POST" {
		t.Errorf("httpMethodFromContext = %q, want %q", got, "POST")
	}
}

func TestWithHTTPMethod_Empty(t *testing.T) {
	t.Parallel()

	ctx := WithHTTPMethod(context.Background(), "")
	if got := httpMethodFromContext(ctx); got != "" {
		t.Errorf("httpMethodFromContext = %q, want empty", got)
	}
}

func TestRoutePatternFromContext_PlainContext(t *testing.T) {
	t.Parallel()

	if got := routePatternFromContext(context.Background()); got != "" {
		t.Errorf("routePatternFromContext = %q, want empty", got)
	}
}

func TestSetQueryObserver(t *testing.T) {
	t.Parallel()

	// Save and restore the global to avoid test pollution.
	defer SetQueryObserver(nil)

	called := false
	SetQueryObserver(QueryObserverFunc(func(_ context.Context, _, _, _ string, _ time.Duration) {
		called = true
	}))

	obs := getQueryObserver()
	if obs == nil {
		t.Fatal("expected non-nil observer after Set")
	}
	obs.ObserveQuery(context.Background(), "GET", "/test", "ok", time.Millisecond)
	if !called {
		t.Error("observer was not called")
	}

	SetQueryObserver(nil)
	if getQueryObserver() != nil {
		t.Error("expected nil observer after Set(nil)")
	}
}

func TestWrapQueryTracer_NilInner(t *testing.T) {
	t.Parallel()

	tr := wrapQueryTracer(nil)
	if tr == nil {
		t.Fatal("wrapQueryTracer(nil) returned nil tracer")
	}
}
