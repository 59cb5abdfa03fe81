package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	corridors int
	placed    int
}

func (h *countingPipelineHooks) OnCorridorsStart(context.Context) { h.corridors++ }
func (h *countingPipelineHooks) OnPlaceComplete(_ context.Context, placed, _ int, _ time.Duration, _ error) {
	h.placed = placed
}

func TestSetPipelineHooks(t *testing.T) {
	defer Reset()

	h := &countingPipelineHooks{}
	SetPipelineHooks(h)

	Pipeline().OnCorridorsStart(context.Background())
	Pipeline().OnPlaceComplete(context.Background(), 42, 6, time.Second, nil)

	if h.corridors != 1 {
		t.Errorf("corridors hook called %d times, want 1", h.corridors)
	}
	if h.placed != 42 {
		t.Errorf("placed = %d, want 42", h.placed)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	h := &countingPipelineHooks{}
	SetPipelineHooks(h)
	SetPipelineHooks(nil)

	Pipeline().OnCorridorsStart(context.Background())
	if h.corridors != 1 {
		t.Error("nil registration should not replace hooks")
	}
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string) { h.hits++ }

func TestCacheHooks(t *testing.T) {
	defer Reset()

	h := &countingCacheHooks{}
	SetCacheHooks(h)
	Cache().OnCacheHit(context.Background(), "plan")

	if h.hits != 1 {
		t.Errorf("hits = %d, want 1", h.hits)
	}
}

func TestReset(t *testing.T) {
	h := &countingPipelineHooks{}
	SetPipelineHooks(h)
	Reset()

	Pipeline().OnCorridorsStart(context.Background())
	if h.corridors != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
