// Package observability provides hooks for metrics and tracing around the
// planning pipeline without adding hard dependencies on a specific backend.
// Consumers register hooks at startup; libraries emit events through the
// global registry. Defaults are no-ops.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the planning pipeline stages.
type PipelineHooks interface {
	// Corridor network construction.
	OnCorridorsStart(ctx context.Context)
	OnCorridorsComplete(ctx context.Context, segments int, duration time.Duration, err error)

	// Region decomposition.
	OnDecomposeStart(ctx context.Context)
	OnDecomposeComplete(ctx context.Context, regions int, duration time.Duration)

	// Booth placement.
	OnPlaceStart(ctx context.Context, inventoryCount int)
	OnPlaceComplete(ctx context.Context, placed, unused int, duration time.Duration, err error)

	// Validation.
	OnValidateComplete(ctx context.Context, violations int, duration time.Duration)

	// Artifact rendering.
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnCorridorsStart(context.Context)                               {}
func (NoopPipelineHooks) OnCorridorsComplete(context.Context, int, time.Duration, error) {}
func (NoopPipelineHooks) OnDecomposeStart(context.Context)                               {}
func (NoopPipelineHooks) OnDecomposeComplete(context.Context, int, time.Duration)        {}
func (NoopPipelineHooks) OnPlaceStart(context.Context, int)                              {}
func (NoopPipelineHooks) OnPlaceComplete(context.Context, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnValidateComplete(context.Context, int, time.Duration)           {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
