// Package cache provides pluggable result caching for plan runs: a file-based
// cache for CLI usage, a Redis cache for shared deployments, and a null cache
// that disables caching entirely.
//
// Planning is deterministic, so cached entries never go stale on their own;
// TTLs exist to bound disk and memory usage, not for correctness.
package cache

import (
	"context"
	"errors"
	"time"
)

// TTLs per entry class.
const (
	// TTLPlan bounds cached layout results.
	TTLPlan = 30 * 24 * time.Hour

	// TTLArtifact bounds cached rendered outputs (SVG, DOT, JSON).
	TTLArtifact = 7 * 24 * time.Hour
)

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer
// =============================================================================

// PlanKeyOpts are the inputs that distinguish one plan computation from
// another. All planning options that affect the output must appear here.
type PlanKeyOpts struct {
	GeometryHash    string
	InventoryHash   string
	SecondaryWidth  float64
	MaxSpanDepth    float64
	StarvationWidth float64
	WeightsHash     string
}

// ArtifactKeyOpts distinguish rendered outputs of the same plan.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
}

// Keyer generates cache keys for the two entry classes.
type Keyer interface {
	// PlanKey generates a key for a computed layout.
	PlanKey(opts PlanKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact of a plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the option structs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key for a computed layout.
func (k *DefaultKeyer) PlanKey(opts PlanKeyOpts) string {
	return hashKey("plan", opts)
}

// ArtifactKey generates a key for a rendered artifact of a plan.
func (k *DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple halls or tenants can
// share one backend without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PlanKey generates a prefixed plan key.
func (k *ScopedKeyer) PlanKey(opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}
