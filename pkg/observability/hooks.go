// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about store operations and package builds.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    observability.SetBundleHooks(&myBundleHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	data, err := st.Get(ctx, key)
//	observability.Store().OnGet(ctx, key, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from object-store operations.
type StoreHooks interface {
	// OnPut records an object write. size is the payload length in bytes.
	OnPut(ctx context.Context, key string, size int, duration time.Duration, err error)

	// OnGet records an object read. err is store.ErrNotFound on a miss.
	OnGet(ctx context.Context, key string, duration time.Duration, err error)

	// OnDelete records an object deletion.
	OnDelete(ctx context.Context, key string, duration time.Duration, err error)
}

// =============================================================================
// Bundle Hooks
// =============================================================================

// BundleHooks receives events from package builds.
type BundleHooks interface {
	// OnBuildComplete records a completed package build. id is empty when the
	// build failed.
	OnBuildComplete(ctx context.Context, id string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnPut(context.Context, string, int, time.Duration, error) {}
func (NoopStoreHooks) OnGet(context.Context, string, time.Duration, error)      {}
func (NoopStoreHooks) OnDelete(context.Context, string, time.Duration, error)   {}

// NoopBundleHooks is a no-op implementation of BundleHooks.
type NoopBundleHooks struct{}

func (NoopBundleHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storeHooks  StoreHooks  = NoopStoreHooks{}
	bundleHooks BundleHooks = NoopBundleHooks{}
	hooksMu     sync.RWMutex
)

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetBundleHooks registers custom bundle hooks.
// This should be called once at application startup before any package builds.
func SetBundleHooks(h BundleHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		bundleHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Bundle returns the registered bundle hooks.
func Bundle() BundleHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return bundleHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
	bundleHooks = NoopBundleHooks{}
}
