// Package observability lets a binary watch the sitelen pipeline without
// the libraries depending on any metrics or tracing backend.
//
// Three hook sets cover the events sitelen emits:
//
//   - [PipelineHooks]: parse, layout and render stages, and sentences
//     dropped by skip_invalid
//   - [CacheHooks]: hits, misses and writes per key type
//   - [HTTPHooks]: requests served by the API
//
// Every set defaults to a no-op. The binary registers its own
// implementations once at startup; libraries only read them:
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//
//	hooks := observability.Pipeline()
//	hooks.OnLayoutStart(ctx, len(sentences))
//
// [LogHooks] implements all three sets on a charmbracelet logger. The CLI
// registers it with --verbose and the API server logs requests through it.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives stage events from pipeline.Runner.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, textLen int)
	OnParseComplete(ctx context.Context, sentences int, duration time.Duration, err error)

	// OnSentenceSkipped reports a sentence dropped under skip_invalid. index
	// is 1-based and code is the error code that rejected it.
	OnSentenceSkipped(ctx context.Context, index int, code string)

	OnLayoutStart(ctx context.Context, sentences int)
	OnLayoutComplete(ctx context.Context, compounds int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is one of the cache.KeyType
// constants.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path, requestID string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
	// OnError is called for responses that carry an error body.
	OnError(ctx context.Context, method, path string, err error)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnParseComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnSentenceSkipped(context.Context, int, string)                   {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)              {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// registry is replaced as a whole on every Set call, so readers on the hot
// path only do one atomic load.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() {
	Reset()
}

func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks registers h for pipeline events. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers h for cache events. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers h for API events. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks. Tests that register hooks call it in
// their cleanup.
func Reset() {
	current.Store(&registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
