package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sitelen/pkg/cache"
	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/layout"
	"github.com/matzehuels/sitelen/pkg/observability"
	"github.com/matzehuels/sitelen/pkg/vocab"
)

// Runner drives text through parse, layout and render, consulting a cache
// before each stage. The CLI and the API server share it.
//
// A Runner holds no per-request state, so one instance serves concurrent
// requests with different Options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	parser *grammar.Parser
	engine *layout.Engine
	// vocabHash identifies the vocabulary in parse and layout cache keys.
	vocabHash string
}

// NewRunner builds a Runner over vocabulary v. Every argument may be nil:
// a nil cache disables caching, a nil keyer uses cache.NewDefaultKeyer and
// a nil vocabulary uses vocab.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, v *vocab.Vocabulary) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	if v == nil {
		v = vocab.Default()
	}
	data, _ := json.Marshal(v)
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
		parser:    grammar.NewParser(v),
		engine:    layout.NewEngine(v),
		vocabHash: cache.Hash(data),
	}
}

// Parser returns the parser the runner uses.
func (r *Runner) Parser() *grammar.Parser {
	return r.parser
}

// Execute runs all three stages and reports per-stage timings and cache
// hits in the Result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var (
		res   Result
		err   error
		start = time.Now()
	)
	res.Parsed, res.CacheInfo.ParseHit, err = r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	res.ParseHash = hashParsed(res.Parsed)
	res.Stats.ParseTime = lap(&start)
	res.Stats.SentenceCount = len(res.Parsed.Sentences)
	r.Logger.Info("parsed text",
		"sentences", res.Stats.SentenceCount,
		"skipped", len(res.Parsed.Skipped),
		"duration", res.Stats.ParseTime)

	res.Layout, res.CacheInfo.LayoutHit, err = r.LayoutWithCacheInfo(ctx, res.Parsed, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Stats.LayoutTime = lap(&start)
	res.Stats.CompoundCount = len(res.Layout.Compounds)
	r.Logger.Info("laid out glyphs",
		"compounds", res.Stats.CompoundCount,
		"duration", res.Stats.LayoutTime)

	res.Artifacts, res.CacheInfo.RenderHit, err = r.RenderWithCacheInfo(ctx, res.Layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Stats.RenderTime = lap(&start)
	r.Logger.Info("rendered",
		"formats", opts.Formats,
		"duration", res.Stats.RenderTime)

	return &res, nil
}

// lap returns the time since *start and resets it.
func lap(start *time.Time) time.Duration {
	now := time.Now()
	d := now.Sub(*start)
	*start = now
	return d
}

// ParseWithCacheInfo splits and parses opts.Text, reporting whether the
// result came from the cache. Parse results are keyed by text, vocabulary
// and the skip_invalid flag.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (parsed Parsed, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return Parsed{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(opts.Text))
	start := time.Now()
	defer func() {
		hooks.OnParseComplete(ctx, len(parsed.Sentences), time.Since(start), err)
	}()

	key := r.Keyer.ParseKey(cache.Hash([]byte(opts.Text)), opts.ParseKeyOpts(r.vocabHash))
	return through(ctx, r, opts.Refresh, cache.KeyTypeParse, key, cache.TTLParse, func() (Parsed, error) {
		p, err := Parse(r.parser, opts)
		if err != nil {
			return Parsed{}, err
		}
		for _, s := range p.Skipped {
			hooks.OnSentenceSkipped(ctx, s.Index, s.Code)
		}
		return p, nil
	})
}

// Parse is ParseWithCacheInfo without the hit flag.
func (r *Runner) Parse(ctx context.Context, opts Options) (Parsed, error) {
	parsed, _, err := r.ParseWithCacheInfo(ctx, opts)
	return parsed, err
}

// LayoutWithCacheInfo places the glyphs of every parsed sentence, reporting
// whether the layout came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, parsed Parsed, opts Options) (l layout.Layout, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(parsed.Sentences))
	start := time.Now()
	defer func() {
		hooks.OnLayoutComplete(ctx, len(l.Compounds), time.Since(start), err)
	}()

	key := r.Keyer.LayoutKey(hashParsed(parsed), opts.LayoutKeyOpts(r.vocabHash))
	return through(ctx, r, opts.Refresh, cache.KeyTypeLayout, key, cache.TTLLayout, func() (layout.Layout, error) {
		return Layout(ctx, r.engine, parsed.Sentences, opts)
	})
}

// Layout is LayoutWithCacheInfo without the hit flag.
func (r *Runner) Layout(ctx context.Context, parsed Parsed, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, parsed, opts)
	return l, err
}

// through returns the JSON value cached under key, or computes and stores
// it. An entry that no longer decodes is recomputed and overwritten.
func through[T any](ctx context.Context, r *Runner, refresh bool, keyType, key string, ttl time.Duration, compute func() (T, error)) (T, bool, error) {
	if !refresh {
		if data, ok := r.get(ctx, keyType, key); ok {
			var v T
			if json.Unmarshal(data, &v) == nil {
				return v, true, nil
			}
		}
	}

	v, err := compute()
	if err != nil {
		var zero T
		return zero, false, err
	}
	if data, err := json.Marshal(v); err == nil {
		r.set(ctx, keyType, key, data, ttl)
	}
	return v, false, nil
}

// RenderWithCacheInfo produces one artifact per requested format. The hit
// flag is set only when every format was served from the cache; a partial
// hit re-renders all of them.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	layoutData, err := json.Marshal(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		cached := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, ok := r.get(ctx, cache.KeyTypeArtifact, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if !ok {
				break
			}
			cached[format] = data
		}
		if len(cached) == len(opts.Formats) {
			return cached, true, nil
		}
	}

	artifacts, err = Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range artifacts {
		r.set(ctx, cache.KeyTypeArtifact, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close closes the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// get reads a cache entry. Backend errors count as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// set writes a cache entry. Failures are logged, never returned.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger defaults opts.Logger to the runner's logger.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func hashParsed(p Parsed) string {
	data, _ := json.Marshal(p.Sentences)
	return cache.Hash(data)
}
