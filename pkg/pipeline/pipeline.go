// Package pipeline turns Toki Pona text into rendered sitelen in three
// stages, shared by the CLI and the API server:
//
//  1. Parse splits the text into sentences and builds a grammar tree for
//     each one.
//  2. Layout searches glyph arrangements per compound and keeps the one
//     closest to the target ratio.
//  3. Render writes the layout as SVG, HTML, JSON, PNG or PDF.
//
// A [Runner] executes the stages against a cache:
//
//	runner := pipeline.NewRunner(c, nil, logger, nil)
//	opts := pipeline.DefaultOptions()
//	opts.Text = "mi olin e sina."
//	res, err := runner.Execute(ctx, opts)
//	svg := res.Artifacts["svg"]
//
// Runner.Parse, Runner.Layout and Runner.Render run one stage at a time,
// which is how the parse, layout and visualize commands chain through
// intermediate JSON files.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sitelen/pkg/cache"
	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/layout"
	"github.com/matzehuels/sitelen/pkg/render"
	"github.com/matzehuels/sitelen/pkg/render/sink"
)

const (
	// DefaultMaxSiblings caps the number of units a single container search
	// may receive. The search is exponential in this number.
	DefaultMaxSiblings = 12

	// MaxSiblingsLimit is the largest MaxSiblings a caller may ask for.
	MaxSiblingsLimit = 16

	// DefaultPNGScale is the PNG resolution multiplier.
	DefaultPNGScale = 2.0
)

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{string(render.FormatSVG)}

// Options configures a pipeline run. The API decodes request bodies
// straight into it.
type Options struct {
	Text string `json:"text"`
	// SkipInvalid drops sentences that fail to parse instead of failing
	// the whole run.
	SkipInvalid bool `json:"skip_invalid,omitempty"`
	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	MaxSiblings int `json:"max_siblings,omitempty"`

	Render   render.Config `json:"render"`
	Formats  []string      `json:"formats,omitempty"`
	Title    string        `json:"title,omitempty"`
	PNGScale float64       `json:"png_scale,omitempty"`

	Logger *log.Logger `json:"-"`
	// Sprite overrides the built-in glyph shapes when rendering.
	Sprite sink.Sprite `json:"-"`

	validated bool
}

// DefaultOptions returns options with every default applied. Decoding a
// request on top of it keeps defaults for absent fields.
func DefaultOptions() Options {
	return Options{
		MaxSiblings: DefaultMaxSiblings,
		Render:      render.DefaultConfig(),
		Formats:     append([]string(nil), DefaultFormats...),
		PNGScale:    DefaultPNGScale,
	}
}

// Parsed is the outcome of the parse stage.
type Parsed struct {
	Sentences []grammar.Sentence `json:"sentences"`
	// Skipped lists sentences dropped because of SkipInvalid.
	Skipped []SentenceError `json:"skipped,omitempty"`
}

// SentenceError describes a sentence that failed to parse.
type SentenceError struct {
	Index   int    `json:"index"` // 1-based position in the text
	Code    string `json:"code"`
	Message string `json:"message"`
	Input   string `json:"input,omitempty"`
}

func newSentenceError(index int, err error) SentenceError {
	return SentenceError{
		Index:   index,
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
		Input:   errors.GetInput(err),
	}
}

// Result is everything Runner.Execute produced.
type Result struct {
	Parsed

	// ParseHash is the content hash of the parse result.
	ParseHash string

	// Layout is the selected arrangement of every compound.
	Layout layout.Layout

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds counts and per-stage wall time.
type Stats struct {
	SentenceCount int
	CompoundCount int
	ParseTime     time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo records which stages were served from the cache. RenderHit
// requires every requested format to hit.
type CacheInfo struct {
	ParseHit  bool
	LayoutHit bool
	RenderHit bool
}

// ValidateFormats rejects any name render.ParseFormat does not know.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults prepares o for a full run. Repeated calls are
// no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	for _, check := range []func() error{o.ValidateForParse, o.ValidateForLayout, o.ValidateForRender} {
		if err := check(); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the input text.
func (o *Options) ValidateForParse() error {
	o.applyDefaults()
	return errors.ValidateText(o.Text)
}

// ValidateForLayout checks the sibling cap and the ratio window.
func (o *Options) ValidateForLayout() error {
	o.applyDefaults()
	if o.MaxSiblings < 1 || o.MaxSiblings > MaxSiblingsLimit {
		return errors.New(errors.ErrCodeInvalidConfig,
			"max_siblings must be between 1 and %d, got %d", MaxSiblingsLimit, o.MaxSiblings)
	}
	return o.Render.Validate()
}

// ValidateForRender checks the formats and rendering parameters.
func (o *Options) ValidateForRender() error {
	o.applyDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "png_scale must be positive")
	}
	return o.Render.Validate()
}

// applyDefaults fills zero fields. Negative values are left for the
// validators to reject.
func (o *Options) applyDefaults() {
	if o.MaxSiblings == 0 {
		o.MaxSiblings = DefaultMaxSiblings
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	o.Render.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ParseKeyOpts returns the parse cache key inputs. vocabulary is the
// vocabulary hash.
func (o *Options) ParseKeyOpts(vocabulary string) cache.ParseKeyOpts {
	return cache.ParseKeyOpts{
		Vocabulary:  vocabulary,
		SkipInvalid: o.SkipInvalid,
	}
}

// LayoutKeyOpts returns the options that change the selected layout.
// vocabulary is the vocabulary hash.
func (o *Options) LayoutKeyOpts(vocabulary string) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Vocabulary:   vocabulary,
		MaxSiblings:  o.MaxSiblings,
		OptimalRatio: o.Render.OptimalRatio,
		MinRatio:     o.Render.MinRatio,
		MaxRatio:     o.Render.MaxRatio,
		Random:       o.Render.Random,
		Seed:         o.Render.Seed,
	}
}

// ArtifactKeyOpts returns the options that change the bytes of one
// format. PNGScale only counts for PNG.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:       format,
		Scale:        o.Render.Scale,
		ScaleSkew:    o.Render.ScaleSkew,
		StrokeWidth:  o.Render.StrokeWidth,
		Shadow:       o.Render.Shadow,
		Exportable:   o.Render.Exportable,
		IgnoreHeight: o.Render.IgnoreHeight,
		Title:        o.Title,
	}
	if format == string(render.FormatPNG) {
		k.PNGScale = o.PNGScale
	}
	if len(o.Sprite) > 0 {
		k.Sprite = spriteHash(o.Sprite)
	}
	return k
}
