package render

import (
	"slices"
	"strings"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/layout"
)

// Default rendering values.
const (
	DefaultScale        = 1.2
	DefaultScaleSkew    = 1.3
	DefaultOptimalRatio = 0.75
	DefaultMinRatio     = 0.0
	DefaultMaxRatio     = 100.0
	DefaultStrokeWidth  = 2.0
)

// Format is an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported output format.
var Formats = []Format{FormatSVG, FormatHTML, FormatJSON, FormatPNG, FormatPDF}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (valid: svg, html, json, png, pdf)", s).WithInput(s)
	}
	return f, nil
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Config holds the rendering knobs.
type Config struct {
	// Scale is the base glyph scale.
	Scale float64 `json:"scale" toml:"scale"`
	// ScaleSkew widens the view box so glyphs may stick out horizontally.
	ScaleSkew float64 `json:"scale_skew" toml:"scale_skew"`

	OptimalRatio float64 `json:"optimal_ratio" toml:"optimal_ratio"`
	MinRatio     float64 `json:"min_ratio" toml:"min_ratio"`
	MaxRatio     float64 `json:"max_ratio" toml:"max_ratio"`

	StrokeWidth float64 `json:"stroke_width" toml:"stroke_width"`
	Shadow      bool    `json:"shadow" toml:"shadow"`
	// Exportable embeds a definition for every referenced glyph.
	Exportable bool `json:"exportable" toml:"exportable"`
	// IgnoreHeight omits the fixed height of the root element so the image
	// scales with its container's width.
	IgnoreHeight bool `json:"ignore_height" toml:"ignore_height"`

	// Random picks a seeded random option within the ratio window instead of
	// the one closest to OptimalRatio.
	Random bool   `json:"random" toml:"random"`
	Seed   uint64 `json:"seed,omitempty" toml:"seed"`
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	return Config{
		Scale:        DefaultScale,
		ScaleSkew:    DefaultScaleSkew,
		OptimalRatio: DefaultOptimalRatio,
		MinRatio:     DefaultMinRatio,
		MaxRatio:     DefaultMaxRatio,
		StrokeWidth:  DefaultStrokeWidth,
		Exportable:   true,
	}
}

// SetDefaults fills zero-valued numeric fields with defaults.
func (c *Config) SetDefaults() {
	if c.Scale == 0 {
		c.Scale = DefaultScale
	}
	if c.ScaleSkew == 0 {
		c.ScaleSkew = DefaultScaleSkew
	}
	if c.OptimalRatio == 0 {
		c.OptimalRatio = DefaultOptimalRatio
	}
	if c.MaxRatio == 0 {
		c.MaxRatio = DefaultMaxRatio
	}
	if c.StrokeWidth == 0 {
		c.StrokeWidth = DefaultStrokeWidth
	}
}

// Validate checks that c describes a drawable configuration.
func (c Config) Validate() error {
	if c.Scale <= 0 || c.ScaleSkew <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale and scale skew must be positive")
	}
	if c.StrokeWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stroke width cannot be negative")
	}
	if err := errors.ValidateRatio(c.OptimalRatio); err != nil {
		return err
	}
	return errors.ValidateRatioRange(c.MinRatio, c.MaxRatio)
}

// Selector returns the option selector described by c. Options outside
// [MinRatio, MaxRatio] are only considered when nothing else qualifies.
func (c Config) Selector() layout.Selector {
	sel := layout.BestRatio(c.OptimalRatio)
	if c.Random {
		sel = layout.Random(c.Seed)
	}
	return layout.Within(c.MinRatio, c.MaxRatio, sel)
}
