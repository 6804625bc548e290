package render

import (
	"context"
	"testing"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/layout"
)

func TestGlyphIDs(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{WordGlyphID("toki"), "tp-wg-toki"},
		{WordGlyphID("period"), "tp-wg-period"},
		{SyllableGlyphID("son"), "tp-syl-son"},
		{ContainerGlyphID("e", 1), "tp-c-e"},
		{ContainerGlyphID("e", 2), "tp-c-e-wide"},
		{ContainerGlyphID("e", 0.5), "tp-c-e-tall"},
		{ContainerGlyphID("cartouche", WideRatio), "tp-c-cartouche"},
		{ContainerGlyphID("cartouche", TallRatio), "tp-c-cartouche"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("glyph id = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestSeparatorScale(t *testing.T) {
	base := 1.2
	tests := []struct {
		sep   string
		ratio float64
		want  [4]float64
	}{
		{"", 1, [4]float64{base * 0.92, base * 0.92, 0, 0}},
		{"", 0.5, [4]float64{base * 1.2, base * 0.9, 0, 0}},
		{"li", 1, [4]float64{base * 0.88, base * 0.88, 0, 0}},
		{"li", 0.5, [4]float64{base * 1.2, base * 0.9, 0, 0}},
		{"o", 1, [4]float64{base * 0.92, base, 0, -10}},
		{"o", 2, [4]float64{base * 0.92, base, -15, -10}},
		{"e", 1, [4]float64{base, base * 0.92, 10, 0}},
		{"tawa", 1, [4]float64{base * 0.9, base * 0.9, 5, -10}},
		{"tan", 1, [4]float64{base * 0.9, base * 1.1, 0, -20}},
		{"lon", 1, [4]float64{base * 0.9, base * 1.1, 0, -15}},
		{"lon", 3, [4]float64{base * 0.92, base * 0.92, 10, 0}},
		{"lon", 1.2, [4]float64{base * 0.92, base * 0.92, 0, 0}},
	}
	for _, tt := range tests {
		if got := SeparatorScale(tt.sep, tt.ratio, base); got != tt.want {
			t.Errorf("SeparatorScale(%q, %v) = %v, want %v", tt.sep, tt.ratio, got, tt.want)
		}
	}
}

func TestContainerScale(t *testing.T) {
	base := 1.2
	tests := []struct {
		sep   string
		ratio float64
		want  float64
	}{
		{"", 1, 1.02},
		{"li", 1, base * 1.1},
		{"e", 1, base * 1.2},
		{"e", 2, base * 1.1},
		{"tan", 1, base * 1.4},
		{"tan", 0.5, base * 1.2},
		{"kepeken", 2, base * 1.2},
		{"kepeken", 1, base * 1.1},
		{"lon", 1, base * 1.3},
	}
	for _, tt := range tests {
		if got := ContainerScale(tt.sep, tt.ratio, base); got != tt.want {
			t.Errorf("ContainerScale(%q, %v) = %v, want %v", tt.sep, tt.ratio, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{"PNG", FormatPNG, false},
		{" html ", FormatHTML, false},
		{"json", FormatJSON, false},
		{"pdf", FormatPDF, false},
		{"gif", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) code = %s, want %s", tt.in, errors.GetCode(err), errors.ErrCodeInvalidFormat)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := FormatSVG.ContentType(); got != "image/svg+xml" {
		t.Errorf("ContentType() = %q", got)
	}
	if got := Format("x").ContentType(); got != "application/octet-stream" {
		t.Errorf("ContentType() = %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero scale", func(c *Config) { c.Scale = 0 }, true},
		{"negative stroke", func(c *Config) { c.StrokeWidth = -1 }, true},
		{"zero ratio", func(c *Config) { c.OptimalRatio = 0 }, true},
		{"inverted window", func(c *Config) { c.MinRatio, c.MaxRatio = 2, 1 }, true},
		{"narrow window", func(c *Config) { c.MinRatio, c.MaxRatio = 0.5, 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigSetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()
	want := DefaultConfig()
	want.Exportable = false
	if c != want {
		t.Errorf("SetDefaults() = %+v, want %+v", c, want)
	}
}

func TestConfigSelector(t *testing.T) {
	options := []layout.Option{{Ratio: 0.5}, {Ratio: 0.8}, {Ratio: 3}}

	c := DefaultConfig()
	if got, _ := c.Selector()(options); got.Ratio != 0.8 {
		t.Errorf("best ratio selector picked %v, want 0.8", got.Ratio)
	}

	c.MinRatio, c.MaxRatio = 2, 4
	if got, _ := c.Selector()(options); got.Ratio != 3 {
		t.Errorf("windowed selector picked %v, want 3", got.Ratio)
	}

	c = DefaultConfig()
	c.Random, c.Seed = true, 42
	a, _ := c.Selector()(options)
	b, _ := c.Selector()(options)
	if a.Ratio != b.Ratio {
		t.Errorf("random selector is not deterministic: %v != %v", a.Ratio, b.Ratio)
	}
}

func TestConvertWithoutTool(t *testing.T) {
	if CanRasterize() {
		t.Skip("rsvg-convert is installed")
	}
	_, err := ToPNG(context.Background(), []byte("<svg/>"), 1)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPNG() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}
