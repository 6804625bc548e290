package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Pipeline stages identify texts,
// parse results and layouts by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Keyer derives cache keys from content hashes and options. Every option
// that changes the cached value must be part of the key.
type Keyer interface {
	// ParseKey identifies the parse result of a text under a vocabulary.
	ParseKey(textHash string, opts ParseKeyOpts) string

	// LayoutKey identifies the layout of a parse result.
	LayoutKey(parseHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ParseKeyOpts are the options that influence parsing.
type ParseKeyOpts struct {
	Vocabulary  string `json:"vocabulary"`
	SkipInvalid bool   `json:"skip_invalid,omitempty"`
}

// LayoutKeyOpts are the options that influence option selection. The
// vocabulary hash is part of it because glyph sizes come from the
// vocabulary, and MaxSiblings because it decides whether a layout is
// rejected as too large.
type LayoutKeyOpts struct {
	Vocabulary   string  `json:"vocabulary"`
	MaxSiblings  int     `json:"max_siblings"`
	OptimalRatio float64 `json:"optimal_ratio"`
	MinRatio     float64 `json:"min_ratio"`
	MaxRatio     float64 `json:"max_ratio"`
	Random       bool    `json:"random,omitempty"`
	Seed         uint64  `json:"seed,omitempty"`
}

// ArtifactKeyOpts are the options that influence rendering.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Scale        float64 `json:"scale"`
	ScaleSkew    float64 `json:"scale_skew"`
	StrokeWidth  float64 `json:"stroke_width"`
	Shadow       bool    `json:"shadow,omitempty"`
	Exportable   bool    `json:"exportable,omitempty"`
	IgnoreHeight bool    `json:"ignore_height,omitempty"`
	PNGScale     float64 `json:"png_scale,omitempty"`
	Sprite       string  `json:"sprite,omitempty"`
	Title        string  `json:"title,omitempty"`
}

// DefaultKeyer builds keys of the form "kind:sha256(inputs)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ParseKey implements Keyer.
func (DefaultKeyer) ParseKey(textHash string, opts ParseKeyOpts) string {
	return deriveKey(KeyTypeParse, textHash, opts)
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(parseHash string, opts LayoutKeyOpts) string {
	return deriveKey(KeyTypeLayout, parseHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return deriveKey(KeyTypeArtifact, layoutHash, opts)
}

// deriveKey joins kind and the hash of the JSON-encoded inputs. Option structs
// marshal deterministically, so equal options give equal keys.
func deriveKey(kind string, inputs ...any) string {
	data, _ := json.Marshal(inputs)
	return kind + ":" + Hash(data)
}

// Scoped prefixes every key of inner (DefaultKeyer when nil) so several
// deployments, or a custom vocabulary, can share one backend:
//
//	keyer := cache.Scoped(cache.NewDefaultKeyer(), "staging:")
func Scoped(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return scopedKeyer{inner: inner, prefix: prefix}
}

type scopedKeyer struct {
	inner  Keyer
	prefix string
}

func (k scopedKeyer) ParseKey(textHash string, opts ParseKeyOpts) string {
	return k.prefix + k.inner.ParseKey(textHash, opts)
}

func (k scopedKeyer) LayoutKey(parseHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(parseHash, opts)
}

func (k scopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = scopedKeyer{}
)
