package layout

import "fmt"

// UnitKind tags a layout unit.
type UnitKind int

const (
	KindWord UnitKind = iota
	KindSyllable
	KindPunctuation
	KindContainer
)

var unitKindNames = [...]string{
	KindWord:        "word",
	KindSyllable:    "syllable",
	KindPunctuation: "punctuation",
	KindContainer:   "container",
}

func (k UnitKind) String() string {
	if k < 0 || int(k) >= len(unitKindNames) {
		return fmt.Sprintf("UnitKind(%d)", int(k))
	}
	return unitKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k UnitKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(unitKindNames) {
		return nil, fmt.Errorf("unknown unit kind %d", int(k))
	}
	return []byte(unitKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *UnitKind) UnmarshalText(b []byte) error {
	for i, name := range unitKindNames {
		if name == string(b) {
			*k = UnitKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown unit kind %q", b)
}

// Unit is a sized rectangle to be packed. Word and syllable units carry a
// single token, punctuation units carry their tags, and container units
// wrap an already resolved arrangement.
type Unit struct {
	Kind   UnitKind `json:"kind"`
	Tokens []string `json:"tokens,omitempty"`
	// Size is the intrinsic size before any scaling.
	Size Size `json:"size"`

	Units     []Placed   `json:"units,omitempty"`
	Separator string     `json:"separator,omitempty"`
	Type      OptionType `json:"type,omitzero"`
}

// Token returns the first token of u, or "" if it has none.
func (u Unit) Token() string {
	if len(u.Tokens) == 0 {
		return ""
	}
	return u.Tokens[0]
}

// IsPunctuation reports whether u is a punctuation mark or a container
// holding one.
func (u Unit) IsPunctuation() bool {
	return u.Kind == KindPunctuation || (u.Kind == KindContainer && u.Type == TypePunctuation)
}

// Placed is a unit with its resolved size and position relative to the
// parent container.
type Placed struct {
	Unit     Unit     `json:"unit"`
	Size     Size     `json:"size"`
	Position Position `json:"position"`
}

// Intrinsic sizes by category.
var (
	sizeSinglePunctuation   = Size{Width: 4, Height: 0.5}
	sizeSentencePunctuation = Size{Width: 4, Height: 0.75}
	sizeLargePunctuation    = Size{Width: 4, Height: 1}
	sizeSmall               = Size{Width: 1, Height: 0.5}
	sizeNarrow              = Size{Width: 0.5, Height: 1}
	sizeSquare              = Size{Width: 1, Height: 1}
)

// SizeOf returns the intrinsic size of a word or punctuation tag.
func (e *Engine) SizeOf(token string) Size {
	v := e.vocab
	switch {
	case v.SinglePunctuation.Has(token):
		return sizeSinglePunctuation
	case v.SentencePunctuation.Has(token):
		return sizeSentencePunctuation
	case v.LargePunctuation.Has(token):
		return sizeLargePunctuation
	case v.SmallModifiers.Has(token):
		return sizeSmall
	case v.NarrowModifiers.Has(token):
		return sizeNarrow
	default:
		return sizeSquare
	}
}

// SyllableSizeOf returns the intrinsic size of a cartouche syllable.
func (e *Engine) SyllableSizeOf(syllable string) Size {
	if e.vocab.NarrowSyllables.Has(syllable) {
		return sizeNarrow
	}
	return sizeSquare
}

// WordUnits converts tokens into word units.
func (e *Engine) WordUnits(tokens []string) []Unit {
	units := make([]Unit, len(tokens))
	for i, tok := range tokens {
		units[i] = Unit{Kind: KindWord, Tokens: []string{tok}, Size: e.SizeOf(tok)}
	}
	return units
}

// SyllableUnits converts cartouche syllables into syllable units.
func (e *Engine) SyllableUnits(syllables []string) []Unit {
	units := make([]Unit, len(syllables))
	for i, syl := range syllables {
		units[i] = Unit{Kind: KindSyllable, Tokens: []string{syl}, Size: e.SyllableSizeOf(syl)}
	}
	return units
}

// PunctuationUnit converts punctuation tags into a single unit sized by
// the first tag.
func (e *Engine) PunctuationUnit(tags []string) Unit {
	u := Unit{Kind: KindPunctuation, Tokens: append([]string(nil), tags...), Size: sizeSquare}
	if len(tags) > 0 {
		u.Size = e.SizeOf(tags[0])
	}
	return u
}
