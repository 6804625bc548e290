package grammar

import (
	"fmt"

	"github.com/matzehuels/sitelen/pkg/errors"
)

// Separators with a fixed meaning outside the vocabulary.
const (
	SeparatorCartouche = "cartouche"
	SeparatorAddress   = "o"
)

// PartKind tags a sentence part.
type PartKind int

const (
	Subject PartKind = iota
	ObjectMarker
	PrepPhrase
	Address
	Interjection
	Punctuation
)

var partKindNames = [...]string{
	Subject:      "subject",
	ObjectMarker: "object_marker",
	PrepPhrase:   "prep_phrase",
	Address:      "address",
	Interjection: "interjection",
	Punctuation:  "punctuation",
}

func (k PartKind) String() string {
	if k < 0 || int(k) >= len(partKindNames) {
		return fmt.Sprintf("PartKind(%d)", int(k))
	}
	return partKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k PartKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(partKindNames) {
		return nil, fmt.Errorf("unknown part kind %d", int(k))
	}
	return []byte(partKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PartKind) UnmarshalText(b []byte) error {
	for i, name := range partKindNames {
		if name == string(b) {
			*k = PartKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown part kind %q", b)
}

// IsContainer reports whether parts of this kind may hold nested parts.
func (k PartKind) IsContainer() bool {
	return k == Subject || k == ObjectMarker || k == PrepPhrase
}

// Part is one constituent of a sentence. A part holds either leaf tokens or
// nested parts, never both.
type Part struct {
	Kind      PartKind `json:"kind"`
	Tokens    []string `json:"tokens,omitempty"`
	Separator string   `json:"separator,omitempty"`
	Parts     []Part   `json:"parts,omitempty"`
}

// IsLeaf reports whether p holds tokens rather than nested parts.
func (p Part) IsLeaf() bool {
	return len(p.Parts) == 0
}

// Validate checks the structural invariants of p and its nested parts.
func (p Part) Validate() error {
	if len(p.Tokens) > 0 && len(p.Parts) > 0 {
		return errors.New(errors.ErrCodeInternal, "%s part holds both tokens and nested parts", p.Kind)
	}
	if len(p.Parts) > 0 && !p.Kind.IsContainer() {
		return errors.New(errors.ErrCodeInternal, "%s part cannot hold nested parts", p.Kind)
	}
	for _, sub := range p.Parts {
		if err := sub.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Sentence is an ordered list of parts in linguistic order.
type Sentence struct {
	Parts []Part `json:"parts"`
}

// Validate checks every part of s.
func (s Sentence) Validate() error {
	for _, p := range s.Parts {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IllegalToken reports a word outside the vocabulary.
func IllegalToken(word string) error {
	return errors.New(errors.ErrCodeIllegalToken, "illegal token: %s", word).WithInput(word)
}

// IllegalSyllable reports a proper-name chunk outside the syllable table.
func IllegalSyllable(syllable string) error {
	return errors.New(errors.ErrCodeIllegalSyllable, "illegal syllable: %s", syllable).WithInput(syllable)
}

// IsIllegalToken reports whether err was produced by IllegalToken.
func IsIllegalToken(err error) bool {
	return errors.Is(err, errors.ErrCodeIllegalToken)
}

// IsIllegalSyllable reports whether err was produced by IllegalSyllable.
func IsIllegalSyllable(err error) bool {
	return errors.Is(err, errors.ErrCodeIllegalSyllable)
}
