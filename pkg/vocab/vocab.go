// Package vocab holds the closed vocabulary the parser and layout engine
// work against.
//
// A [Vocabulary] is built once, either from the embedded defaults ([Default])
// or from a TOML file ([Load]), and is never mutated afterwards. It is safe to
// share one instance between any number of goroutines.
package vocab

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sitelen/pkg/errors"
)

// DefaultVersion identifies the built-in tables.
const DefaultVersion = "pu-2024.1"

// NamePlaceholder stands in for a proper name while a content span is
// classified. It bypasses the word check and keeps its capitalization.
const NamePlaceholder = "'Name'"

// Set is a read-only string set.
type Set map[string]struct{}

// NewSet builds a set from words.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Has reports whether w is a member of s.
func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Sorted returns the members of s in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes s as a sorted array, so equal sets encode to equal
// bytes. The pipeline hashes the encoded vocabulary into cache keys.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of members.
func (s *Set) UnmarshalJSON(data []byte) error {
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return err
	}
	*s = NewSet(words...)
	return nil
}

// Vocabulary is the immutable table set consumed by the segmenter, the
// grammar analyzer and the layout engine.
type Vocabulary struct {
	Version string

	Words                 Set
	Syllables             Set
	Prepositions          Set
	ObjectMarkers         Set
	PrepositionContainers Set

	// Sizing categories.
	SmallModifiers      Set
	NarrowModifiers     Set
	NarrowSyllables     Set
	SinglePunctuation   Set
	SentencePunctuation Set
	LargePunctuation    Set
}

// IsWord reports whether token passes the vocabulary gate.
func (v *Vocabulary) IsWord(token string) bool {
	return token == NamePlaceholder || v.Words.Has(token)
}

// IsPunctuation reports whether tag belongs to one of the punctuation classes.
func (v *Vocabulary) IsPunctuation(tag string) bool {
	return v.SinglePunctuation.Has(tag) || v.SentencePunctuation.Has(tag) || v.LargePunctuation.Has(tag)
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	return &Vocabulary{
		Version:               DefaultVersion,
		Words:                 NewSet(defaultWords...),
		Syllables:             NewSet(defaultSyllables...),
		Prepositions:          NewSet(defaultPrepositions...),
		ObjectMarkers:         NewSet(defaultObjectMarkers...),
		PrepositionContainers: NewSet(append(slices.Clone(defaultPrepositions), "pi")...),
		SmallModifiers:        NewSet(defaultSmallModifiers...),
		NarrowModifiers:       NewSet(defaultNarrowModifiers...),
		NarrowSyllables:       NewSet(defaultNarrowSyllables...),
		SinglePunctuation:     NewSet(defaultSinglePunctuation...),
		SentencePunctuation:   NewSet(defaultSentencePunctuation...),
		LargePunctuation:      NewSet(defaultLargePunctuation...),
	}
}

// file mirrors the TOML layout of a vocabulary file.
type file struct {
	Version               string   `toml:"version"`
	Words                 []string `toml:"words"`
	Syllables             []string `toml:"syllables"`
	Prepositions          []string `toml:"prepositions"`
	ObjectMarkers         []string `toml:"object_markers"`
	PrepositionContainers []string `toml:"preposition_containers"`
	Sizes                 struct {
		SmallModifiers      []string `toml:"small_modifiers"`
		NarrowModifiers     []string `toml:"narrow_modifiers"`
		NarrowSyllables     []string `toml:"narrow_syllables"`
		SinglePunctuation   []string `toml:"single_punctuation"`
		SentencePunctuation []string `toml:"sentence_punctuation"`
		LargePunctuation    []string `toml:"large_punctuation"`
	} `toml:"sizes"`
}

// Load decodes a TOML vocabulary file. Tables absent from the file keep
// their default contents; tables present but empty are rejected for words
// and syllables.
//
//	version = "custom-1"
//	words = ["mi", "sina", "pona"]
//
//	[sizes]
//	small_modifiers = ["lili"]
func Load(r io.Reader) (*Vocabulary, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidVocabulary, err, "decode vocabulary")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidVocabulary, "unknown vocabulary key %q", undecoded[0].String())
	}

	v := Default()
	if f.Version != "" {
		v.Version = f.Version
	}

	override := func(dst *Set, key string, words []string, required bool) error {
		if !md.IsDefined(strings.Split(key, ".")...) {
			return nil
		}
		if required && len(words) == 0 {
			return errors.New(errors.ErrCodeInvalidVocabulary, "%s cannot be empty", key).WithInput(key)
		}
		*dst = NewSet(words...)
		return nil
	}

	for _, o := range []struct {
		dst      *Set
		key      string
		words    []string
		required bool
	}{
		{&v.Words, "words", f.Words, true},
		{&v.Syllables, "syllables", f.Syllables, true},
		{&v.Prepositions, "prepositions", f.Prepositions, false},
		{&v.ObjectMarkers, "object_markers", f.ObjectMarkers, false},
		{&v.PrepositionContainers, "preposition_containers", f.PrepositionContainers, false},
		{&v.SmallModifiers, "sizes.small_modifiers", f.Sizes.SmallModifiers, false},
		{&v.NarrowModifiers, "sizes.narrow_modifiers", f.Sizes.NarrowModifiers, false},
		{&v.NarrowSyllables, "sizes.narrow_syllables", f.Sizes.NarrowSyllables, false},
		{&v.SinglePunctuation, "sizes.single_punctuation", f.Sizes.SinglePunctuation, false},
		{&v.SentencePunctuation, "sizes.sentence_punctuation", f.Sizes.SentencePunctuation, false},
		{&v.LargePunctuation, "sizes.large_punctuation", f.Sizes.LargePunctuation, false},
	} {
		if err := override(o.dst, o.key, o.words, o.required); err != nil {
			return nil, err
		}
	}

	return v, nil
}
