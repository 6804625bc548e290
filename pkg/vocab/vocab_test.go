package vocab

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/sitelen/pkg/errors"
)

func TestDefault(t *testing.T) {
	v := Default()

	tests := []struct {
		name string
		set  Set
		word string
		want bool
	}{
		{"word", v.Words, "pona", true},
		{"word punctuation mark", v.Words, ".", true},
		{"unknown word", v.Words, "xyz", false},
		{"syllable", v.Syllables, "mu", true},
		{"syllable with n", v.Syllables, "jan", true},
		{"illegal syllable", v.Syllables, "ti", false},
		{"preposition", v.Prepositions, "tawa", true},
		{"pi is not a preposition", v.Prepositions, "pi", false},
		{"pi is a container", v.PrepositionContainers, "pi", true},
		{"preposition is a container", v.PrepositionContainers, "kepeken", true},
		{"object marker", v.ObjectMarkers, "li", true},
		{"small modifier", v.SmallModifiers, "lili", true},
		{"narrow modifier", v.NarrowModifiers, "wan", true},
		{"narrow syllable", v.NarrowSyllables, "sun", true},
		{"sentence punctuation", v.SentencePunctuation, "period", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Has(tt.word); got != tt.want {
				t.Errorf("Has(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}

	if v.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", v.Version, DefaultVersion)
	}
}

func TestDefaultIsFresh(t *testing.T) {
	a, b := Default(), Default()
	delete(a.Words, "pona")
	if !b.Words.Has("pona") {
		t.Error("Default() instances should not share tables")
	}
}

func TestIsWord(t *testing.T) {
	v := Default()
	if !v.IsWord(NamePlaceholder) {
		t.Error("IsWord(placeholder) = false, want true")
	}
	if !v.IsWord("mi") {
		t.Error("IsWord(mi) = false, want true")
	}
	if v.IsWord("Mi") {
		t.Error("IsWord(Mi) = true, want false")
	}
}

func TestIsPunctuation(t *testing.T) {
	v := Default()
	for _, tag := range []string{"comma", "colon", "period", "question", "la", "banner"} {
		if !v.IsPunctuation(tag) {
			t.Errorf("IsPunctuation(%q) = false, want true", tag)
		}
	}
	if v.IsPunctuation("pona") {
		t.Error("IsPunctuation(pona) = true, want false")
	}
}

func TestSorted(t *testing.T) {
	got := NewSet("tu", "e", "li").Sorted()
	want := []string{"e", "li", "tu"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestSetJSON(t *testing.T) {
	data, err := json.Marshal(NewSet("tu", "e", "li"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `["e","li","tu"]` {
		t.Errorf("Marshal() = %s, want a sorted array", data)
	}

	var back Set
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(back) != 3 || !back.Has("li") {
		t.Errorf("Unmarshal() = %v", back.Sorted())
	}

	a, _ := json.Marshal(Default())
	b, _ := json.Marshal(Default())
	if string(a) != string(b) {
		t.Error("equal vocabularies encode differently")
	}
}

func TestLoad(t *testing.T) {
	doc := `
version = "custom-1"
words = ["mi", "sina", "pona", "li"]

[sizes]
small_modifiers = ["pona"]
`
	v, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if v.Version != "custom-1" {
		t.Errorf("Version = %q, want %q", v.Version, "custom-1")
	}
	if v.Words.Has("moku") {
		t.Error("overridden word list should not contain defaults")
	}
	if !v.Words.Has("sina") {
		t.Error("overridden word list should contain sina")
	}
	if !v.SmallModifiers.Has("pona") || v.SmallModifiers.Has("lili") {
		t.Errorf("SmallModifiers = %v, want [pona]", v.SmallModifiers.Sorted())
	}
	if !v.Syllables.Has("mu") {
		t.Error("syllables absent from file should keep defaults")
	}
	if !v.NarrowModifiers.Has("wan") {
		t.Error("narrow modifiers absent from file should keep defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `words = [`},
		{"empty words", `words = []`},
		{"empty syllables", `syllables = []`},
		{"unknown key", `verbs = ["moku"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidVocabulary) {
				t.Errorf("Load() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidVocabulary)
			}
		})
	}
}
