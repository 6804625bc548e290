package grammar

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/vocab"
)

func newAnalyzer() *Analyzer {
	return NewAnalyzer(vocab.Default())
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Part
	}{
		{
			name:    "simple subject",
			content: "mi pona",
			want:    []Part{{Kind: Subject, Tokens: []string{"mi", "pona"}}},
		},
		{
			name:    "object marker",
			content: "mi li pona",
			want: []Part{
				{Kind: Subject, Tokens: []string{"mi"}},
				{Kind: ObjectMarker, Separator: "li", Tokens: []string{"pona"}},
			},
		},
		{
			name:    "verb and object",
			content: "mi moku e kili",
			want: []Part{
				{Kind: Subject, Tokens: []string{"mi", "moku"}},
				{Kind: ObjectMarker, Separator: "e", Tokens: []string{"kili"}},
			},
		},
		{
			name:    "final object marker is a word",
			content: "ona li",
			want: []Part{
				{Kind: Subject, Tokens: []string{"ona", "li"}},
			},
		},
		{
			name:    "prepositional phrase",
			content: "mi lape lon tomo",
			want: []Part{
				{Kind: Subject, Tokens: []string{"mi", "lape"}},
				{Kind: PrepPhrase, Separator: "lon", Tokens: []string{"tomo"}},
			},
		},
		{
			name:    "preposition after object marker",
			content: "mi li tawa tomo",
			want: []Part{
				{Kind: Subject, Tokens: []string{"mi"}},
				{Kind: ObjectMarker, Separator: "li", Tokens: []string{"tawa", "tomo"}},
			},
		},
		{
			name:    "preposition before object marker",
			content: "ona tawa li pona",
			want: []Part{
				{Kind: Subject, Tokens: []string{"ona", "tawa"}},
				{Kind: ObjectMarker, Separator: "li", Tokens: []string{"pona"}},
			},
		},
		{
			name:    "final preposition",
			content: "ona li lon",
			want: []Part{
				{Kind: Subject, Tokens: []string{"ona"}},
				{Kind: ObjectMarker, Separator: "li", Tokens: []string{"lon"}},
			},
		},
		{
			name:    "address",
			content: "jan Ali o moku",
			want: []Part{
				{Kind: Address, Separator: "o", Tokens: []string{"jan", "ali"}},
				{Kind: Subject, Tokens: []string{"moku"}},
			},
		},
		{
			name:    "leading o is a word",
			content: "o moku",
			want:    []Part{{Kind: Subject, Tokens: []string{"o", "moku"}}},
		},
		{
			name:    "interjection",
			content: "pona a mi kama",
			want: []Part{
				{Kind: Subject, Tokens: []string{"pona"}},
				{Kind: Interjection, Tokens: []string{"a"}},
				{Kind: Subject, Tokens: []string{"mi", "kama"}},
			},
		},
		{
			name:    "lower-cases words",
			content: "MI Pona",
			want:    []Part{{Kind: Subject, Tokens: []string{"mi", "pona"}}},
		},
		{
			name:    "placeholder keeps case",
			content: "jan 'Name' li pona",
			want: []Part{
				{Kind: Subject, Tokens: []string{"jan", "'Name'"}},
				{Kind: ObjectMarker, Separator: "li", Tokens: []string{"pona"}},
			},
		},
		{
			name:    "empty",
			content: "   ",
			want:    []Part{},
		},
	}

	a := newAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Analyze(tt.content)
			if err != nil {
				t.Fatalf("Analyze(%q) error = %v", tt.content, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Analyze(%q) = %+v, want %+v", tt.content, got, tt.want)
			}
		})
	}
}

func TestAnalyzeIllegalToken(t *testing.T) {
	_, err := newAnalyzer().Analyze("mi xyz")
	if !IsIllegalToken(err) {
		t.Fatalf("Analyze() error = %v, want illegal token", err)
	}
	if got := errors.GetInput(err); got != "xyz" {
		t.Errorf("GetInput() = %q, want %q", got, "xyz")
	}
}

func TestVocabularyGate(t *testing.T) {
	v := vocab.Default()
	a := NewAnalyzer(v)

	for _, w := range v.Words.Sorted() {
		if _, err := a.Analyze(w); err != nil {
			t.Errorf("Analyze(%q) error = %v, want nil", w, err)
		}
	}
	for _, w := range []string{"xyz", "hello", "tokii", "kijetesantakalu2"} {
		if _, err := a.Analyze(w); !IsIllegalToken(err) {
			t.Errorf("Analyze(%q) error = %v, want illegal token", w, err)
		}
	}
}

func TestSyllabify(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"Mu", []string{"mu"}},
		{"Mun", []string{"mun"}},
		{"Sonja", []string{"son", "ja"}},
		{"Anna", []string{"an", "na"}},
		{"Inli", []string{"in", "li"}},
		{"Ale", []string{"a", "le"}},
		{"Tomasi", []string{"to", "ma", "si"}},
		{"Kalan", []string{"ka", "lan"}},
		{"Ijo", []string{"i", "jo"}},
		{"On", []string{"on"}},
	}

	a := newAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Syllabify(tt.name)
			if err != nil {
				t.Fatalf("Syllabify(%q) error = %v", tt.name, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Syllabify(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSyllabifyIllegal(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
	}{
		{"Ti", "ti"},
		{"Wu", "wu"},
		{"Mut", "t"},
		{"Robert", "ro"},
	}

	a := newAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Syllabify(tt.name)
			if !IsIllegalSyllable(err) {
				t.Fatalf("Syllabify(%q) error = %v, want illegal syllable", tt.name, err)
			}
			if got := errors.GetInput(err); got != tt.chunk {
				t.Errorf("Syllabify(%q) chunk = %q, want %q", tt.name, got, tt.chunk)
			}
		})
	}
}

func TestPostprocessContainerSplit(t *testing.T) {
	tests := []struct {
		name string
		in   Part
		want Part
	}{
		{
			name: "prefix and suffix",
			in:   Part{Kind: Subject, Tokens: []string{"jan", "tawa", "tomo"}},
			want: Part{Kind: Subject, Parts: []Part{
				{Kind: Subject, Tokens: []string{"jan"}},
				{Kind: Subject, Separator: "tawa", Tokens: []string{"tomo"}},
			}},
		},
		{
			name: "pi without prefix",
			in:   Part{Kind: ObjectMarker, Separator: "e", Tokens: []string{"pi", "telo"}},
			want: Part{Kind: ObjectMarker, Separator: "e", Parts: []Part{
				{Kind: Subject, Separator: "pi", Tokens: []string{"telo"}},
			}},
		},
		{
			name: "last occurrence wins",
			in:   Part{Kind: Subject, Tokens: []string{"jan", "pi", "ma", "pi", "telo"}},
			want: Part{Kind: Subject, Parts: []Part{
				{Kind: Subject, Tokens: []string{"jan", "pi", "ma"}},
				{Kind: Subject, Separator: "pi", Tokens: []string{"telo"}},
			}},
		},
		{
			name: "final container word stays",
			in:   Part{Kind: Subject, Tokens: []string{"ona", "lon"}},
			want: Part{Kind: Subject, Tokens: []string{"ona", "lon"}},
		},
		{
			name: "address untouched",
			in:   Part{Kind: Address, Separator: "o", Tokens: []string{"jan", "pi", "ma"}},
			want: Part{Kind: Address, Separator: "o", Tokens: []string{"jan", "pi", "ma"}},
		},
	}

	a := newAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Postprocess([]Part{tt.in})
			if err != nil {
				t.Fatalf("Postprocess() error = %v", err)
			}
			if !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("Postprocess() = %+v, want %+v", got[0], tt.want)
			}
			if err := got[0].Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestPostprocessNames(t *testing.T) {
	tests := []struct {
		name string
		in   Part
		want Part
	}{
		{
			name: "lone name",
			in:   Part{Kind: Subject, Tokens: []string{"Mu"}},
			want: Part{Kind: Subject, Parts: []Part{
				{Kind: Subject, Separator: SeparatorCartouche, Tokens: []string{"mu"}},
			}},
		},
		{
			name: "name between plain spans",
			in:   Part{Kind: Subject, Tokens: []string{"jan", "Sonja", "pona"}},
			want: Part{Kind: Subject, Parts: []Part{
				{Kind: Subject, Tokens: []string{"jan"}},
				{Kind: Subject, Separator: SeparatorCartouche, Tokens: []string{"son", "ja"}},
				{Kind: Subject, Tokens: []string{"pona"}},
			}},
		},
		{
			name: "name inside container split",
			in:   Part{Kind: PrepPhrase, Separator: "tawa", Tokens: []string{"ma", "pi", "Mun"}},
			want: Part{Kind: PrepPhrase, Separator: "tawa", Parts: []Part{
				{Kind: Subject, Tokens: []string{"ma"}},
				{Kind: Subject, Separator: "pi", Parts: []Part{
					{Kind: Subject, Separator: SeparatorCartouche, Tokens: []string{"mun"}},
				}},
			}},
		},
	}

	a := newAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Postprocess([]Part{tt.in})
			if err != nil {
				t.Fatalf("Postprocess() error = %v", err)
			}
			if !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("Postprocess() = %+v, want %+v", got[0], tt.want)
			}
			if err := got[0].Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestPostprocessDoesNotMutateInput(t *testing.T) {
	in := []Part{{Kind: Subject, Tokens: []string{"jan", "tawa", "tomo"}}}
	if _, err := newAnalyzer().Postprocess(in); err != nil {
		t.Fatal(err)
	}
	if len(in[0].Tokens) != 3 || len(in[0].Parts) != 0 {
		t.Errorf("input modified: %+v", in[0])
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Sentence
	}{
		{
			name: "simple sentence",
			text: "mi pona.",
			want: []Sentence{{Parts: []Part{
				{Kind: Subject, Tokens: []string{"mi", "pona"}},
				{Kind: Punctuation, Tokens: []string{"period"}},
			}}},
		},
		{
			name: "object marker",
			text: "mi li pona.",
			want: []Sentence{{Parts: []Part{
				{Kind: Subject, Tokens: []string{"mi"}},
				{Kind: ObjectMarker, Separator: "li", Tokens: []string{"pona"}},
				{Kind: Punctuation, Tokens: []string{"period"}},
			}}},
		},
		{
			name: "proper name",
			text: "Mu li pona.",
			want: []Sentence{{Parts: []Part{
				{Kind: Subject, Parts: []Part{
					{Kind: Subject, Separator: SeparatorCartouche, Tokens: []string{"mu"}},
				}},
				{Kind: ObjectMarker, Separator: "li", Tokens: []string{"pona"}},
				{Kind: Punctuation, Tokens: []string{"period"}},
			}}},
		},
		{
			name: "repeated names restore in order",
			text: "jan Mu li olin e jan Ijo e jan Mu.",
			want: []Sentence{{Parts: []Part{
				{Kind: Subject, Parts: []Part{
					{Kind: Subject, Tokens: []string{"jan"}},
					{Kind: Subject, Separator: SeparatorCartouche, Tokens: []string{"mu"}},
				}},
				{Kind: ObjectMarker, Separator: "li", Tokens: []string{"olin"}},
				{Kind: ObjectMarker, Separator: "e", Parts: []Part{
					{Kind: Subject, Tokens: []string{"jan"}},
					{Kind: Subject, Separator: SeparatorCartouche, Tokens: []string{"i", "jo"}},
				}},
				{Kind: ObjectMarker, Separator: "e", Parts: []Part{
					{Kind: Subject, Tokens: []string{"jan"}},
					{Kind: Subject, Separator: SeparatorCartouche, Tokens: []string{"mu"}},
				}},
				{Kind: Punctuation, Tokens: []string{"period"}},
			}}},
		},
		{
			name: "la clause",
			text: "tenpo ni la mi moku.",
			want: []Sentence{{Parts: []Part{
				{Kind: Subject, Tokens: []string{"tenpo", "ni"}},
				{Kind: Punctuation, Tokens: []string{"la"}},
				{Kind: Subject, Tokens: []string{"mi", "moku"}},
				{Kind: Punctuation, Tokens: []string{"period"}},
			}}},
		},
	}

	p := NewParser(vocab.Default())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.text, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	p := NewParser(vocab.Default())

	_, err := p.Parse("mi xyz.")
	if !IsIllegalToken(err) || errors.GetInput(err) != "xyz" {
		t.Errorf("Parse(mi xyz.) error = %v, want illegal token xyz", err)
	}

	_, err = p.Parse("jan Robert li pona.")
	if !IsIllegalSyllable(err) {
		t.Errorf("Parse(jan Robert) error = %v, want illegal syllable", err)
	}
}

func TestParseEach(t *testing.T) {
	results := NewParser(vocab.Default()).ParseEach("mi pona. mi xyz. sina pona.")
	if len(results) != 3 {
		t.Fatalf("ParseEach() returned %d results, want 3", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("ParseEach() sibling errors = %v, %v, want nil", results[0].Err, results[2].Err)
	}
	if !IsIllegalToken(results[1].Err) {
		t.Errorf("ParseEach()[1] error = %v, want illegal token", results[1].Err)
	}
}

func TestPartValidate(t *testing.T) {
	bad := []Part{
		{Kind: Subject, Tokens: []string{"mi"}, Parts: []Part{{Kind: Subject, Tokens: []string{"pona"}}}},
		{Kind: Address, Parts: []Part{{Kind: Subject, Tokens: []string{"pona"}}}},
		{Kind: Subject, Parts: []Part{{Kind: Interjection, Parts: []Part{{Kind: Subject}}}}},
	}
	for i, p := range bad {
		if err := p.Validate(); err == nil {
			t.Errorf("Validate() #%d error = nil, want error", i)
		}
	}
}

func TestPartKindJSON(t *testing.T) {
	in := Part{Kind: ObjectMarker, Separator: "li", Tokens: []string{"pona"}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"kind":"object_marker","tokens":["pona"],"separator":"li"}`
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var out Part
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("json round trip = %+v, want %+v", out, in)
	}
}
