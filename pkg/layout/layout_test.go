package layout

import (
	"context"
	stderrors "errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/vocab"
)

func newEngine() *Engine {
	return NewEngine(vocab.Default())
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-4
}

func squares(tokens ...string) []Unit {
	return newEngine().WordUnits(tokens)
}

func TestSizeOf(t *testing.T) {
	tests := []struct {
		token string
		want  Size
	}{
		{"pona", Size{1, 1}},
		{"lili", Size{1, 0.5}},
		{"mute", Size{1, 0.5}},
		{"wan", Size{0.5, 1}},
		{"anu", Size{0.5, 1}},
		{"comma", Size{4, 0.5}},
		{"colon", Size{4, 0.5}},
		{"period", Size{4, 0.75}},
		{"question", Size{4, 0.75}},
		{"la", Size{4, 1}},
		{"banner", Size{4, 1}},
	}

	e := newEngine()
	for _, tt := range tests {
		if got := e.SizeOf(tt.token); got != tt.want {
			t.Errorf("SizeOf(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestSyllableSizeOf(t *testing.T) {
	e := newEngine()
	if got := e.SyllableSizeOf("lin"); got != (Size{0.5, 1}) {
		t.Errorf("SyllableSizeOf(lin) = %v, want narrow", got)
	}
	if got := e.SyllableSizeOf("mu"); got != (Size{1, 1}) {
		t.Errorf("SyllableSizeOf(mu) = %v, want square", got)
	}
}

func TestContainerEmpty(t *testing.T) {
	if got := newEngine().Container(nil); len(got) != 0 {
		t.Errorf("Container(nil) = %v, want empty", got)
	}
}

func TestContainerSingle(t *testing.T) {
	got := newEngine().Container(squares("lili"))
	if len(got) != 1 {
		t.Fatalf("Container() returned %d options, want 1", len(got))
	}
	o := got[0]
	if o.Size != (Size{1, 0.5}) || o.Ratio != 2 || o.Surface != 0.5 {
		t.Errorf("Container() = size %v ratio %v surface %v, want unit size", o.Size, o.Ratio, o.Surface)
	}
	if o.State.Units[0].Position != (Position{}) {
		t.Errorf("single unit position = %v, want origin", o.State.Units[0].Position)
	}
}

func TestContainerTwoSquares(t *testing.T) {
	got := newEngine().Container(squares("mi", "pona"))
	if len(got) != 2 {
		t.Fatalf("Container() returned %d options, want 2", len(got))
	}

	right, down := got[0], got[1]
	if right.Size != (Size{2, 1}) || right.Ratio != 2 {
		t.Errorf("first option = %v ratio %v, want 2x1", right.Size, right.Ratio)
	}
	if right.State.Units[1].Position != (Position{1, 0}) {
		t.Errorf("right unit position = %v, want (1,0)", right.State.Units[1].Position)
	}
	if down.Size != (Size{1, 2}) || down.Ratio != 0.5 {
		t.Errorf("second option = %v ratio %v, want 1x2", down.Size, down.Ratio)
	}
	if down.State.Units[1].Position != (Position{0, 1}) {
		t.Errorf("down unit position = %v, want (0,1)", down.State.Units[1].Position)
	}
	for _, o := range got {
		if o.State.Forbidden != nil {
			t.Errorf("finished option keeps forbidden positions: %v", o.State.Forbidden)
		}
	}
}

func TestContainerThreeSquares(t *testing.T) {
	got := newEngine().Container(squares("mi", "moku", "pona"))
	if len(got) != 6 {
		t.Fatalf("Container() returned %d options, want 6", len(got))
	}

	var sizes []Size
	for _, o := range got {
		sizes = append(sizes, o.Size)
	}
	want := []Size{{3, 1}, {2, 3}, {3, 2}, {1, 3}, {3, 2}, {2, 3}}
	if !reflect.DeepEqual(sizes, want) {
		t.Errorf("option sizes = %v, want %v", sizes, want)
	}
}

func TestContainerPunctuationNeverGoesRight(t *testing.T) {
	e := newEngine()
	units := append(e.WordUnits([]string{"mi"}), e.PunctuationUnit([]string{"period"}))

	got := e.Container(units)
	if len(got) != 1 {
		t.Fatalf("Container() returned %d options, want 1", len(got))
	}
	if !approx(got[0].Size.Width, 1) || !approx(got[0].Size.Height, 1.1875) {
		t.Errorf("Container() size = %v, want 1x1.1875", got[0].Size)
	}
	if p := got[0].State.Units[1].Position; p != (Position{0, 1}) {
		t.Errorf("punctuation position = %v, want (0,1)", p)
	}
}

func TestContainerProperties(t *testing.T) {
	e := newEngine()
	inputs := map[string][]Unit{
		"three squares":  squares("mi", "moku", "pona"),
		"four squares":   squares("jan", "lili", "li", "moku"),
		"mixed sizes":    squares("mi", "wan", "lili", "pona"),
		"narrow pair":    squares("tu", "wan"),
		"syllables":      e.SyllableUnits([]string{"son", "ja", "lin"}),
		"with modifiers": squares("kulupu", "mute", "en", "ni"),
	}

	for name, units := range inputs {
		t.Run(name, func(t *testing.T) {
			options := e.Container(units)
			if len(options) == 0 {
				t.Fatal("Container() returned no options")
			}

			runningMin := math.Inf(1)
			seen := make(map[string]bool)
			for _, o := range options {
				runningMin = min(runningMin, o.Surface)
				if o.Surface > 2*runningMin+Tolerance {
					t.Errorf("surface %v exceeds twice the minimum %v seen before it", o.Surface, runningMin)
				}

				key := Key(o)
				if seen[key] {
					t.Errorf("duplicate key %s", key)
				}
				seen[key] = true

				if o.NormedRatio <= 0 || o.NormedRatio > 1 {
					t.Errorf("NormedRatio = %v, want in (0,1]", o.NormedRatio)
				}
				if !approx(o.NormedRatio, math.Min(o.Ratio, 1/o.Ratio)) {
					t.Errorf("NormedRatio = %v, want min(%v, 1/%v)", o.NormedRatio, o.Ratio, o.Ratio)
				}
				if len(o.State.Units) != len(units) {
					t.Errorf("placed %d units, want %d", len(o.State.Units), len(units))
				}
				for _, p := range o.State.Units {
					if p.Size.Width < 1-Tolerance {
						t.Errorf("placed width %v below grid cell after normalization", p.Size.Width)
					}
				}
			}
		})
	}
}

func TestContainerPruningKeepsEarlierOptions(t *testing.T) {
	options := newEngine().Container(squares("jan", "lili", "li", "moku"))

	final := math.Inf(1)
	for _, o := range options {
		final = min(final, o.Surface)
	}

	kept := 0
	runningMin := math.Inf(1)
	for i, o := range options {
		runningMin = min(runningMin, o.Surface)
		if o.Surface > 2*runningMin+Tolerance {
			t.Errorf("option %d: surface %v above twice the minimum %v at acceptance", i, o.Surface, runningMin)
		}
		if o.Surface > 2*final+Tolerance {
			kept++
		}
	}
	if kept == 0 {
		t.Errorf("no option above twice the final minimum %v; a later, smaller surface removed earlier options", final)
	}
}

func TestContainerIdempotent(t *testing.T) {
	e := newEngine()
	for _, o := range e.Container(squares("mi", "moku", "pona")) {
		found := false
		for _, again := range e.Container(o.Units()) {
			if Key(again) == Key(o) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("relayout of %s did not reproduce it", Key(o))
		}
	}
}

func TestKey(t *testing.T) {
	o := newEngine().Container(squares("mi"))[0]
	want := "type:container|size:1.0000:1.0000|ratio:1.0000|surface:1.0000|wg:mi:pos(0.0000,0.0000):size(1.0000,1.0000)"
	if got := Key(o); got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func parseOne(t *testing.T, text string) grammar.Sentence {
	t.Helper()
	sentences, err := grammar.NewParser(vocab.Default()).Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", text, err)
	}
	if len(sentences) != 1 {
		t.Fatalf("Parse(%q) returned %d sentences, want 1", text, len(sentences))
	}
	return sentences[0]
}

func TestLayoutContextBoundsCombinations(t *testing.T) {
	s := parseOne(t, "jan pona ike li moku pona ike e kili pona ike e tomo suli ike "+
		"e telo pona suli e waso ike suli e soweli pona ike e pan suli pona.")

	done := make(chan error, 1)
	go func() {
		_, err := newEngine().LayoutContext(context.Background(), s, BestRatio(0.75), DefaultMaxCombinations)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, errors.ErrCodeTooLarge) {
			t.Errorf("LayoutContext() error = %v, want TOO_LARGE", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("LayoutContext() did not reject the compound before searching it")
	}
}

func TestLayoutContextStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine().LayoutContext(ctx, parseOne(t, "mi moku e kili."), BestRatio(0.75), 0)
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("LayoutContext() error = %v, want context.Canceled", err)
	}
}

func TestLayoutContextMatchesLayout(t *testing.T) {
	e := newEngine()
	s := parseOne(t, "tenpo ni la mi moku.")

	got, err := e.LayoutContext(context.Background(), s, BestRatio(0.75), DefaultMaxCombinations)
	if err != nil {
		t.Fatalf("LayoutContext() error = %v", err)
	}
	want := e.Layout(s, 0.75)
	if len(got.Compounds) != len(want.Compounds) {
		t.Fatalf("LayoutContext() has %d compounds, want %d", len(got.Compounds), len(want.Compounds))
	}
	for i := range want.Compounds {
		if Key(got.Compounds[i]) != Key(want.Compounds[i]) {
			t.Errorf("compound %d differs from Layout()", i)
		}
	}
}

func TestCompoundSimpleSentence(t *testing.T) {
	e := newEngine()
	s := parseOne(t, "mi pona.")

	got := e.Compound(s.Parts)
	if len(got) != 2 {
		t.Fatalf("Compound() returned %d options, want 2", len(got))
	}
	if !approx(got[0].Ratio, 2/1.375) || !approx(got[0].Surface, 2.75) {
		t.Errorf("first option ratio %v surface %v, want %v and 2.75", got[0].Ratio, got[0].Surface, 2/1.375)
	}
	if !approx(got[1].Ratio, 1/2.1875) || !approx(got[1].Surface, 2.1875) {
		t.Errorf("second option ratio %v surface %v, want %v and 2.1875", got[1].Ratio, got[1].Surface, 1/2.1875)
	}

	subject := e.Compound(s.Parts[:1])
	hasTwoWords := false
	for _, o := range subject {
		inner := o.State.Units[0].Unit
		words := 0
		for _, p := range inner.Units {
			if p.Unit.Kind == KindWord {
				words++
			}
		}
		if inner.Kind == KindContainer && words == 2 {
			hasTwoWords = true
		}
	}
	if !hasTwoWords {
		t.Error("Compound(subject) has no option with two word placements")
	}
}

func TestCompoundStampsLastPart(t *testing.T) {
	e := newEngine()

	withMarker := e.Compound([]grammar.Part{
		{Kind: grammar.Subject, Tokens: []string{"mi"}},
		{Kind: grammar.ObjectMarker, Separator: "li", Tokens: []string{"pona"}},
	})
	if len(withMarker) != 2 {
		t.Fatalf("Compound() returned %d options, want 2", len(withMarker))
	}
	for _, o := range withMarker {
		if o.Separator != "li" || o.Type != TypeContainer {
			t.Errorf("option stamped %s/%q, want container/li", o.Type, o.Separator)
		}
		if sep := o.State.Units[0].Unit.Separator; sep != "" {
			t.Errorf("first container separator = %q, want empty", sep)
		}
		if sep := o.State.Units[1].Unit.Separator; sep != "li" {
			t.Errorf("second container separator = %q, want li", sep)
		}
	}

	for _, o := range e.Compound(parseOne(t, "mi pona.").Parts) {
		if o.Type != TypePunctuation || o.Separator != "" {
			t.Errorf("option stamped %s/%q, want punctuation with no separator", o.Type, o.Separator)
		}
	}
}

func TestCompoundCartouche(t *testing.T) {
	e := newEngine()
	got := e.Compound([]grammar.Part{{
		Kind: grammar.Subject,
		Parts: []grammar.Part{
			{Kind: grammar.Subject, Separator: grammar.SeparatorCartouche, Tokens: []string{"son", "ja"}},
		},
	}})
	if len(got) == 0 {
		t.Fatal("Compound() returned no options")
	}

	outer := got[0].State.Units[0].Unit
	if outer.Kind != KindContainer || len(outer.Units) != 1 {
		t.Fatalf("outer unit = %+v, want one nested container", outer)
	}
	cartouche := outer.Units[0].Unit
	if cartouche.Separator != grammar.SeparatorCartouche {
		t.Errorf("nested separator = %q, want cartouche", cartouche.Separator)
	}
	for _, p := range cartouche.Units {
		if p.Unit.Kind != KindSyllable {
			t.Errorf("cartouche unit kind = %s, want syllable", p.Unit.Kind)
		}
	}
}

func TestCompoundEmpty(t *testing.T) {
	if got := newEngine().Compound(nil); got != nil {
		t.Errorf("Compound(nil) = %v, want nil", got)
	}
}

func TestSplitCompounds(t *testing.T) {
	s := parseOne(t, "tenpo ni la mi moku")
	got := SplitCompounds(s)
	if len(got) != 2 {
		t.Fatalf("SplitCompounds() returned %d compounds, want 2", len(got))
	}
	if len(got[0]) != 2 || got[0][1].Kind != grammar.Punctuation {
		t.Errorf("first compound = %+v, want content then la", got[0])
	}
	if len(got[1]) != 1 || got[1][0].Kind != grammar.Subject {
		t.Errorf("trailing compound = %+v, want one subject", got[1])
	}
}

func TestSelectBest(t *testing.T) {
	options := []Option{{Ratio: 0.5}, {Ratio: 0.8}, {Ratio: 1.0}}
	got, ok := SelectBest(options, 0.75)
	if !ok || got.Ratio != 0.8 {
		t.Errorf("SelectBest() = %v, %v, want ratio 0.8", got.Ratio, ok)
	}

	tie := []Option{{Ratio: 0.5, Surface: 1}, {Ratio: 1.0, Surface: 2}}
	if got, _ := SelectBest(tie, 0.75); got.Surface != 1 {
		t.Errorf("SelectBest() tie = surface %v, want first option", got.Surface)
	}

	if _, ok := SelectBest(nil, 0.75); ok {
		t.Error("SelectBest(nil) ok = true, want false")
	}
}

func TestSelectBestIsClosest(t *testing.T) {
	options := newEngine().Container(squares("mi", "moku", "pona", "kili"))
	for _, target := range []float64{0.25, 0.75, 1, 2.5} {
		best, ok := SelectBest(options, target)
		if !ok {
			t.Fatal("SelectBest() ok = false")
		}
		for _, o := range options {
			if math.Abs(o.Ratio-target) < math.Abs(best.Ratio-target) {
				t.Errorf("SelectBest(%v) = %v, but %v is closer", target, best.Ratio, o.Ratio)
			}
		}
	}
}

func TestFilterRatioAndWithin(t *testing.T) {
	options := []Option{{Ratio: 0.5}, {Ratio: 0.8}, {Ratio: 3}}

	if got := FilterRatio(options, 1, 4); len(got) != 1 || got[0].Ratio != 3 {
		t.Errorf("FilterRatio(1, 4) = %v, want [3]", got)
	}

	got, _ := Within(1, 4, BestRatio(0.75))(options)
	if got.Ratio != 3 {
		t.Errorf("Within(1, 4) = %v, want 3", got.Ratio)
	}

	got, _ = Within(10, 20, BestRatio(0.75))(options)
	if got.Ratio != 0.8 {
		t.Errorf("Within(10, 20) fallback = %v, want 0.8", got.Ratio)
	}
}

func TestRandom(t *testing.T) {
	options := newEngine().Container(squares("mi", "moku", "pona"))

	a, _ := Random(42)(options)
	b, _ := Random(42)(options)
	if Key(a) != Key(b) {
		t.Error("Random() with the same seed chose different options")
	}

	if _, ok := Random(1)(nil); ok {
		t.Error("Random()(nil) ok = true, want false")
	}
}

func TestLayout(t *testing.T) {
	e := newEngine()

	l := e.Layout(parseOne(t, "mi pona."), 0.75)
	if len(l.Compounds) != 1 {
		t.Fatalf("Layout() returned %d compounds, want 1", len(l.Compounds))
	}
	if !approx(l.Compounds[0].Ratio, 1/2.1875) {
		t.Errorf("Layout() ratio = %v, want %v", l.Compounds[0].Ratio, 1/2.1875)
	}

	l = e.Layout(parseOne(t, "tenpo ni la mi moku."), 0.75)
	if len(l.Compounds) != 2 {
		t.Errorf("Layout() returned %d compounds, want 2", len(l.Compounds))
	}
}

func TestLayoutSize(t *testing.T) {
	l := Layout{Compounds: []Option{
		{Size: Size{2, 1}},
		{Size: Size{1, 1}},
	}}
	if got := l.Size(); got != (Size{2, 3}) {
		t.Errorf("Size() = %v, want 2x3", got)
	}
}

func TestMaxSiblings(t *testing.T) {
	parts := []grammar.Part{
		{Kind: grammar.Subject, Tokens: []string{"jan", "pona", "mute"}},
		{Kind: grammar.ObjectMarker, Separator: "li", Parts: []grammar.Part{
			{Kind: grammar.Subject, Tokens: []string{"moku", "pi", "kili", "suli", "mute"}},
		}},
	}
	if got := MaxSiblings(parts); got != 5 {
		t.Errorf("MaxSiblings() = %d, want 5", got)
	}
}
