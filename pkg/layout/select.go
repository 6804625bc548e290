package layout

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/sitelen/pkg/grammar"
)

// SplitCompounds splits a sentence into punctuation-delimited runs. Each
// run ends with its punctuation part; trailing parts without punctuation
// form a final run.
func SplitCompounds(s grammar.Sentence) [][]grammar.Part {
	var (
		out [][]grammar.Part
		cur []grammar.Part
	)
	for _, p := range s.Parts {
		cur = append(cur, p)
		if p.Kind == grammar.Punctuation {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// SelectBest returns the option whose ratio is closest to optimal. The
// first of several equally close options wins. It reports false for an
// empty slice.
func SelectBest(options []Option, optimal float64) (Option, bool) {
	if len(options) == 0 {
		return Option{}, false
	}
	best := 0
	bestDiff := math.Abs(options[0].Ratio - optimal)
	for i := 1; i < len(options); i++ {
		if d := math.Abs(options[i].Ratio - optimal); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return options[best], true
}

// FilterRatio returns the options whose ratio lies in [lo, hi].
func FilterRatio(options []Option, lo, hi float64) []Option {
	var out []Option
	for _, o := range options {
		if o.Ratio >= lo && o.Ratio <= hi {
			out = append(out, o)
		}
	}
	return out
}

// Selector picks one option of a compound.
type Selector func(options []Option) (Option, bool)

// BestRatio selects the option closest to optimal.
func BestRatio(optimal float64) Selector {
	return func(options []Option) (Option, bool) {
		return SelectBest(options, optimal)
	}
}

// Within restricts sel to options with a ratio in [lo, hi]. If no option
// qualifies, sel sees all options.
func Within(lo, hi float64, sel Selector) Selector {
	return func(options []Option) (Option, bool) {
		if in := FilterRatio(options, lo, hi); len(in) > 0 {
			return sel(in)
		}
		return sel(options)
	}
}

// Random selects a pseudo-random option. The choice depends only on seed
// and the options themselves, so the same input always yields the same
// layout.
func Random(seed uint64) Selector {
	return func(options []Option) (Option, bool) {
		if len(options) == 0 {
			return Option{}, false
		}
		r := rand.New(rand.NewPCG(seed, uint64(len(options))))
		return options[r.IntN(len(options))], true
	}
}
