// Package layout packs sized glyph units into compact rectangular
// arrangements.
//
// The engine performs an exhaustive, pruned backtracking search over every
// way a list of units can be stacked into a container ([Engine.Container]),
// composes sentence parts into compounds ([Engine.Compound]) and picks one
// arrangement per punctuation-delimited compound ([Engine.Layout]).
//
// The search is deterministic. An input without any valid arrangement
// yields no options, which renders as empty. [Engine.LayoutContext] is the
// bounded entry point for untrusted input: it stops when its context is
// done and fails with TOO_LARGE instead of expanding a compound into more
// than a given number of part combinations.
package layout

import (
	"context"

	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/vocab"
)

// Engine lays out sentences using the sizing tables of a vocabulary. It
// holds no mutable state and is safe for concurrent use.
type Engine struct {
	vocab *vocab.Vocabulary
}

// NewEngine returns an Engine over v.
func NewEngine(v *vocab.Vocabulary) *Engine {
	return &Engine{vocab: v}
}

// DefaultMaxCombinations bounds the part combinations one compound may
// expand into. Each combination is a full container search, and three-word
// parts yield six options each, so this admits five such parts.
const DefaultMaxCombinations = 10000

// Layout splits s into compounds and selects the option closest to
// optimalRatio for each. Compounds without options are skipped.
func (e *Engine) Layout(s grammar.Sentence, optimalRatio float64) Layout {
	return e.LayoutWith(s, BestRatio(optimalRatio))
}

// LayoutWith is like Layout but selects options with sel.
func (e *Engine) LayoutWith(s grammar.Sentence, sel Selector) Layout {
	l, _ := e.LayoutContext(context.Background(), s, sel, 0)
	return l
}

// LayoutContext is like LayoutWith but returns ctx.Err() once ctx is done,
// and a TOO_LARGE error when a compound would combine more than
// maxCombinations part options. maxCombinations <= 0 disables the bound.
func (e *Engine) LayoutContext(ctx context.Context, s grammar.Sentence, sel Selector, maxCombinations int) (Layout, error) {
	w := &walk{ctx: ctx, limit: maxCombinations}
	var l Layout
	for _, parts := range SplitCompounds(s) {
		options, err := e.compound(w, parts)
		if err != nil {
			return Layout{}, err
		}
		if o, ok := sel(options); ok {
			l.Compounds = append(l.Compounds, o)
		}
	}
	return l, nil
}

// walk carries the cancellation and size bound through one layout.
type walk struct {
	ctx   context.Context
	limit int
	steps int
}

// tick counts one search step and polls the context every checkEvery
// steps.
func (w *walk) tick() error {
	w.steps++
	if w.steps%checkEvery != 0 {
		return nil
	}
	return w.ctx.Err()
}

const checkEvery = 256

func unbounded() *walk {
	return &walk{ctx: context.Background()}
}
