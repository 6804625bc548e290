package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/layout"
)

// CheckSize rejects sentences whose compounds would hand more than
// maxSiblings units to a single container search.
func CheckSize(sentences []grammar.Sentence, maxSiblings int) error {
	for i, s := range sentences {
		for _, parts := range layout.SplitCompounds(s) {
			if n := layout.MaxSiblings(parts); n > maxSiblings {
				return errors.New(errors.ErrCodeTooLarge,
					"sentence %d: %d units in one container (max %d)", i+1, n, maxSiblings)
			}
		}
	}
	return nil
}

// Layout lays out sentences concurrently and concatenates their compounds
// in sentence order. The search stops when ctx is done, and a compound
// that would combine more than layout.DefaultMaxCombinations part options
// fails with TOO_LARGE.
func Layout(ctx context.Context, e *layout.Engine, sentences []grammar.Sentence, opts Options) (layout.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, err
	}
	if err := CheckSize(sentences, opts.MaxSiblings); err != nil {
		return layout.Layout{}, err
	}

	sel := opts.Render.Selector()
	results := make([]layout.Layout, len(sentences))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range sentences {
		g.Go(func() error {
			l, err := e.LayoutContext(ctx, s, sel, layout.DefaultMaxCombinations)
			if err != nil {
				return fmt.Errorf("sentence %d: %w", i+1, err)
			}
			results[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return layout.Layout{}, err
	}

	var out layout.Layout
	for _, r := range results {
		out.Compounds = append(out.Compounds, r.Compounds...)
	}
	return out, nil
}
