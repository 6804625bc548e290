package pipeline

import (
	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/grammar"
)

// Parse runs the parse stage. Without SkipInvalid the first failing
// sentence fails the whole text. With it, failing sentences are reported
// in Parsed.Skipped; the call only fails if no sentence survives.
func Parse(p *grammar.Parser, opts Options) (Parsed, error) {
	if err := opts.ValidateForParse(); err != nil {
		return Parsed{}, err
	}

	if !opts.SkipInvalid {
		sentences, err := p.Parse(opts.Text)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Sentences: sentences}, nil
	}

	var (
		out      Parsed
		firstErr error
	)
	for i, r := range p.ParseEach(opts.Text) {
		if r.Err != nil {
			opts.Logger.Warn("skipping sentence", "index", i+1, "err", errors.UserMessage(r.Err))
			out.Skipped = append(out.Skipped, newSentenceError(i+1, r.Err))
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		out.Sentences = append(out.Sentences, r.Sentence)
	}
	if len(out.Sentences) == 0 && firstErr != nil {
		return Parsed{}, firstErr
	}
	return out, nil
}
