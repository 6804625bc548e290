package grammar

import (
	"fmt"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/segment"
	"github.com/matzehuels/sitelen/pkg/vocab"
)

// Parser turns raw text into structured sentences.
type Parser struct {
	segmenter *segment.Segmenter
	analyzer  *Analyzer
}

// NewParser returns a Parser over v.
func NewParser(v *vocab.Vocabulary) *Parser {
	return &Parser{
		segmenter: segment.New(),
		analyzer:  NewAnalyzer(v),
	}
}

// Analyzer returns the analyzer used for content spans.
func (p *Parser) Analyzer() *Analyzer {
	return p.analyzer
}

// Parse segments text and parses every sentence. The first failing
// sentence aborts the call.
func (p *Parser) Parse(text string) ([]Sentence, error) {
	raw := p.segmenter.Segment(text)
	out := make([]Sentence, 0, len(raw))
	for i, r := range raw {
		s, err := p.ParseSentence(r)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Result is the outcome of parsing one sentence.
type Result struct {
	Sentence Sentence
	Err      error
}

// ParseEach parses every sentence independently, so a failure only affects
// its own result.
func (p *Parser) ParseEach(text string) []Result {
	raw := p.segmenter.Segment(text)
	out := make([]Result, len(raw))
	for i, r := range raw {
		out[i].Sentence, out[i].Err = p.ParseSentence(r)
	}
	return out
}

// ParseSentence parses one segmented sentence. Punctuation segments become
// punctuation parts carrying their tag.
func (p *Parser) ParseSentence(s segment.Sentence) (Sentence, error) {
	var parts []Part
	for _, seg := range s.Segments {
		if seg.Kind == segment.Punctuation {
			parts = append(parts, Part{Kind: Punctuation, Tokens: []string{seg.Text}})
			continue
		}

		masked, names := segment.ProtectNames(seg.Text)
		analyzed, err := p.analyzer.Analyze(masked)
		if err != nil {
			return Sentence{}, err
		}
		for i := range analyzed {
			for j, tok := range analyzed[i].Tokens {
				analyzed[i].Tokens[j] = names.Restore(tok)
			}
		}
		if n := names.Remaining(); n > 0 {
			return Sentence{}, errors.New(errors.ErrCodeInternal,
				"%d of %d protected names were not restored", n, names.Len()).WithInput(seg.Text)
		}
		parts = append(parts, analyzed...)
	}

	parts, err := p.analyzer.Postprocess(parts)
	if err != nil {
		return Sentence{}, err
	}
	return Sentence{Parts: parts}, nil
}
