// Package grammar classifies sentence content into typed parts.
//
// The [Parser] drives the whole front end: it segments text, masks proper
// names, runs the [Analyzer] over every content span, restores the names
// and applies the postprocessing passes. Failures are reported as
// [IllegalToken] or [IllegalSyllable] errors and are local to one sentence;
// [Parser.ParseEach] lets callers skip failing sentences.
package grammar

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/sitelen/pkg/vocab"
)

// Analyzer classifies tokens against a vocabulary. It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	vocab *vocab.Vocabulary
}

// NewAnalyzer returns an Analyzer over v.
func NewAnalyzer(v *vocab.Vocabulary) *Analyzer {
	return &Analyzer{vocab: v}
}

// Vocabulary returns the tables the analyzer validates against.
func (a *Analyzer) Vocabulary() *vocab.Vocabulary {
	return a.vocab
}

// Analyze splits content on whitespace and classifies every token in a
// single pass. The cursor starts on an empty subject; object markers and
// prepositions open new parts, "o" turns the current part into an address
// and "a" after content becomes an interjection. Parts left empty are
// dropped.
func (a *Analyzer) Analyze(content string) ([]Part, error) {
	lower := cases.Lower(language.Und)
	tokens := strings.Fields(content)
	words := make([]string, len(tokens))
	for i, tok := range tokens {
		words[i] = lower.String(tok)
	}

	parts := []Part{{Kind: Subject}}
	cur := 0
	open := func(p Part) {
		parts = append(parts, p)
		cur = len(parts) - 1
	}

	for i, word := range words {
		last := i == len(words)-1

		switch {
		case a.vocab.ObjectMarkers.Has(word) && !last:
			open(Part{Kind: ObjectMarker, Separator: word})
			continue

		case a.vocab.Prepositions.Has(word) && !last &&
			(i == 0 || !a.vocab.ObjectMarkers.Has(words[i-1])) &&
			!a.vocab.ObjectMarkers.Has(words[i+1]):
			open(Part{Kind: PrepPhrase, Separator: word})
			continue

		case word == SeparatorAddress && len(parts[cur].Tokens) > 0:
			parts[cur] = Part{Kind: Address, Separator: SeparatorAddress, Tokens: parts[cur].Tokens}
			open(Part{Kind: Subject})
			continue

		case word == "a" && len(parts[cur].Tokens) > 0:
			parts = append(parts, Part{Kind: Interjection, Tokens: []string{word}})
			open(Part{Kind: Subject})
			continue
		}

		if tokens[i] == vocab.NamePlaceholder {
			parts[cur].Tokens = append(parts[cur].Tokens, tokens[i])
			continue
		}
		if !a.vocab.Words.Has(word) {
			return nil, IllegalToken(word)
		}
		parts[cur].Tokens = append(parts[cur].Tokens, word)
	}

	out := parts[:0]
	for _, p := range parts {
		if len(p.Tokens) > 0 || len(p.Parts) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}
