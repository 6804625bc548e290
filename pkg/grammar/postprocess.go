package grammar

import (
	"unicode"
	"unicode/utf8"
)

// Postprocess applies the preposition-container split and then the
// proper-name split to every subject, object and prepositional part.
// The input slice is not modified.
func (a *Analyzer) Postprocess(parts []Part) ([]Part, error) {
	out := make([]Part, len(parts))
	for i, p := range parts {
		if p.Kind.IsContainer() && p.IsLeaf() {
			p = a.splitContainer(p)
		}
		named, err := a.splitNames(p)
		if err != nil {
			return nil, err
		}
		out[i] = named
	}
	return out, nil
}

// splitContainer splits p at the last non-final container word into an
// optional prefix and a suffix carrying the word as separator.
func (a *Analyzer) splitContainer(p Part) Part {
	at := -1
	for j := 0; j < len(p.Tokens)-1; j++ {
		if a.vocab.PrepositionContainers.Has(p.Tokens[j]) {
			at = j
		}
	}
	if at < 0 {
		return p
	}

	var nested []Part
	if at > 0 {
		nested = append(nested, Part{Kind: Subject, Tokens: clone(p.Tokens[:at])})
	}
	nested = append(nested, Part{Kind: Subject, Separator: p.Tokens[at], Tokens: clone(p.Tokens[at+1:])})

	p.Tokens = nil
	p.Parts = nested
	return p
}

// splitNames replaces capitalized tokens with cartouche sub-parts holding
// their syllables. Plain spans between names become sub-parts without a
// separator. Parts already holding nested parts are recursed into.
func (a *Analyzer) splitNames(p Part) (Part, error) {
	if !p.Kind.IsContainer() {
		return p, nil
	}

	if !p.IsLeaf() {
		nested := make([]Part, len(p.Parts))
		for i, sub := range p.Parts {
			s, err := a.splitNames(sub)
			if err != nil {
				return p, err
			}
			nested[i] = s
		}
		p.Parts = nested
		return p, nil
	}

	if p.Separator == SeparatorCartouche || !hasName(p.Tokens) {
		return p, nil
	}

	var nested []Part
	last := 0
	for i, tok := range p.Tokens {
		if !isName(tok) {
			continue
		}
		if i > last {
			nested = append(nested, Part{Kind: Subject, Tokens: clone(p.Tokens[last:i])})
		}
		syllables, err := a.Syllabify(tok)
		if err != nil {
			return p, err
		}
		nested = append(nested, Part{Kind: Subject, Separator: SeparatorCartouche, Tokens: syllables})
		last = i + 1
	}
	if last < len(p.Tokens) {
		nested = append(nested, Part{Kind: Subject, Tokens: clone(p.Tokens[last:])})
	}

	p.Tokens = nil
	p.Parts = nested
	return p, nil
}

func isName(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(r)
}

func hasName(tokens []string) bool {
	for _, tok := range tokens {
		if isName(tok) {
			return true
		}
	}
	return false
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
