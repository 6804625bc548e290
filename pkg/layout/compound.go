package layout

import (
	"slices"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/grammar"
)

// partOptions are the candidate arrangements of one sentence part.
type partOptions struct {
	typ       OptionType
	separator string
	options   []Option
}

// Compound returns every arrangement of parts. Each part is laid out on
// its own (nested parts recursively, cartouches with syllable units), then
// every combination of one option per part is wrapped into container units
// and laid out as a container.
//
// Every resulting option carries the type and separator of the last part.
func (e *Engine) Compound(parts []grammar.Part) []Option {
	out, _ := e.compound(unbounded(), parts)
	return out
}

func (e *Engine) compound(w *walk, parts []grammar.Part) ([]Option, error) {
	if len(parts) == 0 {
		return nil, nil
	}

	entries := make([]partOptions, len(parts))
	for i, p := range parts {
		po, err := e.partOptions(w, p)
		if err != nil {
			return nil, err
		}
		entries[i] = po
	}

	if w.limit > 0 {
		n := 1
		for _, en := range entries {
			n *= len(en.options)
			if n > w.limit {
				return nil, errors.New(errors.ErrCodeTooLarge,
					"compound of %d parts has more than %d arrangements to combine", len(parts), w.limit)
			}
		}
	}

	var out []Option
	if err := e.combine(w, entries, 0, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) partOptions(w *walk, p grammar.Part) (partOptions, error) {
	var (
		po    = partOptions{separator: p.Separator}
		units []Unit
	)
	switch {
	case p.Kind == grammar.Punctuation:
		po = partOptions{typ: TypePunctuation}
		units = []Unit{e.PunctuationUnit(p.Tokens)}
	case p.Kind == grammar.Interjection:
		po.separator = ""
		units = e.WordUnits(p.Tokens)
	case p.Kind == grammar.Address:
		units = e.WordUnits(p.Tokens)
	case !p.IsLeaf():
		options, err := e.compound(w, p.Parts)
		po.options = options
		return po, err
	case p.Separator == grammar.SeparatorCartouche:
		units = e.SyllableUnits(p.Tokens)
	default:
		units = e.WordUnits(p.Tokens)
	}

	options, err := e.container(w, units)
	po.options = options
	return po, err
}

// combine walks the Cartesian product of the part options depth first
// without materializing it.
func (e *Engine) combine(w *walk, entries []partOptions, index int, units []Unit, out *[]Option) error {
	entry := entries[index]
	for _, o := range entry.options {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		next := append(slices.Clip(units), Unit{
			Kind:      KindContainer,
			Size:      o.Size,
			Units:     o.State.Units,
			Separator: entry.separator,
			Type:      entry.typ,
		})

		if index+1 < len(entries) {
			if err := e.combine(w, entries, index+1, next, out); err != nil {
				return err
			}
			continue
		}
		options, err := e.container(w, next)
		if err != nil {
			return err
		}
		for _, c := range options {
			c.Type = entry.typ
			c.Separator = entry.separator
			*out = append(*out, c)
		}
	}
	return nil
}

// MaxSiblings returns the largest number of units any single container
// search over parts would receive. The search cost grows exponentially
// with this number.
func MaxSiblings(parts []grammar.Part) int {
	n := len(parts)
	for _, p := range parts {
		if p.IsLeaf() {
			n = max(n, len(p.Tokens))
			continue
		}
		n = max(n, MaxSiblings(p.Parts))
	}
	return n
}
