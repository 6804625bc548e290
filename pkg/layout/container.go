package layout

import "math"

// initialMinSurface seeds the running pruning threshold.
const initialMinSurface = 1e6

// search accumulates the finished options of one Container call.
type search struct {
	w          *walk
	err        error
	units      []Unit
	options    []Option
	seen       map[string]struct{}
	minSurface float64
}

// Container returns every compact arrangement of units, in discovery order.
//
// The first unit sits at the origin. Each step takes a run of the next k
// units and either stacks it below the current box (down) or appends it as
// a column on the right. Units of a down run must share their height and
// units of a right run their width; the run is scaled to span the box.
// Runs starting with a punctuation unit never go right. A down run may not
// start a unit at a position recorded as forbidden by an earlier run of the
// same branch.
//
// Finished arrangements are normalized, deduplicated by Key and dropped if
// their surface exceeds twice the smallest surface seen so far. The
// threshold only tightens; options accepted earlier are kept.
func (e *Engine) Container(units []Unit) []Option {
	out, _ := e.container(unbounded(), units)
	return out
}

func (e *Engine) container(w *walk, units []Unit) ([]Option, error) {
	if len(units) == 0 {
		return nil, nil
	}

	first := units[0].Size
	root := State{
		Units:     []Placed{{Unit: units[0], Size: first}},
		Size:      first,
		Forbidden: []Position{{X: first.Width, Y: first.Height}},
	}
	if len(units) == 1 {
		o := newOption(root)
		o.State.Forbidden = nil
		return []Option{o}, nil
	}

	s := &search{
		w:          w,
		units:      units,
		seen:       make(map[string]struct{}),
		minSurface: initialMinSurface,
	}
	s.extend(root, 1)
	if s.err != nil {
		return nil, s.err
	}
	return s.options, nil
}

// extend tries every run length and direction starting at index. It
// unwinds once the walk reports an error.
func (s *search) extend(st State, index int) {
	if s.err != nil {
		return
	}
	if s.err = s.w.tick(); s.err != nil {
		return
	}
	for k := 1; index+k <= len(s.units) && s.err == nil; k++ {
		if !s.units[index].IsPunctuation() {
			s.place(st, index, k, false)
		}
		s.place(st, index, k, true)
	}
}

// place appends the run units[index:index+k] to st and continues the
// search, or records the result once every unit is placed.
func (s *search) place(st State, index, k int, down bool) {
	run := s.units[index : index+k]

	ref := run[0].Size
	var sum Size
	for _, u := range run {
		if down && math.Abs(u.Size.Height-ref.Height) > Tolerance {
			return
		}
		if !down && math.Abs(u.Size.Width-ref.Width) > Tolerance {
			return
		}
		sum.Width += u.Size.Width
		sum.Height += u.Size.Height
	}

	next := st.extend(k)
	pos := Position{X: st.Size.Width}
	if down {
		pos = Position{Y: st.Size.Height}
	}

	for i, u := range run {
		var g Size
		if down {
			add := u.Size.Height * st.Size.Width / sum.Width
			g = Size{Width: u.Size.Width * add / u.Size.Height, Height: add}
		} else {
			add := u.Size.Width * st.Size.Height / sum.Height
			g = Size{Width: add, Height: u.Size.Height * add / u.Size.Width}
		}

		if i == 0 {
			if down {
				next.Size.Height += g.Height
			} else {
				next.Size.Width += g.Width
			}
		}

		if down && next.forbids(pos) {
			return
		}

		next.Units = append(next.Units, Placed{Unit: u, Size: g, Position: pos})

		var forbidden Position
		if down {
			pos.X += g.Width
			forbidden = Position{X: pos.X + g.Width, Y: pos.Y}
		} else {
			pos.Y += g.Height
			forbidden = Position{X: pos.X, Y: pos.Y + g.Height}
		}
		next.Forbidden = append(next.Forbidden, forbidden)
	}

	if index+k == len(s.units) {
		s.complete(next)
		return
	}
	s.extend(next, index+k)
}

func (s *search) complete(st State) {
	st.Forbidden = nil
	o := normalize(newOption(st))

	s.minSurface = min(s.minSurface, o.Surface)
	if o.Surface > 2*s.minSurface {
		return
	}

	key := Key(o)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.options = append(s.options, o)
}
