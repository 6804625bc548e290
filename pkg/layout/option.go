package layout

import (
	"fmt"
	"strings"
)

// OptionType tags an option as a regular container or a punctuation mark.
type OptionType int

const (
	TypeContainer OptionType = iota
	TypePunctuation
)

func (t OptionType) String() string {
	switch t {
	case TypeContainer:
		return "container"
	case TypePunctuation:
		return "punctuation"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t OptionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *OptionType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "container":
		*t = TypeContainer
	case "punctuation":
		*t = TypePunctuation
	default:
		return fmt.Errorf("unknown option type %q", b)
	}
	return nil
}

// State is a partial or finished arrangement. Forbidden holds positions
// where no later down-stacked run may start; it is only meaningful during
// the search and is dropped from finished options.
type State struct {
	Units     []Placed   `json:"units"`
	Size      Size       `json:"size"`
	Forbidden []Position `json:"-"`
}

// extend returns a copy of s whose slices can be appended to without
// affecting s.
func (s State) extend(n int) State {
	units := make([]Placed, len(s.Units), len(s.Units)+n)
	copy(units, s.Units)
	forbidden := make([]Position, len(s.Forbidden), len(s.Forbidden)+n)
	copy(forbidden, s.Forbidden)
	return State{Units: units, Size: s.Size, Forbidden: forbidden}
}

func (s State) forbids(p Position) bool {
	for _, f := range s.Forbidden {
		if f.near(p) {
			return true
		}
	}
	return false
}

// Option is a finished candidate arrangement.
type Option struct {
	Type        OptionType `json:"type"`
	Separator   string     `json:"separator,omitempty"`
	State       State      `json:"state"`
	Size        Size       `json:"size"`
	Ratio       float64    `json:"ratio"`
	NormedRatio float64    `json:"normed_ratio"`
	Surface     float64    `json:"surface"`
}

func newOption(s State) Option {
	r := s.Size.Ratio()
	return Option{
		Type:        TypeContainer,
		State:       s,
		Size:        s.Size,
		Ratio:       r,
		NormedRatio: NormedRatio(r),
		Surface:     s.Size.Surface(),
	}
}

// normalize rescales o so the narrowest placed unit is at least one grid
// cell wide. Options whose units are all at least one cell wide are left
// unchanged.
func normalize(o Option) Option {
	d := 1.0
	for _, p := range o.State.Units {
		d = min(d, p.Size.Width)
	}
	if d <= 0 || d == 1 {
		return o
	}

	units := make([]Placed, len(o.State.Units))
	for i, p := range o.State.Units {
		units[i] = Placed{Unit: p.Unit, Size: p.Size.Scale(d), Position: p.Position.Scale(d)}
	}
	o.State.Units = units
	o.State.Size = o.State.Size.Scale(d)
	o.Size = o.Size.Scale(d)
	o.Surface /= d * d
	return o
}

// Key returns the canonical identity of o: its type, size, ratio and
// surface followed by every placed unit's kind, token, position and size.
// Two options with equal keys are the same arrangement.
func Key(o Option) string {
	var b strings.Builder
	fmt.Fprintf(&b, "type:%s|size:%.4f:%.4f|ratio:%.4f|surface:%.4f|",
		o.Type, o.Size.Width, o.Size.Height, o.Ratio, o.Surface)

	for i, p := range o.State.Units {
		if i > 0 {
			b.WriteByte('|')
		}
		u := p.Unit
		switch u.Kind {
		case KindWord:
			fmt.Fprintf(&b, "wg:%s", u.Token())
		case KindSyllable:
			fmt.Fprintf(&b, "syl:%s", u.Token())
		case KindPunctuation:
			fmt.Fprintf(&b, "punct:%v", u.Tokens)
		case KindContainer:
			sep := u.Separator
			if sep == "" {
				sep = "none"
			}
			fmt.Fprintf(&b, "cont:%s:sep:%s", u.Type, sep)
		}
		fmt.Fprintf(&b, ":pos(%.4f,%.4f):size(%.4f,%.4f)",
			p.Position.X, p.Position.Y, p.Size.Width, p.Size.Height)
	}
	return b.String()
}

// Units returns the intrinsic units of o in placement order.
func (o Option) Units() []Unit {
	units := make([]Unit, len(o.State.Units))
	for i, p := range o.State.Units {
		units[i] = p.Unit
	}
	return units
}

// Layout is the chosen option of every compound of a sentence, in order.
type Layout struct {
	Compounds []Option `json:"compounds"`
}

// Size returns the bounding size of l when every compound is scaled to the
// widest compound's width and stacked vertically.
func (l Layout) Size() Size {
	var s Size
	for _, c := range l.Compounds {
		s.Width = max(s.Width, c.Size.Width)
	}
	for _, c := range l.Compounds {
		if c.Size.Width > 0 {
			s.Height += c.Size.Height * s.Width / c.Size.Width
		}
	}
	return s
}
