package sink

import (
	"bytes"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/matzehuels/sitelen/pkg/layout"
	"github.com/matzehuels/sitelen/pkg/render"
)

// boxSize is the side of the square view box every container draws into.
const boxSize = 100.0

const shadowFilter = `<filter id="shadow" width="150%" height="150%"><feOffset result="offOut" in="SourceGraphic" dx="0" dy="2"></feOffset>` +
	`<feColorMatrix result="matrixOut" in="offOut" type="matrix" values="0.2 0 0 0 0 0 0.2 0 0 0 0 0 0.2 0 0 0 0 0 1 0"></feColorMatrix>` +
	`<feGaussianBlur result="blurOut" in="matrixOut" stdDeviation="2"></feGaussianBlur><feBlend in="SourceGraphic" in2="blurOut" mode="normal"></feBlend></filter>`

// Sprite maps glyph identifiers to the inner markup of their symbol, drawn
// in a 100×100 box.
type Sprite map[string]string

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	config render.Config
	sprite Sprite
	title  string
	used   map[string]struct{}
}

// WithConfig sets the rendering configuration (default [render.DefaultConfig]).
func WithConfig(c render.Config) SVGOption { return func(r *svgRenderer) { r.config = c } }

// WithSprite supplies glyph artwork for exportable output. Glyphs missing
// from s get a labelled placeholder.
func WithSprite(s Sprite) SVGOption { return func(r *svgRenderer) { r.sprite = s } }

// WithTitle adds a <title> element, typically the source text.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG draws l as a standalone SVG document. Compounds are scaled to
// the widest compound and stacked top to bottom.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	cfg := r.config

	size := l.Size()
	boxW, boxH := size.Width*boxSize, size.Height*boxSize
	vbX := -(boxW*cfg.ScaleSkew - boxW) / 2
	vbY := -(boxH*cfg.Scale - boxH) / 2
	vbW, vbH := boxW*cfg.ScaleSkew, boxH*cfg.Scale

	var body bytes.Buffer
	y := 0.0
	for _, c := range l.Compounds {
		if c.Size.Width <= 0 {
			continue
		}
		h := c.Size.Height * size.Width / c.Size.Width * boxSize
		filter := ""
		if cfg.Shadow {
			filter = ` filter="url(#shadow)"`
		}
		fmt.Fprintf(&body, `<svg width="%s" height="%s" viewBox="0 0 100 100" y="%s" preserveAspectRatio="none"%s>`+"\n",
			num(boxW), num(h), num(y), filter)
		body.WriteString(`<g style="overflow:visible">` + "\n")
		r.renderUnits(&body, c.State.Units, c.Size)
		body.WriteString("</g>\n</svg>\n")
		y += h
	}

	var buf bytes.Buffer
	height := ""
	if !cfg.IgnoreHeight {
		height = fmt.Sprintf(` height="%s"`, num(vbH))
	}
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.2" preserveAspectRatio="xMidYMin meet" viewBox="%s %s %s %s" width="%s"%s>`+"\n",
		num(vbX), num(vbY), num(vbW), num(vbH), num(vbW), height)
	if r.title != "" {
		fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, `<style>ellipse,polygon,polyline,rect,circle,line,path{stroke-width:%s;stroke:black;vector-effect:non-scaling-stroke} .filler{stroke:none;}</style>`+"\n",
		num(cfg.StrokeWidth))
	if cfg.Shadow {
		buf.WriteString(shadowFilter + "\n")
	}
	if cfg.Exportable {
		r.renderDefs(&buf)
	}
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{config: render.DefaultConfig(), used: make(map[string]struct{})}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// box is a placed unit in the 100×100 coordinates of its parent.
type box struct {
	x, y, w, h float64
}

func boxOf(p layout.Placed, parent layout.Size) box {
	return box{
		x: p.Position.X * boxSize / parent.Width,
		y: p.Position.Y * boxSize / parent.Height,
		w: p.Size.Width * boxSize / parent.Width,
		h: p.Size.Height * boxSize / parent.Height,
	}
}

func (b box) center() (float64, float64) {
	return b.x + b.w/2, b.y + b.h/2
}

// matrix scales by (sx, sy) around the box center, then shifts by (dx, dy).
func (b box) matrix(sx, sy, dx, dy float64) string {
	cx, cy := b.center()
	return fmt.Sprintf("matrix(%s,0,0,%s,%s,%s)", num(sx), num(sy), num(cx-sx*cx+dx), num(cy-sy*cy+dy))
}

func (r *svgRenderer) renderUnits(buf *bytes.Buffer, units []layout.Placed, parent layout.Size) {
	if parent.Width <= 0 || parent.Height <= 0 {
		return
	}
	for _, p := range units {
		b := boxOf(p, parent)
		switch p.Unit.Kind {
		case layout.KindContainer:
			r.renderContainer(buf, p, b, parent)
		case layout.KindWord:
			r.use(buf, render.WordGlyphID(p.Unit.Token()), b, b.matrix(r.config.Scale, r.config.Scale, 0, 0))
		case layout.KindSyllable:
			r.use(buf, render.SyllableGlyphID(p.Unit.Token()), b, b.matrix(r.config.Scale, r.config.Scale, 0, 0))
		case layout.KindPunctuation:
			for _, tag := range p.Unit.Tokens {
				r.use(buf, render.WordGlyphID(tag), b, b.matrix(r.config.Scale, r.config.Scale, 0, 0))
			}
		}
	}
}

func (r *svgRenderer) renderContainer(buf *bytes.Buffer, p layout.Placed, b box, parent layout.Size) {
	u := p.Unit
	ratio := p.Size.Ratio()
	base := r.config.Scale
	sep := render.SeparatorScale(u.Separator, ratio, base)
	zoom := render.ContainerScale(u.Separator, ratio, base)

	if u.Separator != "" {
		m := b.matrix(sep[0], sep[1], sep[2], sep[3])
		if u.Separator == "li" {
			longest := max(p.Size.Width, p.Size.Height)
			rx := 15 / parent.Width * longest / sep[0]
			ry := 15 / parent.Height * longest / sep[1]
			fmt.Fprintf(buf, `<rect transform="%s" height="%s" width="%s" x="%s" y="%s" rx="%s" ry="%s" fill="#fff"></rect>`+"\n",
				m, num(b.h), num(b.w), num(b.x), num(b.y), num(rx), num(ry))
		} else {
			r.use(buf, render.ContainerGlyphID(u.Separator, ratio), b, m)
		}
	}

	offY := sep[3]
	if u.Type == layout.TypePunctuation {
		offY = 20
	}
	pad := (boxSize*zoom - boxSize) / 2
	fmt.Fprintf(buf, `<svg viewBox="%s %s %s %s" preserveAspectRatio="none" height="%s" width="%s" x="%s" y="%s">`+"\n",
		num(sep[2]-pad), num(offY-pad), num(boxSize*zoom), num(boxSize*zoom), num(b.h), num(b.w), num(b.x), num(b.y))
	buf.WriteString(`<g style="overflow:visible">` + "\n")
	r.renderUnits(buf, u.Units, u.Size)
	buf.WriteString("</g>\n</svg>\n")
}

func (r *svgRenderer) use(buf *bytes.Buffer, id string, b box, transform string) {
	r.used[id] = struct{}{}
	fmt.Fprintf(buf, `<use href="#%s" transform="%s" height="%s" width="%s" x="%s" y="%s"></use>`+"\n",
		html.EscapeString(id), transform, num(b.h), num(b.w), num(b.x), num(b.y))
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer) {
	if len(r.used) == 0 {
		return
	}
	ids := make([]string, 0, len(r.used))
	for id := range r.used {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	buf.WriteString("<defs>\n")
	for _, id := range ids {
		inner, ok := r.sprite[id]
		if !ok {
			inner = placeholder(id)
		}
		fmt.Fprintf(buf, `<symbol id="%s" viewBox="0 0 100 100" preserveAspectRatio="none">%s</symbol>`+"\n", html.EscapeString(id), inner)
	}
	buf.WriteString("</defs>\n")
}

// placeholder draws an outlined box labelled with the glyph's name.
func placeholder(id string) string {
	return fmt.Sprintf(`<rect class="filler" x="5" y="5" width="90" height="90" fill="none"></rect>`+
		`<text x="50" y="58" font-size="22" text-anchor="middle" font-family="sans-serif">%s</text>`,
		html.EscapeString(glyphLabel(id)))
}

func glyphLabel(id string) string {
	for _, prefix := range []string{"tp-wg-", "tp-syl-", "tp-c-"} {
		if label, ok := strings.CutPrefix(id, prefix); ok {
			return label
		}
	}
	return id
}

func num(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
