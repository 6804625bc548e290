package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/render"
)

// Options configures grammar tree rendering.
type Options struct {
	// Detailed adds the part kind and separator to every node label.
	// When false, leaves show only their tokens.
	Detailed bool
}

// ToDOT converts parsed sentences to Graphviz DOT source. Every sentence
// becomes a root node whose children are its parts; nested parts hang
// below their container.
//
// Punctuation parts are drawn with dashed outlines and grey fill.
func ToDOT(sentences []grammar.Sentence, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	for i, s := range sentences {
		root := fmt.Sprintf("s%d", i)
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", root, fmt.Sprintf("sentence %d", i+1))
		writeParts(&buf, &edges, root, s.Parts, opts)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeParts(buf *bytes.Buffer, edges *[]string, parent string, parts []grammar.Part, opts Options) {
	for i, p := range parts {
		id := fmt.Sprintf("%s.%d", parent, i)
		fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(fmtAttrs(p, fmtLabel(p, opts.Detailed)), ", "))
		*edges = append(*edges, fmt.Sprintf("  %q -> %q;\n", parent, id))
		writeParts(buf, edges, id, p.Parts, opts)
	}
}

func fmtLabel(p grammar.Part, detailed bool) string {
	tokens := strings.Join(p.Tokens, " ")
	if p.Separator == grammar.SeparatorCartouche {
		tokens = "[" + strings.Join(p.Tokens, "") + "]"
	}
	if !detailed {
		switch {
		case p.Separator != "" && tokens != "" && p.Separator != grammar.SeparatorCartouche:
			return p.Separator + " " + tokens
		case tokens != "":
			return tokens
		default:
			return p.Kind.String()
		}
	}

	head := p.Kind.String()
	if p.Separator != "" {
		head += " (" + p.Separator + ")"
	}
	if tokens == "" {
		return head
	}
	return head + "\n" + tokens
}

func fmtAttrs(p grammar.Part, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if p.Kind == grammar.Punctuation {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose view
// box starts at the origin and whose size matches the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
