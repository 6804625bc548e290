// Package tree draws the grammar tree of parsed sentences with Graphviz.
//
// Convert sentences to DOT, then render to SVG:
//
//	dot := tree.ToDOT(sentences, tree.Options{Detailed: true})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// Rendering runs Graphviz in-process through [github.com/goccy/go-graphviz],
// so no system installation is needed for SVG. PDF and PNG output go
// through [render.ToPDF] and [render.ToPNG] and need rsvg-convert.
//
// [render.ToPDF]: github.com/matzehuels/sitelen/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/sitelen/pkg/render.ToPNG
package tree
