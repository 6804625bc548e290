// Package render turns sentence layouts into output documents.
//
// # Overview
//
// The layout engine produces a [layout.Layout]: one chosen arrangement per
// compound, with every unit's position and size relative to its parent
// container. This package holds the pieces shared by every output format:
//
//   - [Config]: scale, skew, ratio window and styling knobs
//   - Glyph identifiers: [WordGlyphID], [SyllableGlyphID], [ContainerGlyphID]
//   - Separator and container scale tables used to place container glyphs
//   - Format conversion ([ToPNG], [ToPDF]) via the external rsvg-convert tool
//
// Byte emission lives in the [sink] subpackage (SVG, HTML, JSON, PNG, PDF);
// the [tree] subpackage draws the grammar tree of a sentence with Graphviz.
//
//	svg := sink.RenderSVG(l, sink.WithConfig(render.DefaultConfig()))
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [layout.Layout]: github.com/matzehuels/sitelen/pkg/layout.Layout
// [sink]: github.com/matzehuels/sitelen/pkg/render/sink
// [tree]: github.com/matzehuels/sitelen/pkg/render/tree
package render
