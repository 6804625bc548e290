// Package sink provides the output format renderers for sentence layouts.
//
// # Overview
//
// A "sink" transforms a [layout.Layout] into a final output format:
//
//   - SVG: nested boxes per compound, glyphs referenced with <use href>
//   - HTML: a minimal page wrapping the SVG
//   - JSON: the full placement tree, decodable with [DecodeJSON]
//   - PDF and PNG: SVG converted by rsvg-convert
//
// # SVG Output
//
// [RenderSVG] stacks compounds top to bottom, each scaled to the width of
// the widest one. Every container is drawn into a 100×100 view box; word,
// syllable and punctuation glyphs are <use> references to symbols named
// by [render.WordGlyphID] and [render.SyllableGlyphID]. Containers with a
// separator get their separator glyph ([render.ContainerGlyphID]), except
// "li" which is drawn as a rounded rectangle.
//
//	svg := sink.RenderSVG(l,
//	    sink.WithConfig(cfg),
//	    sink.WithSprite(sprite),
//	    sink.WithTitle(text),
//	)
//
// With [render.Config.Exportable] set, a <defs> block defines every
// referenced glyph, taken from the [Sprite] or drawn as a labelled
// placeholder, so the document is self-contained.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first, then convert via
// [render.ToPDF] and [render.ToPNG]. These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Layout]: github.com/matzehuels/sitelen/pkg/layout.Layout
package sink
