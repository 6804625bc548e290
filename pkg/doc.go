// Package pkg provides the core libraries for sitelen, a toki pona glyph
// layout engine.
//
// # Overview
//
// sitelen turns toki pona text into grammar trees and packs every compound of
// a sentence into a compact two-dimensional arrangement of glyphs, in the
// spirit of sitelen sitelen writing. The pkg directory is organized into four
// areas:
//
//  1. [vocab], [segment], [grammar] - Language (word tables, sentence
//     splitting, grammatical analysis)
//  2. [layout] - The packing search and option selection
//  3. [render] - Glyph identifiers, rendering config and output sinks
//  4. [pipeline], [cache], [observability] - Orchestration (parse → layout →
//     render) with caching and hooks
//
// # Architecture
//
// The typical data flow:
//
//	toki pona text
//	     ↓
//	[segment] package (sentences, punctuation, protected names)
//	     ↓
//	[grammar] package (parts: subjects, object markers, prepositions, ...)
//	     ↓
//	[layout] package (container search per compound, selection by ratio)
//	     ↓
//	[render/sink] package (SVG/HTML/JSON/PNG/PDF)
//
// # Quick Start
//
// Parse, lay out and render a sentence:
//
//	import (
//	    "github.com/matzehuels/sitelen/pkg/grammar"
//	    "github.com/matzehuels/sitelen/pkg/layout"
//	    "github.com/matzehuels/sitelen/pkg/render/sink"
//	    "github.com/matzehuels/sitelen/pkg/vocab"
//	)
//
//	v := vocab.Default()
//
//	// 1. Parse
//	sentences, err := grammar.NewParser(v).Parse("jan Sonja li pona.")
//
//	// 2. Lay out every compound, closest to a 0.75 width/height ratio
//	l := layout.NewEngine(v).Layout(sentences[0], 0.75)
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(l)
//
// Most callers go through [pipeline.Runner] instead, which validates options,
// lays out sentences in parallel and caches every stage:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger, nil)
//	opts := pipeline.DefaultOptions()
//	opts.Text = "mi olin e sina."
//	result, err := runner.Execute(ctx, opts)
//
// # Main Packages
//
// [vocab] - The immutable word, syllable and class tables. [vocab.Default] is
// built in; [vocab.Load] reads a TOML replacement.
//
// [segment] - Splits text into sentences and content/punctuation segments,
// and protects capitalized proper names from analysis.
//
// [grammar] - Classifies the words of a segment into parts, splits
// preposition containers and syllabifies proper names. Errors carry the
// offending word or syllable.
//
// [layout] - The pruned backtracking search over unit placements, the
// Cartesian product over part options, and the selectors that pick one
// option per compound.
//
// [render] - Glyph identifiers, separator scales, [render.Config] and
// rasterization through rsvg-convert.
//
//   - [render/sink]: Output formats (SVG, HTML, JSON, PNG, PDF) and sprites
//   - [render/tree]: Grammar trees drawn with Graphviz
//
// [pipeline] - The complete parse → layout → render pipeline used by the CLI
// and the HTTP API.
//
// [cache] - Cache backends (file, Redis, null) and the keyer that derives
// stage keys from content hashes and options.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./...                # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example ./pkg/... # Examples only
//
// [vocab]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/vocab
// [segment]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/segment
// [grammar]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/grammar
// [layout]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/render/sink
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/render/tree
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/sitelen/pkg/errors
package pkg
