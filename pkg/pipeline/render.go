package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/sitelen/pkg/cache"
	"github.com/matzehuels/sitelen/pkg/layout"
	"github.com/matzehuels/sitelen/pkg/render"
	"github.com/matzehuels/sitelen/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, name := range opts.Formats {
		format, _ := render.ParseFormat(name)

		var (
			data []byte
			err  error
		)
		switch format {
		case render.FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case render.FormatHTML:
			data = sink.RenderHTML(l, svgOpts...)
		case render.FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONText(opts.Text), sink.WithJSONConfig(opts.Render))
		case render.FormatPNG:
			data, err = sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.PNGScale))
		case render.FormatPDF:
			data, err = sink.RenderPDF(ctx, l, svgOpts...)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[name] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithConfig(opts.Render)}
	if len(opts.Sprite) > 0 {
		svgOpts = append(svgOpts, sink.WithSprite(opts.Sprite))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts
}

// spriteHash identifies sprite artwork in artifact cache keys.
func spriteHash(s sink.Sprite) string {
	data, _ := json.Marshal(s)
	return cache.Hash(data)
}
