package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sitelen/pkg/pipeline"
)

// defaultBase names output files when several formats go to disk without -o.
const defaultBase = "sitelen"

// renderFlags holds the drawing flags shared by render and visualize.
type renderFlags struct {
	formats      string
	title        string
	sprite       string
	scale        float64
	scaleSkew    float64
	strokeWidth  float64
	pngScale     float64
	shadow       bool
	ignoreHeight bool
	noExport     bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), html, json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&f.title, "title", "", "document title (default: the input text)")
	cmd.Flags().StringVar(&f.sprite, "sprite", "", "glyph sprite TOML file")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "glyph scale (default 1.2)")
	cmd.Flags().Float64Var(&f.scaleSkew, "scale-skew", 0, "horizontal view box widening (default 1.3)")
	cmd.Flags().Float64Var(&f.strokeWidth, "stroke-width", 0, "stroke width (default 2)")
	cmd.Flags().Float64Var(&f.pngScale, "png-scale", 0, fmt.Sprintf("PNG resolution multiplier (default %g)", pipeline.DefaultPNGScale))
	cmd.Flags().BoolVar(&f.shadow, "shadow", false, "draw a drop shadow under every compound")
	cmd.Flags().BoolVar(&f.ignoreHeight, "ignore-height", false, "omit the fixed image height")
	cmd.Flags().BoolVar(&f.noExport, "no-export", false, "do not embed glyph definitions")
}

// apply overrides opts with the flags the user set.
func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	set := cmd.Flags().Changed
	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if set("title") {
		opts.Title = f.title
	}
	if set("sprite") {
		s, err := readSprite(f.sprite)
		if err != nil {
			return err
		}
		opts.Sprite = s
	}
	if set("scale") {
		opts.Render.Scale = f.scale
	}
	if set("scale-skew") {
		opts.Render.ScaleSkew = f.scaleSkew
	}
	if set("stroke-width") {
		opts.Render.StrokeWidth = f.strokeWidth
	}
	if set("png-scale") {
		opts.PNGScale = f.pngScale
	}
	if set("shadow") {
		opts.Render.Shadow = f.shadow
	}
	if set("ignore-height") {
		opts.Render.IgnoreHeight = f.ignoreHeight
	}
	if set("no-export") {
		opts.Render.Exportable = !f.noExport
	}
	return nil
}

// renderCommand creates the render command: text straight to images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  parseFlags
		lflags layoutFlags
		rflags renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [text...]",
		Short: "Render text to SVG, HTML, JSON, PNG or PDF",
		Long: `Render text to SVG, HTML, JSON, PNG or PDF.

render runs parse, layout and visualize in one step. A single format is
written to --output (stdout by default); several formats are written next to
each other using the output's base name.

PNG and PDF output require rsvg-convert (librsvg).`,
		Example: `  sitelen render "mi olin e sina." -o love.svg
  sitelen render -i poem.txt -f svg,png -o poem
  sitelen render "toki!" --ratio 2 --shadow -f html -o toki.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.newOptions()
			if err != nil {
				return err
			}
			lflags.apply(cmd, &opts)
			if err := rflags.apply(cmd, &opts); err != nil {
				return err
			}
			opts.SkipInvalid = flags.skipInvalid
			if opts.Text, err = readText(args, flags.input, cmd.InOrStdin()); err != nil {
				return err
			}
			if opts.Title == "" {
				opts.Title = opts.Text
			}
			return c.runRender(cmd.Context(), opts, flags, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	lflags.register(cmd)
	rflags.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, flags parseFlags, w io.Writer) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := c.progress("render")
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Stop(); spinner.Cancelled() {
			return ctx.Err()
		}
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("formats", opts.Formats, "compounds", result.Stats.CompoundCount,
		"parse", result.Stats.ParseTime, "layout", result.Stats.LayoutTime)
	printSkipped(result.Skipped)

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		output:    flags.output,
		base:      defaultBase,
		stdout:    w,
	})
	if err != nil {
		return err
	}

	if len(written) > 0 {
		printSuccess("Render complete")
		for _, path := range written {
			printFile(path)
		}
		cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
		printStats(result.Stats.SentenceCount, result.Stats.CompoundCount, cached)
	}
	return nil
}
