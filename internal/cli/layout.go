package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sitelen/pkg/pipeline"
	"github.com/matzehuels/sitelen/pkg/render/sink"
)

// layoutFlags holds the selection flags shared by layout, render and preview.
type layoutFlags struct {
	ratio       float64
	minRatio    float64
	maxRatio    float64
	random      bool
	seed        uint64
	maxSiblings int
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.ratio, "ratio", 0, "optimal width/height ratio of each compound (default 0.75)")
	cmd.Flags().Float64Var(&f.minRatio, "min-ratio", 0, "smallest acceptable ratio")
	cmd.Flags().Float64Var(&f.maxRatio, "max-ratio", 0, "largest acceptable ratio (default 100)")
	cmd.Flags().BoolVar(&f.random, "random", false, "pick a random arrangement within the ratio window")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for --random")
	cmd.Flags().IntVar(&f.maxSiblings, "max-siblings", 0, fmt.Sprintf("largest container search (default %d)", pipeline.DefaultMaxSiblings))
}

// apply overrides opts with the flags the user set.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := cmd.Flags().Changed
	if set("ratio") {
		opts.Render.OptimalRatio = f.ratio
	}
	if set("min-ratio") {
		opts.Render.MinRatio = f.minRatio
	}
	if set("max-ratio") {
		opts.Render.MaxRatio = f.maxRatio
	}
	if set("random") {
		opts.Render.Random = f.random
	}
	if set("seed") {
		opts.Render.Seed = f.seed
	}
	if set("max-siblings") {
		opts.MaxSiblings = f.maxSiblings
	}
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  parseFlags
		lflags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [text...]",
		Short: "Compute the glyph layout of text",
		Long: `Compute the glyph layout of text.

The input is text (arguments, --input or stdin) or a .json file written by
'parse'. The output is a layout JSON file (same format as 'render -f json')
that 'visualize' turns into images.

Results are cached locally for faster subsequent runs.`,
		Example: `  sitelen layout "mi olin e sina." -o love.layout.json
  sitelen layout -i poem.parse.json --ratio 1.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.newOptions()
			if err != nil {
				return err
			}
			lflags.apply(cmd, &opts)
			opts.SkipInvalid = flags.skipInvalid
			return c.runLayout(cmd.Context(), args, flags, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	lflags.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, args []string, flags parseFlags, opts pipeline.Options, stdin io.Reader, w io.Writer) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var parsed pipeline.Parsed
	if strings.EqualFold(filepath.Ext(flags.input), ".json") {
		data, err := os.ReadFile(flags.input)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if parsed, err = readParsed(data); err != nil {
			return err
		}
	} else {
		if opts.Text, err = readText(args, flags.input, stdin); err != nil {
			return err
		}
		if parsed, err = runner.Parse(ctx, opts); err != nil {
			return fmt.Errorf("parse: %w", err)
		}
		printSkipped(parsed.Skipped)
	}

	prog := c.progress("layout")
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	l, hit, err := runner.LayoutWithCacheInfo(ctx, parsed, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if spinner.Cancelled() {
		return ctx.Err()
	}
	prog.done("compounds", len(l.Compounds), "cached", hit)

	data, err := sink.RenderJSON(l, sink.WithJSONText(opts.Text), sink.WithJSONConfig(opts.Render))
	if err != nil {
		return err
	}
	if err := writeOutput(flags.output, w, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if flags.output != "" {
		printSuccess("Layout complete")
		printFile(flags.output)
		printStats(len(parsed.Sentences), len(l.Compounds), hit)
		printNextStep("Render", "sitelen visualize "+flags.output)
	}
	return nil
}
