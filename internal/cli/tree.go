package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/render/tree"
)

// treeFormats are the outputs of the tree command.
var treeFormats = []string{"svg", "png", "pdf", "dot"}

// treeCommand creates the tree command for drawing grammar trees with Graphviz.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags    parseFlags
		format   string
		detailed bool
		pngScale float64
	)

	cmd := &cobra.Command{
		Use:   "tree [text...]",
		Short: "Draw the grammar trees of text with Graphviz",
		Long: `Draw the grammar trees of text with Graphviz.

Every sentence becomes a root node; parts and nested parts hang below it in
order. Use -f dot to get the Graphviz source instead of an image.`,
		Example: `  sitelen tree "jan Sonja li pona." -o sonja.svg
  sitelen tree -i poem.txt -f dot --detailed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, flags.input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runTree(cmd.Context(), text, flags, format, detailed, pngScale, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, pdf, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show part kinds and separators on every node")
	cmd.Flags().Float64Var(&pngScale, "png-scale", 2.0, "PNG resolution multiplier")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, text string, flags parseFlags, format string, detailed bool, pngScale float64, w io.Writer) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts, err := c.newOptions()
	if err != nil {
		return err
	}
	opts.Text = text
	opts.SkipInvalid = flags.skipInvalid

	parsed, err := runner.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	printSkipped(parsed.Skipped)

	spinner := newSpinnerWithContext(ctx, "Drawing tree...")
	spinner.Start()
	data, err := drawTree(ctx, parsed.Sentences, format, detailed, pngScale)
	if err != nil {
		spinner.StopWithError("Drawing failed")
		return err
	}
	spinner.Stop()

	if flags.output == "" && isBinary(format) && isTerminal(w) {
		return fmt.Errorf("refusing to write %s to a terminal, use -o", format)
	}
	if err := writeOutput(flags.output, w, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if flags.output != "" {
		printSuccess("Tree complete")
		printFile(flags.output)
	}
	return nil
}

func drawTree(ctx context.Context, sentences []grammar.Sentence, format string, detailed bool, pngScale float64) ([]byte, error) {
	dot := tree.ToDOT(sentences, tree.Options{Detailed: detailed})
	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return tree.RenderSVG(ctx, dot)
	case "png":
		return tree.RenderPNG(ctx, dot, pngScale)
	case "pdf":
		return tree.RenderPDF(ctx, dot)
	default:
		return nil, fmt.Errorf("invalid tree format %q (valid: %v)", format, treeFormats)
	}
}
