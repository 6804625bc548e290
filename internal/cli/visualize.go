package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sitelen/pkg/layout"
	"github.com/matzehuels/sitelen/pkg/pipeline"
	"github.com/matzehuels/sitelen/pkg/render/sink"
)

// visualizeCommand creates the visualize command for rendering a saved layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		rflags  renderFlags
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a computed layout",
		Long: `Render a computed layout.

visualize takes a layout.json file (produced by 'layout' or 'render -f json')
and draws it. The rendering settings stored in the file are used unless
overridden by flags; no parsing or layout search happens.

Use 'render' as a shortcut to go directly from text to images.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVisualize(cmd, args[0], output, noCache, &rflags, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	rflags.register(cmd)

	return cmd
}

func (c *CLI) runVisualize(cmd *cobra.Command, input, output string, noCache bool, rflags *renderFlags, w io.Writer) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	l, cfg, err := sink.DecodeJSON(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	opts, err := c.newOptions()
	if err != nil {
		return err
	}
	if cfg != nil {
		opts.Render = *cfg
	}
	if err := rflags.apply(cmd, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	artifacts, hit, err := c.visualize(ctx, runner, l, opts)
	if err != nil {
		return err
	}

	written, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		output:    output,
		base:      strings.TrimSuffix(strings.TrimSuffix(input, filepath.Ext(input)), ".layout"),
		stdout:    w,
	})
	if err != nil {
		return err
	}
	if len(written) > 0 {
		printSuccess("Visualization complete")
		for _, path := range written {
			printFile(path)
		}
		printStats(0, len(l.Compounds), hit)
	}
	return nil
}

func (c *CLI) visualize(ctx context.Context, runner *pipeline.Runner, l layout.Layout, opts pipeline.Options) (map[string][]byte, bool, error) {
	prog := c.progress("visualize")
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return nil, false, fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()
	prog.done("formats", opts.Formats, "cached", hit)
	return artifacts, hit, nil
}
