package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sitelen/pkg/grammar"
	"github.com/matzehuels/sitelen/pkg/pipeline"
)

var (
	styleKind      = lipgloss.NewStyle().Foreground(colorTeal)
	styleSeparator = lipgloss.NewStyle().Foreground(colorAmber)
	styleBranch    = lipgloss.NewStyle().Foreground(colorMuted)
)

// parseFlags holds the input flags shared by every text-reading command.
type parseFlags struct {
	input       string
	output      string
	noCache     bool
	skipInvalid bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", `read text from a file ("-" for stdin)`)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.skipInvalid, "skip-invalid", false, "drop sentences that fail to parse instead of failing")
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		flags parseFlags
		tree  bool
	)

	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Parse text into grammar trees",
		Long: `Parse toki pona text into one grammar tree per sentence.

Text is taken from the arguments, from --input, or from stdin. The output is
JSON that the layout command accepts; --tree prints an indented view instead.`,
		Example: `  sitelen parse "mi olin e sina."
  sitelen parse -i poem.txt -o poem.parse.json
  echo "jan Sonja li pona." | sitelen parse --tree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, flags.input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runParse(cmd.Context(), text, flags, tree, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&tree, "tree", false, "print an indented tree instead of JSON")

	return cmd
}

func (c *CLI) runParse(ctx context.Context, text string, flags parseFlags, tree bool, w io.Writer) error {
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

	prog := c.progress("parse")
	parsed, hit, err := runner.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	prog.done("sentences", len(parsed.Sentences), "skipped", len(parsed.Skipped), "cached", hit)
	printSkipped(parsed.Skipped)

	var data []byte
	if tree {
		data = []byte(formatTree(parsed.Sentences))
	} else {
		data, err = json.MarshalIndent(parsed, "", "  ")
		if err != nil {
			return fmt.Errorf("encode parse result: %w", err)
		}
		data = append(data, '\n')
	}
	if err := writeOutput(flags.output, w, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if flags.output != "" {
		printSuccess("Parse complete")
		printFile(flags.output)
		printStats(len(parsed.Sentences), 0, hit)
		printNextStep("Lay out", "sitelen layout -i "+flags.output)
	}
	return nil
}

// formatTree renders sentences as an indented tree:
//
//	sentence 1
//	├─ subject  mi
//	└─ punctuation  period
func formatTree(sentences []grammar.Sentence) string {
	var b strings.Builder
	for i, s := range sentences {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styleTitle.Render(fmt.Sprintf("sentence %d", i+1)))
		b.WriteString("\n")
		writeParts(&b, s.Parts, "")
	}
	return b.String()
}

func writeParts(b *strings.Builder, parts []grammar.Part, indent string) {
	for i, p := range parts {
		branch, next := "├─ ", "│  "
		if i == len(parts)-1 {
			branch, next = "└─ ", "   "
		}
		b.WriteString(indent + styleBranch.Render(branch) + styleKind.Render(p.Kind.String()))
		if p.Separator != "" {
			b.WriteString(" " + styleSeparator.Render("("+p.Separator+")"))
		}
		if len(p.Tokens) > 0 {
			b.WriteString("  " + strings.Join(p.Tokens, " "))
		}
		b.WriteString("\n")
		writeParts(b, p.Parts, indent+styleBranch.Render(next))
	}
}

// readParsed decodes the JSON written by the parse command.
func readParsed(data []byte) (pipeline.Parsed, error) {
	var parsed pipeline.Parsed
	if err := json.Unmarshal(data, &parsed); err != nil {
		return pipeline.Parsed{}, fmt.Errorf("decode parse result: %w", err)
	}
	for i, s := range parsed.Sentences {
		if err := s.Validate(); err != nil {
			return pipeline.Parsed{}, fmt.Errorf("sentence %d: %w", i+1, err)
		}
	}
	return parsed, nil
}
