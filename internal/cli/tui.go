package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sitelen/pkg/errors"
	"github.com/matzehuels/sitelen/pkg/layout"
	"github.com/matzehuels/sitelen/pkg/pipeline"
	"github.com/matzehuels/sitelen/pkg/render/sink"
)

var (
	previewPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	previewCursorStyle = lipgloss.NewStyle().Reverse(true)
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	previewHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output string
		lflags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [text...]",
		Short: "Interactively parse and lay out text as you type",
		Long: `Interactively parse and lay out text as you type.

The grammar tree and the selected arrangement of every compound update on
each keystroke. Press enter to save the current layout as SVG to --output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.newOptions()
			if err != nil {
				return err
			}
			lflags.apply(cmd, &opts)
			// Log lines would tear the full-screen view.
			opts.Logger = log.New(io.Discard)

			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			m := NewPreviewModel(cmd.Context(), runner, opts, output)
			m.Input = []rune(strings.Join(args, " "))
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "preview.svg", "file written when pressing enter")
	lflags.register(cmd)

	return cmd
}

// =============================================================================
// PreviewModel - Live parse and layout
// =============================================================================

// PreviewModel is the bubbletea model behind the preview command.
type PreviewModel struct {
	Input  []rune
	Parsed pipeline.Parsed
	Layout layout.Layout
	Err    error
	Saved  string

	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options
	output string
	// seq numbers computations so stale results are dropped.
	seq int
}

// previewResult carries the outcome of one background computation.
type previewResult struct {
	seq    int
	parsed pipeline.Parsed
	layout layout.Layout
	err    error
}

type previewSaved struct {
	path string
	err  error
}

// NewPreviewModel creates a preview model backed by runner.
func NewPreviewModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) PreviewModel {
	return PreviewModel{ctx: ctx, runner: runner, opts: opts, output: output}
}

func (m PreviewModel) Init() tea.Cmd {
	if len(m.Input) == 0 {
		return nil
	}
	return m.compute()
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.save()
		case tea.KeyBackspace:
			if len(m.Input) == 0 {
				return m, nil
			}
			m.Input = m.Input[:len(m.Input)-1]
		case tea.KeyCtrlU:
			m.Input = nil
		case tea.KeySpace:
			m.Input = append(m.Input, ' ')
		case tea.KeyRunes:
			m.Input = append(m.Input, msg.Runes...)
		default:
			return m, nil
		}
		m.Saved = ""
		m.seq++
		if strings.TrimSpace(string(m.Input)) == "" {
			m.Parsed, m.Layout, m.Err = pipeline.Parsed{}, layout.Layout{}, nil
			return m, nil
		}
		return m, m.compute()

	case previewResult:
		if msg.seq != m.seq {
			return m, nil
		}
		m.Parsed, m.Layout, m.Err = msg.parsed, msg.layout, msg.err

	case previewSaved:
		if msg.err != nil {
			m.Err = msg.err
			return m, nil
		}
		m.Saved = msg.path
	}
	return m, nil
}

// compute parses and lays out the current input in the background.
func (m PreviewModel) compute() tea.Cmd {
	seq, opts := m.seq, m.opts
	opts.Text = string(m.Input)
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		parsed, err := runner.Parse(ctx, opts)
		if err != nil {
			return previewResult{seq: seq, err: err}
		}
		l, err := runner.Layout(ctx, parsed, opts)
		return previewResult{seq: seq, parsed: parsed, layout: l, err: err}
	}
}

func (m PreviewModel) save() tea.Cmd {
	if len(m.Layout.Compounds) == 0 || m.output == "" {
		return nil
	}
	l, path := m.Layout, m.output
	svgOpts := []sink.SVGOption{sink.WithConfig(m.opts.Render), sink.WithTitle(string(m.Input))}
	if len(m.opts.Sprite) > 0 {
		svgOpts = append(svgOpts, sink.WithSprite(m.opts.Sprite))
	}
	return func() tea.Msg {
		err := os.WriteFile(path, sink.RenderSVG(l, svgOpts...), 0o644)
		return previewSaved{path: path, err: err}
	}
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("sitelen preview"))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("type to edit  ⏎ save svg  ctrl+u clear  esc quit"))
	b.WriteString("\n\n")
	b.WriteString(previewPromptStyle.Render("› ") + string(m.Input) + previewCursorStyle.Render(" "))
	b.WriteString("\n\n")

	switch {
	case m.Err != nil:
		b.WriteString(markError.String() + " " + styleError.Render(errors.UserMessage(m.Err)))
		if input := errors.GetInput(m.Err); input != "" {
			b.WriteString(styleMuted.Render(fmt.Sprintf("  (%q)", input)))
		}
		b.WriteString("\n")
		return b.String()
	case len(m.Parsed.Sentences) == 0:
		return b.String()
	}

	b.WriteString(formatTree(m.Parsed.Sentences))
	b.WriteString("\n")
	b.WriteString(compoundTable(m.Layout))
	b.WriteString("\n")
	if m.Saved != "" {
		b.WriteString(markSuccess.String() + " saved " + styleValue.Render(m.Saved) + "\n")
	}
	return b.String()
}

// compoundTable lists the selected arrangement of every compound.
func compoundTable(l layout.Layout) string {
	rows := make([][]string, 0, len(l.Compounds))
	for i, c := range l.Compounds {
		sep := c.Separator
		if sep == "" {
			sep = "—"
		}
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			c.Type.String(),
			sep,
			fmt.Sprint(len(c.State.Units)),
			fmt.Sprintf("%.2f×%.2f", c.Size.Width, c.Size.Height),
			fmt.Sprintf("%.3f", c.Ratio),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("#", "Type", "Separator", "Units", "Size", "Ratio").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return previewHeaderStyle
			}
			if col == 5 {
				return styleHighlight
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}
