package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/sitelen/pkg/pipeline"
)

// stdout receives all status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// Terminal palette. The 256-color codes degrade to plain text when lipgloss
// detects a non-color terminal.
var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorBlue  = lipgloss.Color("75")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorMuted = lipgloss.Color("240")
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	styleHighlight = lipgloss.NewStyle().Foreground(colorTeal)
	styleMuted     = lipgloss.NewStyle().Foreground(colorMuted)
	styleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning   = lipgloss.NewStyle().Foreground(colorAmber)
	styleError     = lipgloss.NewStyle().Foreground(colorRed)
	styleCommand   = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey       = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleCached = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh  = lipgloss.NewStyle().Foreground(colorGray)
)

// statusMark pairs a leading glyph with its color.
type statusMark struct {
	glyph string
	style lipgloss.Style
}

func (m statusMark) String() string { return m.style.Render(m.glyph) }

var (
	markSuccess = statusMark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markError   = statusMark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = statusMark{"!", lipgloss.NewStyle().Foreground(colorAmber)}
	markInfo    = statusMark{"›", lipgloss.NewStyle().Foreground(colorGray)}
	markSpinner = lipgloss.NewStyle().Foreground(colorTeal)
)

func status(mark statusMark, text string) {
	fmt.Fprintln(stdout, mark.String()+" "+text)
}

func printSuccess(format string, args ...any) {
	status(markSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(markError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(markWarning, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+styleMuted.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written output file under the preceding status line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+styleMuted.Render("→")+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats prints run statistics on a single line, e.g.
// "2 sentences · 3 compounds · cached".
func printStats(sentences, compounds int, cached bool) {
	var parts []string
	if sentences > 0 {
		parts = append(parts, plural(sentences, "sentence"))
	}
	if compounds > 0 {
		parts = append(parts, plural(compounds, "compound"))
	}
	if cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleFresh.Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, styleMuted.Render(" · ")))
}

// printSkipped reports sentences dropped by --skip-invalid.
func printSkipped(skipped []pipeline.SentenceError) {
	for _, s := range skipped {
		printWarning("skipped sentence %d: %s", s.Index, s.Message)
	}
}

// printNextStep suggests the follow-up command after a stage wrote a file.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, styleMuted.Render(description+":")+" "+styleCommand.Render(cmd))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
