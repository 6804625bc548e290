package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/sitelen/pkg/render"
)

// readText returns the input text: the file named by file ("-" for stdin),
// else the joined arguments, else all of stdin.
func readText(args []string, file string, stdin io.Reader) (string, error) {
	switch {
	case file == "-":
		return readAll(stdin)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return readAll(stdin)
	}
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or stdout if path is empty or "-".
func openOutput(path string, w io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{w}, nil
	}
	return os.Create(path)
}

func writeOutput(path string, w io.Writer, data []byte) error {
	out, err := openOutput(path, w)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// basePath strips a known format extension from output.
func basePath(output string) string {
	ext := filepath.Ext(output)
	if slices.Contains(render.Formats, render.Format(strings.TrimPrefix(ext, "."))) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps every format to its file. A single format goes to output
// as given (stdout when empty); several formats share output's base name.
func outputPaths(output, fallbackBase string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	if base == "" {
		base = fallbackBase
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// artifactWriteParams holds everything writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string
	base      string
	stdout    io.Writer
}

// writeArtifacts writes every rendered format and returns the files written.
// Binary formats are never written to a terminal.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	var written []string
	for format, path := range outputPaths(p.output, p.base, p.formats) {
		if path == "" && isBinary(format) && isTerminal(p.stdout) {
			return written, fmt.Errorf("refusing to write %s to a terminal, use -o", format)
		}
		if err := writeOutput(path, p.stdout, p.artifacts[format]); err != nil {
			return written, fmt.Errorf("write %s: %w", format, err)
		}
		if path != "" {
			written = append(written, path)
		}
	}
	slices.Sort(written)
	return written, nil
}

func isBinary(format string) bool {
	return format == string(render.FormatPNG) || format == string(render.FormatPDF)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
