// Package cli implements the sitelen command-line interface.
//
// The commands follow the pipeline stages: parse turns text into grammar
// trees, layout packs every compound, visualize draws a saved layout and
// render goes from text to images in one step. tree draws the grammar
// trees with Graphviz, preview runs an interactive terminal view, serve
// starts the HTTP API and cache manages the local result cache.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers logging observability hooks for the pipeline and the cache.
// Each stage then reports its duration and result size.
//
// # Example
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	    os.Exit(1)
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one pipeline stage and reports it at debug level, so
// --verbose shows where a slow run spends its time.
type progress struct {
	logger *log.Logger
	stage  string
	start  time.Time
}

func (c *CLI) progress(stage string) *progress {
	return &progress{logger: c.Logger, stage: stage, start: time.Now()}
}

// done logs "<stage> done" with the elapsed time and keyvals, e.g.
// "layout done elapsed=12ms compounds=3 cached=false".
func (p *progress) done(keyvals ...any) {
	p.logger.Debug(p.stage+" done", append([]any{"elapsed", time.Since(p.start).Round(time.Millisecond)}, keyvals...)...)
}
