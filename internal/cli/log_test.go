package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sitelen/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("listening") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("cache hit") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("cache hit") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	c := New(io.Discard, LogDebug)
	c.Logger = newLogger(&buf, log.DebugLevel)

	c.progress("layout").done("compounds", 3, "cached", false)

	out := buf.String()
	for _, want := range []string{"layout done", "elapsed=", "compounds=3", "cached=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}

func TestProgressQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Logger = newLogger(&buf, log.InfoLevel)

	c.progress("parse").done("sentences", 1)
	if buf.Len() != 0 {
		t.Errorf("progress logged at info level: %q", buf.String())
	}
}

func TestVerboseLogsStages(t *testing.T) {
	c, _ := newTestCLI(t)
	t.Cleanup(observability.Reset)
	var buf bytes.Buffer
	c.Logger = newLogger(&buf, log.InfoLevel)

	if _, err := execute(t, c, "-v", "layout", "--no-cache", "mi moku."); err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, want := range []string{"parse complete", "layout done"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("verbose output missing %q:\n%s", want, buf.String())
		}
	}
}
