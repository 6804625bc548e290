package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sitelen/pkg/cache"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	c, status := newTestCLI(t)
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	cfgPath := filepath.Join(dir, "config.toml")
	writeFile(t, cfgPath, "[cache]\ndir = \""+cacheDir+"\"\n")

	out, err := execute(t, c, "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != cacheDir {
		t.Errorf("cache path = %q, want %q", out, cacheDir)
	}

	if _, err := execute(t, c, "--config", cfgPath, "render", "mi moku."); err != nil {
		t.Fatalf("render: %v", err)
	}

	status.Reset()
	if _, err := execute(t, c, "--config", cfgPath, "cache", "info"); err != nil {
		t.Fatalf("cache info: %v", err)
	}
	if !strings.Contains(status.String(), cacheDir) || strings.Contains(status.String(), "Entries 0") {
		t.Errorf("cache info after render:\n%s", status.String())
	}

	status.Reset()
	if _, err := execute(t, c, "--config", cfgPath, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(status.String(), "Cleared") {
		t.Errorf("cache clear:\n%s", status.String())
	}

	status.Reset()
	if _, err := execute(t, c, "--config", cfgPath, "cache", "clear"); err != nil {
		t.Fatalf("second cache clear: %v", err)
	}
	if !strings.Contains(status.String(), "Cache is empty") {
		t.Errorf("second cache clear:\n%s", status.String())
	}
}

func TestNewRunnerScopesKeys(t *testing.T) {
	c, _ := newTestCLI(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	writeFile(t, cfgPath, "[cache]\ndir = \""+filepath.Join(dir, "cache")+"\"\nprefix = \"staging:\"\n")
	c.configPath = cfgPath

	runner, err := c.newRunner(context.Background(), false)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer runner.Close()

	key := runner.Keyer.ParseKey("abc", cache.ParseKeyOpts{})
	if !strings.HasPrefix(key, "staging:") {
		t.Errorf("ParseKey() = %q, want staging: prefix", key)
	}
}
