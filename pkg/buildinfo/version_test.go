package buildinfo

import (
	"strings"
	"testing"
)

func TestGetPrefersLdflags(t *testing.T) {
	prev := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = prev[0], prev[1], prev[2] })

	Version, Commit, Date = "v1.2.3", "abc123", "2026-01-02T03:04:05Z"
	got := Get()
	if got.Version != "v1.2.3" || got.Commit != "abc123" || got.Date != "2026-01-02T03:04:05Z" {
		t.Errorf("Get() = %+v, want ldflags values", got)
	}
}

func TestTemplate(t *testing.T) {
	prev := Version
	t.Cleanup(func() { Version = prev })

	Version = "v0.9.0"
	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} version v0.9.0\n") {
		t.Errorf("Template() = %q", tmpl)
	}
}
