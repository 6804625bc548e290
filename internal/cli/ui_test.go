package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name      string
		sentences int
		compounds int
		cached    bool
		want      []string
		notWant   string
	}{
		{"singular", 1, 1, false, []string{"1 sentence ", "1 compound ", "fresh"}, "cached"},
		{"plural cached", 2, 3, true, []string{"2 sentences", "3 compounds", "cached"}, "fresh"},
		{"compounds only", 0, 4, false, []string{"4 compounds", "fresh"}, "sentence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			old := stdout
			stdout = &buf
			t.Cleanup(func() { stdout = old })

			printStats(tt.sentences, tt.compounds, tt.cached)
			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("printStats() = %q, missing %q", out, want)
				}
			}
			if strings.Contains(out, tt.notWant) {
				t.Errorf("printStats() = %q, should not contain %q", out, tt.notWant)
			}
		})
	}
}
