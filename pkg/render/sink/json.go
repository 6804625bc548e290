package sink

import (
	"encoding/json"

	"github.com/matzehuels/sitelen/pkg/layout"
	"github.com/matzehuels/sitelen/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	text   string
	config *render.Config
}

// WithJSONText records the source text in the output.
func WithJSONText(t string) JSONOption { return func(r *jsonRenderer) { r.text = t } }

// WithJSONConfig records the rendering configuration, enabling identical
// re-rendering of the exported layout.
func WithJSONConfig(c render.Config) JSONOption { return func(r *jsonRenderer) { r.config = &c } }

type jsonOutput struct {
	Text      string          `json:"text,omitempty"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Config    *render.Config  `json:"config,omitempty"`
	Compounds []layout.Option `json:"compounds"`
}

// RenderJSON exports l as a pretty-printed JSON document. Compounds keep
// their full placement trees, so the output can be decoded into a
// [layout.Layout] with [DecodeJSON] and rendered again.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	size := l.Size()
	out := jsonOutput{
		Text:      r.text,
		Width:     size.Width,
		Height:    size.Height,
		Config:    r.config,
		Compounds: l.Compounds,
	}
	if out.Compounds == nil {
		out.Compounds = []layout.Option{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// DecodeJSON reads a document produced by [RenderJSON]. The returned
// config is nil if none was recorded.
func DecodeJSON(data []byte) (layout.Layout, *render.Config, error) {
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return layout.Layout{}, nil, err
	}
	return layout.Layout{Compounds: out.Compounds}, out.Config, nil
}
