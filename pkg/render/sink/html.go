package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/sitelen/pkg/layout"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            margin: 0;
            padding: 20px;
            background: white;
            display: flex;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
        }
        svg {
            max-width: 100%%;
            height: auto;
        }
    </style>
</head>
<body>
%s</body>
</html>
`

// DefaultHTMLTitle is the page title used when no title option is given.
const DefaultHTMLTitle = "sitelen"

// RenderHTML wraps the SVG rendering of l in a minimal HTML page. The SVG
// title, if any, also becomes the page title.
func RenderHTML(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	title := r.title
	if title == "" {
		title = DefaultHTMLTitle
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, htmlTemplate, html.EscapeString(title), RenderSVG(l, opts...))
	return buf.Bytes()
}
