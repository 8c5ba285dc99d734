// Package markdown renders the help overlay's markdown for the terminal.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// helpBoxStyle is layered over the standard glamour style. The help box has
// its own border and padding, so the document gets no margin, and inline code
// (the key names) renders flush with its description.
const helpBoxStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	},
	"code": {
		"prefix": "",
		"suffix": ""
	}
}`

// Renderer wraps a glamour renderer sized for the help box.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer that word-wraps at width. style is "dark" or
// "light" and defaults to "dark"; auto detection would query the terminal
// and leak the reply into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(helpBoxStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
