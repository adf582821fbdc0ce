package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Terminal renders a markdown report as styled ANSI text for the terminal.
// The style follows the terminal's background; width 0 keeps glamour's
// default word wrap.
func Terminal(markdown string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("cannot build terminal renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("cannot render markdown: %w", err)
	}
	return out, nil
}
