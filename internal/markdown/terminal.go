package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleASCII = "ascii"
	StyleNoTTY = "notty"

	DefaultTerminalWidth = 80
)

// TerminalOptions control how an entry is rendered for a terminal.
type TerminalOptions struct {
	Style string
	Width int
}

// RenderTerminal renders Markdown for display in a terminal. Front matter is
// stripped first so previews match what the site shows.
func RenderTerminal(source []byte, opts TerminalOptions) (string, error) {
	_, body := ParseFrontMatter(source)

	width := opts.Width
	if width <= 0 {
		width = DefaultTerminalWidth
	}

	style := strings.ToLower(strings.TrimSpace(opts.Style))
	termOpts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch style {
	case "", StyleAuto:
		termOpts = append(termOpts, glamour.WithAutoStyle())
	case StyleDark, StyleLight, StyleASCII, StyleNoTTY:
		termOpts = append(termOpts, glamour.WithStylePath(style))
	default:
		return "", fmt.Errorf("terminal style %q not supported", opts.Style)
	}

	renderer, err := glamour.NewTermRenderer(termOpts...)
	if err != nil {
		return "", fmt.Errorf("terminal renderer: %w", err)
	}
	out, err := renderer.Render(string(body))
	if err != nil {
		return "", fmt.Errorf("terminal render: %w", err)
	}
	return out, nil
}
