package eventwizard

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders markdown content with glamour, falling back to
// plain text wrapping if rendering fails.
func renderMarkdown(content string, width int) string {
	if width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return wrapText(content, width)
	}

	rendered, err := r.Render(content)
	if err != nil {
		return wrapText(content, width)
	}

	// Glamour adds a trailing newline
	return strings.TrimSuffix(rendered, "\n")
}

// wrapText does simple word wrapping at the given width.
func wrapText(content string, width int) string {
	if width <= 0 {
		return content
	}

	var out []string
	for _, line := range strings.Split(content, "\n") {
		if len(line) <= width {
			out = append(out, line)
			continue
		}
		words := strings.Fields(line)
		current := ""
		for _, w := range words {
			if current == "" {
				current = w
			} else if len(current)+1+len(w) <= width {
				current += " " + w
			} else {
				out = append(out, current)
				current = w
			}
		}
		if current != "" {
			out = append(out, current)
		}
	}
	return strings.Join(out, "\n")
}
