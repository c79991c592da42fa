package eventwizard

import (
	"charm.land/lipgloss/v2"

	"github.com/matchday-app/matchday/internal/tui/theme"
)

// renderHintBar renders a hint bar from key/description pairs.
// Example: renderHintBar("↑↓", "navigate", "space", "toggle", "esc", "back")
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	t := theme.Current()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgSubtle)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BorderDefault))

	var result string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + sepStyle.Render("•") + " "
		}
		result += keyStyle.Render(pairs[i]) + " " + descStyle.Render(pairs[i+1])
	}
	return result
}

// renderFieldError renders a validation message under its field, or "".
func renderFieldError(msg string) string {
	if msg == "" {
		return ""
	}
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Error)).
		Bold(true).
		Render("✗ " + msg)
}

// renderLabel renders a field label, highlighted when its input has focus.
func renderLabel(text string, focused bool) string {
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	if focused {
		style = lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BorderFocus)).
			Bold(true)
	}
	return style.Render(text)
}
