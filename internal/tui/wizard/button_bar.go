// Package wizard holds the reusable pieces of the wizard UI: the button bar
// with focus tracking and the tab-exit messages step components use to hand
// focus back to the outer flow.
package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/matchday-app/matchday/internal/tui/theme"
)

// ButtonID identifies a button's action independent of its position.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonNext
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Enabled
	ButtonDisabled                    // Grayed out, skipped by focus
)

// Button is a single button in the bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a row of buttons and which one holds keyboard focus.
// A focus index of -1 means no button is focused.
type ButtonBar struct {
	buttons []Button
	width   int
	focused int
}

// NewButtonBar creates a button bar with no focused button.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
		focused: -1,
	}
}

// SetWidth updates the centering width.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetEnabled enables or disables the button with the given id. Disabling the
// focused button drops focus to avoid activating a disabled action.
func (b *ButtonBar) SetEnabled(id ButtonID, enabled bool) {
	for i := range b.buttons {
		if b.buttons[i].ID != id {
			continue
		}
		if enabled {
			b.buttons[i].State = ButtonNormal
		} else {
			b.buttons[i].State = ButtonDisabled
			if b.focused == i {
				b.focused = -1
			}
		}
	}
}

// FocusFirst focuses the first enabled button.
func (b *ButtonBar) FocusFirst() {
	for i := range b.buttons {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return
		}
	}
	b.focused = -1
}

// FocusLast focuses the last enabled button.
func (b *ButtonBar) FocusLast() {
	for i := len(b.buttons) - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return
		}
	}
	b.focused = -1
}

// FocusNext moves focus forward, skipping disabled buttons. Returns false
// when focus moves past the last button; the caller should return focus to
// the step content.
func (b *ButtonBar) FocusNext() bool {
	for i := b.focused + 1; i < len(b.buttons); i++ {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return true
		}
	}
	b.focused = -1
	return false
}

// FocusPrev moves focus backward, skipping disabled buttons. Returns false
// when focus moves before the first button.
func (b *ButtonBar) FocusPrev() bool {
	for i := b.focused - 1; i >= 0; i-- {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return true
		}
	}
	b.focused = -1
	return false
}

// Blur removes button focus.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

// FocusedButton returns the id of the focused button, or -1 if none.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return -1
	}
	return b.buttons[b.focused].ID
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgBase)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.BorderFocus)).
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	var renderedButtons []string
	for i, btn := range b.buttons {
		var rendered string
		switch {
		case i == b.focused:
			rendered = focusedStyle.Render(btn.Label)
		case btn.State == ButtonDisabled:
			rendered = disabledStyle.Render(btn.Label)
		default:
			rendered = normalStyle.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	result := strings.Join(renderedButtons, "")
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}

// TabExitForwardMsg is sent when Tab is pressed on a step's last input.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent when Shift+Tab is pressed on a step's first input.
type TabExitBackwardMsg struct{}
