package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vimdojo/vimdojo/internal/ui/theme"
)

// Filter wraps bubbles/textinput as a list filter field. It is inert
// until activated, so list keybindings keep working.
type Filter struct {
	input  textinput.Model
	active bool
}

// NewFilter creates a new filter field.
func NewFilter(placeholder string) Filter {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 40
	return Filter{input: ti}
}

// Active returns true while the filter owns keyboard input.
func (f Filter) Active() bool { return f.active }

// Value returns the current filter text.
func (f Filter) Value() string { return f.input.Value() }

// Activate focuses the filter field.
func (f Filter) Activate() (Filter, tea.Cmd) {
	f.active = true
	return f, f.input.Focus()
}

// Deactivate releases keyboard input. clear also resets the text.
func (f Filter) Deactivate(clear bool) Filter {
	f.active = false
	f.input.Blur()
	if clear {
		f.input.SetValue("")
	}
	return f
}

// Update forwards messages to the text input while active.
func (f Filter) Update(msg tea.Msg) (Filter, tea.Cmd) {
	if !f.active {
		return f, nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the filter line. Empty when inactive with no text.
func (f Filter) View() string {
	if !f.active && f.input.Value() == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("  / ") + f.input.View()
}
