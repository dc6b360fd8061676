// Package exercises implements the exercise picker for one chapter.
package exercises

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vimdojo/vimdojo/internal/content"
	"github.com/vimdojo/vimdojo/internal/screen"
	"github.com/vimdojo/vimdojo/internal/ui/components"
	"github.com/vimdojo/vimdojo/internal/ui/layout"
	"github.com/vimdojo/vimdojo/internal/ui/theme"
)

// SelectedMsg is emitted when the user picks an exercise to train.
type SelectedMsg struct {
	Chapter  content.Chapter
	Exercise content.Exercise
}

// Model is the exercise picker screen. Pressing / filters the list by
// title.
type Model struct {
	chapter content.Chapter
	done    map[string]bool
	visible []content.Exercise
	menu    components.Menu
	filter  components.Filter
}

// New creates the exercise picker for a chapter. done holds the titles of
// exercises completed at least once.
func New(chapter content.Chapter, done map[string]bool) *Model {
	m := &Model{
		chapter: chapter,
		done:    done,
		filter:  components.NewFilter("type to filter"),
	}
	m.rebuild()
	return m
}

// rebuild recomputes the visible exercises from the filter text.
func (m *Model) rebuild() {
	query := strings.ToLower(m.filter.Value())

	m.visible = m.visible[:0]
	for _, ex := range m.chapter.Exercises {
		if query != "" && !strings.Contains(strings.ToLower(ex.Title), query) {
			continue
		}
		m.visible = append(m.visible, ex)
	}

	items := make([]components.MenuItem, 0, len(m.visible))
	for _, ex := range m.visible {
		ex := ex
		mark := " "
		if m.done[ex.Title] {
			mark = "✓"
		}
		chapter := m.chapter
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s %s", mark, ex.Title),
			Detail: fmt.Sprintf("%d goals, %s", len(ex.Goals), ex.Flow),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return SelectedMsg{Chapter: chapter, Exercise: ex}
				}
			},
		})
	}
	m.menu = components.NewMenu(items)
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m.filter.Active() {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			m.filter = m.filter.Deactivate(false)
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.rebuild()
		return m, cmd
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "/" {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Activate()
		return m, cmd
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

// HandleEsc cancels an active or applied filter before the router pops
// the screen.
func (m *Model) HandleEsc() (bool, tea.Cmd) {
	if m.filter.Active() || m.filter.Value() != "" {
		m.filter = m.filter.Deactivate(true)
		m.rebuild()
		return true, nil
	}
	return false, nil
}

func (m *Model) View(width, height int) string {
	var b strings.Builder

	if m.chapter.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  " + m.chapter.Description))
		b.WriteString("\n\n")
	}

	if fv := m.filter.View(); fv != "" {
		b.WriteString(fv)
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render("  no exercises match"))
		return b.String()
	}

	b.WriteString(m.menu.View())

	if sel := m.selected(); sel != nil && sel.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(width - 4).
			Render("  " + sel.Description))
	}

	return b.String()
}

func (m *Model) Title() string {
	return fmt.Sprintf("Chapter %d: %s", m.chapter.Number, m.chapter.Title)
}

// KeyHints implements screen.KeyHintProvider.
func (m *Model) KeyHints() []layout.KeyHint {
	if m.filter.Active() {
		return []layout.KeyHint{
			{Key: "enter", Description: "apply"},
			{Key: "esc", Description: "clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "navigate"},
		{Key: "enter", Description: "train"},
		{Key: "/", Description: "filter"},
		{Key: "esc", Description: "back"},
		{Key: "ctrl+c", Description: "quit"},
	}
}

func (m *Model) selected() *content.Exercise {
	if m.menu.Selected < 0 || m.menu.Selected >= len(m.visible) {
		return nil
	}
	return &m.visible[m.menu.Selected]
}
