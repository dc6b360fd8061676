// Package app hosts the root Bubble Tea model: the chapter and exercise
// pickers that choose what to train next.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/vimdojo/vimdojo/internal/content"
	"github.com/vimdojo/vimdojo/internal/router"
	"github.com/vimdojo/vimdojo/internal/screen"
	"github.com/vimdojo/vimdojo/internal/screens/chapters"
	"github.com/vimdojo/vimdojo/internal/screens/exercises"
	"github.com/vimdojo/vimdojo/internal/ui/layout"
)

// Selection is what the picker resolved to.
type Selection struct {
	Chapter  content.Chapter
	Exercise content.Exercise
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router    *router.Router
	width     int
	height    int
	completed int
	total     int

	selection *Selection
}

// newAppModel creates a new AppModel with the chapter picker on top. done
// maps chapter number to the set of completed exercise titles.
func newAppModel(chs []content.Chapter, done map[int]map[string]bool) *AppModel {
	completed, total := 0, 0
	for _, ch := range chs {
		total += len(ch.Exercises)
		for _, ex := range ch.Exercises {
			if done[ch.Number][ex.Title] {
				completed++
			}
		}
	}

	return &AppModel{
		router:    router.New(chapters.New(chs, done)),
		completed: completed,
		total:     total,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return nil
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case exercises.SelectedMsg:
		m.selection = &Selection{Chapter: msg.Chapter, Exercise: msg.Exercise}
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok {
				if handled, cmd := h.HandleEsc(); handled {
					return m, cmd
				}
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.completed, m.total, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "navigate"},
		{Key: "enter", Description: "select"},
		{Key: "ctrl+c", Description: "quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run shows the picker and returns the chosen exercise, or nil if the
// user quit without selecting one.
func Run(chs []content.Chapter, done map[int]map[string]bool) (*Selection, error) {
	model := newAppModel(chs, done)
	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(*AppModel); ok {
		return m.selection, nil
	}
	return model.selection, nil
}
