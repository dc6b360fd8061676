// Package chapters implements the top-level chapter picker.
package chapters

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/vimdojo/vimdojo/internal/content"
	"github.com/vimdojo/vimdojo/internal/router"
	"github.com/vimdojo/vimdojo/internal/screen"
	"github.com/vimdojo/vimdojo/internal/screens/exercises"
	"github.com/vimdojo/vimdojo/internal/ui/components"
	"github.com/vimdojo/vimdojo/internal/ui/layout"
)

// Model is the chapter picker screen.
type Model struct {
	chapters []content.Chapter
	menu     components.Menu
}

// New creates the chapter picker. done maps chapter number to the set of
// completed exercise titles.
func New(chs []content.Chapter, done map[int]map[string]bool) *Model {
	items := make([]components.MenuItem, 0, len(chs))
	for _, ch := range chs {
		ch := ch
		finished := 0
		for _, ex := range ch.Exercises {
			if done[ch.Number][ex.Title] {
				finished++
			}
		}
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("Chapter %d: %s", ch.Number, ch.Title),
			Detail: fmt.Sprintf("%d/%d done", finished, len(ch.Exercises)),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: exercises.New(ch, done[ch.Number]),
					}
				}
			},
		})
	}

	return &Model{
		chapters: chs,
		menu:     components.NewMenu(items),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) View(width, height int) string {
	return m.menu.View()
}

func (m *Model) Title() string {
	return "Chapters"
}

// KeyHints implements screen.KeyHintProvider.
func (m *Model) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "navigate"},
		{Key: "enter", Description: "open"},
		{Key: "ctrl+c", Description: "quit"},
	}
}
