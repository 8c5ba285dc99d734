// Package freetype is the coffee-mode surface: an untimed scratch pad.
package freetype

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/keyloom/internal/focus"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

// ZoneID marks the pad for click-to-focus.
const ZoneID = "freetype"

// Model is used through a pointer so the focus arbiter can hold it as a
// handle between updates.
type Model struct {
	area textarea.Model
}

// New creates an empty pad.
func New() *Model {
	ta := textarea.New()
	ta.Placeholder = "type anything. nothing is scored here."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(6)
	return &Model{area: ta}
}

// Focus gives the pad keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.area.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.area.Blur()
}

// Focused reports whether the pad has keyboard focus.
func (m *Model) Focused() bool {
	return m.area.Focused()
}

// SetSize fits the pad into width x height.
func (m *Model) SetSize(width, height int) {
	if width > 4 {
		m.area.SetWidth(width - 4)
	}
	if height > 8 {
		m.area.SetHeight(min(height-8, 20))
	}
}

// Value returns the pad contents.
func (m *Model) Value() string {
	return m.area.Value()
}

// Stats counts user-perceived characters and words.
func (m *Model) Stats() (chars, words int) {
	v := m.area.Value()
	return uniseg.GraphemeClusterCount(v), len(strings.Fields(v))
}

// Update handles typing and click-to-focus.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if mouse, ok := msg.(tea.MouseMsg); ok {
		if mouse.Button == tea.MouseButtonLeft && mouse.Action == tea.MouseActionRelease {
			if z := zone.Get(ZoneID); z != nil && z.InBounds(mouse) {
				return focus.Request(focus.FreeTypingArea)
			}
		}
		return nil
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return cmd
}

// View renders the pad and its counter line.
func (m *Model) View() string {
	chars, words := m.Stats()
	status := styles.HintStyle.Render(fmt.Sprintf("%d chars · %d words", chars, words))

	box := styles.SurfaceStyle
	if m.area.Focused() {
		box = styles.SurfaceFocusedStyle
	}
	return zone.Mark(ZoneID, box.Render(m.area.View()+"\n"+status))
}
