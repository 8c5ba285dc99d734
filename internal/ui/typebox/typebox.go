// Package typebox is the practice surface: a prompt to copy and the input
// the user types it into. It shows correct and mistyped characters but does
// no timing or scoring.
package typebox

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/keyloom/internal/focus"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

// ZoneID marks the surface for click-to-focus.
const ZoneID = "typebox"

// Props is what the coordinator hands down each update.
type Props struct {
	// FocusedMode hides the progress line.
	FocusedMode bool
}

// Model is used through a pointer so the focus arbiter can hold it as a
// handle between updates.
type Model struct {
	input  textinput.Model
	prompt []rune
	props  Props
	width  int
}

// New creates a surface for prompt.
func New(prompt string) *Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "start typing"
	ti.CharLimit = len([]rune(prompt))
	return &Model{input: ti, prompt: []rune(prompt), width: 60}
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether the input has keyboard focus.
func (m *Model) Focused() bool {
	return m.input.Focused()
}

// SetProps replaces the props.
func (m *Model) SetProps(p Props) {
	m.props = p
}

// SetSize sets the wrap width.
func (m *Model) SetSize(width, _ int) {
	if width > 4 {
		m.width = width - 4 // border and padding
	}
	m.input.Width = m.width - 2
}

// Value returns what has been typed.
func (m *Model) Value() string {
	return m.input.Value()
}

// Done reports whether the whole prompt has been typed.
func (m *Model) Done() bool {
	return len([]rune(m.input.Value())) >= len(m.prompt)
}

// Mistakes counts typed characters that differ from the prompt.
func (m *Model) Mistakes() int {
	n := 0
	for i, r := range []rune(m.input.Value()) {
		if i < len(m.prompt) && r != m.prompt[i] {
			n++
		}
	}
	return n
}

// Update handles typing, restart and click-to-focus.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(ZoneID); z != nil && z.InBounds(msg) {
				return focus.Request(focus.PrimaryInput)
			}
		}
		return nil
	case tea.KeyMsg:
		if !m.input.Focused() {
			return nil
		}
		if msg.Type == tea.KeyEnter && m.Done() {
			m.input.Reset()
			return nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// View renders the prompt with typed characters colored, then the input.
func (m *Model) View() string {
	typed := []rune(m.input.Value())

	var b strings.Builder
	for i, r := range m.prompt {
		ch := string(r)
		switch {
		case i < len(typed) && typed[i] == r:
			b.WriteString(styles.TypedStyle.Render(ch))
		case i < len(typed):
			if r == ' ' {
				ch = "·"
			}
			b.WriteString(styles.MistakeStyle.Render(ch))
		case i == len(typed) && m.input.Focused():
			b.WriteString(styles.CaretStyle.Underline(true).Render(ch))
		default:
			b.WriteString(styles.PromptStyle.Render(ch))
		}
	}

	body := wordwrap.String(b.String(), m.width) + "\n\n" + m.input.View()
	if !m.props.FocusedMode {
		status := fmt.Sprintf("%d/%d", min(len(typed), len(m.prompt)), len(m.prompt))
		if mistakes := m.Mistakes(); mistakes > 0 {
			status += fmt.Sprintf(" · %d off", mistakes)
		}
		if m.Done() {
			status += " · enter to go again"
		}
		body += "\n" + styles.HintStyle.Render(status)
	}

	box := styles.SurfaceStyle
	if m.input.Focused() {
		box = styles.SurfaceFocusedStyle
	}
	return zone.Mark(ZoneID, box.Width(m.width+2).Render(body))
}
