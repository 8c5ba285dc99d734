// Package picker provides a generic option picker component.
package picker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/keyloom/internal/keys"
	"github.com/zjrosen/keyloom/internal/ui/overlay"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

const zoneOptionPrefix = "picker:option:"

// Option represents a picker option with label and value.
type Option struct {
	Label string
	Value string
	Color lipgloss.TerminalColor // Optional swatch shown before the label
}

// SelectMsg is sent when an option is chosen.
type SelectMsg struct {
	Option Option
}

// CancelMsg is sent when the picker is dismissed without a choice.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	title          string
	options        []Option
	selected       int
	keys           keys.PickerKeyMap
	boxWidth       int
	viewportWidth  int
	viewportHeight int
}

// New creates a new picker with the given title and options.
func New(title string, options []Option) Model {
	return Model{
		title:   title,
		options: options,
		keys:    keys.DefaultPickerKeyMap(),
	}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetBoxWidth sets the width of the picker box itself.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetSelected sets the highlighted index. Out of range indexes are ignored.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m
}

// Selected returns the highlighted option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

// Update handles navigation keys and option clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.options)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.options) == 0 {
				return m, nil
			}
			opt := m.Selected()
			return m, func() tea.Msg { return SelectMsg{Option: opt} }
		case key.Matches(msg, m.keys.Cancel):
			return m, func() tea.Msg { return CancelMsg{} }
		}

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i := range m.options {
			if z := zone.Get(makeOptionZoneID(i)); z != nil && z.InBounds(msg) {
				m.selected = i
				opt := m.options[i]
				return m, func() tea.Msg { return SelectMsg{Option: opt} }
			}
		}
	}
	return m, nil
}

// View renders the picker box (without positioning).
func (m Model) View() string {
	width := m.boxWidth
	if width == 0 {
		width = 28
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.AccentColor).
		PaddingLeft(1)

	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		swatch := " "
		if opt.Color != nil {
			swatch = lipgloss.NewStyle().Foreground(opt.Color).Render("●")
		}

		var line string
		if i == m.selected {
			line = styles.SelectionIndicatorStyle.Render(">") + swatch + " " + lipgloss.NewStyle().Bold(true).Render(opt.Label)
		} else {
			line = " " + swatch + " " + opt.Label
		}
		lines = append(lines, zone.Mark(makeOptionZoneID(i), line))
	}

	divider := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", width))
	hint := styles.HintStyle.Render(" ↑/↓ move · enter apply · esc close")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(width).
		Render(titleStyle.Render(m.title) + "\n" + divider + "\n" + strings.Join(lines, "\n") + "\n" + hint)
}

// Overlay renders the picker centered over background.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(m.viewportWidth, m.viewportHeight, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}, box, background)
}

// FindIndexByValue returns the index of the option with the given value, or 0.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}

func makeOptionZoneID(index int) string {
	return fmt.Sprintf("%s%d", zoneOptionPrefix, index)
}

// parseOptionZoneID extracts the index from an option zone ID.
//
//nolint:unused // Used in picker_test.go for round-trip verification
func parseOptionZoneID(zoneID string) (int, bool) {
	if !strings.HasPrefix(zoneID, zoneOptionPrefix) {
		return 0, false
	}
	index, err := strconv.Atoi(strings.TrimPrefix(zoneID, zoneOptionPrefix))
	if err != nil {
		return 0, false
	}
	return index, true
}
