// Package footer renders the bottom menu: the three mode toggles and the
// active theme, which opens the theme picker.
package footer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/keyloom/internal/mode"
	"github.com/zjrosen/keyloom/internal/ui/picker"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

// Zone IDs for clickable footer items.
const (
	zoneTogglePrefix = "footer:toggle:"
	zoneTheme        = "footer:theme"
)

// ThemeOption is one catalog entry as the footer shows it.
type ThemeOption struct {
	Label  string
	Swatch string // hex color shown next to the label
}

// Props is what the coordinator hands down each update.
type Props struct {
	Themes      []ThemeOption
	ActiveTheme string
	Modes       mode.State
}

// SelectThemeMsg reports that the user picked a theme.
type SelectThemeMsg struct {
	Label string
}

// Model holds the footer and its theme picker.
type Model struct {
	props      Props
	width      int
	height     int
	pickerOpen bool
	picker     picker.Model
}

// New creates a footer.
func New() Model {
	return Model{}
}

// SetProps replaces the props.
func (m Model) SetProps(p Props) Model {
	m.props = p
	return m
}

// SetSize records the viewport for truncation and picker placement.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.picker = m.picker.SetSize(width, height)
	return m
}

// PickerOpen reports whether the theme picker is showing.
func (m Model) PickerOpen() bool {
	return m.pickerOpen
}

// OpenPicker shows the theme picker with the active theme highlighted.
func (m Model) OpenPicker() Model {
	opts := make([]picker.Option, len(m.props.Themes))
	for i, t := range m.props.Themes {
		opts[i] = picker.Option{Label: t.Label, Value: t.Label}
		if t.Swatch != "" {
			opts[i].Color = lipgloss.Color(t.Swatch)
		}
	}
	m.picker = picker.New("Theme", opts).
		SetSize(m.width, m.height).
		SetSelected(picker.FindIndexByValue(opts, m.props.ActiveTheme))
	m.pickerOpen = true
	return m
}

// ClosePicker hides the theme picker.
func (m Model) ClosePicker() Model {
	m.pickerOpen = false
	return m
}

// Update routes keys to the open picker and turns clicks into toggle or
// theme messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case picker.SelectMsg:
		m.pickerOpen = false
		label := msg.Option.Value
		return m, func() tea.Msg { return SelectThemeMsg{Label: label} }

	case picker.CancelMsg:
		m.pickerOpen = false
		return m, nil

	case tea.KeyMsg:
		if !m.pickerOpen {
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.pickerOpen {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for _, flag := range mode.Flags() {
			if z := zone.Get(makeToggleZoneID(flag)); z != nil && z.InBounds(msg) {
				return m, func() tea.Msg { return mode.ToggleMsg{Flag: flag} }
			}
		}
		if z := zone.Get(zoneTheme); z != nil && z.InBounds(msg) {
			return m.OpenPicker(), nil
		}
	}
	return m, nil
}

var toggleKeys = map[mode.Flag]string{
	mode.FlagFocused: "F2",
	mode.FlagMusic:   "F3",
	mode.FlagCoffee:  "F4",
}

// View renders the footer line.
func (m Model) View() string {
	items := make([]string, 0, len(mode.Flags())+1)
	for _, flag := range mode.Flags() {
		label := fmt.Sprintf("%s %s", toggleKeys[flag], flag)
		style := styles.FooterInactiveStyle
		if m.props.Modes.Get(flag) {
			style = styles.FooterActiveStyle
			label = "● " + label
		} else {
			label = "○ " + label
		}
		items = append(items, zone.Mark(makeToggleZoneID(flag), style.Render(label)))
	}

	themeLabel := "F5 theme: " + m.props.ActiveTheme
	if m.width > 0 {
		// leave room for the toggles
		themeLabel = runewidth.Truncate(themeLabel, max(m.width-lipgloss.Width(strings.Join(items, "   "))-3, 8), "…")
	}
	items = append(items, zone.Mark(zoneTheme, styles.FooterActiveStyle.Render(themeLabel)))

	return strings.Join(items, "   ")
}

// Overlay draws the theme picker over bg when it is open.
func (m Model) Overlay(bg string) string {
	if !m.pickerOpen {
		return bg
	}
	return m.picker.Overlay(bg)
}

func makeToggleZoneID(flag mode.Flag) string {
	return zoneTogglePrefix + flag.String()
}
