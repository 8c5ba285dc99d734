// Package help contains the help overlay component.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/keyloom/internal/keys"
	"github.com/zjrosen/keyloom/internal/log"
	"github.com/zjrosen/keyloom/internal/ui/markdown"
	"github.com/zjrosen/keyloom/internal/ui/overlay"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

const boxWidth = 52

// Model renders the keybinding reference.
type Model struct {
	keys   keys.KeyMap
	picker keys.PickerKeyMap
	style  string
	width  int
	height int
	body   string
}

// New creates a help overlay. style is the glamour style name.
func New(km keys.KeyMap, pk keys.PickerKeyMap, style string) Model {
	m := Model{keys: km, picker: pk, style: style}
	m.body = m.render()
	return m
}

// SetSize sets the viewport dimensions for overlay centering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Markdown returns the help text source.
func (m Model) Markdown() string {
	var b strings.Builder
	b.WriteString("## Modes\n\n")
	writeBindings(&b, m.keys.FullHelp()[0])
	b.WriteString("\n## General\n\n")
	writeBindings(&b, m.keys.FullHelp()[1])
	b.WriteString("\n## Theme picker\n\n")
	writeBindings(&b, m.picker.ShortHelp())
	b.WriteString("\nClick the footer to toggle modes or pick a theme. Coffee mode swaps the exercise for a free typing pad.\n")
	return b.String()
}

func writeBindings(b *strings.Builder, bindings []key.Binding) {
	for _, kb := range bindings {
		h := kb.Help()
		fmt.Fprintf(b, "- `%s` %s\n", h.Key, h.Desc)
	}
}

func (m Model) render() string {
	src := m.Markdown()
	r, err := markdown.New(boxWidth-4, m.style)
	if err != nil {
		log.Warn(log.CatUI, "Markdown renderer unavailable, showing raw help", "error", err)
		return src
	}
	out, err := r.Render(src)
	if err != nil {
		log.Warn(log.CatUI, "Rendering help failed", "error", err)
		return src
	}
	return strings.TrimRight(out, "\n")
}

// View renders the help box.
func (m Model) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor).Render("keyloom help")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Padding(0, 1).
		Width(boxWidth).
		Render(title + "\n\n" + m.body)
}

// Overlay renders the help box centered over bg.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
