// Package music is the music widget. It shows a track list and a now-playing
// line; nothing is played.
package music

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/keyloom/internal/focus"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

// ZoneID marks the widget for clicks and hover tracking.
const ZoneID = "music"

// Tracks is the fixed playlist.
var Tracks = []string{
	"lofi rain",
	"coffee shop",
	"night drive",
	"brown noise",
}

// Props is what the coordinator hands down each update.
type Props struct {
	Music   bool
	Focused bool
}

// Model is the widget state.
type Model struct {
	props  Props
	track  int
	paused bool
	hover  bool
}

// New creates a widget on the first track.
func New() Model {
	return Model{}
}

// SetProps replaces the props. Hiding the widget clears hover state.
func (m Model) SetProps(p Props) Model {
	m.props = p
	if !p.Music {
		m.hover = false
	}
	return m
}

// Visible reports whether the widget renders.
func (m Model) Visible() bool {
	return m.props.Music
}

// Track returns the current track name.
func (m Model) Track() string {
	return Tracks[m.track]
}

// Paused reports whether the widget shows as paused.
func (m Model) Paused() bool {
	return m.paused
}

// Update cycles tracks on left click, toggles pause on right click and
// hands focus back to the typing surface when the pointer leaves.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok || !m.props.Music {
		return m, nil
	}

	z := zone.Get(ZoneID)
	inside := z != nil && z.InBounds(mouse)

	if mouse.Action == tea.MouseActionRelease && inside {
		switch mouse.Button {
		case tea.MouseButtonLeft:
			m.track = (m.track + 1) % len(Tracks)
		case tea.MouseButtonRight:
			m.paused = !m.paused
		}
	}

	wasInside := m.hover
	m.hover = inside
	if wasInside && !inside {
		return m, focus.Request(focus.PrimaryInput)
	}
	return m, nil
}

// View renders the widget, or nothing when music mode is off.
func (m Model) View() string {
	if !m.props.Music {
		return ""
	}
	icon := "♪"
	if m.paused {
		icon = "‖"
	}
	line := fmt.Sprintf("%s %s", icon, m.Track())
	if !m.props.Focused {
		line += fmt.Sprintf("  %d/%d · click for next", m.track+1, len(Tracks))
	}
	return zone.Mark(ZoneID, styles.MusicStyle.Render(line))
}
