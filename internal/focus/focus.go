// Package focus decides which text-entry surface owns keyboard input and
// applies that decision to the mounted surfaces.
//
// Decide is pure. Apply is the effect step the coordinator runs after every
// committed state change; it re-issues focus even when the target did not
// change, so a surface that lost focus to something else gets it back.
package focus

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/keyloom/internal/log"
	"github.com/zjrosen/keyloom/internal/mode"
)

// Target is a surface that can own input focus.
type Target int

const (
	PrimaryInput Target = iota
	FreeTypingArea
)

func (t Target) String() string {
	if t == FreeTypingArea {
		return "free-typing-area"
	}
	return "primary-input"
}

// Decide returns the target for state. Only the coffee flag matters.
func Decide(state mode.State) Target {
	if state.Surface() == mode.SurfaceFreeTyping {
		return FreeTypingArea
	}
	return PrimaryInput
}

// Focusable is a mounted surface handle.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
}

// Handles maps each target to its mounted handle. Unmounted targets are
// absent or nil.
type Handles map[Target]Focusable

// RequestMsg asks the coordinator to focus Target, e.g. after a click.
type RequestMsg struct {
	Target Target
}

// Request returns a command emitting RequestMsg for target.
func Request(target Target) tea.Cmd {
	return func() tea.Msg { return RequestMsg{Target: target} }
}

// Arbiter is the two-state focus machine.
type Arbiter struct {
	current  Target
	requests int
}

// Current returns the target chosen by the last Apply.
func (a Arbiter) Current() Target {
	return a.current
}

// Requests returns how many focus requests have reached a mounted handle.
func (a Arbiter) Requests() int {
	return a.requests
}

// Apply moves to Decide(state), blurs every other mounted handle and
// focuses the target's handle. A target with no mounted handle is skipped.
func (a Arbiter) Apply(state mode.State, handles Handles) (Arbiter, tea.Cmd) {
	next := Decide(state)
	if next != a.current {
		log.Debug(log.CatFocus, "Focus target changed", "from", a.current, "to", next)
	}
	a.current = next

	for target, h := range handles {
		if target != next && h != nil {
			h.Blur()
		}
	}

	h, ok := handles[next]
	if !ok || h == nil {
		log.Debug(log.CatFocus, "Focus target not mounted", "target", next)
		return a, nil
	}
	a.requests++
	return a, h.Focus()
}
