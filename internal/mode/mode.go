// Package mode holds the three independent UI mode flags and the surface
// they select.
package mode

import (
	"fmt"

	"github.com/zjrosen/keyloom/internal/log"
)

// Flag identifies one mode flag.
type Flag int

const (
	// FlagFocused dims everything but the typing surface. Persisted.
	FlagFocused Flag = iota
	// FlagMusic shows the music widget. Session only.
	FlagMusic
	// FlagCoffee swaps the exercise for free typing. Session only.
	FlagCoffee
)

// Flags returns every flag in display order.
func Flags() []Flag {
	return []Flag{FlagFocused, FlagMusic, FlagCoffee}
}

func (f Flag) String() string {
	switch f {
	case FlagFocused:
		return "focused"
	case FlagMusic:
		return "music"
	case FlagCoffee:
		return "coffee"
	default:
		return fmt.Sprintf("Flag(%d)", int(f))
	}
}

// Surface is the interactive surface on screen. Exactly one is active.
type Surface int

const (
	SurfaceExercise Surface = iota
	SurfaceFreeTyping
)

func (s Surface) String() string {
	if s == SurfaceFreeTyping {
		return "free-typing"
	}
	return "exercise"
}

// State is the full set of mode flags. The zero value has every mode off.
type State struct {
	Focused bool
	Music   bool
	Coffee  bool
}

// Toggle returns s with exactly flag flipped. Unknown flags leave s unchanged.
func (s State) Toggle(flag Flag) State {
	switch flag {
	case FlagFocused:
		s.Focused = !s.Focused
	case FlagMusic:
		s.Music = !s.Music
	case FlagCoffee:
		s.Coffee = !s.Coffee
	}
	return s
}

// Get reports the value of flag.
func (s State) Get(flag Flag) bool {
	switch flag {
	case FlagFocused:
		return s.Focused
	case FlagMusic:
		return s.Music
	case FlagCoffee:
		return s.Coffee
	default:
		return false
	}
}

// Surface returns the active surface.
func (s State) Surface() Surface {
	if s.Coffee {
		return SurfaceFreeTyping
	}
	return SurfaceExercise
}

// ToggleMsg asks the coordinator to flip a flag.
type ToggleMsg struct {
	Flag Flag
}

// Controller owns a State and exposes one toggle per flag.
type Controller struct {
	state State
}

// NewController starts from initial.
func NewController(initial State) Controller {
	return Controller{state: initial}
}

// State returns the current flags.
func (c Controller) State() State {
	return c.state
}

// Toggle flips flag.
func (c Controller) Toggle(flag Flag) Controller {
	c.state = c.state.Toggle(flag)
	log.Debug(log.CatMode, "Toggled mode", "flag", flag, "value", c.state.Get(flag))
	return c
}

func (c Controller) ToggleFocused() Controller { return c.Toggle(FlagFocused) }
func (c Controller) ToggleMusic() Controller   { return c.Toggle(FlagMusic) }
func (c Controller) ToggleCoffee() Controller  { return c.Toggle(FlagCoffee) }

// FocusedString encodes the focused flag for the preference store.
func FocusedString(focused bool) string {
	if focused {
		return "true"
	}
	return "false"
}

// FocusedFromString decodes a stored focused flag. Anything but "true" is false.
func FocusedFromString(raw string) bool {
	return raw == "true"
}
