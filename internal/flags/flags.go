// Package flags provides opt-in switches for terminal behavior that does not
// suit every setup. Flags are read-only after initialization and unknown
// flags read as disabled.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/keyloom/internal/log"
)

// Flag name constants for type-safe flag access.
const (
	// FlagCellMotionMouse reports the mouse only while a button is held.
	// Hover tracking stops, so leaving the music widget no longer hands
	// focus back to the typing surface.
	FlagCellMotionMouse = "cell-motion-mouse"

	// FlagNoAltScreen runs inside the normal terminal buffer.
	FlagNoAltScreen = "no-alt-screen"
)

// Known returns every flag keyloom reads.
func Known() []string {
	return []string{FlagCellMotionMouse, FlagNoAltScreen}
}

// Registry holds flag state loaded from the flags section of the config.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. The map is copied.
// If flags is nil, an empty registry is created (all flags disabled).
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	for name := range r.flags {
		if !slices.Contains(Known(), name) {
			log.Warn(log.CatConfig, "Ignoring unknown flag", "flag", name)
		}
	}
	log.Debug(log.CatConfig, "Flags initialized", "count", len(r.flags), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Returns false for unknown flags and on a nil registry.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of all flags (for debugging/logging).
func (r *Registry) All() map[string]bool {
	result := make(map[string]bool)
	if r != nil {
		maps.Copy(result, r.flags)
	}
	return result
}
