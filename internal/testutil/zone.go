// Package testutil provides shared helpers for keyloom tests.
package testutil

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

// WaitForZone scans render() through the global zone manager until id is
// registered. Zone registration is asynchronous via a channel worker in
// bubblezone, so a single Scan is not enough.
func WaitForZone(t *testing.T, id string, render func() string) *zone.ZoneInfo {
	t.Helper()
	var z *zone.ZoneInfo
	for retries := 0; retries < 50; retries++ {
		_ = zone.Scan(render())
		z = zone.Get(id)
		if z != nil && !z.IsZero() {
			return z
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z, "zone %q should be registered after Scan", id)
	require.False(t, z.IsZero(), "zone %q should not be zero", id)
	return z
}

// ClickIn returns a left-button release inside z.
func ClickIn(z *zone.ZoneInfo) tea.MouseMsg {
	return tea.MouseMsg{
		X:      z.StartX + (z.EndX-z.StartX)/2,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	}
}
