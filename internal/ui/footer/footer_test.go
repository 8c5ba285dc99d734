package footer

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/keyloom/internal/mode"
	"github.com/zjrosen/keyloom/internal/testutil"
	"github.com/zjrosen/keyloom/internal/ui/picker"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testProps() Props {
	return Props{
		Themes:      []ThemeOption{{Label: "default"}, {Label: "dark", Swatch: "#FFFFFF"}, {Label: "nord"}},
		ActiveTheme: "dark",
		Modes:       mode.State{Music: true},
	}
}

func TestView_ShowsFlagsAndTheme(t *testing.T) {
	view := New().SetProps(testProps()).SetSize(120, 30).View()

	require.Contains(t, view, "○ F2 focused")
	require.Contains(t, view, "● F3 music")
	require.Contains(t, view, "○ F4 coffee")
	require.Contains(t, view, "theme: dark")
}

func TestView_TruncatesThemeOnNarrowScreen(t *testing.T) {
	p := testProps()
	p.ActiveTheme = "a-very-long-theme-name-that-will-not-fit"
	view := New().SetProps(p).SetSize(60, 10).View()

	require.NotContains(t, view, "will-not-fit")
	require.Contains(t, view, "…")
}

func TestOpenPicker_HighlightsActive(t *testing.T) {
	m := New().SetProps(testProps()).SetSize(80, 24).OpenPicker()
	require.True(t, m.PickerOpen())
	require.Equal(t, "dark", m.picker.Selected().Value)
}

func TestPicker_SelectEmitsThemeMsg(t *testing.T) {
	m := New().SetProps(testProps()).SetSize(80, 24).OpenPicker()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.True(t, m.PickerOpen())
	if cmd != nil {
		require.Nil(t, cmd())
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	sel, ok := cmd().(picker.SelectMsg)
	require.True(t, ok)

	m, cmd = m.Update(sel)
	require.False(t, m.PickerOpen())
	require.Equal(t, SelectThemeMsg{Label: "nord"}, cmd())
}

func TestPicker_CancelCloses(t *testing.T) {
	m := New().SetProps(testProps()).OpenPicker()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	m, cmd = m.Update(cmd())
	require.False(t, m.PickerOpen())
	require.Nil(t, cmd)
}

func TestUpdate_KeysIgnoredWhenClosed(t *testing.T) {
	m, cmd := New().SetProps(testProps()).Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.PickerOpen())
	require.Nil(t, cmd)
}

func TestOverlay_ClosedReturnsBackground(t *testing.T) {
	require.Equal(t, "bg", New().Overlay("bg"))
}

func TestToggleZoneIDs_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range mode.Flags() {
		id := makeToggleZoneID(f)
		require.False(t, seen[id])
		require.NotEqual(t, zoneTheme, id)
		seen[id] = true
	}
}

func TestUpdate_ClickToggle(t *testing.T) {
	m := New().SetProps(testProps()).SetSize(120, 30)
	z := testutil.WaitForZone(t, makeToggleZoneID(mode.FlagCoffee), m.View)

	m, cmd := m.Update(testutil.ClickIn(z))
	require.NotNil(t, cmd)
	require.Equal(t, mode.ToggleMsg{Flag: mode.FlagCoffee}, cmd())
	require.False(t, m.PickerOpen())
}

func TestUpdate_ClickThemeOpensPicker(t *testing.T) {
	m := New().SetProps(testProps()).SetSize(120, 30)
	z := testutil.WaitForZone(t, zoneTheme, m.View)

	m, cmd := m.Update(testutil.ClickIn(z))
	require.Nil(t, cmd)
	require.True(t, m.PickerOpen())
}
