package app

import (
	"bytes"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/keyloom/internal/config"
	"github.com/zjrosen/keyloom/internal/focus"
	"github.com/zjrosen/keyloom/internal/mode"
	"github.com/zjrosen/keyloom/internal/prefs"
	"github.com/zjrosen/keyloom/internal/pubsub"
	"github.com/zjrosen/keyloom/internal/testutil"
	"github.com/zjrosen/keyloom/internal/theme"
	"github.com/zjrosen/keyloom/internal/ui/footer"
	"github.com/zjrosen/keyloom/internal/ui/freetype"
	"github.com/zjrosen/keyloom/internal/ui/picker"
	"github.com/zjrosen/keyloom/internal/ui/typebox"
	"github.com/zjrosen/keyloom/internal/watcher"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// recordingStore is an in-memory prefs.Store that keeps every write.
type recordingStore struct {
	values map[prefs.Key]string
	writes []prefs.Key
}

func newRecordingStore(seed map[prefs.Key]string) *recordingStore {
	s := &recordingStore{values: map[prefs.Key]string{}}
	for k, v := range seed {
		s.values[k] = v
	}
	return s
}

func (s *recordingStore) Get(key prefs.Key) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *recordingStore) Set(key prefs.Key, value string) {
	s.values[key] = value
	s.writes = append(s.writes, key)
}

func (s *recordingStore) writesOf(key prefs.Key) int {
	n := 0
	for _, k := range s.writes {
		if k == key {
			n++
		}
	}
	return n
}

func newTestModel(store prefs.Store) Model {
	cfg := config.Defaults()
	cfg.Store.Watch = false
	return New(Options{Store: store, Config: cfg})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyPress(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func exerciseFocused(m Model) bool {
	tb, ok := m.surface.(*typebox.Model)
	return ok && tb.Focused()
}

func freeTypingFocused(m Model) bool {
	ft, ok := m.surface.(*freetype.Model)
	return ok && ft.Focused()
}

func TestNew_NoPersistedData(t *testing.T) {
	store := newRecordingStore(nil)
	m := newTestModel(store)

	require.Equal(t, theme.DefaultLabel, m.Theme().Label)
	require.Equal(t, mode.State{}, m.Modes())
	require.Equal(t, focus.PrimaryInput, m.FocusTarget())
	require.Equal(t, 1, m.FocusRequests())
	require.True(t, exerciseFocused(m))

	// The first settle writes the focused flag, nothing else.
	v, ok := store.Get(prefs.KeyFocusedMode)
	require.True(t, ok)
	require.Equal(t, "false", v)
	_, ok = store.Get(prefs.KeyTheme)
	require.False(t, ok)
}

func TestNew_HydratesPersistedState(t *testing.T) {
	dark, ok := theme.DefaultCatalog().Lookup("dark")
	require.True(t, ok)
	store := newRecordingStore(map[prefs.Key]string{
		prefs.KeyTheme:       theme.Encode(dark),
		prefs.KeyFocusedMode: "true",
	})

	m := newTestModel(store)

	require.Equal(t, "dark", m.Theme().Label)
	require.True(t, m.Modes().Focused)
	require.False(t, m.Modes().Music)
	require.False(t, m.Modes().Coffee)
}

func TestNew_BadThemeFallsBack(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed json", raw: `{"label":`},
		{name: "not an object", raw: `"dark"`},
		{name: "unknown label", raw: `{"label":"solarized","value":{}}`},
		{name: "empty label", raw: `{"label":"","value":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newRecordingStore(map[prefs.Key]string{prefs.KeyTheme: tt.raw})
			require.NotPanics(t, func() {
				m := newTestModel(store)
				require.Equal(t, theme.DefaultLabel, m.Theme().Label)
			})
		})
	}
}

func TestNew_GarbageFocusedFlagReadsFalse(t *testing.T) {
	store := newRecordingStore(map[prefs.Key]string{prefs.KeyFocusedMode: "yes please"})
	m := newTestModel(store)
	require.False(t, m.Modes().Focused)
}

func TestToggleFocused_PersistsAndSurvivesRestart(t *testing.T) {
	store := prefs.NewMemory()
	m := newTestModel(store)

	m, _ = update(t, m, keyPress(tea.KeyF2))
	require.True(t, m.Modes().Focused)
	v, _ := store.Get(prefs.KeyFocusedMode)
	require.Equal(t, "true", v)

	cold := newTestModel(store)
	require.True(t, cold.Modes().Focused)

	m, _ = update(t, m, keyPress(tea.KeyF2))
	v, _ = store.Get(prefs.KeyFocusedMode)
	require.Equal(t, "false", v)
	require.False(t, newTestModel(store).Modes().Focused)
}

func TestSessionFlagsAreNotPersisted(t *testing.T) {
	store := newRecordingStore(nil)
	m := newTestModel(store)
	before := len(store.writes)

	m, _ = update(t, m, keyPress(tea.KeyF3))
	m, _ = update(t, m, keyPress(tea.KeyF4))
	require.True(t, m.Modes().Music)
	require.True(t, m.Modes().Coffee)

	require.Len(t, store.writes, before)
	require.Len(t, store.values, 1)
}

func TestFocusedWrittenOnlyWhenChanged(t *testing.T) {
	store := newRecordingStore(nil)
	m := newTestModel(store)
	require.Equal(t, 1, store.writesOf(prefs.KeyFocusedMode))

	m, _ = update(t, m, keyPress(tea.KeyF3))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	require.Equal(t, 1, store.writesOf(prefs.KeyFocusedMode))

	_, _ = update(t, m, keyPress(tea.KeyF2))
	require.Equal(t, 2, store.writesOf(prefs.KeyFocusedMode))
}

func TestCoffeeMode_SwapsSurfaceAndFocus(t *testing.T) {
	m := newTestModel(prefs.NewMemory())

	m, cmd := update(t, m, keyPress(tea.KeyF4))
	require.Equal(t, focus.FreeTypingArea, m.FocusTarget())
	require.Equal(t, mode.SurfaceFreeTyping, m.surfaceKind)
	require.True(t, freeTypingFocused(m))
	require.NotNil(t, cmd)

	m, _ = update(t, m, keyPress(tea.KeyF4))
	require.Equal(t, focus.PrimaryInput, m.FocusTarget())
	require.Equal(t, mode.SurfaceExercise, m.surfaceKind)
	require.True(t, exerciseFocused(m))
}

func TestUnrelatedChanges_RefocusSameTarget(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	surfaceBefore := m.surface
	requests := m.FocusRequests()

	m, _ = update(t, m, keyPress(tea.KeyF3))
	require.Equal(t, focus.PrimaryInput, m.FocusTarget())
	require.Equal(t, requests+1, m.FocusRequests())
	require.Same(t, surfaceBefore, m.surface)

	m, _ = update(t, m, footer.SelectThemeMsg{Label: "nord"})
	require.Equal(t, focus.PrimaryInput, m.FocusTarget())
	require.Equal(t, requests+2, m.FocusRequests())
	require.Same(t, surfaceBefore, m.surface)
}

func TestNoChange_NoRefocus(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	requests := m.FocusRequests()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	require.Equal(t, requests, m.FocusRequests())
	require.Equal(t, "t", m.surface.(*typebox.Model).Value())
}

func TestFlagsToggleIndependently(t *testing.T) {
	keyFor := map[mode.Flag]tea.KeyType{
		mode.FlagFocused: tea.KeyF2,
		mode.FlagMusic:   tea.KeyF3,
		mode.FlagCoffee:  tea.KeyF4,
	}
	rapid.Check(t, func(t *rapid.T) {
		m := newTestModel(prefs.NewMemory())
		want := mode.State{}
		flags := rapid.SliceOfN(rapid.SampledFrom(mode.Flags()), 0, 12).Draw(t, "flags")
		for _, f := range flags {
			next, _ := m.Update(keyPress(keyFor[f]))
			m = next.(Model)
			want = want.Toggle(f)
			if m.Modes() != want {
				t.Fatalf("after toggling %s: got %+v, want %+v", f, m.Modes(), want)
			}
			if m.FocusTarget() != focus.Decide(want) {
				t.Fatalf("focus target %s, want %s", m.FocusTarget(), focus.Decide(want))
			}
		}
	})
}

func TestToggleMsg_FromFooter(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	m, _ = update(t, m, mode.ToggleMsg{Flag: mode.FlagCoffee})
	require.True(t, m.Modes().Coffee)
	require.Equal(t, focus.FreeTypingArea, m.FocusTarget())
}

func TestSelectTheme_WritesThrough(t *testing.T) {
	store := prefs.NewMemory()
	m := newTestModel(store)

	m, cmd := update(t, m, footer.SelectThemeMsg{Label: "dracula"})
	require.NotNil(t, cmd)
	require.Equal(t, "dracula", m.Theme().Label)
	require.True(t, m.toaster.Visible())

	raw, ok := store.Get(prefs.KeyTheme)
	require.True(t, ok)
	p, err := theme.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "dracula", p.Label)

	require.Equal(t, "dracula", newTestModel(store).Theme().Label)
}

func TestSelectTheme_UnknownLabelKeepsTheme(t *testing.T) {
	store := newRecordingStore(nil)
	m := newTestModel(store)

	m, _ = update(t, m, footer.SelectThemeMsg{Label: "solarized"})
	require.Equal(t, theme.DefaultLabel, m.Theme().Label)
	require.Zero(t, store.writesOf(prefs.KeyTheme))
	require.True(t, m.toaster.Visible())
}

func TestThemePicker_KeyFlow(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, keyPress(tea.KeyF5))
	require.True(t, m.footer.PickerOpen())

	// Typing is routed to the picker while it is open.
	m, _ = update(t, m, keyPress(tea.KeyDown))
	require.Empty(t, m.surface.(*typebox.Model).Value())

	m, cmd := update(t, m, keyPress(tea.KeyEnter))
	require.NotNil(t, cmd)
	sel, ok := cmd().(picker.SelectMsg)
	require.True(t, ok)
	require.Equal(t, "dark", sel.Option.Value)

	m, cmd = update(t, m, sel)
	require.False(t, m.footer.PickerOpen())
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.Equal(t, "dark", m.Theme().Label)
}

func TestThemePicker_EscCancels(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	m, _ = update(t, m, keyPress(tea.KeyF5))

	m, cmd := update(t, m, keyPress(tea.KeyEsc))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.False(t, m.footer.PickerOpen())
	require.Equal(t, theme.DefaultLabel, m.Theme().Label)
}

func TestFocusRequest(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	requests := m.FocusRequests()

	m, cmd := update(t, m, focus.RequestMsg{Target: focus.PrimaryInput})
	require.Equal(t, requests+1, m.FocusRequests())
	require.NotNil(t, cmd)

	// Coffee mode unmounts the exercise, so a late click on it is dropped.
	m, _ = update(t, m, keyPress(tea.KeyF4))
	requests = m.FocusRequests()
	m, _ = update(t, m, focus.RequestMsg{Target: focus.PrimaryInput})
	require.Equal(t, requests, m.FocusRequests())
	require.True(t, freeTypingFocused(m))
}

func TestHelp_BlocksToggles(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = update(t, m, keyPress(tea.KeyF1))
	require.True(t, m.helpOpen)
	require.Contains(t, m.View(), "keyloom help")

	m, _ = update(t, m, keyPress(tea.KeyF2))
	require.False(t, m.Modes().Focused)

	m, _ = update(t, m, keyPress(tea.KeyEsc))
	require.False(t, m.helpOpen)
}

func TestQuit(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	_, cmd := update(t, m, keyPress(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_ComposesCollaborators(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	require.Contains(t, view, "k e y l o o m")
	require.Contains(t, view, "F2 focused")
	require.Contains(t, view, "theme: default")
	require.NotContains(t, view, "lofi rain")

	m, _ = update(t, m, keyPress(tea.KeyF3))
	require.Contains(t, m.View(), "lofi rain")

	m, _ = update(t, m, keyPress(tea.KeyF4))
	require.Contains(t, m.View(), "0 chars")
}

func TestWatcherEvent_Rehydrates(t *testing.T) {
	backend := prefs.NewMemoryBackend(nil)
	store := prefs.NewPersistent(backend)
	m := newTestModel(store)
	m, _ = update(t, m, keyPress(tea.KeyF3))

	nord, _ := theme.DefaultCatalog().Lookup("nord")
	other := prefs.NewPersistent(backend)
	other.Set(prefs.KeyTheme, theme.Encode(nord))
	other.Set(prefs.KeyFocusedMode, "true")

	m, _ = update(t, m, watcherChanged())
	require.Equal(t, "nord", m.Theme().Label)
	require.True(t, m.Modes().Focused)
	require.True(t, m.Modes().Music, "session flags survive a reload")
}

func TestClose_WithoutWatcher(t *testing.T) {
	m := newTestModel(prefs.NewMemory())
	require.NoError(t, m.Close())
}

func TestEndToEnd(t *testing.T) {
	store := prefs.NewMemory()
	m := newTestModel(store)

	require.Equal(t, theme.DefaultLabel, m.Theme().Label)
	require.False(t, m.Modes().Focused)

	m, _ = update(t, m, footer.SelectThemeMsg{Label: "dark"})
	raw, ok := store.Get(prefs.KeyTheme)
	require.True(t, ok)
	require.Contains(t, raw, `"label":"dark"`)
	require.Contains(t, raw, `"value":{`)

	m, _ = update(t, m, keyPress(tea.KeyF4))
	require.Equal(t, focus.FreeTypingArea, m.FocusTarget())
	require.True(t, freeTypingFocused(m))

	m, _ = update(t, m, keyPress(tea.KeyF4))
	require.Equal(t, focus.PrimaryInput, m.FocusTarget())
	require.True(t, exerciseFocused(m))
}

func TestProgram_CoffeeModeTyping(t *testing.T) {
	store := prefs.NewMemory()
	tm := teatest.NewTestModel(t, newTestModel(store), teatest.WithInitialTermSize(100, 30))

	tm.Send(keyPress(tea.KeyF4))
	tm.Type("hi there")
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("8 chars · 2 words"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyPress(tea.KeyCtrlC))
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)

	require.True(t, final.Modes().Coffee)
	require.Equal(t, focus.FreeTypingArea, final.FocusTarget())
	require.Equal(t, "hi there", final.surface.(*freetype.Model).Value())
}

func watcherChanged() tea.Msg {
	return pubsub.Event[watcher.Change]{
		Type:      pubsub.ChangedEvent,
		Payload:   watcher.Change{Path: "prefs.db"},
		Timestamp: time.Now(),
	}
}

func TestRestart_SQLiteRoundTrip(t *testing.T) {
	store, path := testutil.NewSQLiteStore(t, nil)
	m := newTestModel(store)

	m, _ = update(t, m, footer.SelectThemeMsg{Label: "catppuccin-mocha"})
	m, _ = update(t, m, keyPress(tea.KeyF2))
	m, _ = update(t, m, keyPress(tea.KeyF3))
	require.True(t, m.Modes().Focused)

	backend, err := prefs.NewSQLiteBackend(path)
	require.NoError(t, err)
	cold := prefs.NewPersistent(backend)
	t.Cleanup(func() { _ = cold.Close() })

	restarted := newTestModel(cold)
	require.Equal(t, "catppuccin-mocha", restarted.Theme().Label)
	require.Equal(t, mode.State{Focused: true}, restarted.Modes())
}
