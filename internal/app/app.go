// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/keyloom/internal/config"
	"github.com/zjrosen/keyloom/internal/focus"
	"github.com/zjrosen/keyloom/internal/keys"
	"github.com/zjrosen/keyloom/internal/log"
	"github.com/zjrosen/keyloom/internal/mode"
	"github.com/zjrosen/keyloom/internal/prefs"
	"github.com/zjrosen/keyloom/internal/pubsub"
	"github.com/zjrosen/keyloom/internal/theme"
	"github.com/zjrosen/keyloom/internal/ui/footer"
	"github.com/zjrosen/keyloom/internal/ui/freetype"
	"github.com/zjrosen/keyloom/internal/ui/help"
	"github.com/zjrosen/keyloom/internal/ui/logo"
	"github.com/zjrosen/keyloom/internal/ui/music"
	"github.com/zjrosen/keyloom/internal/ui/picker"
	"github.com/zjrosen/keyloom/internal/ui/toaster"
	"github.com/zjrosen/keyloom/internal/ui/typebox"
	"github.com/zjrosen/keyloom/internal/watcher"
)

// maxSurfaceWidth caps the typing surfaces on wide terminals.
const maxSurfaceWidth = 80

// Options configures New.
type Options struct {
	Store    prefs.Store
	Catalog  theme.Catalog
	Fallback theme.Preference
	Config   config.Config

	// StorePath is watched for external edits when Config.Store.Watch is set.
	// Empty disables watching.
	StorePath string
}

// surface is the mounted typing surface. Exactly one is mounted at a time.
type surface interface {
	focus.Focusable
	Update(msg tea.Msg) tea.Cmd
	SetSize(width, height int)
	View() string
}

// refresher is implemented by stores that cache reads.
type refresher interface {
	Refresh()
}

// snapshot is the committed state the settle step reacts to.
type snapshot struct {
	theme string
	modes mode.State
}

// Model is the root application state.
type Model struct {
	store     prefs.Store
	catalog   theme.Catalog
	fallback  theme.Preference
	overrides map[string]string
	prompt    string
	showLogo  bool

	// Committed state
	theme theme.Preference
	modes mode.Controller

	// Settle bookkeeping
	settled     snapshot
	hasSettled  bool
	arbiter     focus.Arbiter
	surfaceKind mode.Surface
	surface     surface

	// Collaborators
	footer   footer.Model
	music    music.Model
	toaster  toaster.Model
	help     help.Model
	helpOpen bool
	keys     keys.KeyMap

	width  int
	height int

	initCmd tea.Cmd

	// File watcher for external store edits (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Change]
}

// New hydrates the theme and focused flag from the store, applies the
// palette, mounts the surface and runs the first settle step.
func New(opts Options) Model {
	catalog := opts.Catalog
	if len(catalog) == 0 {
		catalog = theme.DefaultCatalog()
	}
	fallback := opts.Fallback
	if fallback.Label == "" {
		fallback, _ = catalog.Lookup(theme.DefaultLabel)
	}
	prompt := opts.Config.UI.Prompt
	if prompt == "" {
		prompt = config.DefaultPrompt
	}

	m := Model{
		store:     opts.Store,
		catalog:   catalog,
		fallback:  fallback,
		overrides: opts.Config.Theme.FlattenedColors(),
		prompt:    prompt,
		showLogo:  opts.Config.UI.ShowLogo,
		footer:    footer.New(),
		music:     music.New(),
		toaster:   toaster.New(),
		help:      help.New(keys.DefaultKeyMap(), keys.DefaultPickerKeyMap(), opts.Config.UI.MarkdownStyle),
		keys:      keys.DefaultKeyMap(),
	}

	m = m.hydrate()
	m.applyPalette()

	if opts.Config.Store.Watch && opts.StorePath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.StorePath))
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
				m.watcherListener = pubsub.NewContinuousListener(m.watcherCtx, w.Broker())
			} else {
				_ = w.Stop()
				log.Warn(log.CatWatcher, "Store watcher failed to start", "path", opts.StorePath, "error", err)
			}
		} else {
			log.Warn(log.CatWatcher, "Store watcher unavailable", "path", opts.StorePath, "error", err)
		}
	}

	m, m.initCmd = m.settle()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.initCmd}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Theme returns the active theme.
func (m Model) Theme() theme.Preference {
	return m.theme
}

// Modes returns the committed mode flags.
func (m Model) Modes() mode.State {
	return m.modes.State()
}

// FocusTarget returns the arbiter's current target.
func (m Model) FocusTarget() focus.Target {
	return m.arbiter.Current()
}

// FocusRequests returns how many focus requests reached a mounted surface.
func (m Model) FocusRequests() int {
	return m.arbiter.Requests()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m, settleCmd := m.settle()
	return m, tea.Batch(cmd, settleCmd)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.footer = m.footer.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.resizeSurface()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case mode.ToggleMsg:
		return m.toggle(msg.Flag), nil

	case footer.SelectThemeMsg:
		return m.selectTheme(msg.Label)

	case picker.SelectMsg, picker.CancelMsg:
		var cmd tea.Cmd
		m.footer, cmd = m.footer.Update(msg)
		return m, cmd

	case focus.RequestMsg:
		return m.handleFocusRequest(msg.Target)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case pubsub.Event[watcher.Change]:
		if msg.Type == pubsub.ErrorEvent {
			log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Err)
			return m, m.watcherListener.Listen()
		}
		if r, ok := m.store.(refresher); ok {
			r.Refresh()
		}
		log.Debug(log.CatPrefs, "Store changed on disk, rehydrating", "path", msg.Payload.Path)
		m = m.rehydrate()
		return m, m.watcherListener.Listen()
	}

	// Cursor blinks and anything else belong to the surface.
	if m.surface != nil {
		return m, m.surface.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.helpOpen {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.helpOpen = false
		}
		return m, nil
	}

	if m.footer.PickerOpen() {
		var cmd tea.Cmd
		m.footer, cmd = m.footer.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.ToggleFocused):
		return m.toggle(mode.FlagFocused), nil
	case key.Matches(msg, m.keys.ToggleMusic):
		return m.toggle(mode.FlagMusic), nil
	case key.Matches(msg, m.keys.ToggleCoffee):
		return m.toggle(mode.FlagCoffee), nil
	case key.Matches(msg, m.keys.ThemePicker):
		m.footer = m.footer.SetProps(m.footerProps()).OpenPicker()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.helpOpen = true
		return m, nil
	}

	if m.surface != nil {
		return m, m.surface.Update(msg)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.helpOpen {
		return m, nil
	}
	if m.footer.PickerOpen() {
		var cmd tea.Cmd
		m.footer, cmd = m.footer.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.footer, cmd = m.footer.Update(msg)
	cmds = append(cmds, cmd)
	m.music, cmd = m.music.Update(msg)
	cmds = append(cmds, cmd)
	if m.surface != nil {
		cmds = append(cmds, m.surface.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// toggle flips one mode flag. Persistence and focus follow in settle.
func (m Model) toggle(flag mode.Flag) Model {
	m.modes = m.modes.Toggle(flag)
	return m
}

// selectTheme writes the chosen theme through to the store, then makes it
// the active palette.
func (m Model) selectTheme(label string) (Model, tea.Cmd) {
	p, ok := m.catalog.Lookup(label)
	if !ok {
		log.Warn(log.CatTheme, "Selected theme not in catalog", "label", label)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(fmt.Sprintf("Unknown theme %q", label), toaster.StyleError)
		return m, cmd
	}

	theme.Persist(m.store, p)
	m.theme = p
	m.applyPalette()
	log.Info(log.CatTheme, "Theme selected", "label", p.Label)

	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Theme: "+p.Label, toaster.StyleSuccess)
	return m, cmd
}

// handleFocusRequest re-focuses the current target. Requests for a surface
// that is not the arbiter's decision are dropped.
func (m Model) handleFocusRequest(target focus.Target) (Model, tea.Cmd) {
	state := m.modes.State()
	if target != focus.Decide(state) {
		log.Debug(log.CatFocus, "Ignoring focus request for inactive surface", "target", target)
		return m, nil
	}
	var cmd tea.Cmd
	m.arbiter, cmd = m.arbiter.Apply(state, m.handles())
	return m, cmd
}

// hydrate loads the theme and focused flag from the store.
func (m Model) hydrate() Model {
	m.theme = theme.Hydrate(m.store, m.catalog, m.fallback)
	focused := false
	if raw, ok := m.store.Get(prefs.KeyFocusedMode); ok {
		focused = mode.FocusedFromString(raw)
	}
	m.modes = mode.NewController(mode.State{Focused: focused})
	return m
}

// rehydrate picks up external edits to the persisted keys. Session-only
// flags are kept.
func (m Model) rehydrate() Model {
	p := theme.Hydrate(m.store, m.catalog, m.fallback)
	if p.Label != m.theme.Label {
		m.theme = p
		m.applyPalette()
		log.Info(log.CatTheme, "Theme changed externally", "label", p.Label)
	}
	if raw, ok := m.store.Get(prefs.KeyFocusedMode); ok {
		state := m.modes.State()
		if focused := mode.FocusedFromString(raw); focused != state.Focused {
			m.modes = m.modes.Toggle(mode.FlagFocused)
		}
	}
	return m
}

func (m Model) applyPalette() {
	if err := theme.Apply(m.theme, m.overrides); err != nil {
		log.Warn(log.CatTheme, "Applying theme failed", "label", m.theme.Label, "error", err)
	}
}

// settle runs after every update. When the committed snapshot changed it
// persists the focused flag, mounts the surface for the current mode and
// re-issues the focus request.
func (m Model) settle() (Model, tea.Cmd) {
	state := m.modes.State()
	snap := snapshot{theme: m.theme.Label, modes: state}

	if m.hasSettled && snap == m.settled {
		m.syncProps()
		return m, nil
	}

	if !m.hasSettled || m.settled.modes.Focused != state.Focused {
		m.store.Set(prefs.KeyFocusedMode, mode.FocusedString(state.Focused))
	}

	m.mountSurface(state.Surface())
	m.syncProps()

	var cmd tea.Cmd
	m.arbiter, cmd = m.arbiter.Apply(state, m.handles())
	m.settled = snap
	m.hasSettled = true
	return m, cmd
}

// mountSurface swaps in a fresh surface when the mode calls for a
// different one.
func (m *Model) mountSurface(kind mode.Surface) {
	if m.surface != nil && m.surfaceKind == kind {
		return
	}
	if m.surface != nil {
		m.surface.Blur()
		log.Debug(log.CatUI, "Unmounting surface", "surface", m.surfaceKind)
	}
	switch kind {
	case mode.SurfaceFreeTyping:
		m.surface = freetype.New()
	default:
		m.surface = typebox.New(m.prompt)
	}
	m.surfaceKind = kind
	m.resizeSurface()
	log.Debug(log.CatUI, "Mounted surface", "surface", kind)
}

func (m *Model) resizeSurface() {
	if m.surface == nil || m.width == 0 {
		return
	}
	m.surface.SetSize(min(m.width, maxSurfaceWidth), max(m.height-12, 5))
}

// handles maps the mounted surface to its focus target.
func (m Model) handles() focus.Handles {
	if m.surface == nil {
		return focus.Handles{}
	}
	return focus.Handles{targetFor(m.surfaceKind): m.surface}
}

func targetFor(kind mode.Surface) focus.Target {
	if kind == mode.SurfaceFreeTyping {
		return focus.FreeTypingArea
	}
	return focus.PrimaryInput
}

// syncProps hands the committed state down to the collaborators.
func (m *Model) syncProps() {
	state := m.modes.State()
	if tb, ok := m.surface.(*typebox.Model); ok {
		tb.SetProps(typebox.Props{FocusedMode: state.Focused})
	}
	m.footer = m.footer.SetProps(m.footerProps())
	m.music = m.music.SetProps(music.Props{Music: state.Music, Focused: state.Focused})
}

func (m Model) footerProps() footer.Props {
	themes := make([]footer.ThemeOption, len(m.catalog))
	for i, entry := range m.catalog {
		themes[i] = footer.ThemeOption{Label: entry.Label, Swatch: entry.Value.Swatch()}
	}
	return footer.Props{
		Themes:      themes,
		ActiveTheme: m.theme.Label,
		Modes:       m.modes.State(),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	state := m.modes.State()

	parts := []string{}
	if l := logo.View(logo.Props{Focused: state.Focused, Music: state.Music, Hidden: !m.showLogo}); l != "" {
		parts = append(parts, l, "")
	}
	if m.surface != nil {
		parts = append(parts, m.surface.View())
	}
	if mv := m.music.View(); mv != "" {
		parts = append(parts, "", mv)
	}
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)

	view := body + "\n\n" + m.footer.View()
	if m.width > 0 && m.height > 1 {
		body = lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, body)
		view = body + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.footer.View())
	}

	view = m.footer.Overlay(view)
	if m.helpOpen {
		view = m.help.Overlay(view)
	}
	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}

	return zone.Scan(view)
}

// Close stops the store watcher and closes the store.
func (m *Model) Close() error {
	// Cancel watcher subscription context (stops listener)
	if m.watcherCancel != nil {
		m.watcherCancel()
	}

	// Close watcher if we own it
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}

	if c, ok := m.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
