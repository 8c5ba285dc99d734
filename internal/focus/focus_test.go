package focus

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/keyloom/internal/mode"
)

type fakeHandle struct {
	focused bool
	focuses int
	blurs   int
}

type focusedMsg struct{}

func (f *fakeHandle) Focus() tea.Cmd {
	f.focused = true
	f.focuses++
	return func() tea.Msg { return focusedMsg{} }
}

func (f *fakeHandle) Blur() {
	f.focused = false
	f.blurs++
}

func TestDecide(t *testing.T) {
	require.Equal(t, PrimaryInput, Decide(mode.State{}))
	require.Equal(t, FreeTypingArea, Decide(mode.State{Coffee: true}))
}

func TestDecide_OnlyCoffeeMatters(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		coffee := rapid.Bool().Draw(t, "coffee")
		a := mode.State{Coffee: coffee, Focused: rapid.Bool().Draw(t, "f1"), Music: rapid.Bool().Draw(t, "m1")}
		b := mode.State{Coffee: coffee, Focused: rapid.Bool().Draw(t, "f2"), Music: rapid.Bool().Draw(t, "m2")}
		if Decide(a) != Decide(b) {
			t.Fatalf("Decide differs for %+v and %+v", a, b)
		}
	})
}

func TestApply_FocusesActiveAndBlursOther(t *testing.T) {
	primary, free := &fakeHandle{}, &fakeHandle{}
	handles := Handles{PrimaryInput: primary, FreeTypingArea: free}

	a, cmd := Arbiter{}.Apply(mode.State{Coffee: true}, handles)
	require.Equal(t, FreeTypingArea, a.Current())
	require.True(t, free.focused)
	require.False(t, primary.focused)
	require.Equal(t, 1, primary.blurs)
	require.NotNil(t, cmd)
	require.Equal(t, focusedMsg{}, cmd())

	a, _ = a.Apply(mode.State{}, handles)
	require.Equal(t, PrimaryInput, a.Current())
	require.True(t, primary.focused)
	require.False(t, free.focused)
	require.Equal(t, 2, a.Requests())
}

func TestApply_RefocusesSameTarget(t *testing.T) {
	primary := &fakeHandle{}
	handles := Handles{PrimaryInput: primary}

	a, _ := Arbiter{}.Apply(mode.State{}, handles)
	a, _ = a.Apply(mode.State{Music: true}, handles)
	a, _ = a.Apply(mode.State{Music: true, Focused: true}, handles)

	require.Equal(t, PrimaryInput, a.Current())
	require.Equal(t, 3, primary.focuses)
	require.Equal(t, 3, a.Requests())
}

func TestApply_UnmountedTargetIgnored(t *testing.T) {
	primary := &fakeHandle{}

	var (
		a   Arbiter
		cmd tea.Cmd
	)
	require.NotPanics(t, func() {
		a, cmd = Arbiter{}.Apply(mode.State{Coffee: true}, Handles{PrimaryInput: primary})
	})
	require.Nil(t, cmd)
	require.Equal(t, FreeTypingArea, a.Current())
	require.Equal(t, 0, a.Requests())
	require.Equal(t, 1, primary.blurs)

	a, cmd = a.Apply(mode.State{}, Handles{PrimaryInput: nil})
	require.Nil(t, cmd)
	require.Equal(t, 0, a.Requests())
}

func TestRequest(t *testing.T) {
	require.Equal(t, RequestMsg{Target: PrimaryInput}, Request(PrimaryInput)())
	require.Equal(t, "free-typing-area", FreeTypingArea.String())
}
