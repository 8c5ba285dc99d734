package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPresets_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range Presets {
		require.NotEmpty(t, p.Name)
		require.False(t, seen[p.Name], "duplicate preset %q", p.Name)
		seen[p.Name] = true
	}
}

func TestPresets_DefineEveryToken(t *testing.T) {
	for _, p := range Presets {
		t.Run(p.Name, func(t *testing.T) {
			for _, token := range AllTokens() {
				hex, ok := p.Colors[token]
				require.True(t, ok, "preset %q missing %s", p.Name, token)
				require.True(t, isValidHexColor(hex), "preset %q has invalid %s=%s", p.Name, token, hex)
			}
			require.Len(t, p.Colors, len(AllTokens()), "preset %q defines unknown tokens", p.Name)
		})
	}
}

func TestPresetByName(t *testing.T) {
	p, ok := PresetByName("dark")
	require.True(t, ok)
	require.Equal(t, "dark", p.Name)

	_, ok = PresetByName("solarized")
	require.False(t, ok)
}

func TestApplyTheme_Palette(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })

	err := ApplyTheme(ThemeConfig{Palette: DraculaPreset.Colors})
	require.NoError(t, err)
	require.Equal(t, "#F8F8F2", TextPrimaryColor.Dark)
	require.Equal(t, "#BD93F9", AccentColor.Dark)
}

func TestApplyTheme_PartialPaletteKeepsDefaults(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })

	err := ApplyTheme(ThemeConfig{Palette: Palette{TokenCaret: "#123456"}})
	require.NoError(t, err)
	require.Equal(t, "#123456", CaretColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
}

func TestApplyTheme_Overrides(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })

	err := ApplyTheme(ThemeConfig{
		Palette:   NordPreset.Colors,
		Overrides: map[string]string{"text.error": "#00FF00"},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", TextErrorColor.Dark)
	require.Equal(t, NordPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
}

func TestApplyTheme_InvalidOverride(t *testing.T) {
	err := ApplyTheme(ThemeConfig{Overrides: map[string]string{"text.nope": "#FFFFFF"}})
	require.ErrorContains(t, err, "unknown color token")

	err = ApplyTheme(ThemeConfig{Overrides: map[string]string{"caret": "blue"}})
	require.ErrorContains(t, err, "invalid hex color")
}

func TestRegisterStyleRebuilder(t *testing.T) {
	saved := styleRebuilders
	t.Cleanup(func() { styleRebuilders = saved })

	calls := 0
	RegisterStyleRebuilder(func() { calls++ })
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 1, calls)
}

func TestPalette_Clone(t *testing.T) {
	orig := Palette{TokenCaret: "#FFFFFF"}
	c := orig.Clone()
	c[TokenCaret] = "#000000"
	require.Equal(t, "#FFFFFF", orig[TokenCaret])
}

func TestPalette_Swatch(t *testing.T) {
	require.Equal(t, DraculaPreset.Colors[TokenAccent], DraculaPreset.Colors.Swatch())
	require.Empty(t, Palette{}.Swatch())
}
