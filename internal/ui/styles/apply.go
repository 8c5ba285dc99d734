// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig is the palette to apply plus user overrides from config.
type ThemeConfig struct {
	Palette   Palette
	Overrides map[string]string
}

// ValidateOverrides checks that every override names a known token and a hex color.
func ValidateOverrides(overrides map[string]string) error {
	for key, value := range overrides {
		if !isValidToken(ColorToken(key)) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
	}
	return nil
}

// ApplyTheme applies a palette.
// Order of application:
// 1. Start with default colors
// 2. Layer the palette (tokens it omits keep their default)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	if err := ValidateOverrides(cfg.Overrides); err != nil {
		return err
	}

	colors := maps.Clone(DefaultPreset.Colors)
	maps.Copy(colors, cfg.Palette)
	for key, value := range cfg.Overrides {
		colors[ColorToken(key)] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func applyColors(colors Palette) {
	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:        &TextPrimaryColor,
		TokenTextMuted:          &TextMutedColor,
		TokenTextTyped:          &TextTypedColor,
		TokenTextError:          &TextErrorColor,
		TokenCaret:              &CaretColor,
		TokenBorderDefault:      &BorderDefaultColor,
		TokenBorderFocus:        &BorderFocusColor,
		TokenAccent:             &AccentColor,
		TokenMusicAccent:        &MusicAccentColor,
		TokenFooterActive:       &FooterActiveColor,
		TokenFooterInactive:     &FooterInactiveColor,
		TokenSelectionIndicator: &SelectionIndicatorColor,
		TokenToastSuccess:       &ToastBorderSuccessColor,
		TokenToastError:         &ToastBorderErrorColor,
		TokenToastInfo:          &ToastBorderInfoColor,
		TokenToastWarn:          &ToastBorderWarnColor,
	}

	for token, hex := range colors {
		if target, ok := targets[token]; ok {
			// Same color for both modes; the palette already targets one background.
			*target = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

// rebuildStyles recreates all Style objects with updated colors.
func rebuildStyles() {
	PromptStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	TypedStyle = lipgloss.NewStyle().Foreground(TextTypedColor)
	MistakeStyle = lipgloss.NewStyle().Foreground(TextErrorColor).Underline(true)
	CaretStyle = lipgloss.NewStyle().Foreground(CaretColor)
	PlainTextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	HintStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)

	SurfaceStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDefaultColor).
		Padding(0, 1)
	SurfaceFocusedStyle = SurfaceStyle.BorderForeground(BorderFocusColor)

	LogoStyle = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)
	MusicStyle = lipgloss.NewStyle().
		Foreground(MusicAccentColor).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(MusicAccentColor).
		PaddingLeft(1)

	FooterActiveStyle = lipgloss.NewStyle().Foreground(FooterActiveColor).Bold(true)
	FooterInactiveStyle = lipgloss.NewStyle().Foreground(FooterInactiveColor)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
