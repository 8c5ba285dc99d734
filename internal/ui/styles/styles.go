// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors start at the default preset; ApplyTheme replaces them at runtime.
var (
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#B2BEC3", Dark: "#696969"}
	TextTypedColor   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	TextErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	CaretColor       = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#FFFFFF"}

	AccentColor      = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	MusicAccentColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	FooterActiveColor       = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#FFFFFF"}
	FooterInactiveColor     = lipgloss.AdaptiveColor{Light: "#B2BEC3", Dark: "#696969"}
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#FFFFFF"}

	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
)

// Styles are rebuilt by ApplyTheme because lipgloss captures colors at creation.
var (
	PromptStyle    lipgloss.Style
	TypedStyle     lipgloss.Style
	MistakeStyle   lipgloss.Style
	CaretStyle     lipgloss.Style
	PlainTextStyle lipgloss.Style
	HintStyle      lipgloss.Style

	SurfaceStyle        lipgloss.Style
	SurfaceFocusedStyle lipgloss.Style

	LogoStyle  lipgloss.Style
	MusicStyle lipgloss.Style

	FooterActiveStyle       lipgloss.Style
	FooterInactiveStyle     lipgloss.Style
	SelectionIndicatorStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}
