// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by the surface that uses them.
// These are also the keys users can override under theme.colors.
const (
	// Text hierarchy
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextMuted   ColorToken = "text.muted"
	TokenTextTyped   ColorToken = "text.typed"
	TokenTextError   ColorToken = "text.error"
	TokenCaret       ColorToken = "caret"

	// Borders around the typing surfaces
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Branding and widgets
	TokenAccent      ColorToken = "accent"
	TokenMusicAccent ColorToken = "music.accent"

	// Footer menu
	TokenFooterActive       ColorToken = "footer.active"
	TokenFooterInactive     ColorToken = "footer.inactive"
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextMuted,
		TokenTextTyped,
		TokenTextError,
		TokenCaret,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenAccent,
		TokenMusicAccent,

		TokenFooterActive,
		TokenFooterInactive,
		TokenSelectionIndicator,

		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,
	}
}

// Palette maps every color token to a hex color.
type Palette map[ColorToken]string

// Clone returns an independent copy of p.
func (p Palette) Clone() Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Swatch returns the color that represents p in pickers: its accent, or
// "" when the palette has none.
func (p Palette) Swatch() string {
	return p[TokenAccent]
}
