// Package styles contains Lip Gloss style definitions.
package styles

// Preset is a named, built-in palette.
type Preset struct {
	Name        string
	Description string
	Colors      Palette
}

// Presets lists the built-in themes in the order the footer menu shows them.
var Presets = []Preset{
	DefaultPreset,
	DarkPreset,
	LightPreset,
	CatppuccinMochaPreset,
	DraculaPreset,
	NordPreset,
	HighContrastPreset,
}

// PresetByName returns the built-in preset with the given name.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultPreset is the theme used when nothing has been persisted.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Muted greys with a blue caret",
	Colors: Palette{
		TokenTextPrimary: "#CCCCCC",
		TokenTextMuted:   "#696969",
		TokenTextTyped:   "#73F59F",
		TokenTextError:   "#FF8787",
		TokenCaret:       "#54A0FF",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#FFFFFF",

		TokenAccent:      "#54A0FF",
		TokenMusicAccent: "#FECA57",

		TokenFooterActive:       "#FFFFFF",
		TokenFooterInactive:     "#696969",
		TokenSelectionIndicator: "#FFFFFF",

		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",
	},
}

// DarkPreset is a high-saturation dark theme.
var DarkPreset = Preset{
	Name:        "dark",
	Description: "Deep black with amber highlights",
	Colors: Palette{
		TokenTextPrimary: "#E6E6E6",
		TokenTextMuted:   "#4D4D4D",
		TokenTextTyped:   "#F5A623",
		TokenTextError:   "#E74C3C",
		TokenCaret:       "#F5A623",

		TokenBorderDefault: "#3A3A3A",
		TokenBorderFocus:   "#F5A623",

		TokenAccent:      "#F5A623",
		TokenMusicAccent: "#9B59B6",

		TokenFooterActive:       "#F5A623",
		TokenFooterInactive:     "#4D4D4D",
		TokenSelectionIndicator: "#F5A623",

		TokenToastSuccess: "#2ECC71",
		TokenToastError:   "#E74C3C",
		TokenToastInfo:    "#3498DB",
		TokenToastWarn:    "#F1C40F",
	},
}

// LightPreset is meant for terminals with a light background.
var LightPreset = Preset{
	Name:        "light",
	Description: "Ink on paper",
	Colors: Palette{
		TokenTextPrimary: "#2D3436",
		TokenTextMuted:   "#B2BEC3",
		TokenTextTyped:   "#0984E3",
		TokenTextError:   "#D63031",
		TokenCaret:       "#0984E3",

		TokenBorderDefault: "#B2BEC3",
		TokenBorderFocus:   "#2D3436",

		TokenAccent:      "#6C5CE7",
		TokenMusicAccent: "#E17055",

		TokenFooterActive:       "#2D3436",
		TokenFooterInactive:     "#B2BEC3",
		TokenSelectionIndicator: "#0984E3",

		TokenToastSuccess: "#00B894",
		TokenToastError:   "#D63031",
		TokenToastInfo:    "#0984E3",
		TokenToastWarn:    "#FDCB6E",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: Palette{
		TokenTextPrimary: "#CDD6F4", // text
		TokenTextMuted:   "#6C7086", // overlay0
		TokenTextTyped:   "#A6E3A1", // green
		TokenTextError:   "#F38BA8", // red
		TokenCaret:       "#F5E0DC", // rosewater

		TokenBorderDefault: "#6C7086", // overlay0
		TokenBorderFocus:   "#CDD6F4", // text

		TokenAccent:      "#CBA6F7", // mauve
		TokenMusicAccent: "#FAB387", // peach

		TokenFooterActive:       "#CDD6F4", // text
		TokenFooterInactive:     "#6C7086", // overlay0
		TokenSelectionIndicator: "#89B4FA", // blue

		TokenToastSuccess: "#A6E3A1", // green
		TokenToastError:   "#F38BA8", // red
		TokenToastInfo:    "#89B4FA", // blue
		TokenToastWarn:    "#F9E2AF", // yellow
	},
}

// DraculaPreset is the Dracula theme.
// Colors from: https://draculatheme.com/contribute
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula - dark theme with vibrant colors",
	Colors: Palette{
		TokenTextPrimary: "#F8F8F2", // foreground
		TokenTextMuted:   "#6272A4", // comment
		TokenTextTyped:   "#50FA7B", // green
		TokenTextError:   "#FF5555", // red
		TokenCaret:       "#FF79C6", // pink

		TokenBorderDefault: "#6272A4", // comment
		TokenBorderFocus:   "#F8F8F2", // foreground

		TokenAccent:      "#BD93F9", // purple
		TokenMusicAccent: "#FFB86C", // orange

		TokenFooterActive:       "#F8F8F2", // foreground
		TokenFooterInactive:     "#6272A4", // comment
		TokenSelectionIndicator: "#BD93F9", // purple

		TokenToastSuccess: "#50FA7B", // green
		TokenToastError:   "#FF5555", // red
		TokenToastInfo:    "#8BE9FD", // cyan
		TokenToastWarn:    "#F1FA8C", // yellow
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com/docs/colors-and-palettes
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: Palette{
		TokenTextPrimary: "#ECEFF4", // snow storm 3
		TokenTextMuted:   "#4C566A", // polar night 4
		TokenTextTyped:   "#A3BE8C", // aurora green
		TokenTextError:   "#BF616A", // aurora red
		TokenCaret:       "#88C0D0", // frost 2

		TokenBorderDefault: "#4C566A", // polar night 4
		TokenBorderFocus:   "#ECEFF4", // snow storm 3

		TokenAccent:      "#88C0D0", // frost 2
		TokenMusicAccent: "#B48EAD", // aurora purple

		TokenFooterActive:       "#ECEFF4", // snow storm 3
		TokenFooterInactive:     "#4C566A", // polar night 4
		TokenSelectionIndicator: "#88C0D0", // frost 2

		TokenToastSuccess: "#A3BE8C", // aurora green
		TokenToastError:   "#BF616A", // aurora red
		TokenToastInfo:    "#81A1C1", // frost 3
		TokenToastWarn:    "#EBCB8B", // aurora yellow
	},
}

// HighContrastPreset maximizes legibility for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast for accessibility",
	Colors: Palette{
		TokenTextPrimary: "#FFFFFF",
		TokenTextMuted:   "#FFFFFF", // no muted colors in high contrast
		TokenTextTyped:   "#00FF00",
		TokenTextError:   "#FF0000",
		TokenCaret:       "#FFFF00",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00", // bright yellow for focus

		TokenAccent:      "#00FFFF",
		TokenMusicAccent: "#FF00FF",

		TokenFooterActive:       "#FFFF00",
		TokenFooterInactive:     "#FFFFFF",
		TokenSelectionIndicator: "#FFFF00",

		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",
		TokenToastWarn:    "#FFFF00",
	},
}
