// Package config provides configuration types and defaults for keyloom.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/keyloom/internal/log"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

// Preference store backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds all configuration options for keyloom.
type Config struct {
	Debug   bool          `mapstructure:"debug"`
	Store   StoreConfig   `mapstructure:"store"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	UI      UIConfig      `mapstructure:"ui"`
	Tracing TracingConfig `mapstructure:"tracing"`

	// Flags switches optional terminal behavior. See internal/flags.
	Flags map[string]bool `mapstructure:"flags"`
}

// StoreConfig selects where preferences are persisted.
type StoreConfig struct {
	// Backend is "sqlite" (default), "file" (YAML) or "memory".
	Backend string `mapstructure:"backend" validate:"oneof=sqlite file memory"`

	// Path is the database or YAML file. Empty derives a path from Backend.
	Path string `mapstructure:"path"`

	// CacheTTL enables a read-through cache when positive.
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`

	// Watch reloads preferences when the store file changes on disk.
	Watch bool `mapstructure:"watch"`
}

// ResolvedPath returns Path, or the default path for Backend when empty.
func (s StoreConfig) ResolvedPath() string {
	if s.Path != "" {
		return s.Path
	}
	return DefaultStorePath(s.Backend)
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Default is the theme used when nothing has been persisted yet.
	// Run 'keyloom themes' for the list.
	Default string `mapstructure:"default"`

	// Colors overrides individual color tokens on top of whichever theme is
	// active. Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style" validate:"oneof=dark light"` // help overlay rendering
	ShowLogo      bool   `mapstructure:"show_logo"`
	Prompt        string `mapstructure:"prompt"` // practice text for the exercise surface
}

// TracingConfig configures OpenTelemetry spans around preference I/O.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"`
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// DefaultPrompt is the exercise text used when ui.prompt is unset.
const DefaultPrompt = "the quick brown fox jumps over the lazy dog while the coffee cools and the keys click softly under patient fingers"

// configDir returns ~/.config/keyloom, or "" if the home dir is unavailable.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "keyloom")
}

// DefaultStorePath returns the default preference file for backend.
func DefaultStorePath(backend string) string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	switch backend {
	case BackendFile:
		return filepath.Join(dir, "prefs.yaml")
	case BackendSQLite:
		return filepath.Join(dir, "prefs.db")
	default:
		return ""
	}
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/keyloom/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Store: StoreConfig{
			Backend:  BackendSQLite,
			CacheTTL: 0,
			Watch:    true,
		},
		Theme: ThemeConfig{
			Default: styles.DefaultPreset.Name,
		},
		UI: UIConfig{
			MarkdownStyle: "dark",
			ShowLogo:      true,
			Prompt:        DefaultPrompt,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks cfg for errors.
func Validate(cfg Config) error {
	if err := convertValidationError(validatorInstance().Struct(cfg)); err != nil {
		return err
	}
	if cfg.Theme.Default != "" {
		if _, ok := styles.PresetByName(cfg.Theme.Default); !ok {
			return fmt.Errorf("theme.default: unknown theme %q", cfg.Theme.Default)
		}
	}
	if err := styles.ValidateOverrides(cfg.Theme.FlattenedColors()); err != nil {
		return fmt.Errorf("theme.colors: %w", err)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# keyloom configuration

# Write a debug log to ./debug.log (same as --debug or KEYLOOM_DEBUG=1)
debug: false

# Where preferences (theme, focused mode) are kept between sessions
store:
  backend: sqlite      # sqlite (default), file (YAML) or memory
  # path: ~/.config/keyloom/prefs.db
  # cache_ttl: 5m      # cache reads in memory; 0 disables
  watch: true          # pick up edits made by 'keyloom prefs set' while running

# Theme configuration
theme:
  # Theme used until you pick one with F5 (run 'keyloom themes' for the list):
  default: default
  #
  # Available themes:
  #   default           - Muted greys with a blue caret
  #   dark              - Deep black with amber highlights
  #   light             - Ink on paper
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors on top of the active theme:
  # colors:
  #   text.primary: "#FFFFFF"
  #   caret: "#FF00FF"

# UI settings
ui:
  markdown_style: dark  # help overlay style: "dark" (default) or "light"
  show_logo: true
  # prompt: "custom practice text"

# Tracing of preference reads and writes
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/keyloom/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Optional terminal behavior
# flags:
#   cell-motion-mouse: true   # only report the mouse while a button is held
#   no-alt-screen: true       # stay in the normal terminal buffer
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
