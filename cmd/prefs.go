package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/keyloom/internal/mode"
	"github.com/zjrosen/keyloom/internal/prefs"
	"github.com/zjrosen/keyloom/internal/theme"
)

var errNotSet = errors.New("not set")

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Read and write stored preferences",
	Long: `Read and write the preferences keyloom keeps between sessions.

Keys:
  theme          a theme label (see 'keyloom themes')
  focused-mode   true or false

A running keyloom picks up changes when store.watch is enabled.

Examples:
  keyloom prefs get theme
  keyloom prefs set theme dracula
  keyloom prefs set focused-mode true`,
}

var prefsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store prefs.Store) error {
			return runPrefsGet(cmd.OutOrStdout(), store, args[0])
		})
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store prefs.Store) error {
			return runPrefsSet(store, args[0], args[1])
		})
	},
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd, prefsSetCmd)
	rootCmd.AddCommand(prefsCmd)
}

// withStore opens the configured store for the duration of fn.
func withStore(fn func(prefs.Store) error) error {
	cleanup, err := setupLogging("keyloom-prefs")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := prepareConfig(&cfg); err != nil {
		return err
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	return errors.Join(fn(s.store), s.Close())
}

func parseKey(raw string) (prefs.Key, error) {
	key := prefs.Key(raw)
	if !key.Valid() {
		names := make([]string, 0, len(prefs.Keys()))
		for _, k := range prefs.Keys() {
			names = append(names, string(k))
		}
		return "", fmt.Errorf("unknown key %q (valid: %s)", raw, strings.Join(names, ", "))
	}
	return key, nil
}

// runPrefsGet prints the value for key. The theme is shown by label.
func runPrefsGet(w io.Writer, store prefs.Store, rawKey string) error {
	key, err := parseKey(rawKey)
	if err != nil {
		return err
	}
	raw, ok := store.Get(key)
	if !ok {
		return fmt.Errorf("%s: %w", key, errNotSet)
	}
	if key == prefs.KeyTheme {
		p, err := theme.Decode(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		raw = p.Label
	}
	_, err = fmt.Fprintln(w, raw)
	return err
}

// runPrefsSet validates value for key and stores it in the same encoding
// the application writes.
func runPrefsSet(store prefs.Store, rawKey, value string) error {
	key, err := parseKey(rawKey)
	if err != nil {
		return err
	}

	switch key {
	case prefs.KeyTheme:
		p, ok := theme.DefaultCatalog().Lookup(value)
		if !ok {
			return fmt.Errorf("unknown theme %q (run 'keyloom themes')", value)
		}
		theme.Persist(store, p)
	case prefs.KeyFocusedMode:
		if value != "true" && value != "false" {
			return fmt.Errorf("focused-mode must be true or false, got %q", value)
		}
		store.Set(key, mode.FocusedString(mode.FocusedFromString(value)))
	}
	return nil
}
