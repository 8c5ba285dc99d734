// Package theme resolves the persisted theme preference against the built-in
// catalog. A label is the only stable identifier: the palette that travels
// with it in storage is informational and the catalog's copy always wins.
package theme

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zjrosen/keyloom/internal/log"
	"github.com/zjrosen/keyloom/internal/prefs"
	"github.com/zjrosen/keyloom/internal/ui/styles"
)

// DefaultLabel is the compiled-in fallback theme.
const DefaultLabel = "default"

// Preference is a selectable theme: a stable label and its palette.
type Preference struct {
	Label string         `json:"label"`
	Value styles.Palette `json:"value"`
}

// Catalog is the ordered set of selectable themes. Labels are unique.
type Catalog []Preference

// DefaultCatalog builds the catalog from the built-in presets.
func DefaultCatalog() Catalog {
	c := make(Catalog, 0, len(styles.Presets))
	for _, p := range styles.Presets {
		c = append(c, Preference{Label: p.Name, Value: p.Colors.Clone()})
	}
	return c
}

// Lookup returns the entry with the given label.
func (c Catalog) Lookup(label string) (Preference, bool) {
	for _, entry := range c {
		if entry.Label == label {
			return entry, true
		}
	}
	return Preference{}, false
}

// Labels returns the catalog labels in order.
func (c Catalog) Labels() []string {
	labels := make([]string, len(c))
	for i, entry := range c {
		labels[i] = entry.Label
	}
	return labels
}

// IndexOf returns the position of label in the catalog, or -1.
func (c Catalog) IndexOf(label string) int {
	for i, entry := range c {
		if entry.Label == label {
			return i
		}
	}
	return -1
}

// Resolve returns the catalog's canonical entry for label.
// An empty label means nothing was persisted. Both that and a label the
// catalog no longer knows resolve to fallback.
func Resolve(label string, catalog Catalog, fallback Preference) Preference {
	if label == "" {
		return fallback
	}
	entry, ok := catalog.Lookup(label)
	if !ok {
		log.Warn(log.CatTheme, "Persisted theme not in catalog, using fallback", "label", label, "fallback", fallback.Label)
		return fallback
	}
	return entry
}

// ErrMalformed is returned by Decode for values that are not a theme preference.
var ErrMalformed = errors.New("malformed theme preference")

// Encode serializes p as stored under prefs.KeyTheme.
func Encode(p Preference) string {
	data, err := json.Marshal(p)
	if err != nil {
		// A map of string to string always marshals.
		panic(fmt.Sprintf("encoding theme preference: %v", err))
	}
	return string(data)
}

// Decode parses a stored theme preference. Only the envelope and the label
// are required; a value that is not a palette decodes to a nil Value.
func Decode(raw string) (Preference, error) {
	var stored struct {
		Label string          `json:"label"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return Preference{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if stored.Label == "" {
		return Preference{}, fmt.Errorf("%w: missing label", ErrMalformed)
	}

	p := Preference{Label: stored.Label}
	if len(stored.Value) > 0 {
		var palette styles.Palette
		if err := json.Unmarshal(stored.Value, &palette); err == nil {
			p.Value = palette
		}
	}
	return p, nil
}

// Hydrate reads the persisted theme from store and resolves it.
// Missing, malformed and unknown values all yield fallback.
func Hydrate(store prefs.Store, catalog Catalog, fallback Preference) Preference {
	raw, ok := store.Get(prefs.KeyTheme)
	if !ok {
		log.Debug(log.CatTheme, "No persisted theme", "fallback", fallback.Label)
		return fallback
	}
	p, err := Decode(raw)
	if err != nil {
		log.Warn(log.CatTheme, "Ignoring persisted theme", "error", err)
		return fallback
	}
	return Resolve(p.Label, catalog, fallback)
}

// Persist writes p to store under prefs.KeyTheme.
func Persist(store prefs.Store, p Preference) {
	store.Set(prefs.KeyTheme, Encode(p))
}

// Apply makes p the active palette, layering user color overrides on top.
func Apply(p Preference, overrides map[string]string) error {
	return styles.ApplyTheme(styles.ThemeConfig{Palette: p.Value, Overrides: overrides})
}
