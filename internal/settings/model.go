package settings

import "slices"

// Translation is the preferred Bible translation. ESV is remote-backed, NKJV
// is served from the bundled offline dataset.
const (
	TranslationESV  = "ESV"
	TranslationNKJV = "NKJV"
)

// OfflineTranslation is the translation of the bundled verse dataset.
const OfflineTranslation = TranslationNKJV

// Selection modes shared by both providers.
const (
	ModeDaily  = "daily"
	ModeRandom = "random"
)

// Background image sources.
const (
	SourceUnsplash = "unsplash"
	SourceCustom   = "custom"
	SourceBoth     = "both"
)

// Settings is the user preference blob consumed read-only by the verse and
// background providers.
type Settings struct {
	Translation       string          `json:"translation"`
	VerseMode         string          `json:"verse_mode"`
	BackgroundMode    string          `json:"background_mode"`
	BackgroundSource  string          `json:"background_source"`
	EnabledCategories map[string]bool `json:"enabled_categories"`
	BackendURL        string          `json:"backend_url,omitempty"`
}

// Defaults returns the settings used before the user has saved anything.
// Stored settings are deep-merged over this, so newly introduced fields and
// categories get backfilled on upgrade.
func Defaults() Settings {
	return Settings{
		Translation:      TranslationESV,
		VerseMode:        ModeDaily,
		BackgroundMode:   ModeDaily,
		BackgroundSource: SourceUnsplash,
		EnabledCategories: map[string]bool{
			"nature":     true,
			"galaxy":     true,
			"oceans":     true,
			"mountains":  true,
			"underwater": true,
		},
	}
}

// EnabledCategoryList returns the enabled category names in a stable sorted
// order, so daily category selection is reproducible across processes.
func (s Settings) EnabledCategoryList() []string {
	out := make([]string, 0, len(s.EnabledCategories))
	for name, enabled := range s.EnabledCategories {
		if enabled {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
