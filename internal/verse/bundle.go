package verse

import (
	_ "embed"
	"encoding/json"
	"log"
	"sync"
)

//go:embed data/references.json
var referencesRaw []byte

//go:embed data/nkjv_bundle.json
var bundleRaw []byte

// BundleVerse is one entry of the offline dataset.
type BundleVerse struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

type offlineBundle struct {
	Translation string        `json:"translation"`
	Verses      []BundleVerse `json:"verses"`
}

var (
	bundleOnce sync.Once
	bundle     offlineBundle

	referencesOnce sync.Once
	references     []string
)

// builtinVerse is the ultimate fallback when the embedded bundle itself is
// unreadable. Verse resolution can always return something.
var builtinVerse = BundleVerse{
	ID:        "john-3-16",
	Reference: "John 3:16",
	Text:      "For God so loved the world that He gave His only begotten Son, that whoever believes in Him should not perish but have everlasting life.",
}

// OfflineBundle returns the parsed offline verse dataset, parsing it once
// per process. A corrupt bundle degrades to a single built-in verse.
func OfflineBundle() (string, []BundleVerse) {
	bundleOnce.Do(func() {
		if err := json.Unmarshal(bundleRaw, &bundle); err != nil || len(bundle.Verses) == 0 {
			log.Printf("offline verse bundle unreadable, using builtin verse: %v", err)
			bundle = offlineBundle{
				Translation: "NKJV",
				Verses:      []BundleVerse{builtinVerse},
			}
		}
	})
	return bundle.Translation, bundle.Verses
}

// References returns the 365-entry canonical reference list used for daily
// remote fetches.
func References() []string {
	referencesOnce.Do(func() {
		var doc struct {
			References []string `json:"references"`
		}
		if err := json.Unmarshal(referencesRaw, &doc); err != nil || len(doc.References) == 0 {
			log.Printf("reference list unreadable, using builtin reference: %v", err)
			doc.References = []string{builtinVerse.Reference}
		}
		references = doc.References
	})
	return references
}
