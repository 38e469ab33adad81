package background

import (
	_ "embed"
	"encoding/json"
	"log"
	"sync"
)

//go:embed data/images.json
var catalogRaw []byte

// CatalogImage is one entry of the bundled local image set, shipped with the
// extension for fully offline operation.
type CatalogImage struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Filename string `json:"filename"`
	Alt      string `json:"alt"`
}

var (
	catalogOnce sync.Once
	catalog     []CatalogImage
)

// Catalog returns the bundled image metadata, parsed once per process.
func Catalog() []CatalogImage {
	catalogOnce.Do(func() {
		var doc struct {
			Images []CatalogImage `json:"images"`
		}
		if err := json.Unmarshal(catalogRaw, &doc); err != nil || len(doc.Images) == 0 {
			log.Printf("image catalog unreadable: %v", err)
		}
		catalog = doc.Images
	})
	return catalog
}
