package background

// Image is a resolved background image. Immutable once constructed.
type Image struct {
	ID              string `json:"id"`
	Path            string `json:"path"`
	Alt             string `json:"alt"`
	Category        string `json:"category"`
	IsUnsplash      bool   `json:"is_unsplash"`
	IsCustom        bool   `json:"is_custom"`
	Photographer    string `json:"photographer,omitempty"`
	PhotographerURL string `json:"photographer_url,omitempty"`
	ThumbURL        string `json:"thumb_url,omitempty"`
	FullURL         string `json:"full_url,omitempty"`
}

// CachedDailyImage is valid only while its date is today and the image's
// source kind and category still match current settings.
type CachedDailyImage struct {
	Date  string `json:"date"`
	Image Image  `json:"image"`
}
