package verse

// Verse is a resolved scripture passage. Immutable once constructed.
type Verse struct {
	Reference   string `json:"reference"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
	IsOffline   bool   `json:"is_offline"`
}

// APIUsage tracks remote fetches for one calendar day. The record resets
// lazily whenever the stored date no longer matches today.
type APIUsage struct {
	Date          string  `json:"date"`
	CallCount     int     `json:"call_count"`
	FetchedVerses []Verse `json:"fetched_verses"`
}

// RotationState cycles through the day's fetched verses once the quota is
// exhausted.
type RotationState struct {
	Index int `json:"index"`
}

// CachedDailyVerse is valid only while its date is today and its verse
// matches the user's current translation preference.
type CachedDailyVerse struct {
	Date  string `json:"date"`
	Verse Verse  `json:"verse"`
}
