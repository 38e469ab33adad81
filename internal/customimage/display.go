package customimage

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/google/uuid"
)

// displayURLTTL bounds how long an issued display locator stays valid.
// Locators are session-scoped and never persisted.
const displayURLTTL = 12 * time.Hour

// DisplayURLService issues transient URLs for stored image bytes. Tokens
// live in an in-process cache; a restart invalidates them all, which is fine
// because callers re-request the locator on every page load.
type DisplayURLService struct {
	tokens *gocache.Cache
}

func NewDisplayURLService() *DisplayURLService {
	return &DisplayURLService{
		tokens: gocache.New(displayURLTTL, time.Hour),
	}
}

// URL returns a transient path serving the bytes of the given image id.
func (d *DisplayURLService) URL(id string) string {
	token := uuid.NewString()
	d.tokens.Set(token, id, gocache.DefaultExpiration)
	return "/api/custom-images/blob/" + token
}

// Resolve maps a token back to the image id it was issued for.
func (d *DisplayURLService) Resolve(token string) (string, bool) {
	v, ok := d.tokens.Get(token)
	if !ok {
		return "", false
	}
	return v.(string), true
}
