package background

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultUnsplashBaseURL = "https://api.unsplash.com"
	searchBatchSize        = 30
)

var ErrUnsplashConfigMissing = errors.New("Unsplash access key is not configured")

// UnsplashPhoto is one search result, reduced to the fields the provider
// uses.
type UnsplashPhoto struct {
	ID             string `json:"id"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Full    string `json:"full"`
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
	Links struct {
		DownloadLocation string `json:"download_location"`
	} `json:"links"`
}

// UnsplashClient queries the Unsplash photo-search API. Search batches are
// cached per category+date so repeated loads on the same day reuse one
// remote call.
type UnsplashClient struct {
	accessKey string
	baseURL   string
	client    *http.Client
	batches   *gocache.Cache
}

func NewUnsplashClient(accessKey string, timeout time.Duration) *UnsplashClient {
	return &UnsplashClient{
		accessKey: accessKey,
		baseURL:   defaultUnsplashBaseURL,
		client:    &http.Client{Timeout: timeout},
		batches:   gocache.New(24*time.Hour, time.Hour),
	}
}

type unsplashSearchResponse struct {
	Results []UnsplashPhoto `json:"results"`
}

// Search returns a batch of landscape, safe-content photos for the keyword.
func (c *UnsplashClient) Search(ctx context.Context, keyword, date string) ([]UnsplashPhoto, error) {
	if c.accessKey == "" {
		return nil, ErrUnsplashConfigMissing
	}

	cacheKey := keyword + "|" + date
	if cached, ok := c.batches.Get(cacheKey); ok {
		return cached.([]UnsplashPhoto), nil
	}

	q := url.Values{}
	q.Set("query", keyword)
	q.Set("per_page", fmt.Sprint(searchBatchSize))
	q.Set("orientation", "landscape")
	q.Set("content_filter", "high")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/search/photos?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build Unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search photos %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Unsplash API returned status %d for %q", resp.StatusCode, keyword)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read Unsplash response: %w", err)
	}

	var parsed unsplashSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode Unsplash response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("Unsplash search for %q returned no results", keyword)
	}

	c.batches.Set(cacheKey, parsed.Results, gocache.DefaultExpiration)
	return parsed.Results, nil
}

// VerifyLoads checks that the chosen image URL actually responds before the
// provider accepts it.
func (c *UnsplashClient) VerifyLoads(ctx context.Context, imageURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// TrackDownload notifies Unsplash that a photo was used, per their API
// guidelines. Fired in a detached goroutine; failures are logged and
// discarded, never surfaced to the caller.
func (c *UnsplashClient) TrackDownload(downloadLocation string) {
	if c.accessKey == "" || downloadLocation == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.client.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadLocation, nil)
		if err != nil {
			log.Printf("track download: %v", err)
			return
		}
		req.Header.Set("Authorization", "Client-ID "+c.accessKey)

		resp, err := c.client.Do(req)
		if err != nil {
			log.Printf("track download: %v", err)
			return
		}
		resp.Body.Close()
	}()
}
