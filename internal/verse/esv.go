package verse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const defaultESVBaseURL = "https://api.esv.org/v3/passage/text/"

var ErrConfigMissing = errors.New("ESV API key is not configured")

var (
	footnoteRe   = regexp.MustCompile(`\[\d+\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ESVClient fetches passage text from the ESV Bible API.
type ESVClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewESVClient(apiKey string, timeout time.Duration) *ESVClient {
	return &ESVClient{
		apiKey:  apiKey,
		baseURL: defaultESVBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type esvResponse struct {
	Canonical string   `json:"canonical"`
	Passages  []string `json:"passages"`
}

// FetchPassage returns the canonical reference and cleaned passage text for
// the given reference.
func (c *ESVClient) FetchPassage(ctx context.Context, reference string) (*Verse, error) {
	if c.apiKey == "" {
		return nil, ErrConfigMissing
	}

	q := url.Values{}
	q.Set("q", reference)
	q.Set("include-headings", "false")
	q.Set("include-footnotes", "false")
	q.Set("include-verse-numbers", "false")
	q.Set("include-short-copyright", "false")
	q.Set("include-passage-references", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build ESV request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch passage %q: %w", reference, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ESV API returned status %d for %q", resp.StatusCode, reference)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ESV response: %w", err)
	}

	var parsed esvResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode ESV response: %w", err)
	}
	if len(parsed.Passages) == 0 || strings.TrimSpace(parsed.Passages[0]) == "" {
		return nil, fmt.Errorf("ESV API returned no passage for %q", reference)
	}

	canonical := parsed.Canonical
	if canonical == "" {
		canonical = reference
	}

	return &Verse{
		Reference:   canonical,
		Text:        CleanPassage(parsed.Passages[0]),
		Translation: "ESV",
		IsOffline:   false,
	}, nil
}

// CleanPassage strips bracketed footnote markers and collapses runs of
// whitespace into single spaces.
func CleanPassage(raw string) string {
	s := footnoteRe.ReplaceAllString(raw, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
