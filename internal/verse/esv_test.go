package verse

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

func TestESVClient_FetchPassage_Success(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://api\.esv\.org/v3/passage/text/`,
		httpmock.NewStringResponder(http.StatusOK, `{
			"canonical": "John 3:16",
			"passages": ["  For God so loved the world, [16] that he gave his only Son,\n\n  that whoever believes in him should not perish but have eternal life.  "]
		}`))

	c := NewESVClient("test-key", 5*time.Second)
	v, err := c.FetchPassage(context.Background(), "John 3:16")
	require.NoError(t, err)

	assert.Equal(t, "John 3:16", v.Reference)
	assert.Equal(t, "For God so loved the world, that he gave his only Son, that whoever believes in him should not perish but have eternal life.", v.Text)
	assert.Equal(t, "ESV", v.Translation)
	assert.False(t, v.IsOffline)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestESVClient_FetchPassage_CanonicalFallsBackToQuery(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://api\.esv\.org/`,
		httpmock.NewStringResponder(http.StatusOK, `{"canonical": "", "passages": ["In the beginning"]}`))

	c := NewESVClient("test-key", 5*time.Second)
	v, err := c.FetchPassage(context.Background(), "Genesis 1:1")
	require.NoError(t, err)
	assert.Equal(t, "Genesis 1:1", v.Reference)
}

func TestESVClient_FetchPassage_HTTPError(t *testing.T) {
	setupHTTPMock(t)

	for _, status := range []int{400, 401, 403, 500, 503} {
		httpmock.Reset()
		httpmock.RegisterResponder(http.MethodGet, `=~^https://api\.esv\.org/`,
			httpmock.NewStringResponder(status, `{"detail": "nope"}`))

		c := NewESVClient("test-key", 5*time.Second)
		_, err := c.FetchPassage(context.Background(), "John 3:16")
		assert.Error(t, err, "status %d", status)
	}
}

func TestESVClient_FetchPassage_EmptyPassages(t *testing.T) {
	setupHTTPMock(t)

	httpmock.RegisterResponder(http.MethodGet, `=~^https://api\.esv\.org/`,
		httpmock.NewStringResponder(http.StatusOK, `{"canonical": "John 3:16", "passages": []}`))

	c := NewESVClient("test-key", 5*time.Second)
	_, err := c.FetchPassage(context.Background(), "John 3:16")
	assert.Error(t, err)
}

func TestESVClient_FetchPassage_MissingKey(t *testing.T) {
	setupHTTPMock(t)

	c := NewESVClient("", 5*time.Second)
	_, err := c.FetchPassage(context.Background(), "John 3:16")
	assert.ErrorIs(t, err, ErrConfigMissing)
	assert.Zero(t, httpmock.GetTotalCallCount(), "missing key must not hit the network")
}

func TestCleanPassage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"footnote markers", "For God [1] so loved [23] the world", "For God so loved the world"},
		{"whitespace runs", "a\n\n  b\t\tc", "a b c"},
		{"leading and trailing", "  text  ", "text"},
		{"untouched", "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPassage(tt.in))
		})
	}
}
