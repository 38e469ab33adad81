package customimage

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestThumbnail_LandscapeScalesLongerSide(t *testing.T) {
	uri, err := Thumbnail(encodePNG(t, 200, 100), 80)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
}

func TestThumbnail_PortraitScalesLongerSide(t *testing.T) {
	uri, err := Thumbnail(encodePNG(t, 60, 240), 80)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestThumbnail_DefaultSize(t *testing.T) {
	uri, err := Thumbnail(encodePNG(t, 100, 100), 0)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, DefaultThumbnailSize, img.Bounds().Dx())
	assert.Equal(t, DefaultThumbnailSize, img.Bounds().Dy())
}

func TestThumbnail_DecodeFailure(t *testing.T) {
	_, err := Thumbnail([]byte("definitely not an image"), 80)
	assert.Error(t, err)
}

func TestDisplayURLService(t *testing.T) {
	d := NewDisplayURLService()

	url := d.URL("img-1")
	assert.True(t, strings.HasPrefix(url, "/api/custom-images/blob/"))

	token := strings.TrimPrefix(url, "/api/custom-images/blob/")
	id, ok := d.Resolve(token)
	assert.True(t, ok)
	assert.Equal(t, "img-1", id)

	_, ok = d.Resolve("unknown-token")
	assert.False(t, ok)

	// Two locators for the same image are independent tokens.
	assert.NotEqual(t, url, d.URL("img-1"))
}
