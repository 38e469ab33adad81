package customimage

import (
	"errors"
	"time"
)

// Store limits. Additions beyond these are rejected up front.
const (
	MaxImages    = 10
	MaxSizeBytes = 5 * 1024 * 1024
)

var (
	ErrNotFound      = errors.New("custom image not found")
	ErrQuotaExceeded = errors.New("custom image limit reached")
	ErrInvalidType   = errors.New("file is not an image")
	ErrTooLarge      = errors.New("image exceeds the size limit")
)

// Image is a stored user upload. List results carry metadata only; Data is
// populated by Get.
type Image struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Order     int       `json:"order"`
	AddedAt   time.Time `json:"added_at"`
	Data      []byte    `json:"-"`
}
