package customimage

import (
	"context"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps uploads in process memory. Used by tests and as the dev
// fallback when no database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	images []Image
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Add(ctx context.Context, name, mimeType string, data []byte) (*Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := validate(len(m.images), mimeType, len(data)); err != nil {
		return nil, err
	}

	maxOrder := 0
	for i := range m.images {
		if m.images[i].Order > maxOrder {
			maxOrder = m.images[i].Order
		}
	}

	img := Image{
		ID:        uuid.NewString(),
		Name:      name,
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
		Order:     maxOrder + 1,
		AddedAt:   time.Now(),
		Data:      slices.Clone(data),
	}
	m.images = append(m.images, img)

	meta := img
	meta.Data = nil
	return &meta, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Image, 0, len(m.images))
	for i := range m.images {
		meta := m.images[i]
		meta.Data = nil
		out = append(out, meta)
	}
	slices.SortFunc(out, func(a, b Image) int { return a.Order - b.Order })
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.images {
		if m.images[i].ID == id {
			img := m.images[i]
			img.Data = slices.Clone(m.images[i].Data)
			return &img, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := len(m.images)
	m.images = slices.DeleteFunc(m.images, func(img Image) bool { return img.ID == id })
	if len(m.images) == before {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.images = nil
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) PickRandom(ctx context.Context, excludeIDs []string) (*Image, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.images) == 0 {
		return nil, nil
	}

	candidates := make([]int, 0, len(m.images))
	for i := range m.images {
		if !slices.Contains(excludeIDs, m.images[i].ID) {
			candidates = append(candidates, i)
		}
	}

	var idx int
	if len(candidates) == 0 {
		idx = rand.Intn(len(m.images))
	} else {
		idx = candidates[rand.Intn(len(candidates))]
	}

	img := m.images[idx]
	img.Data = slices.Clone(m.images[idx].Data)
	return &img, nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images), nil
}
