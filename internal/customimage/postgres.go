package customimage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/versetab/verse-tab-api/internal/database"
)

// PostgresStore keeps uploads in the custom_images table with the payload
// in a bytea column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dbService database.Service) *PostgresStore {
	return &PostgresStore{db: dbService.DB()}
}

func (p *PostgresStore) Add(ctx context.Context, name, mimeType string, data []byte) (*Image, error) {
	count, err := p.Count(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(count, mimeType, len(data)); err != nil {
		return nil, err
	}

	img := Image{
		ID:        uuid.NewString(),
		Name:      name,
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
		AddedAt:   time.Now(),
	}

	err = p.db.QueryRowContext(ctx, `
		INSERT INTO custom_images (id, name, mime_type, size_bytes, image_order, added_at, data)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(image_order), 0) + 1 FROM custom_images),
			$5, $6)
		RETURNING image_order
	`, img.ID, img.Name, img.MimeType, img.SizeBytes, img.AddedAt, data).Scan(&img.Order)
	if err != nil {
		return nil, fmt.Errorf("add custom image: %w", err)
	}
	return &img, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]Image, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, mime_type, size_bytes, image_order, added_at
		FROM custom_images
		ORDER BY image_order ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list custom images: %w", err)
	}
	defer rows.Close()

	var out []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.Name, &img.MimeType, &img.SizeBytes, &img.Order, &img.AddedAt); err != nil {
			return nil, fmt.Errorf("scan custom image: %w", err)
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Image, error) {
	var img Image
	err := p.db.QueryRowContext(ctx, `
		SELECT id, name, mime_type, size_bytes, image_order, added_at, data
		FROM custom_images WHERE id = $1
	`, id).Scan(&img.ID, &img.Name, &img.MimeType, &img.SizeBytes, &img.Order, &img.AddedAt, &img.Data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get custom image: %w", err)
	}
	return &img, nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM custom_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete custom image: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM custom_images`)
	if err != nil {
		return fmt.Errorf("clear custom images: %w", err)
	}
	return nil
}

func (p *PostgresStore) PickRandom(ctx context.Context, excludeIDs []string) (*Image, error) {
	images, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}

	var candidates []Image
	for _, img := range images {
		excluded := false
		for _, id := range excludeIDs {
			if img.ID == id {
				excluded = true
				break
			}
		}
		if !excluded {
			candidates = append(candidates, img)
		}
	}
	if len(candidates) == 0 {
		candidates = images
	}

	pick := candidates[rand.Intn(len(candidates))]
	return p.Get(ctx, pick.ID)
}

func (p *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM custom_images`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count custom images: %w", err)
	}
	return count, nil
}
