package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"listinghub/internal/domain"
	"listinghub/internal/repository"
)

const createListingPhotosTable = `
CREATE TABLE IF NOT EXISTS listing_photos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	listing_id INTEGER NOT NULL,
	object_key TEXT NOT NULL,
	caption TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY(listing_id) REFERENCES listings(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_listing_photos_listing_id ON listing_photos(listing_id);
`

type ListingPhotoRepository struct {
	db *sql.DB
}

func NewListingPhotoRepository(db *sql.DB) repository.ListingPhotoRepository {
	return &ListingPhotoRepository{db: db}
}

func (r *ListingPhotoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createListingPhotosTable); err != nil {
		return fmt.Errorf("create listing_photos table: %w", err)
	}
	return nil
}

func (r *ListingPhotoRepository) ReplaceForListing(ctx context.Context, listingID int64, photos []domain.ListingPhoto) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM listing_photos WHERE listing_id=?`, listingID); err != nil {
		return fmt.Errorf("delete photos: %w", err)
	}

	for _, photo := range photos {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO listing_photos (listing_id, object_key, caption, position)
VALUES (?, ?, ?, ?)`,
			listingID,
			photo.ObjectKey,
			photo.Caption,
			photo.Position,
		); err != nil {
			return fmt.Errorf("insert photo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *ListingPhotoRepository) ListByListing(ctx context.Context, listingID int64) ([]domain.ListingPhoto, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, listing_id, object_key, caption, position
FROM listing_photos
WHERE listing_id=?
ORDER BY position ASC, id ASC`, listingID)
	if err != nil {
		return nil, fmt.Errorf("query listing photos: %w", err)
	}
	defer rows.Close()

	var photos []domain.ListingPhoto
	for rows.Next() {
		var photo domain.ListingPhoto
		if err := rows.Scan(&photo.ID, &photo.ListingID, &photo.ObjectKey, &photo.Caption, &photo.Position); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}
