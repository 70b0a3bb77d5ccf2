package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"listinghub/internal/domain"
	"listinghub/internal/repository"
)

const createListingsTable = `
CREATE TABLE IF NOT EXISTS listings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	agent_id INTEGER NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	zip TEXT NOT NULL DEFAULT '',
	price_cents INTEGER NOT NULL DEFAULT 0,
	beds INTEGER NOT NULL DEFAULT 0,
	baths INTEGER NOT NULL DEFAULT 0,
	square_feet INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(agent_id) REFERENCES agents(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_listings_agent_id ON listings(agent_id);
CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);
`

const listingColumns = `id, agent_id, slug, title, address, city, state, zip, price_cents, beds, baths, square_feet, description, status, created_at, updated_at`

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createListingsTable); err != nil {
		return fmt.Errorf("create listings table: %w", err)
	}
	return nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (int64, error) {
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO listings (agent_id, slug, title, address, city, state, zip, price_cents, beds, baths, square_feet, description, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		listing.AgentID,
		listing.Slug,
		listing.Title,
		listing.Address,
		listing.City,
		listing.State,
		listing.Zip,
		listing.PriceCents,
		listing.Beds,
		listing.Baths,
		listing.SquareFeet,
		listing.Description,
		string(listing.Status),
		listing.CreatedAt,
		listing.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("listing already exists: %w", err)
		}
		return 0, fmt.Errorf("insert listing: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("listing last insert id: %w", err)
	}
	listing.ID = id
	return id, nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	listing.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE listings
SET title=?, address=?, city=?, state=?, zip=?, price_cents=?, beds=?, baths=?, square_feet=?, description=?, status=?, updated_at=?
WHERE id=?`,
		listing.Title,
		listing.Address,
		listing.City,
		listing.State,
		listing.Zip,
		listing.PriceCents,
		listing.Beds,
		listing.Baths,
		listing.SquareFeet,
		listing.Description,
		string(listing.Status),
		listing.UpdatedAt,
		listing.ID,
	)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("listing update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("listing not found")
	}
	return nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id int64, status domain.ListingStatus) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE listings
SET status=?, updated_at=?
WHERE id=?`,
		string(status),
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listing_photos WHERE listing_id=?`, id); err != nil {
		return fmt.Errorf("delete listing photos: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("listing delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("listing not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit listing delete: %w", err)
	}
	return nil
}

func (r *ListingRepository) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+listingColumns+`
FROM listings
WHERE id=?`,
		id,
	)
	return scanListing(row)
}

func (r *ListingRepository) GetBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+listingColumns+`
FROM listings
WHERE slug=?`,
		slug,
	)
	return scanListing(row)
}

func (r *ListingRepository) ListByAgent(ctx context.Context, agentID int64) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+listingColumns+`
FROM listings
WHERE agent_id=?
ORDER BY id DESC`, agentID)
	if err != nil {
		return nil, fmt.Errorf("query listings by agent: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

func (r *ListingRepository) ListByStatuses(ctx context.Context, statuses ...domain.ListingStatus) ([]domain.Listing, error) {
	if len(statuses) == 0 {
		return []domain.Listing{}, nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, status := range statuses {
		placeholders[i] = "?"
		args[i] = string(status)
	}

	query := fmt.Sprintf(`
SELECT `+listingColumns+`
FROM listings
WHERE status IN (%s)
ORDER BY id DESC`, strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings by status: %w", err)
	}
	defer rows.Close()

	return collectListings(rows)
}

func collectListings(rows *sql.Rows) ([]domain.Listing, error) {
	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}

func scanListing(scanner interface {
	Scan(dest ...any) error
}) (*domain.Listing, error) {
	var (
		listing   domain.Listing
		status    string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := scanner.Scan(
		&listing.ID,
		&listing.AgentID,
		&listing.Slug,
		&listing.Title,
		&listing.Address,
		&listing.City,
		&listing.State,
		&listing.Zip,
		&listing.PriceCents,
		&listing.Beds,
		&listing.Baths,
		&listing.SquareFeet,
		&listing.Description,
		&status,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("listing not found")
		}
		return nil, fmt.Errorf("scan listing: %w", err)
	}

	listing.Status = domain.ListingStatus(status)
	listing.CreatedAt = createdAt.Local()
	listing.UpdatedAt = updatedAt.Local()

	return &listing, nil
}
