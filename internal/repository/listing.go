package repository

import (
	"context"

	"listinghub/internal/domain"
)

// ListingRepository exposes persistence operations for Listing aggregates.
type ListingRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, listing *domain.Listing) (int64, error)
	Update(ctx context.Context, listing *domain.Listing) error
	UpdateStatus(ctx context.Context, id int64, status domain.ListingStatus) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Listing, error)
	ListByAgent(ctx context.Context, agentID int64) ([]domain.Listing, error)
	ListByStatuses(ctx context.Context, statuses ...domain.ListingStatus) ([]domain.Listing, error)
}

// ListingPhotoRepository manages photo metadata attached to listings.
type ListingPhotoRepository interface {
	Init(ctx context.Context) error
	ReplaceForListing(ctx context.Context, listingID int64, photos []domain.ListingPhoto) error
	ListByListing(ctx context.Context, listingID int64) ([]domain.ListingPhoto, error)
}
