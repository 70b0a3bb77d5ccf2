package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"listinghub/internal/domain"
	"listinghub/internal/repository"
)

// ErrNotListingOwner is returned when an agent touches a listing they do not own.
var ErrNotListingOwner = errors.New("listing does not belong to agent")

// ListingService coordinates listing operations backed by repositories.
type ListingService interface {
	Create(ctx context.Context, agentID int64, listing domain.Listing) (*domain.Listing, error)
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Listing, error)
	ListPublic(ctx context.Context) ([]domain.Listing, error)
	ListByAgent(ctx context.Context, agentID int64) ([]domain.Listing, error)
	Update(ctx context.Context, agentID int64, listing domain.Listing) (*domain.Listing, error)
	UpdateStatus(ctx context.Context, agentID, id int64, status domain.ListingStatus) error
	Delete(ctx context.Context, agentID, id int64) error
	ReplacePhotos(ctx context.Context, agentID, listingID int64, photos []domain.ListingPhoto) error
}

type listingService struct {
	listings repository.ListingRepository
	photos   repository.ListingPhotoRepository
}

func NewListingService(listings repository.ListingRepository, photos repository.ListingPhotoRepository) ListingService {
	return &listingService{
		listings: listings,
		photos:   photos,
	}
}

func (s *listingService) Create(ctx context.Context, agentID int64, listing domain.Listing) (*domain.Listing, error) {
	if strings.TrimSpace(listing.Title) == "" {
		return nil, errors.New("listing title is required")
	}
	if !validListingStatus(listing.Status) {
		listing.Status = domain.ListingStatusDraft
	}

	listing.AgentID = agentID
	listing.Slug = fmt.Sprintf("listing-%s", uuid.NewString())

	if _, err := s.listings.Create(ctx, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *listingService) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.attachPhotos(ctx, listing)
}

func (s *listingService) GetBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	listing, err := s.listings.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.attachPhotos(ctx, listing)
}

func (s *listingService) ListPublic(ctx context.Context) ([]domain.Listing, error) {
	listings, err := s.listings.ListByStatuses(ctx, domain.ListingStatusActive)
	if err != nil {
		return nil, err
	}
	return s.attachPhotosAll(ctx, listings)
}

func (s *listingService) ListByAgent(ctx context.Context, agentID int64) ([]domain.Listing, error) {
	listings, err := s.listings.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return s.attachPhotosAll(ctx, listings)
}

func (s *listingService) Update(ctx context.Context, agentID int64, listing domain.Listing) (*domain.Listing, error) {
	existing, err := s.ownedListing(ctx, agentID, listing.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = listing.Title
	existing.Address = listing.Address
	existing.City = listing.City
	existing.State = listing.State
	existing.Zip = listing.Zip
	existing.PriceCents = listing.PriceCents
	existing.Beds = listing.Beds
	existing.Baths = listing.Baths
	existing.SquareFeet = listing.SquareFeet
	existing.Description = listing.Description
	if validListingStatus(listing.Status) {
		existing.Status = listing.Status
	}

	if err := s.listings.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.attachPhotos(ctx, existing)
}

func (s *listingService) UpdateStatus(ctx context.Context, agentID, id int64, status domain.ListingStatus) error {
	if !validListingStatus(status) {
		return fmt.Errorf("invalid listing status %q", status)
	}
	if _, err := s.ownedListing(ctx, agentID, id); err != nil {
		return err
	}
	return s.listings.UpdateStatus(ctx, id, status)
}

func (s *listingService) Delete(ctx context.Context, agentID, id int64) error {
	if _, err := s.ownedListing(ctx, agentID, id); err != nil {
		return err
	}
	return s.listings.Delete(ctx, id)
}

func (s *listingService) ReplacePhotos(ctx context.Context, agentID, listingID int64, photos []domain.ListingPhoto) error {
	if _, err := s.ownedListing(ctx, agentID, listingID); err != nil {
		return err
	}
	return s.photos.ReplaceForListing(ctx, listingID, photos)
}

func (s *listingService) ownedListing(ctx context.Context, agentID, id int64) (*domain.Listing, error) {
	listing, err := s.listings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.AgentID != agentID {
		return nil, ErrNotListingOwner
	}
	return listing, nil
}

func (s *listingService) attachPhotos(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	photos, err := s.photos.ListByListing(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	listing.Photos = photos
	return listing, nil
}

func (s *listingService) attachPhotosAll(ctx context.Context, listings []domain.Listing) ([]domain.Listing, error) {
	for i := range listings {
		photos, err := s.photos.ListByListing(ctx, listings[i].ID)
		if err != nil {
			return nil, err
		}
		listings[i].Photos = photos
	}
	return listings, nil
}

func validListingStatus(status domain.ListingStatus) bool {
	switch status {
	case domain.ListingStatusDraft, domain.ListingStatusActive, domain.ListingStatusPending, domain.ListingStatusSold:
		return true
	}
	return false
}
