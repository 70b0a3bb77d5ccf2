package domain

import "time"

type ListingStatus string

const (
	ListingStatusDraft   ListingStatus = "draft"
	ListingStatusActive  ListingStatus = "active"
	ListingStatusPending ListingStatus = "pending"
	ListingStatusSold    ListingStatus = "sold"
)

// Listing represents a property listing owned by an agent.
type Listing struct {
	ID          int64
	AgentID     int64
	Slug        string
	Title       string
	Address     string
	City        string
	State       string
	Zip         string
	PriceCents  int64
	Beds        int
	Baths       int
	SquareFeet  int
	Description string
	Status      ListingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Photos      []ListingPhoto
}

// ListingPhoto captures a single photo attached to a listing, stored remotely.
type ListingPhoto struct {
	ID        int64
	ListingID int64
	ObjectKey string
	Caption   string
	Position  int
}
