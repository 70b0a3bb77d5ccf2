package domain

import "time"

// Agent represents a registered real-estate agent account.
type Agent struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string
	FullName      string
	Phone         string
	Agency        string
	Bio           string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
