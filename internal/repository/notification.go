package repository

import (
	"context"

	"listinghub/internal/domain"
)

// NotificationPrefsRepository stores one preference row per agent.
type NotificationPrefsRepository interface {
	Init(ctx context.Context) error
	Get(ctx context.Context, agentID int64) (*domain.NotificationPrefs, error)
	Upsert(ctx context.Context, prefs *domain.NotificationPrefs) error
}
