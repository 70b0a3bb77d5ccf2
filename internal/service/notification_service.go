package service

import (
	"context"
	"strings"

	"listinghub/internal/domain"
	"listinghub/internal/repository"
)

// NotificationService reads and writes an agent's notification switches.
type NotificationService interface {
	Get(ctx context.Context, agentID int64) (*domain.NotificationPrefs, error)
	Update(ctx context.Context, prefs domain.NotificationPrefs) (*domain.NotificationPrefs, error)
}

type notificationService struct {
	prefs repository.NotificationPrefsRepository
}

func NewNotificationService(prefs repository.NotificationPrefsRepository) NotificationService {
	return &notificationService{prefs: prefs}
}

// Get returns the stored preferences, or the defaults when the agent has
// never saved any.
func (s *notificationService) Get(ctx context.Context, agentID int64) (*domain.NotificationPrefs, error) {
	prefs, err := s.prefs.Get(ctx, agentID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return &domain.NotificationPrefs{
				AgentID:             agentID,
				EmailNewLead:        true,
				EmailWeeklyDigest:   true,
				EmailListingUpdates: true,
			}, nil
		}
		return nil, err
	}
	return prefs, nil
}

func (s *notificationService) Update(ctx context.Context, prefs domain.NotificationPrefs) (*domain.NotificationPrefs, error) {
	if err := s.prefs.Upsert(ctx, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}
