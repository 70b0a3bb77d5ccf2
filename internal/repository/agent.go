package repository

import (
	"context"

	"listinghub/internal/domain"
)

// AgentRepository defines persistence operations for Agent accounts.
type AgentRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, agent *domain.Agent) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.Agent, error)
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	UpdateProfile(ctx context.Context, agent *domain.Agent) error
}
