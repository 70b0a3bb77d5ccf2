package repository

import (
	"context"

	"listinghub/internal/domain"
)

// EmailTemplateRepository defines persistence operations for email templates.
type EmailTemplateRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tmpl *domain.EmailTemplate) (int64, error)
	Update(ctx context.Context, tmpl *domain.EmailTemplate) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.EmailTemplate, error)
	ListByAgent(ctx context.Context, agentID int64) ([]domain.EmailTemplate, error)
}
