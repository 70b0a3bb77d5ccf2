package service

import (
	"context"
	"errors"
	"strings"

	"listinghub/internal/domain"
	"listinghub/internal/repository"
)

// ErrNotTemplateOwner is returned when an agent touches a template they do not own.
var ErrNotTemplateOwner = errors.New("template does not belong to agent")

// TemplateService manages an agent's email templates.
type TemplateService interface {
	Create(ctx context.Context, agentID int64, name, subject, body string) (*domain.EmailTemplate, error)
	Update(ctx context.Context, agentID, id int64, name, subject, body string) (*domain.EmailTemplate, error)
	Delete(ctx context.Context, agentID, id int64) error
	ListByAgent(ctx context.Context, agentID int64) ([]domain.EmailTemplate, error)
}

type templateService struct {
	templates repository.EmailTemplateRepository
}

func NewTemplateService(templates repository.EmailTemplateRepository) TemplateService {
	return &templateService{templates: templates}
}

func (s *templateService) Create(ctx context.Context, agentID int64, name, subject, body string) (*domain.EmailTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("template name is required")
	}

	tmpl := &domain.EmailTemplate{
		AgentID: agentID,
		Name:    name,
		Subject: subject,
		Body:    body,
	}
	if _, err := s.templates.Create(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *templateService) Update(ctx context.Context, agentID, id int64, name, subject, body string) (*domain.EmailTemplate, error) {
	tmpl, err := s.ownedTemplate(ctx, agentID, id)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		tmpl.Name = name
	}
	tmpl.Subject = subject
	tmpl.Body = body

	if err := s.templates.Update(ctx, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *templateService) Delete(ctx context.Context, agentID, id int64) error {
	if _, err := s.ownedTemplate(ctx, agentID, id); err != nil {
		return err
	}
	return s.templates.Delete(ctx, id)
}

func (s *templateService) ListByAgent(ctx context.Context, agentID int64) ([]domain.EmailTemplate, error) {
	return s.templates.ListByAgent(ctx, agentID)
}

func (s *templateService) ownedTemplate(ctx context.Context, agentID, id int64) (*domain.EmailTemplate, error) {
	tmpl, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if tmpl.AgentID != agentID {
		return nil, ErrNotTemplateOwner
	}
	return tmpl, nil
}
