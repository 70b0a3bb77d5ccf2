package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"listinghub/internal/domain"
	"listinghub/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAgentAlreadyExists is returned when registering with a taken username or email.
	ErrAgentAlreadyExists = errors.New("agent already exists")
)

// AgentService describes agent account lifecycle operations.
type AgentService interface {
	Register(ctx context.Context, username, email, password string) (*domain.Agent, error)
	Authenticate(ctx context.Context, username, password string) (*domain.Agent, error)
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	UpdateProfile(ctx context.Context, id int64, fullName, phone, agency, bio string) (*domain.Agent, error)
}

type agentService struct {
	agents repository.AgentRepository
}

func NewAgentService(agents repository.AgentRepository) AgentService {
	return &agentService{agents: agents}
}

func (s *agentService) Register(ctx context.Context, username, email, password string) (*domain.Agent, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	if username == "" {
		return nil, errors.New("username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("a valid email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	agent := &domain.Agent{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if _, err := s.agents.Create(ctx, agent); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrAgentAlreadyExists
		}
		return nil, err
	}

	return sanitizeAgent(agent), nil
}

func (s *agentService) Authenticate(ctx context.Context, username, password string) (*domain.Agent, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	agent, err := s.agents.GetByUsername(ctx, username)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeAgent(agent), nil
}

func (s *agentService) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeAgent(agent), nil
}

func (s *agentService) UpdateProfile(ctx context.Context, id int64, fullName, phone, agency, bio string) (*domain.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	agent.FullName = strings.TrimSpace(fullName)
	agent.Phone = strings.TrimSpace(phone)
	agent.Agency = strings.TrimSpace(agency)
	agent.Bio = strings.TrimSpace(bio)

	if err := s.agents.UpdateProfile(ctx, agent); err != nil {
		return nil, err
	}
	return sanitizeAgent(agent), nil
}

func sanitizeAgent(agent *domain.Agent) *domain.Agent {
	if agent == nil {
		return nil
	}
	return &domain.Agent{
		ID:            agent.ID,
		Username:      agent.Username,
		Email:         agent.Email,
		FullName:      agent.FullName,
		Phone:         agent.Phone,
		Agency:        agent.Agency,
		Bio:           agent.Bio,
		EmailVerified: agent.EmailVerified,
		CreatedAt:     agent.CreatedAt,
		UpdatedAt:     agent.UpdatedAt,
	}
}
