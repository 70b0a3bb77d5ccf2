package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"listinghub/internal/domain"
	"listinghub/internal/repository"
)

const createAgentsTable = `
CREATE TABLE IF NOT EXISTS agents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	full_name TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	agency TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	email_verified INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type AgentRepository struct {
	db *sql.DB
}

func NewAgentRepository(db *sql.DB) repository.AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAgentsTable); err != nil {
		return fmt.Errorf("create agents table: %w", err)
	}
	return nil
}

func (r *AgentRepository) Create(ctx context.Context, agent *domain.Agent) (int64, error) {
	now := time.Now().UTC()
	agent.CreatedAt = now
	agent.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO agents (username, email, password_hash, full_name, phone, agency, bio, email_verified, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		agent.Username,
		agent.Email,
		agent.PasswordHash,
		agent.FullName,
		agent.Phone,
		agent.Agency,
		agent.Bio,
		agent.EmailVerified,
		agent.CreatedAt,
		agent.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("agent already exists: %w", err)
		}
		return 0, fmt.Errorf("insert agent: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("agent last insert id: %w", err)
	}
	agent.ID = id
	return id, nil
}

func (r *AgentRepository) GetByUsername(ctx context.Context, username string) (*domain.Agent, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, email, password_hash, full_name, phone, agency, bio, email_verified, created_at, updated_at
FROM agents
WHERE username = ?`,
		username,
	)
	return scanAgent(row)
}

func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, email, password_hash, full_name, phone, agency, bio, email_verified, created_at, updated_at
FROM agents
WHERE id = ?`,
		id,
	)
	return scanAgent(row)
}

func (r *AgentRepository) UpdateProfile(ctx context.Context, agent *domain.Agent) error {
	agent.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE agents
SET full_name=?, phone=?, agency=?, bio=?, updated_at=?
WHERE id=?`,
		agent.FullName,
		agent.Phone,
		agent.Agency,
		agent.Bio,
		agent.UpdatedAt,
		agent.ID,
	)
	if err != nil {
		return fmt.Errorf("update agent profile: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("agent update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("agent not found")
	}
	return nil
}

func scanAgent(row interface {
	Scan(dest ...any) error
}) (*domain.Agent, error) {
	var agent domain.Agent
	if err := row.Scan(
		&agent.ID,
		&agent.Username,
		&agent.Email,
		&agent.PasswordHash,
		&agent.FullName,
		&agent.Phone,
		&agent.Agency,
		&agent.Bio,
		&agent.EmailVerified,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("agent not found")
		}
		return nil, fmt.Errorf("scan agent: %w", err)
	}
	return &agent, nil
}
