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

const createEmailTemplatesTable = `
CREATE TABLE IF NOT EXISTS email_templates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	agent_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	body TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE(agent_id, name),
	FOREIGN KEY(agent_id) REFERENCES agents(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_email_templates_agent_id ON email_templates(agent_id);
`

type EmailTemplateRepository struct {
	db *sql.DB
}

func NewEmailTemplateRepository(db *sql.DB) repository.EmailTemplateRepository {
	return &EmailTemplateRepository{db: db}
}

func (r *EmailTemplateRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEmailTemplatesTable); err != nil {
		return fmt.Errorf("create email_templates table: %w", err)
	}
	return nil
}

func (r *EmailTemplateRepository) Create(ctx context.Context, tmpl *domain.EmailTemplate) (int64, error) {
	now := time.Now().UTC()
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO email_templates (agent_id, name, subject, body, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		tmpl.AgentID,
		tmpl.Name,
		tmpl.Subject,
		tmpl.Body,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("template already exists: %w", err)
		}
		return 0, fmt.Errorf("insert template: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("template last insert id: %w", err)
	}
	tmpl.ID = id
	return id, nil
}

func (r *EmailTemplateRepository) Update(ctx context.Context, tmpl *domain.EmailTemplate) error {
	tmpl.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE email_templates
SET name=?, subject=?, body=?, updated_at=?
WHERE id=?`,
		tmpl.Name,
		tmpl.Subject,
		tmpl.Body,
		tmpl.UpdatedAt,
		tmpl.ID,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("template update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("template not found")
	}
	return nil
}

func (r *EmailTemplateRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM email_templates WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("template delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("template not found")
	}
	return nil
}

func (r *EmailTemplateRepository) Get(ctx context.Context, id int64) (*domain.EmailTemplate, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, agent_id, name, subject, body, created_at, updated_at
FROM email_templates
WHERE id=?`,
		id,
	)
	return scanTemplate(row)
}

func (r *EmailTemplateRepository) ListByAgent(ctx context.Context, agentID int64) ([]domain.EmailTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, agent_id, name, subject, body, created_at, updated_at
FROM email_templates
WHERE agent_id=?
ORDER BY name ASC`, agentID)
	if err != nil {
		return nil, fmt.Errorf("query templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.EmailTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tmpl)
	}

	return templates, rows.Err()
}

func scanTemplate(scanner interface {
	Scan(dest ...any) error
}) (*domain.EmailTemplate, error) {
	var tmpl domain.EmailTemplate
	if err := scanner.Scan(
		&tmpl.ID,
		&tmpl.AgentID,
		&tmpl.Name,
		&tmpl.Subject,
		&tmpl.Body,
		&tmpl.CreatedAt,
		&tmpl.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("template not found")
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}
	return &tmpl, nil
}
