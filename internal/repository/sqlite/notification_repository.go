package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"listinghub/internal/domain"
	"listinghub/internal/repository"
)

const createNotificationPrefsTable = `
CREATE TABLE IF NOT EXISTS notification_prefs (
	agent_id INTEGER PRIMARY KEY,
	email_new_lead INTEGER NOT NULL DEFAULT 1,
	email_weekly_digest INTEGER NOT NULL DEFAULT 1,
	email_listing_updates INTEGER NOT NULL DEFAULT 1,
	sms_enabled INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY(agent_id) REFERENCES agents(id) ON DELETE CASCADE
);
`

type NotificationPrefsRepository struct {
	db *sql.DB
}

func NewNotificationPrefsRepository(db *sql.DB) repository.NotificationPrefsRepository {
	return &NotificationPrefsRepository{db: db}
}

func (r *NotificationPrefsRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createNotificationPrefsTable); err != nil {
		return fmt.Errorf("create notification_prefs table: %w", err)
	}
	return nil
}

func (r *NotificationPrefsRepository) Get(ctx context.Context, agentID int64) (*domain.NotificationPrefs, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT agent_id, email_new_lead, email_weekly_digest, email_listing_updates, sms_enabled, updated_at
FROM notification_prefs
WHERE agent_id=?`,
		agentID,
	)

	var prefs domain.NotificationPrefs
	if err := row.Scan(
		&prefs.AgentID,
		&prefs.EmailNewLead,
		&prefs.EmailWeeklyDigest,
		&prefs.EmailListingUpdates,
		&prefs.SMSEnabled,
		&prefs.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("notification prefs not found")
		}
		return nil, fmt.Errorf("scan notification prefs: %w", err)
	}
	return &prefs, nil
}

func (r *NotificationPrefsRepository) Upsert(ctx context.Context, prefs *domain.NotificationPrefs) error {
	prefs.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO notification_prefs (agent_id, email_new_lead, email_weekly_digest, email_listing_updates, sms_enabled, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(agent_id) DO UPDATE SET
	email_new_lead=excluded.email_new_lead,
	email_weekly_digest=excluded.email_weekly_digest,
	email_listing_updates=excluded.email_listing_updates,
	sms_enabled=excluded.sms_enabled,
	updated_at=excluded.updated_at`,
		prefs.AgentID,
		prefs.EmailNewLead,
		prefs.EmailWeeklyDigest,
		prefs.EmailListingUpdates,
		prefs.SMSEnabled,
		prefs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert notification prefs: %w", err)
	}
	return nil
}
