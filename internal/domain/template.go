package domain

import "time"

// EmailTemplate is a reusable outreach template owned by an agent. The
// platform stores and edits templates; sending them is handled elsewhere.
type EmailTemplate struct {
	ID        int64
	AgentID   int64
	Name      string
	Subject   string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
