package domain

import "time"

// NotificationPrefs holds an agent's notification switches. One row per agent.
type NotificationPrefs struct {
	AgentID             int64
	EmailNewLead        bool
	EmailWeeklyDigest   bool
	EmailListingUpdates bool
	SMSEnabled          bool
	UpdatedAt           time.Time
}
