package notification

import (
	"time"
)

// Types
const (
	TypeHearingReminder = "hearing_reminder"
	TypeTaskAssigned    = "task_assigned"
	TypeGeneral         = "general"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	IsRead    bool      `json:"is_read"`
	RelatedID string    `json:"related_id,omitempty"` // e.g. the matter the reminder is about
	CreatedAt time.Time `json:"created_at"`           // UTC
}
