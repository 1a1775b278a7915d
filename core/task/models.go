package task

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nandyala/kacheri/core"
)

// Statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Task struct {
	ID         string    `json:"id"`
	MatterID   string    `json:"matter_id"`
	Title      string    `json:"title"`
	Details    string    `json:"details,omitempty"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority,omitempty"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	DueDate    time.Time `json:"due_date,omitempty"` // zero when the task has no due date
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	MatterID   string    `json:"matter_id"`
	Title      string    `json:"title" validate:"required"`
	Details    string    `json:"details"`
	Status     string    `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority   string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo string    `json:"assigned_to"`
	DueDate    time.Time `json:"due_date"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Status = core.CleanString(nt.Status, true /* lower */)
	return validate.Struct(nt)
}

// UpdateTask defines what information may be provided to modify an existing Task.
type UpdateTask struct {
	Title      string     `json:"title"`
	Details    *string    `json:"details"`
	Status     string     `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority   string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo *string    `json:"assigned_to"`
	DueDate    *time.Time `json:"due_date"`
}

func (ut *UpdateTask) Validate(validate *validator.Validate) error {
	ut.Title = core.CleanString(ut.Title)
	ut.Status = core.CleanString(ut.Status, true /* lower */)
	return validate.Struct(ut)
}

type QueryFilter struct {
	MatterID   string    `query:"matter_id"`
	Status     string    `query:"status"`
	AssignedTo string    `query:"assigned_to"`
	DueFrom    time.Time `query:"due_from"`
	DueTo      time.Time `query:"due_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.MatterID == "" && qf.Status == "" && qf.AssignedTo == "" &&
		qf.DueFrom.IsZero() && qf.DueTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	qf.AssignedTo = core.CleanString(qf.AssignedTo)
}
