package hearing

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nandyala/kacheri/core"
)

// Hearing is a manually recorded hearing entry, independent of a matter's
// own listing/return schedule.
type Hearing struct {
	ID          string    `json:"id"`
	MatterID    string    `json:"matter_id,omitempty"`
	CaseNo      string    `json:"case_no,omitempty"`
	CourtName   string    `json:"court_name,omitempty"`
	JudgeName   string    `json:"judge_name,omitempty"`
	HearingDate time.Time `json:"hearing_date,omitempty"` // zero when not scheduled
	Purpose     string    `json:"purpose,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type NewHearing struct {
	MatterID    string    `json:"matter_id"`
	CaseNo      string    `json:"case_no"`
	CourtName   string    `json:"court_name"`
	JudgeName   string    `json:"judge_name"`
	HearingDate time.Time `json:"hearing_date" validate:"required"`
	Purpose     string    `json:"purpose"`
	Notes       string    `json:"notes"`
}

func (nh *NewHearing) Validate(validate *validator.Validate) error {
	nh.CaseNo = core.CleanString(nh.CaseNo)
	return validate.Struct(nh)
}

type UpdateHearing struct {
	CaseNo      string     `json:"case_no"`
	CourtName   *string    `json:"court_name"`
	JudgeName   *string    `json:"judge_name"`
	HearingDate *time.Time `json:"hearing_date"`
	Purpose     *string    `json:"purpose"`
	Notes       *string    `json:"notes"`
}

func (uh *UpdateHearing) Validate(validate *validator.Validate) error {
	uh.CaseNo = core.CleanString(uh.CaseNo)
	return validate.Struct(uh)
}

type QueryFilter struct {
	MatterID string    `query:"matter_id"`
	From     time.Time `query:"from"`
	To       time.Time `query:"to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.MatterID == "" && qf.From.IsZero() && qf.To.IsZero()
}
