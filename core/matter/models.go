package matter

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nandyala/kacheri/core"
)

// Statuses
const (
	StatusOpen      = "open"
	StatusAdjourned = "adjourned"
	StatusDisposed  = "disposed"
)

type Matter struct {
	ID          string    `json:"id"`
	CaseNo      string    `json:"case_no"`
	CaseType    string    `json:"case_type,omitempty"`
	Court       string    `json:"court,omitempty"`
	Judge       string    `json:"judge,omitempty"`
	Stage       string    `json:"stage,omitempty"`
	District    string    `json:"district,omitempty"`
	Petitioner  string    `json:"petitioner,omitempty"`
	Respondent  string    `json:"respondent,omitempty"`
	Status      string    `json:"status"`
	Details     string    `json:"details,omitempty"`
	ListingDate time.Time `json:"listing_date,omitempty"` // zero when not listed
	ReturnDate  time.Time `json:"return_date,omitempty"`  // zero when no return set
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// AuditEntry records one field-level change on a Matter.
type AuditEntry struct {
	ID        string    `json:"id"`
	MatterID  string    `json:"matter_id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	ChangedBy string    `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"` // UTC
}

// NewMatter contains information needed to create a new Matter.
type NewMatter struct {
	CaseNo      string    `json:"case_no" validate:"required"`
	CaseType    string    `json:"case_type"`
	Court       string    `json:"court"`
	Judge       string    `json:"judge"`
	Stage       string    `json:"stage"`
	District    string    `json:"district"`
	Petitioner  string    `json:"petitioner"`
	Respondent  string    `json:"respondent"`
	Status      string    `json:"status" validate:"omitempty,oneof=open adjourned disposed"`
	Details     string    `json:"details"`
	ListingDate time.Time `json:"listing_date"`
	ReturnDate  time.Time `json:"return_date"`
}

func (nm *NewMatter) Validate(validate *validator.Validate) error {
	nm.CaseNo = core.CleanString(nm.CaseNo)
	nm.Status = core.CleanString(nm.Status, true /* lower */)
	return validate.Struct(nm)
}

// UpdateMatter defines what information may be provided to modify an existing Matter.
// Pointer fields distinguish "leave unchanged" from "clear".
type UpdateMatter struct {
	CaseNo      string     `json:"case_no"`
	CaseType    *string    `json:"case_type"`
	Court       *string    `json:"court"`
	Judge       *string    `json:"judge"`
	Stage       *string    `json:"stage"`
	District    *string    `json:"district"`
	Petitioner  *string    `json:"petitioner"`
	Respondent  *string    `json:"respondent"`
	Status      string     `json:"status" validate:"omitempty,oneof=open adjourned disposed"`
	Details     *string    `json:"details"`
	ListingDate *time.Time `json:"listing_date"`
	ReturnDate  *time.Time `json:"return_date"`
}

func (um *UpdateMatter) Validate(validate *validator.Validate) error {
	um.CaseNo = core.CleanString(um.CaseNo)
	um.Status = core.CleanString(um.Status, true /* lower */)
	return validate.Struct(um)
}

type QueryFilter struct {
	Search     string    `query:"search"`
	Status     string    `query:"status"`
	Court      string    `query:"court"`
	ListedFrom time.Time `query:"listed_from"`
	ListedTo   time.Time `query:"listed_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.Court == "" &&
		qf.ListedFrom.IsZero() && qf.ListedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Status = core.CleanString(qf.Status, true /* lower */)
}
