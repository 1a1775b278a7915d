package causelist

import (
	"context"
	"time"
)

// CaseEntry mirrors one row of the court's published causelist.
type CaseEntry struct {
	SNo                string   `json:"s_no,omitempty"`
	CaseNo             string   `json:"case_no"`
	ConnectedCases     []string `json:"connected_cases,omitempty"`
	Petitioner         string   `json:"petitioner,omitempty"`
	Respondent         string   `json:"respondent,omitempty"`
	PetitionerAdvocate string   `json:"petitioner_advocate,omitempty"`
	RespondentAdvocate string   `json:"respondent_advocate,omitempty"`
	District           string   `json:"district,omitempty"`
	Remarks            string   `json:"remarks,omitempty"`
	Court              string   `json:"court,omitempty"`
	Judge              string   `json:"judge,omitempty"`
	Stage              string   `json:"stage,omitempty"`
}

// Snapshot is a persisted point-in-time copy of a fetched causelist,
// keyed by (AdvocateCode, ListDate).
type Snapshot struct {
	ID           string      `json:"id"`
	AdvocateCode string      `json:"advocate_code"`
	ListDate     string      `json:"list_date"` // DD-MM-YYYY
	TotalCases   int         `json:"total_cases"`
	Cases        []CaseEntry `json:"cases"`
	SavedBy      string      `json:"saved_by,omitempty"`
	SavedAt      time.Time   `json:"saved_at"` // UTC
}

// EventDate resolves the calendar day a snapshot belongs on: the parsed
// list date when well-formed, else the save timestamp. The second return
// is false when neither is usable; such snapshots are dropped from the
// timeline without an error.
func (s Snapshot) EventDate() (time.Time, bool) {
	if d, ok := ParseListDate(s.ListDate); ok {
		return d, true
	}
	if !s.SavedAt.IsZero() {
		return s.SavedAt, true
	}
	return time.Time{}, false
}

// FetchResult is a normalized causelist endpoint response.
type FetchResult struct {
	AdvocateCode string
	ListDate     string
	Count        int
	Cases        []CaseEntry
}

// Fetcher retrieves the daily causelist from the court endpoint.
type Fetcher interface {
	FetchDaily(ctx context.Context, advocateCode, listDate string) (FetchResult, error)
}
