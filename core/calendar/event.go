package calendar

import (
	"fmt"
	"time"

	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/task"
)

// Kind tags the source a calendar event was derived from.
type Kind string

const (
	KindTask      Kind = "task"
	KindHearing   Kind = "hearing"
	KindListing   Kind = "listing"
	KindCauselist Kind = "causelist"
)

// placeholder for matters saved without a case number
const unnumberedCase = "Unnumbered case"

// causelist events are never in any other state
const statusSaved = "saved"

// Event is a normalized timeline entry derived from exactly one source
// record. Events are rebuilt wholesale on every load and never persisted.
type Event struct {
	ID         string    `json:"id"` // "{kind}-{sourceID}", unique per aggregation pass
	Title      string    `json:"title"`
	Date       time.Time `json:"date"` // calendar day; time component not meaningful
	Kind       Kind      `json:"kind"`
	Status     string    `json:"status,omitempty"`
	Details    string    `json:"details,omitempty"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	Location   string    `json:"location,omitempty"`
	SourceID   string    `json:"source_id"`
}

// Sources holds the four independently fetched record collections one
// aggregation pass merges. A nil collection contributes zero events.
type Sources struct {
	Tasks     []task.Task
	Matters   []matter.Matter
	Hearings  []hearing.Hearing
	Snapshots []causelist.Snapshot
}

// Aggregate maps the four sources onto one flat event list. Each mapping
// is independent; records missing their date field are skipped.
func Aggregate(src Sources) []Event {
	events := make([]Event, 0, len(src.Tasks)+2*len(src.Matters)+len(src.Hearings)+len(src.Snapshots))
	for _, tsk := range src.Tasks {
		if evt, ok := taskEvent(tsk); ok {
			events = append(events, evt)
		}
	}
	for _, mtr := range src.Matters {
		events = append(events, matterEvents(mtr)...)
	}
	for _, hrg := range src.Hearings {
		if evt, ok := hearingEvent(hrg); ok {
			events = append(events, evt)
		}
	}
	for _, snap := range src.Snapshots {
		if evt, ok := snapshotEvent(snap); ok {
			events = append(events, evt)
		}
	}
	return events
}

func taskEvent(tsk task.Task) (Event, bool) {
	if tsk.DueDate.IsZero() {
		return Event{}, false
	}
	return Event{
		ID:         string(KindTask) + "-" + tsk.ID,
		Title:      tsk.Title,
		Date:       tsk.DueDate,
		Kind:       KindTask,
		Status:     tsk.Status,
		Details:    tsk.Details,
		AssignedTo: tsk.AssignedTo,
		SourceID:   tsk.ID,
	}, true
}

// matterEvents yields up to two events per matter: one for the listing
// date and one for the return date. The same matter can therefore appear
// on two different days with two different kinds.
func matterEvents(mtr matter.Matter) []Event {
	caseNo := mtr.CaseNo
	if caseNo == "" {
		caseNo = unnumberedCase
	}
	location := mtr.Judge
	if location == "" {
		location = mtr.Court
	}

	var events []Event
	if !mtr.ListingDate.IsZero() {
		events = append(events, Event{
			ID:       string(KindListing) + "-" + mtr.ID,
			Title:    fmt.Sprintf("Listing: %s", caseNo),
			Date:     mtr.ListingDate,
			Kind:     KindListing,
			Status:   mtr.Status,
			Details:  mtr.Stage,
			Location: location,
			SourceID: mtr.ID,
		})
	}
	if !mtr.ReturnDate.IsZero() {
		events = append(events, Event{
			ID:       string(KindHearing) + "-" + mtr.ID,
			Title:    fmt.Sprintf("Hearing: %s", caseNo),
			Date:     mtr.ReturnDate,
			Kind:     KindHearing,
			Status:   mtr.Status,
			Details:  mtr.Stage,
			Location: location,
			SourceID: mtr.ID,
		})
	}
	return events
}

func hearingEvent(hrg hearing.Hearing) (Event, bool) {
	if hrg.HearingDate.IsZero() {
		return Event{}, false
	}
	ref := hrg.CaseNo
	if ref == "" {
		ref = hrg.MatterID
	}
	title := "Hearing"
	if ref != "" {
		title = fmt.Sprintf("Hearing: %s", ref)
	}
	location := hrg.CourtName
	if location == "" {
		location = hrg.JudgeName
	}
	return Event{
		ID:       string(KindHearing) + "-" + hrg.ID,
		Title:    title,
		Date:     hrg.HearingDate,
		Kind:     KindHearing,
		Details:  hrg.Purpose,
		Location: location,
		SourceID: hrg.ID,
	}, true
}

func snapshotEvent(snap causelist.Snapshot) (Event, bool) {
	date, ok := snap.EventDate()
	if !ok {
		return Event{}, false
	}
	return Event{
		ID:       string(KindCauselist) + "-" + snap.ID,
		Title:    fmt.Sprintf("Causelist %s (%d cases)", snap.AdvocateCode, snap.TotalCases),
		Date:     date,
		Kind:     KindCauselist,
		Status:   statusSaved,
		SourceID: snap.ID,
	}, true
}
