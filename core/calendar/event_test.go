package calendar

import (
	"testing"
	"time"

	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/task"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.Local)
}

func TestAggregate(t *testing.T) {
	src := Sources{
		Tasks: []task.Task{
			{ID: "t1", Title: "File counter", DueDate: day(15), Status: task.StatusPending, AssignedTo: "u1"},
			{ID: "t2", Title: "No due date"}, // skipped
		},
		Matters: []matter.Matter{
			{ID: "m1", CaseNo: "WP 1/2025", Status: matter.StatusOpen, ListingDate: day(10), ReturnDate: day(20), Judge: "Justice R"},
			{ID: "m2", Status: matter.StatusOpen, ListingDate: day(11)}, // no case number
			{ID: "m3", CaseNo: "WP 3/2025", Status: matter.StatusOpen}, // no dates, skipped
		},
		Hearings: []hearing.Hearing{
			{ID: "h1", MatterID: "m1", HearingDate: day(12), CourtName: "High Court"},
			{ID: "h2"}, // no date, skipped
		},
		Snapshots: []causelist.Snapshot{
			{ID: "s1", AdvocateCode: "19272", ListDate: "25-03-2025", TotalCases: 3},
			{ID: "s2", AdvocateCode: "19272", ListDate: "bogus"}, // no usable date, skipped
		},
	}

	events := Aggregate(src)
	if len(events) != 6 {
		t.Fatalf("len(events) = %d, want 6", len(events))
	}

	ids := make(map[string]bool, len(events))
	for _, evt := range events {
		if ids[evt.ID] {
			t.Errorf("duplicate event ID %s", evt.ID)
		}
		ids[evt.ID] = true
	}

	byID := make(map[string]Event, len(events))
	for _, evt := range events {
		byID[evt.ID] = evt
	}

	if evt := byID["task-t1"]; evt.Kind != KindTask || !evt.Date.Equal(day(15)) || evt.AssignedTo != "u1" {
		t.Errorf("task event = %+v", evt)
	}
	// m1 contributes a listing and a hearing on two different days
	if evt := byID["listing-m1"]; evt.Kind != KindListing || !evt.Date.Equal(day(10)) || evt.Title != "Listing: WP 1/2025" {
		t.Errorf("listing event = %+v", evt)
	}
	if evt := byID["hearing-m1"]; evt.Kind != KindHearing || !evt.Date.Equal(day(20)) || evt.Title != "Hearing: WP 1/2025" {
		t.Errorf("matter hearing event = %+v", evt)
	}
	if evt := byID["listing-m1"]; evt.Location != "Justice R" {
		t.Errorf("location = %s, want judge", evt.Location)
	}
	if evt := byID["listing-m2"]; evt.Title != "Listing: Unnumbered case" {
		t.Errorf("unnumbered title = %s", evt.Title)
	}
	if evt := byID["hearing-h1"]; evt.Title != "Hearing: m1" || evt.Location != "High Court" {
		t.Errorf("hearing event = %+v", evt)
	}
	if evt := byID["causelist-s1"]; evt.Title != "Causelist 19272 (3 cases)" || evt.Status != "saved" {
		t.Errorf("causelist event = %+v", evt)
	}
}

func TestAggregate_empty(t *testing.T) {
	events := Aggregate(Sources{})
	if events == nil {
		t.Error("events = nil, want empty slice")
	}
	if len(events) != 0 {
		t.Errorf("len(events) = %d, want 0", len(events))
	}
}
