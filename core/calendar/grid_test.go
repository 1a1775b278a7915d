package calendar

import (
	"testing"
	"time"
)

func TestEventsOnDay(t *testing.T) {
	events := []Event{
		{ID: "a", Date: day(10)},
		{ID: "b", Date: day(10)},
		{ID: "c", Date: day(11)},
	}

	matched := EventsOnDay(events, 2025, time.March, 10)
	if len(matched) != 2 {
		t.Fatalf("len(matched) = %d, want 2", len(matched))
	}

	if matched := EventsOnDay(events, 2025, time.April, 10); len(matched) != 0 {
		t.Errorf("len(matched) = %d, want 0 for another month", len(matched))
	}
	if matched := EventsOnDay(nil, 2025, time.March, 10); matched == nil {
		t.Error("matched = nil, want empty slice")
	}
}

func TestCountsByKind(t *testing.T) {
	events := []Event{
		{Kind: KindTask},
		{Kind: KindHearing},
		{Kind: KindHearing},
		{Kind: KindCauselist},
	}

	counts := CountsByKind(events)
	if counts[KindTask] != 1 || counts[KindHearing] != 2 || counts[KindCauselist] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if _, ok := counts[KindListing]; ok {
		t.Error("zero count should be absent from the map")
	}
}

func TestUpcoming(t *testing.T) {
	events := make([]Event, 0, 11)
	for i := 11; i >= 1; i-- {
		events = append(events, Event{ID: string(rune('a' + i)), Date: day(i)})
	}

	upcoming := Upcoming(events, 10)
	if len(upcoming) != 10 {
		t.Fatalf("len(upcoming) = %d, want 10", len(upcoming))
	}
	for i := 1; i < len(upcoming); i++ {
		if upcoming[i].Date.Before(upcoming[i-1].Date) {
			t.Errorf("out of order at %d", i)
		}
	}
	if !upcoming[0].Date.Equal(day(1)) {
		t.Errorf("first = %v, want day 1", upcoming[0].Date)
	}

	// input order preserved
	if !events[0].Date.Equal(day(11)) {
		t.Error("input slice was mutated")
	}
}

func TestUpcoming_stableTies(t *testing.T) {
	events := []Event{
		{ID: "first", Date: day(5)},
		{ID: "second", Date: day(5)},
		{ID: "third", Date: day(5)},
	}

	upcoming := Upcoming(events, 10)
	if upcoming[0].ID != "first" || upcoming[1].ID != "second" || upcoming[2].ID != "third" {
		t.Errorf("ties reordered: %v", upcoming)
	}
}

func TestMonthOf(t *testing.T) {
	events := []Event{
		{ID: "a", Kind: KindListing, Date: day(10)},
		{ID: "b", Kind: KindHearing, Date: day(10)},
		{ID: "c", Kind: KindTask, Date: day(15)},
	}
	ref := day(15) // "today"

	grid := MonthOf(events, 2025, time.March, ref)
	if grid.Year != 2025 || grid.Month != time.March {
		t.Errorf("grid = %d-%d, want 2025-3", grid.Year, grid.Month)
	}
	if len(grid.Days) != 31 {
		t.Fatalf("len(days) = %d, want 31", len(grid.Days))
	}
	if grid.FirstWeekday != time.Saturday { // 1 March 2025
		t.Errorf("first weekday = %v, want %v", grid.FirstWeekday, time.Saturday)
	}

	d10 := grid.Days[9]
	if d10.Counts[KindListing] != 1 || d10.Counts[KindHearing] != 1 {
		t.Errorf("day 10 counts = %v", d10.Counts)
	}
	if d10.Today {
		t.Error("day 10 marked today")
	}

	d15 := grid.Days[14]
	if !d15.Today {
		t.Error("day 15 not marked today")
	}
	if d15.Counts[KindTask] != 1 {
		t.Errorf("day 15 counts = %v", d15.Counts)
	}

	if grid.Days[0].Counts != nil {
		t.Errorf("day 1 counts = %v, want nil", grid.Days[0].Counts)
	}
}

func TestMonthOf_leapFebruary(t *testing.T) {
	grid := MonthOf(nil, 2024, time.February, time.Now())
	if len(grid.Days) != 29 {
		t.Errorf("len(days) = %d, want 29", len(grid.Days))
	}
}
