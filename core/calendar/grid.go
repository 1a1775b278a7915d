package calendar

import (
	"sort"
	"time"
)

// Grid projection is pure: the reference instant is always passed in
// explicitly rather than read from the wall clock mid-render.

func onDay(t time.Time, year int, month time.Month, day int) bool {
	y, m, d := t.Date()
	return y == year && m == month && d == day
}

// EventsOnDay filters events by exact local calendar-day match. No
// timezone normalization is performed.
func EventsOnDay(events []Event, year int, month time.Month, day int) []Event {
	matched := make([]Event, 0)
	for _, evt := range events {
		if onDay(evt.Date, year, month, day) {
			matched = append(matched, evt)
		}
	}
	return matched
}

// IsToday reports whether the given calendar day is the same day as ref.
func IsToday(year int, month time.Month, day int, ref time.Time) bool {
	return onDay(ref, year, month, day)
}

// CountsByKind tallies events per kind. Kinds with no events are absent
// from the map rather than zero entries.
func CountsByKind(events []Event) map[Kind]int {
	counts := make(map[Kind]int, 4)
	for _, evt := range events {
		counts[evt.Kind]++
	}
	return counts
}

// Upcoming returns the `limit` earliest events in ascending date order.
// Ties keep their original insertion order.
func Upcoming(events []Event, limit int) []Event {
	upcoming := make([]Event, len(events))
	copy(upcoming, events)
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

type (
	// Day is one month-grid cell: per-kind badge counts plus a today flag.
	Day struct {
		Day    int          `json:"day"`
		Today  bool         `json:"today"`
		Counts map[Kind]int `json:"counts,omitempty"`
	}

	Month struct {
		Year int `json:"year"`
		// Month is 1-12.
		Month time.Month `json:"month"`
		// FirstWeekday is the weekday of the 1st, for grid offsetting.
		FirstWeekday time.Weekday `json:"first_weekday"`
		Days         []Day        `json:"days"`
	}
)

// MonthOf projects events onto a month grid anchored at the 1st.
func MonthOf(events []Event, year int, month time.Month, ref time.Time) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()

	grid := Month{
		Year:         year,
		Month:        month,
		FirstWeekday: first.Weekday(),
		Days:         make([]Day, 0, daysInMonth),
	}
	for day := 1; day <= daysInMonth; day++ {
		cell := Day{
			Day:   day,
			Today: IsToday(year, month, day, ref),
		}
		if dayEvents := EventsOnDay(events, year, month, day); len(dayEvents) > 0 {
			cell.Counts = CountsByKind(dayEvents)
		}
		grid.Days = append(grid.Days, cell)
	}
	return grid
}
