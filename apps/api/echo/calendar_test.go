package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/nandyala/kacheri/core/calendar"
	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/task"
)

func seedCalendarData(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2025, time.March, d, 0, 0, 0, 0, time.Local) }

	// listing on the 10th, return on the 20th
	if _, err := env.matterRepo.CreateMatter(ctx, matter.Matter{
		CaseNo:      "WP 1234/2025",
		Court:       "High Court",
		Status:      matter.StatusOpen,
		ListingDate: day(10),
		ReturnDate:  day(20),
	}); err != nil {
		t.Fatalf("CreateMatter() failed, %v", err)
	}
	// no dates set: contributes no events
	if _, err := env.matterRepo.CreateMatter(ctx, matter.Matter{
		CaseNo: "WP 5678/2025",
		Status: matter.StatusOpen,
	}); err != nil {
		t.Fatalf("CreateMatter() failed, %v", err)
	}
	if _, err := env.hearingRepo.CreateHearing(ctx, hearing.Hearing{
		CaseNo:      "CRL 99/2025",
		HearingDate: day(10),
		Purpose:     "arguments",
	}); err != nil {
		t.Fatalf("CreateHearing() failed, %v", err)
	}
	if _, err := env.taskRepo.CreateTask(ctx, task.Task{
		Title:   "File counter",
		Status:  task.StatusPending,
		DueDate: day(15),
	}); err != nil {
		t.Fatalf("CreateTask() failed, %v", err)
	}
	if _, err := env.causelistRepo.CreateSnapshot(ctx, causelist.Snapshot{
		AdvocateCode: "19272",
		ListDate:     "25-03-2025",
		TotalCases:   3,
		SavedAt:      time.Now().UTC(),
	}); err != nil {
		t.Fatalf("CreateSnapshot() failed, %v", err)
	}
}

func Test_calendarApi_month(t *testing.T) {
	env := setup(t)
	seedCalendarData(t, env)

	usr := env.createUser(t, "Asha Rao", "asharao", "asha@test.in", nil, true)
	token := getToken(t, usr)

	t.Run("Auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/calendar?year=2025&month=3")
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Month grid", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/calendar?year=2025&month=3", token)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var resp monthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Grid.Year != 2025 || resp.Grid.Month != time.March {
			t.Errorf("grid = %d-%d; want 2025-3", resp.Grid.Year, resp.Grid.Month)
		}
		if len(resp.Grid.Days) != 31 {
			t.Fatalf("len(days) = %d; want 31", len(resp.Grid.Days))
		}
		if resp.Grid.FirstWeekday != time.Saturday { // 1 March 2025
			t.Errorf("first weekday = %v; want %v", resp.Grid.FirstWeekday, time.Saturday)
		}
		if len(resp.Degraded) != 0 {
			t.Errorf("degraded = %v; want none", resp.Degraded)
		}

		wantCounts := map[int]map[calendar.Kind]int{
			10: {calendar.KindListing: 1, calendar.KindHearing: 1},
			15: {calendar.KindTask: 1},
			20: {calendar.KindHearing: 1},
			25: {calendar.KindCauselist: 1},
		}
		for _, cell := range resp.Grid.Days {
			want := wantCounts[cell.Day]
			if want == nil {
				if len(cell.Counts) != 0 {
					t.Errorf("day %d: counts = %v; want none", cell.Day, cell.Counts)
				}
				continue
			}
			for kind, n := range want {
				if cell.Counts[kind] != n {
					t.Errorf("day %d: counts[%s] = %d; want %d", cell.Day, kind, cell.Counts[kind], n)
				}
			}
		}
	})

	t.Run("Day detail", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/calendar/day?year=2025&month=3&day=10", token)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var resp dayResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(resp.Events) != 2 {
			t.Fatalf("len(events) = %d; want 2", len(resp.Events))
		}
		kinds := map[calendar.Kind]bool{}
		for _, evt := range resp.Events {
			kinds[evt.Kind] = true
		}
		if !kinds[calendar.KindListing] || !kinds[calendar.KindHearing] {
			t.Errorf("kinds = %v; want listing and hearing", kinds)
		}
	})

	t.Run("Upcoming is date ordered", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/calendar/upcoming", token)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		var resp upcomingResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(resp.Events) != 5 {
			t.Fatalf("len(events) = %d; want 5", len(resp.Events))
		}
		for i := 1; i < len(resp.Events); i++ {
			if resp.Events[i].Date.Before(resp.Events[i-1].Date) {
				t.Errorf("events out of order at %d: %v before %v", i, resp.Events[i].Date, resp.Events[i-1].Date)
			}
		}
	})
}
