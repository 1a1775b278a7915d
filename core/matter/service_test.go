package matter

import (
	"context"
	"testing"
	"time"

	"github.com/nandyala/kacheri/core"
)

type repoStub struct {
	matters map[string]Matter
	audit   []AuditEntry
	updates int
}

func newRepoStub() *repoStub {
	return &repoStub{matters: make(map[string]Matter)}
}

func (r *repoStub) CreateMatter(ctx context.Context, mtr Matter, exec ...core.DBExecutor) (Matter, error) {
	mtr.ID = "m" + string(rune('0'+len(r.matters)+1))
	r.matters[mtr.ID] = mtr
	return mtr, nil
}

func (r *repoStub) QueryMatters(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Matter, error) {
	matters := make([]Matter, 0, len(r.matters))
	for _, mtr := range r.matters {
		matters = append(matters, mtr)
	}
	return matters, nil
}

func (r *repoStub) GetMatter(ctx context.Context, id string, exec ...core.DBExecutor) (Matter, error) {
	if mtr, ok := r.matters[id]; ok {
		return mtr, nil
	}
	return Matter{}, ErrNotFound
}

func (r *repoStub) UpdateMatter(ctx context.Context, mtr Matter, exec ...core.DBExecutor) (Matter, error) {
	if _, ok := r.matters[mtr.ID]; !ok {
		return Matter{}, ErrNotFound
	}
	r.matters[mtr.ID] = mtr
	r.updates++
	return mtr, nil
}

func (r *repoStub) DeleteMattersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	var n int
	for _, id := range ids {
		if _, ok := r.matters[id]; ok {
			delete(r.matters, id)
			n++
		}
	}
	return n, nil
}

func (r *repoStub) MattersListedOn(ctx context.Context, day time.Time, exec ...core.DBExecutor) ([]Matter, error) {
	var matters []Matter
	y, m, d := day.Date()
	for _, mtr := range r.matters {
		ly, lm, ld := mtr.ListingDate.Date()
		if ly == y && lm == m && ld == d {
			matters = append(matters, mtr)
		}
	}
	return matters, nil
}

func (r *repoStub) CreateAuditEntries(ctx context.Context, entries []AuditEntry, exec ...core.DBExecutor) error {
	r.audit = append(r.audit, entries...)
	return nil
}

func (r *repoStub) AuditTrail(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]AuditEntry, error) {
	var entries []AuditEntry
	for _, entry := range r.audit {
		if entry.MatterID == matterID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestService_Create_defaultsStatus(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	mtr, err := svc.Create(context.Background(), NewMatter{CaseNo: "WP 1/2025"}, "usr1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if mtr.Status != StatusOpen {
		t.Errorf("status = %s, want %s", mtr.Status, StatusOpen)
	}
	if mtr.CreatedBy != "usr1" {
		t.Errorf("created by = %s, want usr1", mtr.CreatedBy)
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newRepoStub()
	svc := NewService(repo)

	orig, err := svc.Create(ctx, NewMatter{
		CaseNo: "WP 1/2025",
		Court:  "High Court",
		Status: StatusOpen,
	}, "usr1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("records one audit entry per changed field", func(t *testing.T) {
		listing := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		updated, err := svc.Update(ctx, orig.ID, UpdateMatter{
			Status:      StatusAdjourned,
			Judge:       strPtr("Justice R"),
			ListingDate: timePtr(listing),
		}, "usr2")
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Status != StatusAdjourned || updated.Judge != "Justice R" {
			t.Errorf("updated = %+v", updated)
		}

		if len(repo.audit) != 3 {
			t.Fatalf("len(audit) = %d, want 3", len(repo.audit))
		}
		byField := make(map[string]AuditEntry, len(repo.audit))
		for _, entry := range repo.audit {
			byField[entry.Field] = entry
		}
		if entry := byField["status"]; entry.OldValue != StatusOpen || entry.NewValue != StatusAdjourned || entry.ChangedBy != "usr2" {
			t.Errorf("status entry = %+v", entry)
		}
		if entry := byField["judge"]; entry.OldValue != "" || entry.NewValue != "Justice R" {
			t.Errorf("judge entry = %+v", entry)
		}
		if entry := byField["listing_date"]; entry.OldValue != "" || entry.NewValue != "2025-03-10" {
			t.Errorf("listing_date entry = %+v", entry)
		}
	})

	t.Run("original value is not mutated", func(t *testing.T) {
		if orig.Status != StatusOpen || orig.Judge != "" {
			t.Errorf("orig mutated: %+v", orig)
		}
	})

	t.Run("no-op update writes nothing", func(t *testing.T) {
		audits, updates := len(repo.audit), repo.updates

		got, err := svc.Update(ctx, orig.ID, UpdateMatter{Status: StatusAdjourned}, "usr2")
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if len(repo.audit) != audits {
			t.Errorf("len(audit) = %d, want unchanged %d", len(repo.audit), audits)
		}
		if repo.updates != updates {
			t.Errorf("updates = %d, want unchanged %d", repo.updates, updates)
		}
		if got.Status != StatusAdjourned {
			t.Errorf("status = %s, want %s", got.Status, StatusAdjourned)
		}
	})

	t.Run("unknown matter", func(t *testing.T) {
		if _, err := svc.Update(ctx, "lol", UpdateMatter{Status: StatusDisposed}, "usr2"); err != ErrNotFound {
			t.Errorf("Update() error = %v, want %v", err, ErrNotFound)
		}
	})
}
