package causelist

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nandyala/kacheri/core"
)

var ErrNotFound = goerrors.New("causelist snapshot not found")

type (
	Repository interface {
		CreateSnapshot(ctx context.Context, snap Snapshot, exec ...core.DBExecutor) (Snapshot, error)
		// QuerySnapshots returns all snapshots, most recently saved first.
		QuerySnapshots(ctx context.Context, exec ...core.DBExecutor) ([]Snapshot, error)
		GetSnapshot(ctx context.Context, id string, exec ...core.DBExecutor) (Snapshot, error)
		// FindSnapshot looks up the one snapshot for an exact (advocateCode, listDate) key.
		FindSnapshot(ctx context.Context, advocateCode, listDate string, exec ...core.DBExecutor) (Snapshot, error)
		DeleteSnapshotsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	// Refresher is notified whenever the saved snapshot set changes so the
	// calendar timeline can be rebuilt.
	Refresher interface {
		Invalidate()
	}

	Service struct {
		repo      Repository
		fetcher   Fetcher
		refresher Refresher // may be nil
	}
)

func NewService(repo Repository, fetcher Fetcher, refresher Refresher) *Service {
	return &Service{repo: repo, fetcher: fetcher, refresher: refresher}
}

// Save runs the fetch-then-persist workflow for one (advocate code, day) key.
// An existing snapshot for the key is a terminal success: no fetch is made,
// no record written and created is false. A zero day means today.
// Persistence is the final step so a failure never leaves partial state.
func (svc *Service) Save(ctx context.Context, advocateCode string, day time.Time, savedBy string) (snap Snapshot, created bool, err error) {
	code := core.CleanString(advocateCode)
	if code == "" {
		return Snapshot{}, false, core.NewValidationError(
			goerrors.New("advocate code is required"),
			core.FieldError{Field: "advocate_code", Error: "this field is required"},
		)
	}
	if day.IsZero() {
		day = time.Now()
	}
	listDate := FormatListDate(day)

	existing, err := svc.repo.FindSnapshot(ctx, code, listDate)
	if err == nil {
		return existing, false, nil
	}
	if errors.Cause(err) != ErrNotFound {
		return Snapshot{}, false, errors.Wrap(err, "checking existing snapshot")
	}

	res, err := svc.fetcher.FetchDaily(ctx, code, listDate)
	if err != nil {
		return Snapshot{}, false, errors.Wrap(err, "fetching causelist")
	}

	// prefer values echoed by the endpoint over what was submitted
	if res.AdvocateCode != "" {
		code = res.AdvocateCode
	}
	if res.ListDate != "" {
		listDate = res.ListDate
	}
	total := res.Count
	if total == 0 {
		total = len(res.Cases)
	}
	cases := res.Cases
	if cases == nil {
		cases = []CaseEntry{}
	}

	snap = Snapshot{
		AdvocateCode: code,
		ListDate:     listDate,
		TotalCases:   total,
		Cases:        cases,
		SavedBy:      savedBy,
		SavedAt:      time.Now().UTC(),
	}
	snap, err = svc.repo.CreateSnapshot(ctx, snap)
	if err != nil {
		return Snapshot{}, false, errors.Wrap(err, "saving snapshot")
	}

	if svc.refresher != nil {
		svc.refresher.Invalidate()
	}
	return snap, true, nil
}

func (svc *Service) Query(ctx context.Context) ([]Snapshot, error) {
	return svc.repo.QuerySnapshots(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Snapshot, error) {
	return svc.repo.GetSnapshot(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	if _, err := svc.repo.DeleteSnapshotsByID(ctx, ids); err != nil {
		return err
	}
	if svc.refresher != nil {
		svc.refresher.Invalidate()
	}
	return nil
}

// ExportFilename names a snapshot download, e.g. causelist_19272_10012025.json.
func ExportFilename(snap Snapshot) string {
	return fmt.Sprintf("causelist_%s_%s.json", snap.AdvocateCode, strings.ReplaceAll(snap.ListDate, "-", ""))
}
