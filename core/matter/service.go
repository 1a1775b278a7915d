package matter

import (
	"context"
	"errors"
	"time"

	"github.com/nandyala/kacheri/core"
)

var ErrNotFound = errors.New("matter not found")

type (
	Repository interface {
		CreateMatter(ctx context.Context, mtr Matter, exec ...core.DBExecutor) (Matter, error)
		// QueryMatters applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of
		// Matter.CaseNo, Matter.Petitioner or Matter.Respondent.
		// Default ordering is creation time descending.
		QueryMatters(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Matter, error)
		GetMatter(ctx context.Context, id string, exec ...core.DBExecutor) (Matter, error)
		UpdateMatter(ctx context.Context, mtr Matter, exec ...core.DBExecutor) (Matter, error)
		DeleteMattersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
		// MattersListedOn returns matters whose listing date falls on the given calendar day.
		MattersListedOn(ctx context.Context, day time.Time, exec ...core.DBExecutor) ([]Matter, error)
		CreateAuditEntries(ctx context.Context, entries []AuditEntry, exec ...core.DBExecutor) error
		// AuditTrail returns a matter's audit entries, most recent first.
		AuditTrail(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]AuditEntry, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nm NewMatter, createdBy string) (Matter, error) {
	now := time.Now().UTC()
	status := nm.Status
	if status == "" {
		status = StatusOpen
	}
	mtr := Matter{
		CaseNo:      nm.CaseNo,
		CaseType:    nm.CaseType,
		Court:       nm.Court,
		Judge:       nm.Judge,
		Stage:       nm.Stage,
		District:    nm.District,
		Petitioner:  nm.Petitioner,
		Respondent:  nm.Respondent,
		Status:      status,
		Details:     nm.Details,
		ListingDate: nm.ListingDate,
		ReturnDate:  nm.ReturnDate,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateMatter(ctx, mtr)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Matter, error) {
	return svc.repo.QueryMatters(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Matter, error) {
	return svc.repo.GetMatter(ctx, id)
}

// Update applies the provided changes, recording one audit entry per changed field.
// A new Matter value is built from the original; the previously returned
// value is never mutated in place.
func (svc *Service) Update(ctx context.Context, id string, um UpdateMatter, changedBy string) (Matter, error) {
	orig, err := svc.repo.GetMatter(ctx, id)
	if err != nil {
		return Matter{}, err
	}

	updated := orig
	var entries []AuditEntry
	now := time.Now().UTC()
	record := func(field, oldVal, newVal string) {
		entries = append(entries, AuditEntry{
			MatterID:  orig.ID,
			Field:     field,
			OldValue:  oldVal,
			NewValue:  newVal,
			ChangedBy: changedBy,
			ChangedAt: now,
		})
	}

	setStr := func(field string, dst *string, val *string) {
		if val != nil && *val != *dst {
			record(field, *dst, *val)
			*dst = *val
		}
	}
	if um.CaseNo != "" && um.CaseNo != updated.CaseNo {
		record("case_no", updated.CaseNo, um.CaseNo)
		updated.CaseNo = um.CaseNo
	}
	setStr("case_type", &updated.CaseType, um.CaseType)
	setStr("court", &updated.Court, um.Court)
	setStr("judge", &updated.Judge, um.Judge)
	setStr("stage", &updated.Stage, um.Stage)
	setStr("district", &updated.District, um.District)
	setStr("petitioner", &updated.Petitioner, um.Petitioner)
	setStr("respondent", &updated.Respondent, um.Respondent)
	setStr("details", &updated.Details, um.Details)
	if um.Status != "" && um.Status != updated.Status {
		record("status", updated.Status, um.Status)
		updated.Status = um.Status
	}
	if um.ListingDate != nil && !um.ListingDate.Equal(updated.ListingDate) {
		record("listing_date", formatDate(updated.ListingDate), formatDate(*um.ListingDate))
		updated.ListingDate = *um.ListingDate
	}
	if um.ReturnDate != nil && !um.ReturnDate.Equal(updated.ReturnDate) {
		record("return_date", formatDate(updated.ReturnDate), formatDate(*um.ReturnDate))
		updated.ReturnDate = *um.ReturnDate
	}

	if len(entries) == 0 {
		return orig, nil
	}
	updated.UpdatedAt = now

	updated, err = svc.repo.UpdateMatter(ctx, updated)
	if err != nil {
		return Matter{}, err
	}
	if err = svc.repo.CreateAuditEntries(ctx, entries); err != nil {
		return Matter{}, err
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteMattersByID(ctx, ids)
	return err
}

func (svc *Service) ListedOn(ctx context.Context, day time.Time) ([]Matter, error) {
	return svc.repo.MattersListedOn(ctx, day)
}

func (svc *Service) AuditTrail(ctx context.Context, matterID string) ([]AuditEntry, error) {
	return svc.repo.AuditTrail(ctx, matterID)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
