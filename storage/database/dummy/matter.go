package dummydb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/matter"
)

type matterRepository struct {
	db *matterTable
}

var _ matter.Repository = (*matterRepository)(nil) // interface compliance check

func NewMatterRepository(db *DB) *matterRepository {
	return &matterRepository{db: db.matter}
}

func (repo *matterRepository) query() []matter.Matter {
	matters := make([]matter.Matter, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		matters = append(matters, *m)
	}
	return matters
}

func (repo *matterRepository) CreateMatter(ctx context.Context, mtr matter.Matter, exec ...core.DBExecutor) (matter.Matter, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	mtr.ID = uuid.New().String()
	repo.db.table[mtr.ID] = &mtr
	return mtr, nil
}

func (repo *matterRepository) QueryMatters(ctx context.Context, filter *matter.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]matter.Matter, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	matters := repo.query()

	if filter != nil {
		if filter.Search != "" {
			var filtered []matter.Matter
			kw := strings.ToLower(filter.Search)
			for _, m := range matters {
				if strings.Contains(strings.ToLower(m.CaseNo), kw) ||
					strings.Contains(strings.ToLower(m.Petitioner), kw) ||
					strings.Contains(strings.ToLower(m.Respondent), kw) {
					filtered = append(filtered, m)
				}
			}
			matters = filtered
		}
		if matters != nil && filter.Status != "" {
			var filtered []matter.Matter
			for _, m := range matters {
				if m.Status == filter.Status {
					filtered = append(filtered, m)
				}
			}
			matters = filtered
		}
		if matters != nil && filter.Court != "" {
			var filtered []matter.Matter
			kw := strings.ToLower(filter.Court)
			for _, m := range matters {
				if strings.Contains(strings.ToLower(m.Court), kw) {
					filtered = append(filtered, m)
				}
			}
			matters = filtered
		}
		if matters != nil && !filter.ListedFrom.IsZero() {
			var filtered []matter.Matter
			for _, m := range matters {
				if !m.ListingDate.Before(filter.ListedFrom) {
					filtered = append(filtered, m)
				}
			}
			matters = filtered
		}
		if matters != nil && !filter.ListedTo.IsZero() {
			var filtered []matter.Matter
			for _, m := range matters {
				if !m.ListingDate.IsZero() && !m.ListingDate.After(filter.ListedTo) {
					filtered = append(filtered, m)
				}
			}
			matters = filtered
		}
	}

	sort.Slice(matters, func(i, j int) bool { return matters[i].CreatedAt.After(matters[j].CreatedAt) })
	return matters, nil
}

func (repo *matterRepository) GetMatter(ctx context.Context, id string, exec ...core.DBExecutor) (matter.Matter, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if mtr, ok := repo.db.table[id]; ok {
		return *mtr, nil
	}
	return matter.Matter{}, matter.ErrNotFound
}

func (repo *matterRepository) UpdateMatter(ctx context.Context, mtr matter.Matter, exec ...core.DBExecutor) (matter.Matter, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[mtr.ID]; !ok {
		return matter.Matter{}, matter.ErrNotFound
	}
	repo.db.table[mtr.ID] = &mtr
	return mtr, nil
}

func (repo *matterRepository) DeleteMattersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}

func (repo *matterRepository) MattersListedOn(ctx context.Context, day time.Time, exec ...core.DBExecutor) ([]matter.Matter, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	y, m, d := day.Date()
	matters := make([]matter.Matter, 0)
	for _, mtr := range repo.query() {
		if mtr.ListingDate.IsZero() {
			continue
		}
		ly, lm, ld := mtr.ListingDate.Date()
		if ly == y && lm == m && ld == d {
			matters = append(matters, mtr)
		}
	}
	sort.Slice(matters, func(i, j int) bool { return matters[i].ListingDate.Before(matters[j].ListingDate) })
	return matters, nil
}

func (repo *matterRepository) CreateAuditEntries(ctx context.Context, entries []matter.AuditEntry, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, e := range entries {
		e.ID = uuid.New().String()
		repo.db.audit = append(repo.db.audit, e)
	}
	return nil
}

func (repo *matterRepository) AuditTrail(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]matter.AuditEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]matter.AuditEntry, 0)
	for _, e := range repo.db.audit {
		if e.MatterID == matterID {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ChangedAt.After(entries[j].ChangedAt) })
	return entries, nil
}
