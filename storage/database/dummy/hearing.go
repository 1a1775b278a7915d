package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/hearing"
)

type hearingRepository struct {
	db *hearingTable
}

var _ hearing.Repository = (*hearingRepository)(nil) // interface compliance check

func NewHearingRepository(db *DB) *hearingRepository {
	return &hearingRepository{db: db.hearing}
}

func (repo *hearingRepository) query() []hearing.Hearing {
	hearings := make([]hearing.Hearing, 0, len(repo.db.table))
	for _, h := range repo.db.table {
		hearings = append(hearings, *h)
	}
	return hearings
}

func (repo *hearingRepository) CreateHearing(ctx context.Context, hrg hearing.Hearing, exec ...core.DBExecutor) (hearing.Hearing, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	hrg.ID = uuid.New().String()
	repo.db.table[hrg.ID] = &hrg
	return hrg, nil
}

func (repo *hearingRepository) QueryHearings(ctx context.Context, filter *hearing.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]hearing.Hearing, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	hearings := repo.query()

	if filter != nil {
		if filter.MatterID != "" {
			var filtered []hearing.Hearing
			for _, h := range hearings {
				if h.MatterID == filter.MatterID {
					filtered = append(filtered, h)
				}
			}
			hearings = filtered
		}
		if hearings != nil && !filter.From.IsZero() {
			var filtered []hearing.Hearing
			for _, h := range hearings {
				if !h.HearingDate.Before(filter.From) {
					filtered = append(filtered, h)
				}
			}
			hearings = filtered
		}
		if hearings != nil && !filter.To.IsZero() {
			var filtered []hearing.Hearing
			for _, h := range hearings {
				if !h.HearingDate.IsZero() && !h.HearingDate.After(filter.To) {
					filtered = append(filtered, h)
				}
			}
			hearings = filtered
		}
	}

	sort.Slice(hearings, func(i, j int) bool { return hearings[i].HearingDate.Before(hearings[j].HearingDate) })
	return hearings, nil
}

func (repo *hearingRepository) GetHearing(ctx context.Context, id string, exec ...core.DBExecutor) (hearing.Hearing, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if hrg, ok := repo.db.table[id]; ok {
		return *hrg, nil
	}
	return hearing.Hearing{}, hearing.ErrNotFound
}

func (repo *hearingRepository) UpdateHearing(ctx context.Context, hrg hearing.Hearing, exec ...core.DBExecutor) (hearing.Hearing, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[hrg.ID]; !ok {
		return hearing.Hearing{}, hearing.ErrNotFound
	}
	repo.db.table[hrg.ID] = &hrg
	return hrg, nil
}

func (repo *hearingRepository) DeleteHearingsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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
