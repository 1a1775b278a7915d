package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/causelist"
)

type causelistRepository struct {
	db *causelistTable
}

var _ causelist.Repository = (*causelistRepository)(nil) // interface compliance check

func NewCauselistRepository(db *DB) *causelistRepository {
	return &causelistRepository{db: db.causelist}
}

func (repo *causelistRepository) query() []causelist.Snapshot {
	snaps := make([]causelist.Snapshot, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		snaps = append(snaps, *s)
	}
	return snaps
}

func (repo *causelistRepository) CreateSnapshot(ctx context.Context, snap causelist.Snapshot, exec ...core.DBExecutor) (causelist.Snapshot, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	snap.ID = uuid.New().String()
	repo.db.table[snap.ID] = &snap
	return snap, nil
}

func (repo *causelistRepository) QuerySnapshots(ctx context.Context, exec ...core.DBExecutor) ([]causelist.Snapshot, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	snaps := repo.query()
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].SavedAt.After(snaps[j].SavedAt) })
	return snaps, nil
}

func (repo *causelistRepository) GetSnapshot(ctx context.Context, id string, exec ...core.DBExecutor) (causelist.Snapshot, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if snap, ok := repo.db.table[id]; ok {
		return *snap, nil
	}
	return causelist.Snapshot{}, causelist.ErrNotFound
}

func (repo *causelistRepository) FindSnapshot(ctx context.Context, advocateCode, listDate string, exec ...core.DBExecutor) (causelist.Snapshot, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, snap := range repo.query() {
		if snap.AdvocateCode == advocateCode && snap.ListDate == listDate {
			return snap, nil
		}
	}
	return causelist.Snapshot{}, causelist.ErrNotFound
}

func (repo *causelistRepository) DeleteSnapshotsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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
