package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/causelist"
)

type snapshotRow struct {
	ID           string      `db:"id"`
	AdvocateCode string      `db:"advocate_code"`
	ListDate     string      `db:"list_date"`
	TotalCases   int         `db:"total_cases"`
	Cases        []byte      `db:"cases"`
	SavedBy      null.String `db:"saved_by"`
	SavedAt      null.Time   `db:"saved_at"`
}

type causelistRepository struct {
	db *sqlx.DB
}

var _ causelist.Repository = (*causelistRepository)(nil) // interface compliance check

func NewCauselistRepository(db *sqlx.DB) *causelistRepository {
	return &causelistRepository{db: db}
}

func (repo causelistRepository) pack(snap causelist.Snapshot) (snapshotRow, error) {
	cases := snap.Cases
	if cases == nil {
		cases = []causelist.CaseEntry{}
	}
	data, err := json.Marshal(cases)
	if err != nil {
		return snapshotRow{}, errors.Wrap(err, "encoding cases")
	}
	return snapshotRow{
		ID:           snap.ID,
		AdvocateCode: snap.AdvocateCode,
		ListDate:     snap.ListDate,
		TotalCases:   snap.TotalCases,
		Cases:        data,
		SavedBy:      null.NewString(snap.SavedBy, snap.SavedBy != ""),
		SavedAt:      null.NewTime(snap.SavedAt.UTC(), !snap.SavedAt.IsZero()),
	}, nil
}

func (repo causelistRepository) unpack(row snapshotRow) (causelist.Snapshot, error) {
	cases := make([]causelist.CaseEntry, 0)
	if len(row.Cases) > 0 {
		if err := json.Unmarshal(row.Cases, &cases); err != nil {
			return causelist.Snapshot{}, errors.Wrap(err, "decoding cases")
		}
	}
	return causelist.Snapshot{
		ID:           row.ID,
		AdvocateCode: row.AdvocateCode,
		ListDate:     row.ListDate,
		TotalCases:   row.TotalCases,
		Cases:        cases,
		SavedBy:      row.SavedBy.String,
		SavedAt:      row.SavedAt.Time,
	}, nil
}

// trapNoRowsErr maps psql "no rows" err to causelist.ErrNotFound
func (repo causelistRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return causelist.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo causelistRepository) CreateSnapshot(ctx context.Context, snap causelist.Snapshot, exec ...core.DBExecutor) (causelist.Snapshot, error) {
	snap.ID = uuid.New().String()
	row, err := repo.pack(snap)
	if err != nil {
		return causelist.Snapshot{}, err
	}
	_, err = sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		INSERT INTO causelist_snapshot (id, advocate_code, list_date, total_cases, cases, saved_by, saved_at)
		VALUES (:id, :advocate_code, :list_date, :total_cases, :cases, :saved_by, :saved_at)`,
		row)
	if err != nil {
		return causelist.Snapshot{}, errors.Wrap(err, "inserting snapshot")
	}
	return snap, nil
}

func (repo causelistRepository) QuerySnapshots(ctx context.Context, exec ...core.DBExecutor) ([]causelist.Snapshot, error) {
	var rows []snapshotRow
	err := sqlx.SelectContext(ctx, ext(repo.db, exec), &rows,
		"SELECT * FROM causelist_snapshot ORDER BY saved_at DESC")
	if err != nil {
		return nil, errors.Wrap(err, "querying snapshots")
	}
	snaps := make([]causelist.Snapshot, 0, len(rows))
	for _, row := range rows {
		snap, err := repo.unpack(row)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func (repo causelistRepository) GetSnapshot(ctx context.Context, id string, exec ...core.DBExecutor) (causelist.Snapshot, error) {
	if _, err := uuid.Parse(id); err != nil {
		return causelist.Snapshot{}, causelist.ErrNotFound
	}
	var row snapshotRow
	err := sqlx.GetContext(ctx, ext(repo.db, exec), &row, "SELECT * FROM causelist_snapshot WHERE id = $1", id)
	if err != nil {
		return causelist.Snapshot{}, repo.trapNoRowsErr(err, "finding snapshot")
	}
	return repo.unpack(row)
}

func (repo causelistRepository) FindSnapshot(ctx context.Context, advocateCode, listDate string, exec ...core.DBExecutor) (causelist.Snapshot, error) {
	var row snapshotRow
	err := sqlx.GetContext(ctx, ext(repo.db, exec), &row,
		"SELECT * FROM causelist_snapshot WHERE advocate_code = $1 AND list_date = $2", advocateCode, listDate)
	if err != nil {
		return causelist.Snapshot{}, repo.trapNoRowsErr(err, "finding snapshot")
	}
	return repo.unpack(row)
}

func (repo causelistRepository) DeleteSnapshotsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := ext(repo.db, exec).ExecContext(ctx, "DELETE FROM causelist_snapshot WHERE id IN ("+placeholders(1, len(ids))+")", args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting snapshots")
	}
	cnt, _ := res.RowsAffected()
	return int(cnt), nil
}
