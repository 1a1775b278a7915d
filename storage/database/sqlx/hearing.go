package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/hearing"
)

type hearingRow struct {
	ID          string      `db:"id"`
	MatterID    null.String `db:"matter_id"`
	CaseNo      null.String `db:"case_no"`
	CourtName   null.String `db:"court_name"`
	JudgeName   null.String `db:"judge_name"`
	HearingDate null.Time   `db:"hearing_date"`
	Purpose     null.String `db:"purpose"`
	Notes       null.String `db:"notes"`
	CreatedBy   null.String `db:"created_by"`
	CreatedAt   null.Time   `db:"created_at"`
	UpdatedAt   null.Time   `db:"updated_at"`
}

type hearingRepository struct {
	db *sqlx.DB
}

var _ hearing.Repository = (*hearingRepository)(nil) // interface compliance check

func NewHearingRepository(db *sqlx.DB) *hearingRepository {
	return &hearingRepository{db: db}
}

func (repo hearingRepository) pack(hrg hearing.Hearing) hearingRow {
	return hearingRow{
		ID:          hrg.ID,
		MatterID:    null.NewString(hrg.MatterID, hrg.MatterID != ""),
		CaseNo:      null.NewString(hrg.CaseNo, hrg.CaseNo != ""),
		CourtName:   null.NewString(hrg.CourtName, hrg.CourtName != ""),
		JudgeName:   null.NewString(hrg.JudgeName, hrg.JudgeName != ""),
		HearingDate: null.NewTime(hrg.HearingDate.UTC(), !hrg.HearingDate.IsZero()),
		Purpose:     null.NewString(hrg.Purpose, hrg.Purpose != ""),
		Notes:       null.NewString(hrg.Notes, hrg.Notes != ""),
		CreatedBy:   null.NewString(hrg.CreatedBy, hrg.CreatedBy != ""),
		CreatedAt:   null.NewTime(hrg.CreatedAt.UTC(), !hrg.CreatedAt.IsZero()),
		UpdatedAt:   null.NewTime(hrg.UpdatedAt.UTC(), !hrg.UpdatedAt.IsZero()),
	}
}

func (repo hearingRepository) unpack(row hearingRow) hearing.Hearing {
	return hearing.Hearing{
		ID:          row.ID,
		MatterID:    row.MatterID.String,
		CaseNo:      row.CaseNo.String,
		CourtName:   row.CourtName.String,
		JudgeName:   row.JudgeName.String,
		HearingDate: row.HearingDate.Time,
		Purpose:     row.Purpose.String,
		Notes:       row.Notes.String,
		CreatedBy:   row.CreatedBy.String,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func (repo hearingRepository) unpackSlice(rows []hearingRow) []hearing.Hearing {
	hearings := make([]hearing.Hearing, 0, len(rows))
	for _, row := range rows {
		hearings = append(hearings, repo.unpack(row))
	}
	return hearings
}

// trapNoRowsErr maps psql "no rows" err to hearing.ErrNotFound
func (repo hearingRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return hearing.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo hearingRepository) CreateHearing(ctx context.Context, hrg hearing.Hearing, exec ...core.DBExecutor) (hearing.Hearing, error) {
	hrg.ID = uuid.New().String()
	row := repo.pack(hrg)
	_, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		INSERT INTO hearing (id, matter_id, case_no, court_name, judge_name, hearing_date, purpose, notes, created_by, created_at, updated_at)
		VALUES (:id, :matter_id, :case_no, :court_name, :judge_name, :hearing_date, :purpose, :notes, :created_by, :created_at, :updated_at)`,
		row)
	if err != nil {
		return hearing.Hearing{}, errors.Wrap(err, "inserting hearing")
	}
	return repo.unpack(row), nil
}

func (repo hearingRepository) QueryHearings(ctx context.Context, filter *hearing.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]hearing.Hearing, error) {
	var conds []string
	var args []interface{}
	arg := func(val interface{}) string {
		args = append(args, val)
		return "$" + strconv.Itoa(len(args))
	}

	if filter != nil {
		if filter.MatterID != "" {
			conds = append(conds, "matter_id = "+arg(filter.MatterID))
		}
		if !filter.From.IsZero() {
			conds = append(conds, "hearing_date >= "+arg(filter.From.UTC()))
		}
		if !filter.To.IsZero() {
			conds = append(conds, "hearing_date <= "+arg(filter.To.UTC()))
		}
	}

	q := "SELECT * FROM hearing" + whereClause(conds) + orderClause(ordering, "hearing_date ASC")

	var rows []hearingRow
	if err := sqlx.SelectContext(ctx, ext(repo.db, exec), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying hearings")
	}
	return repo.unpackSlice(rows), nil
}

func (repo hearingRepository) GetHearing(ctx context.Context, id string, exec ...core.DBExecutor) (hearing.Hearing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return hearing.Hearing{}, hearing.ErrNotFound
	}
	var row hearingRow
	err := sqlx.GetContext(ctx, ext(repo.db, exec), &row, "SELECT * FROM hearing WHERE id = $1", id)
	if err != nil {
		return hearing.Hearing{}, repo.trapNoRowsErr(err, "finding hearing")
	}
	return repo.unpack(row), nil
}

func (repo hearingRepository) UpdateHearing(ctx context.Context, hrg hearing.Hearing, exec ...core.DBExecutor) (hearing.Hearing, error) {
	row := repo.pack(hrg)
	res, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		UPDATE hearing
		SET matter_id = :matter_id, case_no = :case_no, court_name = :court_name, judge_name = :judge_name,
		    hearing_date = :hearing_date, purpose = :purpose, notes = :notes, updated_at = :updated_at
		WHERE id = :id`,
		row)
	if err != nil {
		return hearing.Hearing{}, errors.Wrap(err, "updating hearing")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return hearing.Hearing{}, hearing.ErrNotFound
	}
	return repo.unpack(row), nil
}

func (repo hearingRepository) DeleteHearingsByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := ext(repo.db, exec).ExecContext(ctx, "DELETE FROM hearing WHERE id IN ("+placeholders(1, len(ids))+")", args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting hearings")
	}
	cnt, _ := res.RowsAffected()
	return int(cnt), nil
}
