package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/matter"
)

type matterRow struct {
	ID          string      `db:"id"`
	CaseNo      string      `db:"case_no"`
	CaseType    null.String `db:"case_type"`
	Court       null.String `db:"court"`
	Judge       null.String `db:"judge"`
	Stage       null.String `db:"stage"`
	District    null.String `db:"district"`
	Petitioner  null.String `db:"petitioner"`
	Respondent  null.String `db:"respondent"`
	Status      string      `db:"status"`
	Details     null.String `db:"details"`
	ListingDate null.Time   `db:"listing_date"`
	ReturnDate  null.Time   `db:"return_date"`
	CreatedBy   null.String `db:"created_by"`
	CreatedAt   null.Time   `db:"created_at"`
	UpdatedAt   null.Time   `db:"updated_at"`
}

type auditRow struct {
	ID        string      `db:"id"`
	MatterID  string      `db:"matter_id"`
	Field     string      `db:"field"`
	OldValue  null.String `db:"old_value"`
	NewValue  null.String `db:"new_value"`
	ChangedBy null.String `db:"changed_by"`
	ChangedAt null.Time   `db:"changed_at"`
}

type matterRepository struct {
	db *sqlx.DB
}

var _ matter.Repository = (*matterRepository)(nil) // interface compliance check

func NewMatterRepository(db *sqlx.DB) *matterRepository {
	return &matterRepository{db: db}
}

func (repo matterRepository) pack(mtr matter.Matter) matterRow {
	return matterRow{
		ID:          mtr.ID,
		CaseNo:      mtr.CaseNo,
		CaseType:    null.NewString(mtr.CaseType, mtr.CaseType != ""),
		Court:       null.NewString(mtr.Court, mtr.Court != ""),
		Judge:       null.NewString(mtr.Judge, mtr.Judge != ""),
		Stage:       null.NewString(mtr.Stage, mtr.Stage != ""),
		District:    null.NewString(mtr.District, mtr.District != ""),
		Petitioner:  null.NewString(mtr.Petitioner, mtr.Petitioner != ""),
		Respondent:  null.NewString(mtr.Respondent, mtr.Respondent != ""),
		Status:      mtr.Status,
		Details:     null.NewString(mtr.Details, mtr.Details != ""),
		ListingDate: null.NewTime(mtr.ListingDate.UTC(), !mtr.ListingDate.IsZero()),
		ReturnDate:  null.NewTime(mtr.ReturnDate.UTC(), !mtr.ReturnDate.IsZero()),
		CreatedBy:   null.NewString(mtr.CreatedBy, mtr.CreatedBy != ""),
		CreatedAt:   null.NewTime(mtr.CreatedAt.UTC(), !mtr.CreatedAt.IsZero()),
		UpdatedAt:   null.NewTime(mtr.UpdatedAt.UTC(), !mtr.UpdatedAt.IsZero()),
	}
}

func (repo matterRepository) unpack(row matterRow) matter.Matter {
	return matter.Matter{
		ID:          row.ID,
		CaseNo:      row.CaseNo,
		CaseType:    row.CaseType.String,
		Court:       row.Court.String,
		Judge:       row.Judge.String,
		Stage:       row.Stage.String,
		District:    row.District.String,
		Petitioner:  row.Petitioner.String,
		Respondent:  row.Respondent.String,
		Status:      row.Status,
		Details:     row.Details.String,
		ListingDate: row.ListingDate.Time,
		ReturnDate:  row.ReturnDate.Time,
		CreatedBy:   row.CreatedBy.String,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func (repo matterRepository) unpackSlice(rows []matterRow) []matter.Matter {
	matters := make([]matter.Matter, 0, len(rows))
	for _, row := range rows {
		matters = append(matters, repo.unpack(row))
	}
	return matters
}

// trapNoRowsErr maps psql "no rows" err to matter.ErrNotFound
func (repo matterRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return matter.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo matterRepository) CreateMatter(ctx context.Context, mtr matter.Matter, exec ...core.DBExecutor) (matter.Matter, error) {
	mtr.ID = uuid.New().String()
	row := repo.pack(mtr)
	_, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		INSERT INTO matter (id, case_no, case_type, court, judge, stage, district, petitioner, respondent,
		                    status, details, listing_date, return_date, created_by, created_at, updated_at)
		VALUES (:id, :case_no, :case_type, :court, :judge, :stage, :district, :petitioner, :respondent,
		        :status, :details, :listing_date, :return_date, :created_by, :created_at, :updated_at)`,
		row)
	if err != nil {
		return matter.Matter{}, errors.Wrap(err, "inserting matter")
	}
	return repo.unpack(row), nil
}

func (repo matterRepository) QueryMatters(ctx context.Context, filter *matter.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]matter.Matter, error) {
	var conds []string
	var args []interface{}
	arg := func(val interface{}) string {
		args = append(args, val)
		return "$" + strconv.Itoa(len(args))
	}

	if filter != nil {
		// matters with CaseNo, Petitioner or Respondent matching the search keyword
		if filter.Search != "" {
			ph := arg("%" + filter.Search + "%")
			conds = append(conds, "(case_no ILIKE "+ph+" OR petitioner ILIKE "+ph+" OR respondent ILIKE "+ph+")")
		}
		if filter.Status != "" {
			conds = append(conds, "status = "+arg(filter.Status))
		}
		if filter.Court != "" {
			conds = append(conds, "court ILIKE "+arg("%"+filter.Court+"%"))
		}
		if !filter.ListedFrom.IsZero() {
			conds = append(conds, "listing_date >= "+arg(filter.ListedFrom.UTC()))
		}
		if !filter.ListedTo.IsZero() {
			conds = append(conds, "listing_date <= "+arg(filter.ListedTo.UTC()))
		}
	}

	q := "SELECT * FROM matter" + whereClause(conds) + orderClause(ordering, "created_at DESC")

	var rows []matterRow
	if err := sqlx.SelectContext(ctx, ext(repo.db, exec), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying matters")
	}
	return repo.unpackSlice(rows), nil
}

func (repo matterRepository) GetMatter(ctx context.Context, id string, exec ...core.DBExecutor) (matter.Matter, error) {
	if _, err := uuid.Parse(id); err != nil {
		return matter.Matter{}, matter.ErrNotFound
	}
	var row matterRow
	err := sqlx.GetContext(ctx, ext(repo.db, exec), &row, "SELECT * FROM matter WHERE id = $1", id)
	if err != nil {
		return matter.Matter{}, repo.trapNoRowsErr(err, "finding matter")
	}
	return repo.unpack(row), nil
}

func (repo matterRepository) UpdateMatter(ctx context.Context, mtr matter.Matter, exec ...core.DBExecutor) (matter.Matter, error) {
	row := repo.pack(mtr)
	res, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		UPDATE matter
		SET case_no = :case_no, case_type = :case_type, court = :court, judge = :judge, stage = :stage,
		    district = :district, petitioner = :petitioner, respondent = :respondent, status = :status,
		    details = :details, listing_date = :listing_date, return_date = :return_date, updated_at = :updated_at
		WHERE id = :id`,
		row)
	if err != nil {
		return matter.Matter{}, errors.Wrap(err, "updating matter")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return matter.Matter{}, matter.ErrNotFound
	}
	return repo.unpack(row), nil
}

func (repo matterRepository) DeleteMattersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := ext(repo.db, exec).ExecContext(ctx, "DELETE FROM matter WHERE id IN ("+placeholders(1, len(ids))+")", args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting matters")
	}
	cnt, _ := res.RowsAffected()
	return int(cnt), nil
}

func (repo matterRepository) MattersListedOn(ctx context.Context, day time.Time, exec ...core.DBExecutor) ([]matter.Matter, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var rows []matterRow
	err := sqlx.SelectContext(ctx, ext(repo.db, exec), &rows,
		"SELECT * FROM matter WHERE listing_date >= $1 AND listing_date < $2 ORDER BY listing_date", start, end)
	if err != nil {
		return nil, errors.Wrap(err, "querying listed matters")
	}
	return repo.unpackSlice(rows), nil
}

func (repo matterRepository) CreateAuditEntries(ctx context.Context, entries []matter.AuditEntry, exec ...core.DBExecutor) error {
	if len(entries) == 0 {
		return nil
	}
	rows := make([]auditRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, auditRow{
			ID:        uuid.New().String(),
			MatterID:  e.MatterID,
			Field:     e.Field,
			OldValue:  null.NewString(e.OldValue, e.OldValue != ""),
			NewValue:  null.NewString(e.NewValue, e.NewValue != ""),
			ChangedBy: null.NewString(e.ChangedBy, e.ChangedBy != ""),
			ChangedAt: null.NewTime(e.ChangedAt.UTC(), !e.ChangedAt.IsZero()),
		})
	}
	_, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		INSERT INTO matter_audit (id, matter_id, field, old_value, new_value, changed_by, changed_at)
		VALUES (:id, :matter_id, :field, :old_value, :new_value, :changed_by, :changed_at)`,
		rows)
	return errors.Wrap(err, "inserting audit entries")
}

func (repo matterRepository) AuditTrail(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]matter.AuditEntry, error) {
	if _, err := uuid.Parse(matterID); err != nil {
		return []matter.AuditEntry{}, nil
	}
	var rows []auditRow
	err := sqlx.SelectContext(ctx, ext(repo.db, exec), &rows,
		"SELECT * FROM matter_audit WHERE matter_id = $1 ORDER BY changed_at DESC", matterID)
	if err != nil {
		return nil, errors.Wrap(err, "querying audit trail")
	}
	entries := make([]matter.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, matter.AuditEntry{
			ID:        row.ID,
			MatterID:  row.MatterID,
			Field:     row.Field,
			OldValue:  row.OldValue.String,
			NewValue:  row.NewValue.String,
			ChangedBy: row.ChangedBy.String,
			ChangedAt: row.ChangedAt.Time,
		})
	}
	return entries, nil
}
