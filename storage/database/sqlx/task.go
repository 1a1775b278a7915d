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
	"github.com/nandyala/kacheri/core/task"
)

type taskRow struct {
	ID         string      `db:"id"`
	MatterID   null.String `db:"matter_id"`
	Title      string      `db:"title"`
	Details    null.String `db:"details"`
	Status     string      `db:"status"`
	Priority   null.String `db:"priority"`
	AssignedTo null.String `db:"assigned_to"`
	DueDate    null.Time   `db:"due_date"`
	CreatedBy  null.String `db:"created_by"`
	CreatedAt  null.Time   `db:"created_at"`
	UpdatedAt  null.Time   `db:"updated_at"`
}

type taskRepository struct {
	db *sqlx.DB
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *sqlx.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (repo taskRepository) pack(tsk task.Task) taskRow {
	return taskRow{
		ID:         tsk.ID,
		MatterID:   null.NewString(tsk.MatterID, tsk.MatterID != ""),
		Title:      tsk.Title,
		Details:    null.NewString(tsk.Details, tsk.Details != ""),
		Status:     tsk.Status,
		Priority:   null.NewString(tsk.Priority, tsk.Priority != ""),
		AssignedTo: null.NewString(tsk.AssignedTo, tsk.AssignedTo != ""),
		DueDate:    null.NewTime(tsk.DueDate.UTC(), !tsk.DueDate.IsZero()),
		CreatedBy:  null.NewString(tsk.CreatedBy, tsk.CreatedBy != ""),
		CreatedAt:  null.NewTime(tsk.CreatedAt.UTC(), !tsk.CreatedAt.IsZero()),
		UpdatedAt:  null.NewTime(tsk.UpdatedAt.UTC(), !tsk.UpdatedAt.IsZero()),
	}
}

func (repo taskRepository) unpack(row taskRow) task.Task {
	return task.Task{
		ID:         row.ID,
		MatterID:   row.MatterID.String,
		Title:      row.Title,
		Details:    row.Details.String,
		Status:     row.Status,
		Priority:   row.Priority.String,
		AssignedTo: row.AssignedTo.String,
		DueDate:    row.DueDate.Time,
		CreatedBy:  row.CreatedBy.String,
		CreatedAt:  row.CreatedAt.Time,
		UpdatedAt:  row.UpdatedAt.Time,
	}
}

func (repo taskRepository) unpackSlice(rows []taskRow) []task.Task {
	tasks := make([]task.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, repo.unpack(row))
	}
	return tasks
}

// trapNoRowsErr maps psql "no rows" err to task.ErrNotFound
func (repo taskRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return task.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo taskRepository) CreateTask(ctx context.Context, tsk task.Task, exec ...core.DBExecutor) (task.Task, error) {
	tsk.ID = uuid.New().String()
	row := repo.pack(tsk)
	_, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		INSERT INTO task (id, matter_id, title, details, status, priority, assigned_to, due_date, created_by, created_at, updated_at)
		VALUES (:id, :matter_id, :title, :details, :status, :priority, :assigned_to, :due_date, :created_by, :created_at, :updated_at)`,
		row)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "inserting task")
	}
	return repo.unpack(row), nil
}

func (repo taskRepository) QueryTasks(ctx context.Context, filter *task.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]task.Task, error) {
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
		if filter.Status != "" {
			conds = append(conds, "status = "+arg(filter.Status))
		}
		if filter.AssignedTo != "" {
			conds = append(conds, "assigned_to = "+arg(filter.AssignedTo))
		}
		if !filter.DueFrom.IsZero() {
			conds = append(conds, "due_date >= "+arg(filter.DueFrom.UTC()))
		}
		if !filter.DueTo.IsZero() {
			conds = append(conds, "due_date <= "+arg(filter.DueTo.UTC()))
		}
	}

	q := "SELECT * FROM task" + whereClause(conds) + orderClause(ordering, "due_date ASC")

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, ext(repo.db, exec), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	return repo.unpackSlice(rows), nil
}

func (repo taskRepository) GetTask(ctx context.Context, id string, exec ...core.DBExecutor) (task.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return task.Task{}, task.ErrNotFound
	}
	var row taskRow
	err := sqlx.GetContext(ctx, ext(repo.db, exec), &row, "SELECT * FROM task WHERE id = $1", id)
	if err != nil {
		return task.Task{}, repo.trapNoRowsErr(err, "finding task")
	}
	return repo.unpack(row), nil
}

func (repo taskRepository) UpdateTask(ctx context.Context, tsk task.Task, exec ...core.DBExecutor) (task.Task, error) {
	row := repo.pack(tsk)
	res, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		UPDATE task
		SET matter_id = :matter_id, title = :title, details = :details, status = :status, priority = :priority,
		    assigned_to = :assigned_to, due_date = :due_date, updated_at = :updated_at
		WHERE id = :id`,
		row)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "updating task")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return repo.unpack(row), nil
}

func (repo taskRepository) DeleteTasksByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := ext(repo.db, exec).ExecContext(ctx, "DELETE FROM task WHERE id IN ("+placeholders(1, len(ids))+")", args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting tasks")
	}
	cnt, _ := res.RowsAffected()
	return int(cnt), nil
}

func (repo taskRepository) AssigneesForMatter(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]string, error) {
	if _, err := uuid.Parse(matterID); err != nil {
		return []string{}, nil
	}
	var assignees []string
	err := sqlx.SelectContext(ctx, ext(repo.db, exec), &assignees,
		"SELECT DISTINCT assigned_to FROM task WHERE matter_id = $1 AND assigned_to IS NOT NULL", matterID)
	if err != nil {
		return nil, errors.Wrap(err, "querying assignees")
	}
	return assignees, nil
}
