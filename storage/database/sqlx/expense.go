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
	"github.com/nandyala/kacheri/core/expense"
)

type expenseRow struct {
	ID          string      `db:"id"`
	MatterID    null.String `db:"matter_id"`
	Description string      `db:"description"`
	Category    null.String `db:"category"`
	Amount      int64       `db:"amount"`
	IncurredOn  null.Time   `db:"incurred_on"`
	CreatedBy   null.String `db:"created_by"`
	CreatedAt   null.Time   `db:"created_at"`
}

type expenseRepository struct {
	db *sqlx.DB
}

var _ expense.Repository = (*expenseRepository)(nil) // interface compliance check

func NewExpenseRepository(db *sqlx.DB) *expenseRepository {
	return &expenseRepository{db: db}
}

func (repo expenseRepository) pack(exp expense.Expense) expenseRow {
	return expenseRow{
		ID:          exp.ID,
		MatterID:    null.NewString(exp.MatterID, exp.MatterID != ""),
		Description: exp.Description,
		Category:    null.NewString(exp.Category, exp.Category != ""),
		Amount:      exp.Amount,
		IncurredOn:  null.NewTime(exp.IncurredOn.UTC(), !exp.IncurredOn.IsZero()),
		CreatedBy:   null.NewString(exp.CreatedBy, exp.CreatedBy != ""),
		CreatedAt:   null.NewTime(exp.CreatedAt.UTC(), !exp.CreatedAt.IsZero()),
	}
}

func (repo expenseRepository) unpack(row expenseRow) expense.Expense {
	return expense.Expense{
		ID:          row.ID,
		MatterID:    row.MatterID.String,
		Description: row.Description,
		Category:    row.Category.String,
		Amount:      row.Amount,
		IncurredOn:  row.IncurredOn.Time,
		CreatedBy:   row.CreatedBy.String,
		CreatedAt:   row.CreatedAt.Time,
	}
}

// trapNoRowsErr maps psql "no rows" err to expense.ErrNotFound
func (repo expenseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return expense.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo expenseRepository) CreateExpense(ctx context.Context, exp expense.Expense, exec ...core.DBExecutor) (expense.Expense, error) {
	exp.ID = uuid.New().String()
	row := repo.pack(exp)
	_, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		INSERT INTO expense (id, matter_id, description, category, amount, incurred_on, created_by, created_at)
		VALUES (:id, :matter_id, :description, :category, :amount, :incurred_on, :created_by, :created_at)`,
		row)
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "inserting expense")
	}
	return repo.unpack(row), nil
}

func (repo expenseRepository) QueryExpenses(ctx context.Context, filter *expense.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]expense.Expense, error) {
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
		if filter.Category != "" {
			conds = append(conds, "category = "+arg(filter.Category))
		}
		if !filter.From.IsZero() {
			conds = append(conds, "incurred_on >= "+arg(filter.From.UTC()))
		}
		if !filter.To.IsZero() {
			conds = append(conds, "incurred_on <= "+arg(filter.To.UTC()))
		}
	}

	q := "SELECT * FROM expense" + whereClause(conds) + orderClause(ordering, "incurred_on DESC")

	var rows []expenseRow
	if err := sqlx.SelectContext(ctx, ext(repo.db, exec), &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying expenses")
	}
	expenses := make([]expense.Expense, 0, len(rows))
	for _, row := range rows {
		expenses = append(expenses, repo.unpack(row))
	}
	return expenses, nil
}

func (repo expenseRepository) GetExpense(ctx context.Context, id string, exec ...core.DBExecutor) (expense.Expense, error) {
	if _, err := uuid.Parse(id); err != nil {
		return expense.Expense{}, expense.ErrNotFound
	}
	var row expenseRow
	err := sqlx.GetContext(ctx, ext(repo.db, exec), &row, "SELECT * FROM expense WHERE id = $1", id)
	if err != nil {
		return expense.Expense{}, repo.trapNoRowsErr(err, "finding expense")
	}
	return repo.unpack(row), nil
}

func (repo expenseRepository) DeleteExpensesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := ext(repo.db, exec).ExecContext(ctx, "DELETE FROM expense WHERE id IN ("+placeholders(1, len(ids))+")", args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting expenses")
	}
	cnt, _ := res.RowsAffected()
	return int(cnt), nil
}
