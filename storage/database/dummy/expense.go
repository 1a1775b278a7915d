package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/expense"
)

type expenseRepository struct {
	db *expenseTable
}

var _ expense.Repository = (*expenseRepository)(nil) // interface compliance check

func NewExpenseRepository(db *DB) *expenseRepository {
	return &expenseRepository{db: db.expense}
}

func (repo *expenseRepository) query() []expense.Expense {
	expenses := make([]expense.Expense, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		expenses = append(expenses, *e)
	}
	return expenses
}

func (repo *expenseRepository) CreateExpense(ctx context.Context, exp expense.Expense, exec ...core.DBExecutor) (expense.Expense, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	exp.ID = uuid.New().String()
	repo.db.table[exp.ID] = &exp
	return exp, nil
}

func (repo *expenseRepository) QueryExpenses(ctx context.Context, filter *expense.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]expense.Expense, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	expenses := repo.query()

	if filter != nil {
		if filter.MatterID != "" {
			var filtered []expense.Expense
			for _, e := range expenses {
				if e.MatterID == filter.MatterID {
					filtered = append(filtered, e)
				}
			}
			expenses = filtered
		}
		if expenses != nil && filter.Category != "" {
			var filtered []expense.Expense
			for _, e := range expenses {
				if e.Category == filter.Category {
					filtered = append(filtered, e)
				}
			}
			expenses = filtered
		}
		if expenses != nil && !filter.From.IsZero() {
			var filtered []expense.Expense
			for _, e := range expenses {
				if !e.IncurredOn.Before(filter.From) {
					filtered = append(filtered, e)
				}
			}
			expenses = filtered
		}
		if expenses != nil && !filter.To.IsZero() {
			var filtered []expense.Expense
			for _, e := range expenses {
				if !e.IncurredOn.After(filter.To) {
					filtered = append(filtered, e)
				}
			}
			expenses = filtered
		}
	}

	sort.Slice(expenses, func(i, j int) bool { return expenses[i].IncurredOn.After(expenses[j].IncurredOn) })
	return expenses, nil
}

func (repo *expenseRepository) GetExpense(ctx context.Context, id string, exec ...core.DBExecutor) (expense.Expense, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if exp, ok := repo.db.table[id]; ok {
		return *exp, nil
	}
	return expense.Expense{}, expense.ErrNotFound
}

func (repo *expenseRepository) DeleteExpensesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
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
