package expense

import (
	"context"
	"errors"
	"time"

	"github.com/nandyala/kacheri/core"
)

var ErrNotFound = errors.New("expense not found")

type (
	Repository interface {
		CreateExpense(ctx context.Context, exp Expense, exec ...core.DBExecutor) (Expense, error)
		// QueryExpenses default ordering is incurred date descending.
		QueryExpenses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Expense, error)
		GetExpense(ctx context.Context, id string, exec ...core.DBExecutor) (Expense, error)
		DeleteExpensesByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ne NewExpense, createdBy string) (Expense, error) {
	incurred := ne.IncurredOn
	if incurred.IsZero() {
		incurred = time.Now().UTC()
	}
	exp := Expense{
		MatterID:    ne.MatterID,
		Description: ne.Description,
		Category:    ne.Category,
		Amount:      ne.Amount,
		IncurredOn:  incurred,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateExpense(ctx, exp)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Expense, error) {
	return svc.repo.QueryExpenses(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Expense, error) {
	return svc.repo.GetExpense(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteExpensesByID(ctx, ids)
	return err
}
