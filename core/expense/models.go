package expense

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nandyala/kacheri/core"
)

type Expense struct {
	ID          string    `json:"id"`
	MatterID    string    `json:"matter_id,omitempty"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Amount      int64     `json:"amount"` // paise
	IncurredOn  time.Time `json:"incurred_on"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

type NewExpense struct {
	MatterID    string    `json:"matter_id"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount" validate:"required,gt=0"`
	IncurredOn  time.Time `json:"incurred_on"`
}

func (ne *NewExpense) Validate(validate *validator.Validate) error {
	ne.Description = core.CleanString(ne.Description)
	ne.Category = core.CleanString(ne.Category, true /* lower */)
	return validate.Struct(ne)
}

type QueryFilter struct {
	MatterID string    `query:"matter_id"`
	Category string    `query:"category"`
	From     time.Time `query:"from"`
	To       time.Time `query:"to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.MatterID == "" && qf.Category == "" && qf.From.IsZero() && qf.To.IsZero()
}

// Total sums the amounts of the given expenses, in paise.
func Total(expenses []Expense) int64 {
	var total int64
	for _, exp := range expenses {
		total += exp.Amount
	}
	return total
}
