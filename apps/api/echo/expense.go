package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nandyala/kacheri/core/expense"
	"github.com/nandyala/kacheri/core/user"
)

type expenseApi struct {
	svc      *expense.Service
	userSvc  *user.Service
	validate *validator.Validate
}

func registerExpenseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *expense.Service, userSvc *user.Service, validate *validator.Validate) {
	api := expenseApi{
		svc:      svc,
		userSvc:  userSvc,
		validate: validate,
	}

	eg := g.Group("/expenses", jwt)
	eg.POST("", api.create)
	eg.GET("", api.query)
	eg.GET("/:id", api.retrieve)
	eg.DELETE("/:id", api.destroy)
}

type expenseListResponse struct {
	Expenses []expense.Expense `json:"expenses"`
	Total    int64             `json:"total"` // paise
}

func (api *expenseApi) create(ctx echo.Context) error {
	var data expense.NewExpense
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExpense")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	exp, err := api.svc.Create(ctx.Request().Context(), data, ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "creating expense")
	}
	return ctx.JSON(http.StatusCreated, exp)
}

func (api *expenseApi) query(ctx echo.Context) error {
	filter := new(expense.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, expenseListResponse{Expenses: []expense.Expense{}})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	expenses, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying expenses")
	}
	if expenses == nil {
		expenses = []expense.Expense{}
	}
	return ctx.JSON(http.StatusOK, expenseListResponse{
		Expenses: expenses,
		Total:    expense.Total(expenses),
	})
}

func (api *expenseApi) retrieve(ctx echo.Context) error {
	exp, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == expense.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding expense by ID")
	}
	return ctx.JSON(http.StatusOK, exp)
}

func (api *expenseApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting expense")
	}
	return ctx.NoContent(http.StatusNoContent)
}
