package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/user"
)

type hearingApi struct {
	svc      *hearing.Service
	userSvc  *user.Service
	validate *validator.Validate
}

func registerHearingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *hearing.Service, userSvc *user.Service, validate *validator.Validate) {
	api := hearingApi{
		svc:      svc,
		userSvc:  userSvc,
		validate: validate,
	}

	hg := g.Group("/hearings", jwt)
	hg.POST("", api.create)
	hg.GET("", api.query)
	hg.GET("/:id", api.retrieve)
	hg.PUT("/:id", api.update)
	hg.DELETE("/:id", api.destroy)
}

func (api *hearingApi) create(ctx echo.Context) error {
	var data hearing.NewHearing
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewHearing")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	hrg, err := api.svc.Create(ctx.Request().Context(), data, ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "creating hearing")
	}
	return ctx.JSON(http.StatusCreated, hrg)
}

func (api *hearingApi) query(ctx echo.Context) error {
	filter := new(hearing.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []hearing.Hearing{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	hearings, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying hearings")
	}
	if hearings == nil {
		hearings = []hearing.Hearing{}
	}
	return ctx.JSON(http.StatusOK, hearings)
}

func (api *hearingApi) retrieve(ctx echo.Context) error {
	hrg, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == hearing.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding hearing by ID")
	}
	return ctx.JSON(http.StatusOK, hrg)
}

func (api *hearingApi) update(ctx echo.Context) error {
	var data hearing.UpdateHearing
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateHearing")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	hrg, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == hearing.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating hearing")
	}
	return ctx.JSON(http.StatusOK, hrg)
}

func (api *hearingApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting hearing")
	}
	return ctx.NoContent(http.StatusNoContent)
}
