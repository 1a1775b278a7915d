package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/user"
)

type matterApi struct {
	svc      *matter.Service
	userSvc  *user.Service
	validate *validator.Validate
}

func registerMatterAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *matter.Service, userSvc *user.Service, validate *validator.Validate) {
	api := matterApi{
		svc:      svc,
		userSvc:  userSvc,
		validate: validate,
	}

	mg := g.Group("/matters", jwt)
	mg.POST("", api.create)
	mg.GET("", api.query)
	mg.DELETE("", api.destroyMultiple, adminMiddleware())
	mg.GET("/:id", api.retrieve)
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy, adminMiddleware())
	mg.GET("/:id/audit", api.auditTrail)
}

func (api *matterApi) create(ctx echo.Context) error {
	var data matter.NewMatter
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMatter")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	mtr, err := api.svc.Create(ctx.Request().Context(), data, ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "creating matter")
	}
	return ctx.JSON(http.StatusCreated, mtr)
}

func (api *matterApi) query(ctx echo.Context) error {
	filter := new(matter.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []matter.Matter{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	matters, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying matters")
	}
	if matters == nil {
		matters = []matter.Matter{}
	}
	return ctx.JSON(http.StatusOK, matters)
}

func (api *matterApi) retrieve(ctx echo.Context) error {
	mtr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == matter.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding matter by ID")
	}
	return ctx.JSON(http.StatusOK, mtr)
}

func (api *matterApi) update(ctx echo.Context) error {
	var data matter.UpdateMatter
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMatter")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	mtr, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data, ctxUsr.ID)
	if err != nil {
		if errors.Cause(err) == matter.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating matter")
	}
	return ctx.JSON(http.StatusOK, mtr)
}

func (api *matterApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting matter")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *matterApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting matters")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *matterApi) auditTrail(ctx echo.Context) error {
	entries, err := api.svc.AuditTrail(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying audit trail")
	}
	if entries == nil {
		entries = []matter.AuditEntry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}
