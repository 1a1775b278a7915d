package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/user"
)

type causelistApi struct {
	svc     *causelist.Service
	userSvc *user.Service
}

func registerCauselistAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *causelist.Service, userSvc *user.Service) {
	api := causelistApi{
		svc:     svc,
		userSvc: userSvc,
	}

	cg := g.Group("/causelists", jwt)
	cg.POST("", api.save)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.GET("/:id/export", api.export)
	cg.DELETE("/:id", api.destroy)
}

type saveCauselistRequest struct {
	AdvocateCode string `json:"advocate_code"`
	ListDate     string `json:"list_date"` // DD-MM-YYYY; empty means today
}

func (api *causelistApi) save(ctx echo.Context) error {
	var data saveCauselistRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to saveCauselistRequest")
	}

	var day time.Time
	if data.ListDate != "" {
		if d, ok := causelist.ParseListDate(data.ListDate); ok {
			day = d
		}
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	snap, created, err := api.svc.Save(ctx.Request().Context(), data.AdvocateCode, day, ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "saving causelist")
	}
	if created {
		return ctx.JSON(http.StatusCreated, snap)
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *causelistApi) query(ctx echo.Context) error {
	snaps, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying snapshots")
	}
	if snaps == nil {
		snaps = []causelist.Snapshot{}
	}
	return ctx.JSON(http.StatusOK, snaps)
}

func (api *causelistApi) retrieve(ctx echo.Context) error {
	snap, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == causelist.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding snapshot by ID")
	}
	return ctx.JSON(http.StatusOK, snap)
}

// export streams a snapshot as a JSON file download.
func (api *causelistApi) export(ctx echo.Context) error {
	snap, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == causelist.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding snapshot by ID")
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", causelist.ExportFilename(snap)))
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, data)
}

func (api *causelistApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting snapshot")
	}
	return ctx.NoContent(http.StatusNoContent)
}
