package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/calendar"
)

type settingsApi struct {
	resetter core.Resetter
	calSvc   *calendar.Service
	logger   core.Logger
}

func registerSettingsAPI(g *echo.Group, jwt echo.MiddlewareFunc, resetter core.Resetter, calSvc *calendar.Service, logger core.Logger) {
	api := settingsApi{
		resetter: resetter,
		calSvc:   calSvc,
		logger:   logger,
	}

	sg := g.Group("/settings", jwt, adminMiddleware())
	sg.POST("/reset", api.reset)
}

// reset wipes all domain data. User accounts survive so admins are not
// locked out of a freshly reset install.
func (api *settingsApi) reset(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.resetter.Reset(ctx.Request().Context()); err != nil {
		return errors.Wrap(err, "resetting application data")
	}
	api.calSvc.Invalidate()

	api.logger.Warn("application data reset by " + claims.Username)
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "All application data has been cleared"})
}
