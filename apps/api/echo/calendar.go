package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nandyala/kacheri/core/calendar"
)

const upcomingLimit = 10

type calendarApi struct {
	svc *calendar.Service
}

func registerCalendarAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *calendar.Service) {
	api := calendarApi{svc: svc}

	cg := g.Group("/calendar", jwt)
	cg.GET("", api.month)
	cg.GET("/day", api.day)
	cg.GET("/upcoming", api.upcoming)
}

type (
	monthResponse struct {
		Grid     calendar.Month `json:"grid"`
		Degraded []string       `json:"degraded,omitempty"`
		LoadedAt time.Time      `json:"loaded_at"`
	}

	dayResponse struct {
		Events   []calendar.Event `json:"events"`
		Degraded []string         `json:"degraded,omitempty"`
	}

	upcomingResponse struct {
		Events   []calendar.Event `json:"events"`
		Degraded []string         `json:"degraded,omitempty"`
	}
)

// yearMonth reads year/month query params, defaulting to the current month.
func yearMonth(ctx echo.Context, now time.Time) (int, time.Month) {
	year := now.Year()
	month := now.Month()
	if v, err := strconv.Atoi(ctx.QueryParam("year")); err == nil && v > 0 {
		year = v
	}
	if v, err := strconv.Atoi(ctx.QueryParam("month")); err == nil && v >= 1 && v <= 12 {
		month = time.Month(v)
	}
	return year, month
}

func (api *calendarApi) month(ctx echo.Context) error {
	now := time.Now()
	year, month := yearMonth(ctx, now)

	tl := api.svc.Load(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, monthResponse{
		Grid:     calendar.MonthOf(tl.Events, year, month, now),
		Degraded: tl.Degraded,
		LoadedAt: tl.LoadedAt,
	})
}

func (api *calendarApi) day(ctx echo.Context) error {
	now := time.Now()
	year, month := yearMonth(ctx, now)
	day := now.Day()
	if v, err := strconv.Atoi(ctx.QueryParam("day")); err == nil && v >= 1 && v <= 31 {
		day = v
	}

	tl := api.svc.Load(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, dayResponse{
		Events:   calendar.EventsOnDay(tl.Events, year, month, day),
		Degraded: tl.Degraded,
	})
}

func (api *calendarApi) upcoming(ctx echo.Context) error {
	tl := api.svc.Load(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, upcomingResponse{
		Events:   calendar.Upcoming(tl.Events, upcomingLimit),
		Degraded: tl.Degraded,
	})
}
