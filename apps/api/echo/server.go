package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/calendar"
	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/expense"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/notification"
	"github.com/nandyala/kacheri/core/task"
	"github.com/nandyala/kacheri/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		DisableReqLogs bool

		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc      *user.Service
		MatterSvc    *matter.Service
		TaskSvc      *task.Service
		HearingSvc   *hearing.Service
		ExpenseSvc   *expense.Service
		CauselistSvc *causelist.Service
		CalendarSvc  *calendar.Service
		NotifSvc     *notification.Service
		Resetter     core.Resetter
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := ConfigureAuth(conf.AppName, []byte(conf.SecretKey), conf.Server.JWTExpirationDelta, conf.Server.JWTRefreshExpirationDelta)

	registerUserAPI(v1, jwt, s.deps.UserSvc, s.deps.Validate)
	registerMatterAPI(v1, jwt, s.deps.MatterSvc, s.deps.UserSvc, s.deps.Validate)
	registerTaskAPI(v1, jwt, s.deps.TaskSvc, s.deps.UserSvc, s.deps.Validate)
	registerHearingAPI(v1, jwt, s.deps.HearingSvc, s.deps.UserSvc, s.deps.Validate)
	registerExpenseAPI(v1, jwt, s.deps.ExpenseSvc, s.deps.UserSvc, s.deps.Validate)
	registerCauselistAPI(v1, jwt, s.deps.CauselistSvc, s.deps.UserSvc)
	registerCalendarAPI(v1, jwt, s.deps.CalendarSvc)
	registerNotificationAPI(v1, jwt, s.deps.NotifSvc)
	registerSettingsAPI(v1, jwt, s.deps.Resetter, s.deps.CalendarSvc, s.deps.Logger)
}

func (s *server) Start() {
	go func() {
		s.errs <- s.app.Start(s.deps.Conf.Server.Addr)
	}()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Kacheri API!")
}
