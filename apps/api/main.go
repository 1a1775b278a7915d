package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/nandyala/kacheri/apps/api/echo"
	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/calendar"
	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/expense"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/notification"
	"github.com/nandyala/kacheri/core/task"
	"github.com/nandyala/kacheri/core/user"
	causelistsvc "github.com/nandyala/kacheri/services/causelist"
	emailsvc "github.com/nandyala/kacheri/services/email"
	logsvc "github.com/nandyala/kacheri/services/logger"
	schedsvc "github.com/nandyala/kacheri/services/scheduler"
	"github.com/nandyala/kacheri/storage/database"
	sqlxrepos "github.com/nandyala/kacheri/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	dbx := sqlx.NewDb(db, "postgres")

	// set up repositories
	userRepo := sqlxrepos.NewUserRepository(dbx)
	matterRepo := sqlxrepos.NewMatterRepository(dbx)
	taskRepo := sqlxrepos.NewTaskRepository(dbx)
	hearingRepo := sqlxrepos.NewHearingRepository(dbx)
	expenseRepo := sqlxrepos.NewExpenseRepository(dbx)
	causelistRepo := sqlxrepos.NewCauselistRepository(dbx)
	notifRepo := sqlxrepos.NewNotificationRepository(dbx)
	resetter := sqlxrepos.NewResetter(dbx)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(userRepo)
	matterSvc := matter.NewService(matterRepo)
	taskSvc := task.NewService(taskRepo)
	hearingSvc := hearing.NewService(hearingRepo)
	expenseSvc := expense.NewService(expenseRepo)
	calSvc := calendar.NewService(taskRepo, matterRepo, hearingRepo, causelistRepo, logger)
	causelistSvc := causelist.NewService(causelistRepo, causelistsvc.NewClient(conf, logger), calSvc)
	notifSvc := notification.NewService(notifRepo, matterRepo, taskRepo, userRepo, mailSvc, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	user.LoadCommonPasswords(logger)

	// =========================================================================
	// Start Scheduler

	scheduler := schedsvc.NewScheduler(notifSvc, logger)
	if err = scheduler.Start(conf.ReminderSpec); err != nil {
		logger.Fatal(fmt.Sprintf("starting scheduler: %v", err), err)
	}
	defer scheduler.Stop()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			Validate:     validate,
			Translator:   translator,
			UserSvc:      usrSvc,
			MatterSvc:    matterSvc,
			TaskSvc:      taskSvc,
			HearingSvc:   hearingSvc,
			ExpenseSvc:   expenseSvc,
			CauselistSvc: causelistSvc,
			CalendarSvc:  calSvc,
			NotifSvc:     notifSvc,
			Resetter:     resetter,
		},
	)
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
