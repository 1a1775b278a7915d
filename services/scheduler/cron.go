package schedsvc

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/notification"
)

// Scheduler runs the recurring background jobs, currently just the
// daily hearing reminder sweep for the next day's listings.
type Scheduler struct {
	cron     *cron.Cron
	notifSvc *notification.Service
	logger   core.Logger
}

func NewScheduler(notifSvc *notification.Service, logger core.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		notifSvc: notifSvc,
		logger:   logger,
	}
}

func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.remindHearings); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started with spec " + spec)
	return nil
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) remindHearings() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	tomorrow := time.Now().AddDate(0, 0, 1)
	if err := s.notifSvc.SendHearingReminders(ctx, tomorrow); err != nil {
		s.logger.Error("sending hearing reminders", err)
	}
}
