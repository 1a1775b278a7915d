package notification

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/task"
	"github.com/nandyala/kacheri/core/user"
)

var ErrNotFound = errors.New("notification not found")

type (
	Repository interface {
		CreateNotifications(ctx context.Context, notifs []Notification, exec ...core.DBExecutor) error
		// QueryUserNotifications returns a user's notifications, newest first.
		QueryUserNotifications(ctx context.Context, userID string, exec ...core.DBExecutor) ([]Notification, error)
		MarkNotificationsRead(ctx context.Context, userID string, ids []string, exec ...core.DBExecutor) (int, error)
	}

	Service struct {
		repo       Repository
		matterRepo matter.Repository
		taskRepo   task.Repository
		userRepo   user.Repository
		mailSvc    core.EmailService
		logger     core.Logger
	}
)

func NewService(
	repo Repository,
	matterRepo matter.Repository,
	taskRepo task.Repository,
	userRepo user.Repository,
	mailSvc core.EmailService,
	logger core.Logger,
) *Service {
	return &Service{
		repo:       repo,
		matterRepo: matterRepo,
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		mailSvc:    mailSvc,
		logger:     logger,
	}
}

func (svc *Service) QueryForUser(ctx context.Context, userID string) ([]Notification, error) {
	return svc.repo.QueryUserNotifications(ctx, userID)
}

func (svc *Service) MarkRead(ctx context.Context, userID string, ids ...string) error {
	_, err := svc.repo.MarkNotificationsRead(ctx, userID, ids)
	return err
}

// SendHearingReminders notifies the assignees of every matter listed on
// the given day: one in-app notification each, plus an email when the
// assignee has an address on file. Intended to run daily for tomorrow.
func (svc *Service) SendHearingReminders(ctx context.Context, day time.Time) error {
	matters, err := svc.matterRepo.MattersListedOn(ctx, day)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var notifs []Notification
	var messages []*core.EmailMessage

	for _, mtr := range matters {
		assignees, err := svc.taskRepo.AssigneesForMatter(ctx, mtr.ID)
		if err != nil {
			svc.logger.Error("finding assignees for matter "+mtr.ID, err)
			continue
		}

		title := fmt.Sprintf("Hearing tomorrow: %s", mtr.CaseNo)
		body := fmt.Sprintf(
			"%s is listed on %s", mtr.CaseNo, day.Format("02-01-2006"))
		if mtr.Court != "" {
			body += " before " + mtr.Court
		}

		for _, userID := range assignees {
			notifs = append(notifs, Notification{
				UserID:    userID,
				Title:     title,
				Message:   body,
				Type:      TypeHearingReminder,
				Priority:  PriorityHigh,
				RelatedID: mtr.ID,
				CreatedAt: now,
			})

			usr, err := svc.userRepo.GetUser(ctx, user.GetFilter{ID: userID})
			if err != nil || usr.Email == "" {
				continue
			}
			messages = append(messages, &core.EmailMessage{
				To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
				Subject: title,
				Body:    body,
			})
		}
	}

	if len(notifs) > 0 {
		if err := svc.repo.CreateNotifications(ctx, notifs); err != nil {
			return err
		}
	}
	if len(messages) > 0 {
		svc.mailSvc.SendMessages(messages...)
	}
	svc.logger.Info(fmt.Sprintf("hearing reminders sent: %d notifications, %d emails", len(notifs), len(messages)))
	return nil
}
