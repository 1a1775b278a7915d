package dummydb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/notification"
)

type notificationRepository struct {
	db *notificationTable
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *DB) *notificationRepository {
	return &notificationRepository{db: db.notification}
}

func (repo *notificationRepository) CreateNotifications(ctx context.Context, notifs []notification.Notification, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, n := range notifs {
		n := n
		n.ID = uuid.New().String()
		repo.db.table[n.ID] = &n
	}
	return nil
}

func (repo *notificationRepository) QueryUserNotifications(ctx context.Context, userID string, exec ...core.DBExecutor) ([]notification.Notification, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notifs := make([]notification.Notification, 0)
	for _, n := range repo.db.table {
		if n.UserID == userID {
			notifs = append(notifs, *n)
		}
	}
	sort.Slice(notifs, func(i, j int) bool { return notifs[i].CreatedAt.After(notifs[j].CreatedAt) })
	return notifs, nil
}

func (repo *notificationRepository) MarkNotificationsRead(ctx context.Context, userID string, ids []string, exec ...core.DBExecutor) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var cnt int
	for _, id := range ids {
		if n, ok := repo.db.table[id]; ok && n.UserID == userID && !n.IsRead {
			n.IsRead = true
			cnt++
		}
	}
	return cnt, nil
}
