package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/notification"
)

type notificationRow struct {
	ID        string      `db:"id"`
	UserID    string      `db:"user_id"`
	Title     string      `db:"title"`
	Message   null.String `db:"message"`
	Type      string      `db:"type"`
	Priority  string      `db:"priority"`
	IsRead    bool        `db:"is_read"`
	RelatedID null.String `db:"related_id"`
	CreatedAt null.Time   `db:"created_at"`
}

type notificationRepository struct {
	db *sqlx.DB
}

var _ notification.Repository = (*notificationRepository)(nil) // interface compliance check

func NewNotificationRepository(db *sqlx.DB) *notificationRepository {
	return &notificationRepository{db: db}
}

func (repo notificationRepository) CreateNotifications(ctx context.Context, notifs []notification.Notification, exec ...core.DBExecutor) error {
	if len(notifs) == 0 {
		return nil
	}
	rows := make([]notificationRow, 0, len(notifs))
	for _, n := range notifs {
		priority := n.Priority
		if priority == "" {
			priority = notification.PriorityMedium
		}
		rows = append(rows, notificationRow{
			ID:        uuid.New().String(),
			UserID:    n.UserID,
			Title:     n.Title,
			Message:   null.NewString(n.Message, n.Message != ""),
			Type:      n.Type,
			Priority:  priority,
			IsRead:    n.IsRead,
			RelatedID: null.NewString(n.RelatedID, n.RelatedID != ""),
			CreatedAt: null.NewTime(n.CreatedAt.UTC(), !n.CreatedAt.IsZero()),
		})
	}
	_, err := sqlx.NamedExecContext(ctx, ext(repo.db, exec), `
		INSERT INTO notification (id, user_id, title, message, type, priority, is_read, related_id, created_at)
		VALUES (:id, :user_id, :title, :message, :type, :priority, :is_read, :related_id, :created_at)`,
		rows)
	return errors.Wrap(err, "inserting notifications")
}

func (repo notificationRepository) QueryUserNotifications(ctx context.Context, userID string, exec ...core.DBExecutor) ([]notification.Notification, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return []notification.Notification{}, nil
	}
	var rows []notificationRow
	err := sqlx.SelectContext(ctx, ext(repo.db, exec), &rows,
		"SELECT * FROM notification WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying notifications")
	}
	notifs := make([]notification.Notification, 0, len(rows))
	for _, row := range rows {
		notifs = append(notifs, notification.Notification{
			ID:        row.ID,
			UserID:    row.UserID,
			Title:     row.Title,
			Message:   row.Message.String,
			Type:      row.Type,
			Priority:  row.Priority,
			IsRead:    row.IsRead,
			RelatedID: row.RelatedID.String,
			CreatedAt: row.CreatedAt.Time,
		})
	}
	return notifs, nil
}

func (repo notificationRepository) MarkNotificationsRead(ctx context.Context, userID string, ids []string, exec ...core.DBExecutor) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := []interface{}{userID}
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := ext(repo.db, exec).ExecContext(ctx,
		"UPDATE notification SET is_read = TRUE WHERE user_id = $1 AND id IN ("+placeholders(2, len(ids))+")", args...)
	if err != nil {
		return 0, errors.Wrap(err, "marking notifications read")
	}
	cnt, _ := res.RowsAffected()
	return int(cnt), nil
}
