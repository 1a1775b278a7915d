package notification

import (
	"context"
	"testing"
	"time"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/task"
	"github.com/nandyala/kacheri/core/user"
)

type depsStub struct {
	listed    []matter.Matter
	assignees map[string][]string // matterID -> user IDs
	users     map[string]user.User

	created []Notification
	sent    []*core.EmailMessage
}

// Repository

func (s *depsStub) CreateNotifications(ctx context.Context, notifs []Notification, exec ...core.DBExecutor) error {
	s.created = append(s.created, notifs...)
	return nil
}

func (s *depsStub) QueryUserNotifications(ctx context.Context, userID string, exec ...core.DBExecutor) ([]Notification, error) {
	var notifs []Notification
	for _, n := range s.created {
		if n.UserID == userID {
			notifs = append(notifs, n)
		}
	}
	return notifs, nil
}

func (s *depsStub) MarkNotificationsRead(ctx context.Context, userID string, ids []string, exec ...core.DBExecutor) (int, error) {
	return len(ids), nil
}

// matter.Repository (only MattersListedOn is exercised)

func (s *depsStub) CreateMatter(ctx context.Context, mtr matter.Matter, exec ...core.DBExecutor) (matter.Matter, error) {
	return mtr, nil
}

func (s *depsStub) QueryMatters(ctx context.Context, filter *matter.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]matter.Matter, error) {
	return nil, nil
}

func (s *depsStub) GetMatter(ctx context.Context, id string, exec ...core.DBExecutor) (matter.Matter, error) {
	return matter.Matter{}, matter.ErrNotFound
}

func (s *depsStub) UpdateMatter(ctx context.Context, mtr matter.Matter, exec ...core.DBExecutor) (matter.Matter, error) {
	return mtr, nil
}

func (s *depsStub) DeleteMattersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return 0, nil
}

func (s *depsStub) MattersListedOn(ctx context.Context, day time.Time, exec ...core.DBExecutor) ([]matter.Matter, error) {
	return s.listed, nil
}

func (s *depsStub) CreateAuditEntries(ctx context.Context, entries []matter.AuditEntry, exec ...core.DBExecutor) error {
	return nil
}

func (s *depsStub) AuditTrail(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]matter.AuditEntry, error) {
	return nil, nil
}

// task.Repository (only AssigneesForMatter is exercised)

func (s *depsStub) CreateTask(ctx context.Context, tsk task.Task, exec ...core.DBExecutor) (task.Task, error) {
	return tsk, nil
}

func (s *depsStub) QueryTasks(ctx context.Context, filter *task.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]task.Task, error) {
	return nil, nil
}

func (s *depsStub) GetTask(ctx context.Context, id string, exec ...core.DBExecutor) (task.Task, error) {
	return task.Task{}, task.ErrNotFound
}

func (s *depsStub) UpdateTask(ctx context.Context, tsk task.Task, exec ...core.DBExecutor) (task.Task, error) {
	return tsk, nil
}

func (s *depsStub) DeleteTasksByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return 0, nil
}

func (s *depsStub) AssigneesForMatter(ctx context.Context, matterID string, exec ...core.DBExecutor) ([]string, error) {
	return s.assignees[matterID], nil
}

// user.Repository (only GetUser is exercised)

func (s *depsStub) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	return nil
}

func (s *depsStub) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	return usr, nil
}

func (s *depsStub) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]user.User, error) {
	return nil, nil
}

func (s *depsStub) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	if usr, ok := s.users[filter.ID]; ok {
		return usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (s *depsStub) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	return usr, nil
}

func (s *depsStub) DeleteUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) (int, error) {
	return 0, nil
}

// core.EmailService

func (s *depsStub) SendMessages(messages ...*core.EmailMessage) {
	s.sent = append(s.sent, messages...)
}

// core.Logger

func (s *depsStub) Enable(bool) {}

func (s *depsStub) Debug(string, ...interface{}) {}

func (s *depsStub) Info(string, ...interface{}) {}

func (s *depsStub) Warn(string, ...interface{}) {}

func (s *depsStub) Error(string, ...interface{}) {}

func (s *depsStub) Fatal(string, ...interface{}) {}

func TestService_SendHearingReminders(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)

	stub := &depsStub{
		listed: []matter.Matter{
			{ID: "m1", CaseNo: "WP 1/2025", Court: "High Court"},
			{ID: "m2", CaseNo: "WP 2/2025"}, // no assignees
		},
		assignees: map[string][]string{
			"m1": {"u1", "u2"},
		},
		users: map[string]user.User{
			"u1": {ID: "u1", Name: "Asha", Email: "asha@test.in"},
			"u2": {ID: "u2", Name: "No Email"}, // notification only
		},
	}
	svc := NewService(stub, stub, stub, stub, stub, stub)

	if err := svc.SendHearingReminders(context.Background(), day); err != nil {
		t.Fatalf("SendHearingReminders() error = %v", err)
	}

	if len(stub.created) != 2 {
		t.Fatalf("len(notifications) = %d, want 2", len(stub.created))
	}
	for _, n := range stub.created {
		if n.Type != TypeHearingReminder || n.Priority != PriorityHigh {
			t.Errorf("notification = %+v", n)
		}
		if n.RelatedID != "m1" {
			t.Errorf("related ID = %s, want m1", n.RelatedID)
		}
		if n.Title != "Hearing tomorrow: WP 1/2025" {
			t.Errorf("title = %s", n.Title)
		}
	}

	// only the assignee with an address on file gets an email
	if len(stub.sent) != 1 {
		t.Fatalf("len(emails) = %d, want 1", len(stub.sent))
	}
	if to := stub.sent[0].To; len(to) != 1 || to[0].Address != "asha@test.in" {
		t.Errorf("email to = %v", stub.sent[0].To)
	}
	if stub.sent[0].Body != "WP 1/2025 is listed on 10-03-2025 before High Court" {
		t.Errorf("email body = %q", stub.sent[0].Body)
	}
}

func TestService_SendHearingReminders_nothingListed(t *testing.T) {
	stub := &depsStub{}
	svc := NewService(stub, stub, stub, stub, stub, stub)

	if err := svc.SendHearingReminders(context.Background(), time.Now()); err != nil {
		t.Fatalf("SendHearingReminders() error = %v", err)
	}
	if len(stub.created) != 0 || len(stub.sent) != 0 {
		t.Errorf("created = %d, sent = %d; want none", len(stub.created), len(stub.sent))
	}
}
