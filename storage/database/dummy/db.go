package dummydb

import (
	"sync"

	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/expense"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/notification"
	"github.com/nandyala/kacheri/core/task"
	"github.com/nandyala/kacheri/core/user"
)

type (
	DB struct {
		user         *userTable
		matter       *matterTable
		task         *taskTable
		hearing      *hearingTable
		expense      *expenseTable
		causelist    *causelistTable
		notification *notificationTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	matterTable struct {
		sync.RWMutex
		table map[string]*matter.Matter
		audit []matter.AuditEntry
	}

	taskTable struct {
		sync.RWMutex
		table map[string]*task.Task
	}

	hearingTable struct {
		sync.RWMutex
		table map[string]*hearing.Hearing
	}

	expenseTable struct {
		sync.RWMutex
		table map[string]*expense.Expense
	}

	causelistTable struct {
		sync.RWMutex
		table map[string]*causelist.Snapshot
	}

	notificationTable struct {
		sync.RWMutex
		table map[string]*notification.Notification
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:         &userTable{table: make(map[string]*user.User)},
		matter:       &matterTable{table: make(map[string]*matter.Matter)},
		task:         &taskTable{table: make(map[string]*task.Task)},
		hearing:      &hearingTable{table: make(map[string]*hearing.Hearing)},
		expense:      &expenseTable{table: make(map[string]*expense.Expense)},
		causelist:    &causelistTable{table: make(map[string]*causelist.Snapshot)},
		notification: &notificationTable{table: make(map[string]*notification.Notification)},
	}
	return db, nil
}
