package dummydb

import (
	"context"

	"github.com/nandyala/kacheri/core"
	"github.com/nandyala/kacheri/core/causelist"
	"github.com/nandyala/kacheri/core/expense"
	"github.com/nandyala/kacheri/core/hearing"
	"github.com/nandyala/kacheri/core/matter"
	"github.com/nandyala/kacheri/core/notification"
	"github.com/nandyala/kacheri/core/task"
)

type resetter struct {
	db *DB
}

var _ core.Resetter = (*resetter)(nil) // interface compliance check

func NewResetter(db *DB) *resetter {
	return &resetter{db: db}
}

// Reset clears every domain table; user accounts are kept.
func (r resetter) Reset(ctx context.Context) error {
	r.db.matter.Lock()
	r.db.matter.table = make(map[string]*matter.Matter)
	r.db.matter.audit = nil
	r.db.matter.Unlock()

	r.db.task.Lock()
	r.db.task.table = make(map[string]*task.Task)
	r.db.task.Unlock()

	r.db.hearing.Lock()
	r.db.hearing.table = make(map[string]*hearing.Hearing)
	r.db.hearing.Unlock()

	r.db.expense.Lock()
	r.db.expense.table = make(map[string]*expense.Expense)
	r.db.expense.Unlock()

	r.db.causelist.Lock()
	r.db.causelist.table = make(map[string]*causelist.Snapshot)
	r.db.causelist.Unlock()

	r.db.notification.Lock()
	r.db.notification.table = make(map[string]*notification.Notification)
	r.db.notification.Unlock()

	return nil
}
