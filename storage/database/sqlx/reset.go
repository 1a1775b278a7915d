package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/nandyala/kacheri/core"
)

// resetter wipes every domain table in one statement. User accounts are
// deliberately kept so people can still sign in after a reset.
type resetter struct {
	db *sqlx.DB
}

var _ core.Resetter = (*resetter)(nil) // interface compliance check

func NewResetter(db *sqlx.DB) *resetter {
	return &resetter{db: db}
}

func (r resetter) Reset(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		"TRUNCATE matter, matter_audit, task, hearing, expense, causelist_snapshot, notification")
	return errors.Wrap(err, "resetting domain tables")
}
