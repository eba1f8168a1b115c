package query

import (
	"conditionalert/pkg/domain/model"
	"context"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const eventsTable = "condition_events"

type CounterConfig struct {
	// Condition is only used when FilterByCondition is set.
	Condition string
	// FilterByCondition restricts the count to rows of Condition. Off by
	// default: the count covers every recorded event.
	FilterByCondition bool
}

func NewEventCounter(db *sqlx.DB, cfg CounterConfig) model.EventCounter {
	return &eventCounter{db: db, cfg: cfg}
}

type eventCounter struct {
	db  *sqlx.DB
	cfg CounterConfig
}

func (c *eventCounter) Count(ctx context.Context) (int64, error) {
	var (
		count int64
		err   error
	)
	if c.cfg.FilterByCondition {
		err = c.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+eventsTable+" WHERE condition_name = ?", c.cfg.Condition)
	} else {
		err = c.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+eventsTable)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count %s", eventsTable)
	}
	return count, nil
}
