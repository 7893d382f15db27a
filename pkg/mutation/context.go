package mutation

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/the-dev-tools/dev-tools/packages/docserver/pkg/sqlc/gen"
)

var ErrNoTransaction = errors.New("mutation: Begin was not called")

// Context manages a mutation transaction and the events it produces.
// Events are published only after a successful commit, so subscribers never
// observe a change that was rolled back.
type Context struct {
	db        *sql.DB
	tx        *sql.Tx
	q         *gen.Queries
	events    []Event
	publisher Publisher
	logger    *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithPublisher sets the publisher for auto-publishing events after commit.
func WithPublisher(p Publisher) Option {
	return func(c *Context) {
		c.publisher = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// New creates a new mutation context.
func New(db *sql.DB, opts ...Option) *Context {
	c := &Context{
		db:     db,
		events: make([]Event, 0, 4),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin starts a new transaction.
func (c *Context) Begin(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	c.tx = tx
	c.q = gen.New(tx)
	c.events = c.events[:0]
	return nil
}

// Rollback aborts the transaction and forgets tracked events. It is safe to
// defer right after Begin.
func (c *Context) Rollback() {
	if c.tx != nil {
		if err := c.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			c.logger.Error("mutation rollback failed", "error", err)
		}
		c.tx = nil
		c.q = nil
	}
	c.events = c.events[:0]
}

// Commit commits the transaction and, if a publisher is configured,
// publishes the tracked events.
func (c *Context) Commit(ctx context.Context) error {
	if c.tx == nil {
		return ErrNoTransaction
	}
	if err := c.tx.Commit(); err != nil {
		return err
	}
	c.tx = nil
	c.q = nil

	if c.publisher != nil && len(c.events) > 0 {
		c.publisher.PublishAll(c.events)
	}
	return nil
}

// Queries returns the sqlc queries bound to the transaction.
func (c *Context) Queries() *gen.Queries {
	return c.q
}

// TX returns the underlying transaction.
func (c *Context) TX() *sql.Tx {
	return c.tx
}

// Events returns all collected events.
func (c *Context) Events() []Event {
	return c.events
}

// Track adds an event to the collection.
func (c *Context) Track(evt Event) {
	c.events = append(c.events, evt)
}
