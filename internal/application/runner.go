package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/events"
	applog "github.com/bnema/petit/internal/logger"
)

type EventStream interface {
	Next(ctx context.Context) (events.Event, bool)
	Close()
}

// KeyMap resolves a key to an action. Unmapped keys report false.
type KeyMap func(events.Key) (Action, bool)

type Screen interface {
	Draw(Snapshot) error
}

// Runner is the control loop: draw, wait for the next event, apply it.
type Runner struct {
	session *TimelineSession
	source  EventStream
	keys    KeyMap
	screen  Screen
	logger  *slog.Logger
	status  string
}

func NewRunner(session *TimelineSession, source EventStream, keys KeyMap, screen Screen, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = applog.Discard()
	}

	return &Runner{
		session: session,
		source:  source,
		keys:    keys,
		screen:  screen,
		logger:  logger,
	}
}

// Run returns nil on quit or when the event stream ends, and an error only
// when the screen cannot be drawn.
func (r *Runner) Run(ctx context.Context) error {
	defer r.source.Close()

	for {
		snapshot := r.session.Snapshot()
		snapshot.Status = r.status
		if err := r.screen.Draw(snapshot); err != nil {
			return fmt.Errorf("draw timeline: %w", err)
		}

		event, ok := r.source.Next(ctx)
		if !ok {
			r.logger.DebugContext(ctx, "event stream closed")
			return nil
		}

		r.dispatch(ctx, event)
		if r.session.Done() {
			return nil
		}
	}
}

func (r *Runner) dispatch(ctx context.Context, event events.Event) {
	switch event.Type {
	case events.EventTick:
		ctx = applog.Ctx(ctx, slog.String("op", "tick"))
		r.report(ctx, r.session.Tick(ctx))
	case events.EventInput:
		action, ok := r.keys(event.Key)
		if !ok {
			return
		}
		r.status = ""
		ctx = applog.Ctx(ctx, slog.String("op", action.String()), slog.String("key", string(event.Key)))
		r.report(ctx, r.session.Handle(ctx, action))
	}
}

func (r *Runner) report(ctx context.Context, err error) {
	if err == nil {
		return
	}

	r.status = err.Error()
	if errors.Is(err, domain.ErrNoSelection) {
		r.logger.DebugContext(ctx, "action skipped", "error", err)
		return
	}
	r.logger.WarnContext(ctx, "operation failed", "error", err)
}

// Status returns the message shown for the last failed operation.
func (r *Runner) Status() string {
	return r.status
}
