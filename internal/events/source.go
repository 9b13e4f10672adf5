package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/petit/internal/logger"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTickInterval = time.Second
	DefaultCapacity     = 2
)

type Options struct {
	TickInterval time.Duration
	Capacity     int
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	if o.Capacity <= 0 {
		o.Capacity = DefaultCapacity
	}
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
	return o
}

// Source merges keyboard input and a periodic tick into one bounded stream.
// Producers block when the stream is full; nothing is dropped before Close.
type Source struct {
	events    chan Event
	done      chan struct{}
	cancel    context.CancelFunc
	closeOnce sync.Once
	logger    *slog.Logger
}

// NewSource starts the producers. A nil reader starts the tick producer only.
func NewSource(ctx context.Context, reader KeyReader, opts Options) *Source {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(ctx)

	s := &Source{
		events: make(chan Event, opts.Capacity),
		done:   make(chan struct{}),
		cancel: cancel,
		logger: opts.Logger,
	}

	g, gctx := errgroup.WithContext(ctx)
	if reader != nil {
		g.Go(func() error {
			s.forwardInput(gctx, reader)
			return nil
		})
	}
	g.Go(func() error {
		s.forwardTicks(gctx, opts.TickInterval)
		return nil
	})

	go func() {
		_ = g.Wait()
		close(s.events)
	}()

	return s
}

// Next blocks until an event is available. It returns false once the source is
// closed, when every producer has exited and the stream is drained, or when ctx ends.
func (s *Source) Next(ctx context.Context) (Event, bool) {
	if s.closed() {
		return Event{}, false
	}

	select {
	case ev, ok := <-s.events:
		if !ok || s.closed() {
			return Event{}, false
		}
		return ev, true
	case <-s.done:
		return Event{}, false
	case <-ctx.Done():
		return Event{}, false
	}
}

// Close stops both producers. A producer stuck in a blocking read is abandoned.
func (s *Source) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.done)
	})
}

func (s *Source) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func (s *Source) forwardInput(ctx context.Context, reader KeyReader) {
	for ctx.Err() == nil {
		key, err := reader.ReadKey()
		if errors.Is(err, ErrUndecodable) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Warn("input producer stopped", "error", err)
			}
			return
		}
		if !s.send(ctx, Input(key)) {
			return
		}
	}
}

func (s *Source) forwardTicks(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.send(ctx, Tick()) {
				return
			}
		}
	}
}

func (s *Source) send(ctx context.Context, ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
