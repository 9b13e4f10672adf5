package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/bnema/petit/internal/domain"
	applog "github.com/bnema/petit/internal/logger"
	"github.com/bnema/petit/internal/ports"
)

const (
	DefaultRefreshPeriod = 60
	DefaultFetchLimit    = 200
	DefaultCallTimeout   = 15 * time.Second
)

type SessionConfig struct {
	// RefreshPeriod is the number of ticks between incremental fetches.
	RefreshPeriod   int
	FreshnessWindow time.Duration
	FetchLimit      uint32
	CallTimeout     time.Duration
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.RefreshPeriod <= 0 {
		c.RefreshPeriod = DefaultRefreshPeriod
	}
	if c.FreshnessWindow <= 0 {
		c.FreshnessWindow = domain.DefaultFreshnessWindow
	}
	if c.FetchLimit == 0 {
		c.FetchLimit = DefaultFetchLimit
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultCallTimeout
	}
	return c
}

// Snapshot is a read-only projection of the session used for drawing.
type Snapshot struct {
	Posts         []domain.Post
	Selection     int
	HasSelection  bool
	TickCount     int
	RefreshPeriod int
	Status        string
}

// TimelineSession owns the in-memory timeline. It is driven by a single
// goroutine and holds no locks.
type TimelineSession struct {
	client ports.FeedClient
	store  ports.FeedCacheStore
	clock  ports.Clock
	logger *slog.Logger
	cfg    SessionConfig

	posts        []domain.Post
	selection    int
	hasSelection bool
	cleared      bool
	tickCount    int
	cache        domain.FeedCache
	done         bool
}

func NewTimelineSession(client ports.FeedClient, store ports.FeedCacheStore, clock ports.Clock, logger *slog.Logger, cfg SessionConfig) *TimelineSession {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = applog.Discard()
	}

	return &TimelineSession{
		client: client,
		store:  store,
		clock:  clock,
		logger: logger,
		cfg:    cfg.withDefaults(),
	}
}

// Start seeds the session from a fresh cache, or performs a full fetch when
// the cache is missing or stale. Only a failed fetch is returned.
func (s *TimelineSession) Start(ctx context.Context) error {
	cache, err := s.store.Load(ctx)
	switch {
	case err != nil:
		level := slog.LevelWarn
		if errors.Is(err, domain.ErrCacheMiss) {
			level = slog.LevelDebug
		}
		s.logger.Log(ctx, level, "feed cache unavailable", "error", err)
	case cache.IsFresh(s.clock.Now(), s.cfg.FreshnessWindow):
		s.cache = cache
		s.posts = slices.Clone(cache.Posts)
		s.tickCount = min(max(cache.RefreshTick, 0), s.cfg.RefreshPeriod-1)
		s.clampSelection()
		s.logger.DebugContext(ctx, "timeline seeded from cache", "posts", len(s.posts), "tick", s.tickCount)
		return nil
	}

	posts, err := s.fetch(ctx, nil)
	if err != nil {
		return fmt.Errorf("fetch timeline: %w", err)
	}

	s.posts = posts
	s.tickCount = 0
	s.clampSelection()
	if err := s.persist(ctx); err != nil {
		s.logger.WarnContext(ctx, "save feed cache failed", "error", err)
	}

	return nil
}

// Tick advances the refresh counter and fetches newer posts on the period
// boundary. A failed fetch leaves the counter on the boundary so the next
// tick retries.
func (s *TimelineSession) Tick(ctx context.Context) error {
	if s.tickCount+1 < s.cfg.RefreshPeriod {
		s.tickCount++
		return nil
	}

	return s.refresh(ctx)
}

func (s *TimelineSession) Handle(ctx context.Context, action Action) error {
	switch action {
	case ActionSelectNext:
		if len(s.posts) > 0 {
			s.selectIndex(min(s.currentOrZero()+1, len(s.posts)-1))
		}
		return nil
	case ActionSelectPrev:
		if len(s.posts) > 0 {
			s.selectIndex(max(s.currentOrZero()-1, 0))
		}
		return nil
	case ActionClearSelection:
		s.hasSelection = false
		s.cleared = true
		return nil
	case ActionLike:
		return s.acknowledged(ctx, "like", s.client.Like, func(p domain.Post) domain.Post {
			return p.WithLikeCount(p.LikeCount + 1)
		})
	case ActionReshare:
		return s.acknowledged(ctx, "reshare", s.client.Reshare, func(p domain.Post) domain.Post {
			return p.WithReshareCount(p.ReshareCount + 1)
		})
	case ActionQuit:
		s.done = true
		s.cache = domain.FeedCache{
			LastFetchedAt: s.cache.LastFetchedAt,
			Posts:         slices.Clone(s.posts),
			RefreshTick:   s.tickCount,
		}
		if err := s.store.Save(ctx, s.cache); err != nil {
			return fmt.Errorf("flush feed cache: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAction, action)
	}
}

func (s *TimelineSession) Posts() []domain.Post {
	return slices.Clone(s.posts)
}

func (s *TimelineSession) Selection() (int, bool) {
	return s.selection, s.hasSelection
}

func (s *TimelineSession) TickCount() int {
	return s.tickCount
}

func (s *TimelineSession) RefreshPeriod() int {
	return s.cfg.RefreshPeriod
}

func (s *TimelineSession) Done() bool {
	return s.done
}

func (s *TimelineSession) Snapshot() Snapshot {
	return Snapshot{
		Posts:         s.Posts(),
		Selection:     s.selection,
		HasSelection:  s.hasSelection,
		TickCount:     s.tickCount,
		RefreshPeriod: s.cfg.RefreshPeriod,
	}
}

func (s *TimelineSession) refresh(ctx context.Context) error {
	var cursor *domain.PostID
	if len(s.posts) > 0 {
		newest := s.posts[0].ID
		cursor = &newest
	}

	batch, err := s.fetch(ctx, cursor)
	if err != nil {
		return fmt.Errorf("refresh timeline: %w", err)
	}

	fresh := s.unseen(batch, cursor)
	if len(fresh) > 0 {
		s.posts = append(fresh, s.posts...)
		if s.hasSelection {
			s.selection += len(fresh)
		}
		s.clampSelection()
	}
	s.tickCount = 0
	s.logger.DebugContext(ctx, "timeline refreshed", "new_posts", len(fresh), "posts", len(s.posts))

	if err := s.persist(ctx); err != nil {
		return fmt.Errorf("save feed cache: %w", err)
	}

	return nil
}

// unseen keeps posts strictly newer than cursor that are not already listed.
func (s *TimelineSession) unseen(batch []domain.Post, cursor *domain.PostID) []domain.Post {
	known := make(map[domain.PostID]struct{}, len(s.posts)+len(batch))
	for _, post := range s.posts {
		known[post.ID] = struct{}{}
	}

	fresh := make([]domain.Post, 0, len(batch))
	for _, post := range batch {
		if cursor != nil && !post.ID.NewerThan(*cursor) {
			continue
		}
		if _, ok := known[post.ID]; ok {
			continue
		}
		known[post.ID] = struct{}{}
		fresh = append(fresh, post)
	}

	return fresh
}

func (s *TimelineSession) fetch(ctx context.Context, cursor *domain.PostID) ([]domain.Post, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	return s.client.FetchSince(callCtx, cursor, s.cfg.FetchLimit)
}

func (s *TimelineSession) persist(ctx context.Context) error {
	s.cache = domain.FeedCache{
		Posts:       slices.Clone(s.posts),
		RefreshTick: s.tickCount,
	}.Touch(s.clock.Now())

	return s.store.Save(ctx, s.cache)
}

func (s *TimelineSession) acknowledged(ctx context.Context, verb string, call func(context.Context, domain.PostID) error, bump func(domain.Post) domain.Post) error {
	index, ok := s.Selection()
	if !ok {
		return domain.ErrNoSelection
	}
	post := s.posts[index]

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	if err := call(callCtx, post.ID); err != nil {
		return fmt.Errorf("%s post %s: %w", verb, post.ID, err)
	}

	s.posts[index] = bump(post)
	return nil
}

func (s *TimelineSession) currentOrZero() int {
	if s.hasSelection {
		return s.selection
	}
	return 0
}

func (s *TimelineSession) selectIndex(index int) {
	s.selection = index
	s.hasSelection = true
	s.cleared = false
}

// clampSelection restores the selection invariant after posts change.
func (s *TimelineSession) clampSelection() {
	switch {
	case len(s.posts) == 0:
		s.selection = 0
		s.hasSelection = false
	case s.hasSelection:
		s.selection = min(max(s.selection, 0), len(s.posts)-1)
	case !s.cleared:
		s.selectIndex(0)
	}
}
