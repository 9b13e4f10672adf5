package domain

import "time"

const DefaultFreshnessWindow = time.Minute

// FeedCache is the durable copy of the last successful fetch.
type FeedCache struct {
	LastFetchedAt *time.Time
	Posts         []Post
	RefreshTick   int
}

// IsFresh reports whether the cache was fetched less than window ago.
func (c FeedCache) IsFresh(now time.Time, window time.Duration) bool {
	if c.LastFetchedAt == nil {
		return false
	}

	return now.Sub(*c.LastFetchedAt) < window
}

// Touch returns a copy of the cache stamped with fetchedAt.
func (c FeedCache) Touch(fetchedAt time.Time) FeedCache {
	c.LastFetchedAt = &fetchedAt
	return c
}
