package ports

import (
	"context"

	"github.com/bnema/petit/internal/domain"
)

type FeedCacheStore interface {
	// Load returns an error wrapping domain.ErrCacheMiss when no usable cache exists.
	Load(ctx context.Context) (domain.FeedCache, error)
	Save(ctx context.Context, cache domain.FeedCache) error
}
