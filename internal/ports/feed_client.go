package ports

import (
	"context"

	"github.com/bnema/petit/internal/domain"
)

// FeedClient is the authenticated, network-backed feed capability.
type FeedClient interface {
	// FetchSince returns posts strictly newer than cursor, newest first.
	// A nil cursor requests the latest page.
	FetchSince(ctx context.Context, cursor *domain.PostID, limit uint32) ([]domain.Post, error)
	Like(ctx context.Context, id domain.PostID) error
	Reshare(ctx context.Context, id domain.PostID) error
}

type Publisher interface {
	Publish(ctx context.Context, text string) (domain.Post, error)
}

type Searcher interface {
	Search(ctx context.Context, query string, limit uint32) ([]domain.Post, error)
}
