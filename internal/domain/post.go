package domain

import (
	"strings"
	"time"
)

type PostID string

// Compare orders ids by recency: -1 when id is older than other, 1 when newer.
// Numeric ids compare by magnitude; anything else falls back to lexical order.
func (id PostID) Compare(other PostID) int {
	a := strings.TrimLeft(string(id), "0")
	b := strings.TrimLeft(string(other), "0")

	if isDigits(a) && isDigits(b) && len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}

	return strings.Compare(a, b)
}

func (id PostID) NewerThan(other PostID) bool {
	return id.Compare(other) > 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type Author struct {
	Name   string
	Handle string
}

type Post struct {
	ID           PostID
	Author       Author
	Text         string
	LikeCount    uint64
	ReshareCount uint64
	CreatedAt    time.Time
	// ResharedFrom is set when this post is a reshare. It never wraps another reshare.
	ResharedFrom *Post
}

// NewReshare builds a reshare of original by author, flattening nested reshares
// so the result is at most one level deep.
func NewReshare(id PostID, author Author, original Post) Post {
	for original.ResharedFrom != nil {
		original = *original.ResharedFrom
	}

	inner := original
	return Post{
		ID:           id,
		Author:       author,
		Text:         original.Text,
		LikeCount:    original.LikeCount,
		ReshareCount: original.ReshareCount,
		ResharedFrom: &inner,
	}
}

func (p Post) IsReshare() bool {
	return p.ResharedFrom != nil
}

// Original returns the post whose content is displayed: the reshared post for a
// reshare, the post itself otherwise.
func (p Post) Original() Post {
	if p.ResharedFrom != nil {
		return *p.ResharedFrom
	}
	return p
}

func (p Post) WithLikeCount(n uint64) Post {
	p.LikeCount = n
	return p
}

func (p Post) WithReshareCount(n uint64) Post {
	p.ReshareCount = n
	return p
}
