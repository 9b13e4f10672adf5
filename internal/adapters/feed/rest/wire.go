package rest

import (
	"html"
	"time"

	"github.com/bnema/petit/internal/domain"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

type timelineResponse struct {
	Posts []wirePost `json:"posts"`
}

type wireAuthor struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

type wirePost struct {
	ID           string     `json:"id"`
	Author       wireAuthor `json:"author"`
	Text         string     `json:"text"`
	LikeCount    uint64     `json:"like_count"`
	ReshareCount uint64     `json:"reshare_count"`
	CreatedAt    string     `json:"created_at,omitempty"`
	ResharedFrom *wirePost  `json:"reshared_from,omitempty"`
}

type publishRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (p wirePost) toDomain() domain.Post {
	author := domain.Author{Name: cleanText(p.Author.Name), Handle: p.Author.Handle}
	createdAt := parseTime(p.CreatedAt)

	if p.ResharedFrom != nil {
		reshare := domain.NewReshare(domain.PostID(p.ID), author, p.ResharedFrom.toDomain())
		reshare.CreatedAt = createdAt
		return reshare
	}

	return domain.Post{
		ID:           domain.PostID(p.ID),
		Author:       author,
		Text:         cleanText(p.Text),
		LikeCount:    p.LikeCount,
		ReshareCount: p.ReshareCount,
		CreatedAt:    createdAt,
	}
}

// cleanText strips markup and decodes entities so text is safe to draw.
func cleanText(s string) string {
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}
