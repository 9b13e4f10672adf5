package toml

import (
	"fmt"
	"strconv"
)

// Version 2 stores counters as decimal strings; TOML integers stop at int64.
const currentSchemaVersion = 2

type fileSchema struct {
	Version       int          `toml:"version"`
	LastFetchedAt string       `toml:"last_fetched_at,omitempty"`
	RefreshTick   int          `toml:"refresh_tick"`
	Posts         []postSchema `toml:"posts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version != currentSchemaVersion {
		return fmt.Errorf("unsupported cache schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type postSchema struct {
	ID           string      `toml:"id"`
	AuthorName   string      `toml:"author_name"`
	AuthorHandle string      `toml:"author_handle"`
	Text         string      `toml:"text"`
	LikeCount    string      `toml:"like_count"`
	ReshareCount string      `toml:"reshare_count"`
	CreatedAt    string      `toml:"created_at,omitempty"`
	ResharedFrom *postSchema `toml:"reshared_from,omitempty"`
}

func formatCount(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func parseCount(field string, raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", field, err)
	}

	return n, nil
}
