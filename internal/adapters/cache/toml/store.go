package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	cachePathKey    = "cache.path"
	cacheFileMode   = 0o600
	cacheDirMode    = 0o700
	cacheDir        = ".cache/petit"
	cacheFile       = "timeline.toml"
	tempFilePattern = ".timeline-*.toml.tmp"
)

// Store keeps the feed cache as a single TOML document. Invalid UTF-8 in
// post fields is replaced with U+FFFD on save.
type Store struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.FeedCacheStore = (*Store)(nil)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(cachePathKey, filepath.Join(homeDir, cacheDir, cacheFile))

	path := cfg.GetString(cachePathKey)
	if path == "" {
		return nil, errors.New("cache path is empty")
	}
	path, err = normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Store{path: path, mu: lockForPath(path)}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load(ctx context.Context) (domain.FeedCache, error) {
	if err := ctx.Err(); err != nil {
		return domain.FeedCache{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.FeedCache{}, fmt.Errorf("read cache file: %w: %w", domain.ErrCacheMiss, err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.FeedCache{}, fmt.Errorf("decode cache file: %w: %w", domain.ErrCacheMiss, err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.FeedCache{}, fmt.Errorf("%w: %w", domain.ErrCacheMiss, err)
	}

	cache, err := fromSchema(file)
	if err != nil {
		return domain.FeedCache{}, fmt.Errorf("%w: %w", domain.ErrCacheMiss, err)
	}

	return cache, nil
}

func (s *Store) Save(ctx context.Context, cache domain.FeedCache) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := toSchema(cache)
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(s.path), cacheDirMode); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}

	if err := tempFile.Chmod(cacheFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp cache file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	cleanup = false

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve cache path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(cache domain.FeedCache) fileSchema {
	file := fileSchema{
		RefreshTick: cache.RefreshTick,
		Posts:       make([]postSchema, 0, len(cache.Posts)),
	}
	if cache.LastFetchedAt != nil {
		file.LastFetchedAt = formatTime(*cache.LastFetchedAt)
	}
	for _, post := range cache.Posts {
		file.Posts = append(file.Posts, toPostSchema(post))
	}

	return file
}

func fromSchema(file fileSchema) (domain.FeedCache, error) {
	cache := domain.FeedCache{RefreshTick: file.RefreshTick}
	if file.LastFetchedAt != "" {
		if fetchedAt := parseTime(file.LastFetchedAt); !fetchedAt.IsZero() {
			cache.LastFetchedAt = &fetchedAt
		}
	}
	if len(file.Posts) > 0 {
		cache.Posts = make([]domain.Post, 0, len(file.Posts))
		for _, entry := range file.Posts {
			post, err := fromPostSchema(entry)
			if err != nil {
				return domain.FeedCache{}, fmt.Errorf("post %s: %w", entry.ID, err)
			}
			cache.Posts = append(cache.Posts, post)
		}
	}

	return cache, nil
}

func toPostSchema(post domain.Post) postSchema {
	entry := postSchema{
		ID:           validText(string(post.ID)),
		AuthorName:   validText(post.Author.Name),
		AuthorHandle: validText(post.Author.Handle),
		Text:         validText(post.Text),
		LikeCount:    formatCount(post.LikeCount),
		ReshareCount: formatCount(post.ReshareCount),
		CreatedAt:    formatTime(post.CreatedAt),
	}
	if post.ResharedFrom != nil {
		inner := toPostSchema(*post.ResharedFrom)
		inner.ResharedFrom = nil
		entry.ResharedFrom = &inner
	}

	return entry
}

func fromPostSchema(entry postSchema) (domain.Post, error) {
	likes, err := parseCount("like_count", entry.LikeCount)
	if err != nil {
		return domain.Post{}, err
	}
	reshares, err := parseCount("reshare_count", entry.ReshareCount)
	if err != nil {
		return domain.Post{}, err
	}

	post := domain.Post{
		ID:           domain.PostID(entry.ID),
		Author:       domain.Author{Name: entry.AuthorName, Handle: entry.AuthorHandle},
		Text:         entry.Text,
		LikeCount:    likes,
		ReshareCount: reshares,
		CreatedAt:    parseTime(entry.CreatedAt),
	}
	if entry.ResharedFrom != nil {
		inner, err := fromPostSchema(*entry.ResharedFrom)
		if err != nil {
			return domain.Post{}, fmt.Errorf("reshared post: %w", err)
		}
		inner.ResharedFrom = nil
		post.ResharedFrom = &inner
	}

	return post, nil
}

func validText(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
