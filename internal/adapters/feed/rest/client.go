package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/petit/internal/domain"
	"github.com/bnema/petit/internal/ports"
	"github.com/sethvargo/go-retry"
	"golang.org/x/oauth2"
)

const (
	maxResponseBytes      = 1 << 20
	defaultRequestTimeout = 30 * time.Second
	defaultMaxRetries     = 2
	defaultRetryBase      = 200 * time.Millisecond
)

type Options struct {
	BaseURL        string
	Credentials    domain.Credentials
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	MaxRetries     uint64
	RetryBase      time.Duration
}

// Client talks to the feed JSON API with a bearer token.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	maxRetries uint64
	retryBase  time.Duration
}

var (
	_ ports.FeedClient = (*Client)(nil)
	_ ports.Publisher  = (*Client)(nil)
	_ ports.Searcher   = (*Client)(nil)
)

var errEmptyQuery = errors.New("search query is empty")

// StatusError is returned for non-2xx responses other than 401 and 403.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.Code)
	}
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if opts.Credentials.AccessToken == "" {
		return nil, domain.ErrNotLoggedIn
	}

	baseClient := opts.HTTPClient
	if baseClient == nil {
		baseClient = http.DefaultClient
	}
	tokenType := opts.Credentials.TokenType
	if tokenType == "" {
		tokenType = domain.DefaultTokenType
	}
	source := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: opts.Credentials.AccessToken,
		TokenType:   tokenType,
	})

	httpClient := oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, baseClient), source)
	httpClient.Timeout = opts.RequestTimeout
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultRequestTimeout
	}

	maxRetries := opts.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	retryBase := opts.RetryBase
	if retryBase <= 0 {
		retryBase = defaultRetryBase
	}

	return &Client{
		base:       base,
		httpClient: httpClient,
		maxRetries: maxRetries,
		retryBase:  retryBase,
	}, nil
}

// FetchSince is idempotent, so server and transport failures are retried
// with exponential backoff.
func (c *Client) FetchSince(ctx context.Context, cursor *domain.PostID, limit uint32) ([]domain.Post, error) {
	query := url.Values{}
	query.Set("count", strconv.FormatUint(uint64(limit), 10))
	if cursor != nil {
		query.Set("since_id", string(*cursor))
	}

	posts, err := c.getPosts(ctx, "timeline", query)
	if err != nil {
		return nil, fmt.Errorf("get timeline: %w", err)
	}

	return posts, nil
}

// Search returns posts matching query, newest first. It retries like FetchSince.
func (c *Client) Search(ctx context.Context, query string, limit uint32) ([]domain.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errEmptyQuery
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("count", strconv.FormatUint(uint64(limit), 10))

	posts, err := c.getPosts(ctx, "search", values)
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}

	return posts, nil
}

func (c *Client) getPosts(ctx context.Context, path string, query url.Values) ([]domain.Post, error) {
	endpoint := c.base.JoinPath(path)
	endpoint.RawQuery = query.Encode()

	var payload timelineResponse
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		payload = timelineResponse{}
		err := c.do(ctx, http.MethodGet, endpoint.String(), nil, &payload)
		if retryable(ctx, err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	posts := make([]domain.Post, 0, len(payload.Posts))
	for _, entry := range payload.Posts {
		if entry.ID == "" {
			continue
		}
		posts = append(posts, entry.toDomain())
	}

	return posts, nil
}

func (c *Client) Like(ctx context.Context, id domain.PostID) error {
	endpoint := c.base.JoinPath("posts", string(id), "like")
	if err := c.do(ctx, http.MethodPost, endpoint.String(), nil, nil); err != nil {
		return fmt.Errorf("like post: %w", err)
	}

	return nil
}

func (c *Client) Reshare(ctx context.Context, id domain.PostID) error {
	endpoint := c.base.JoinPath("posts", string(id), "reshare")
	if err := c.do(ctx, http.MethodPost, endpoint.String(), nil, nil); err != nil {
		return fmt.Errorf("reshare post: %w", err)
	}

	return nil
}

func (c *Client) Publish(ctx context.Context, text string) (domain.Post, error) {
	if text == "" {
		return domain.Post{}, errors.New("post text is empty")
	}

	var created wirePost
	endpoint := c.base.JoinPath("posts")
	if err := c.do(ctx, http.MethodPost, endpoint.String(), publishRequest{Text: text}, &created); err != nil {
		return domain.Post{}, fmt.Errorf("publish post: %w", err)
	}

	return created.toDomain(), nil
}

func (c *Client) do(ctx context.Context, method string, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", domain.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return decodeStatusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func retryable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError || statusErr.Code == http.StatusTooManyRequests
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func decodeStatusError(resp *http.Response) error {
	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return &StatusError{Code: resp.StatusCode}
	}

	message := payload.Error
	if message == "" {
		message = payload.Message
	}
	return &StatusError{Code: resp.StatusCode, Message: message}
}

func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, errors.New("api base url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	return parsed, nil
}
