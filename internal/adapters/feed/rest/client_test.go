package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/petit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Options{
		BaseURL:     server.URL + "/api",
		Credentials: domain.Credentials{AccessToken: "tok-123"},
		HTTPClient:  server.Client(),
		RetryBase:   time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestClientFetchSinceSendsCursorAndDecodesPosts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/timeline", r.URL.Path)
		assert.Equal(t, "200", r.URL.Query().Get("count"))
		assert.Equal(t, "41", r.URL.Query().Get("since_id"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		_, _ = io.WriteString(w, `{"posts":[
			{"id":"43","author":{"name":"Bob","handle":"bob"},"created_at":"2026-10-19T12:00:00Z",
			 "reshared_from":{"id":"40","author":{"name":"Ada","handle":"ada"},"text":"origin","like_count":9,"reshare_count":2}},
			{"id":"42","author":{"name":"Cy <b>bold</b>","handle":"cy"},"text":"<p>fish &amp; chips</p><script>x()</script>","like_count":1},
			{"author":{"name":"nobody"}}
		]}`)
	})

	cursor := domain.PostID("41")
	posts, err := client.FetchSince(context.Background(), &cursor, 200)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	reshare := posts[0]
	assert.Equal(t, domain.PostID("43"), reshare.ID)
	require.True(t, reshare.IsReshare())
	assert.Equal(t, "Ada", reshare.Original().Author.Name)
	assert.Equal(t, "origin", reshare.Text)
	assert.Equal(t, uint64(9), reshare.LikeCount)
	assert.Equal(t, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC), reshare.CreatedAt)

	plain := posts[1]
	assert.Equal(t, "fish & chips", plain.Text)
	assert.Equal(t, "Cy bold", plain.Author.Name)
	assert.False(t, plain.IsReshare())
}

func TestClientFetchSinceWithoutCursorOmitsSinceID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasCursor := r.URL.Query()["since_id"]
		assert.False(t, hasCursor)
		assert.Equal(t, "60", r.URL.Query().Get("count"))
		_, _ = io.WriteString(w, `{"posts":[]}`)
	})

	posts, err := client.FetchSince(context.Background(), nil, 60)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestClientFetchSinceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"error":"over capacity"}`)
			return
		}
		_, _ = io.WriteString(w, `{"posts":[{"id":"1","text":"hi"}]}`)
	})

	posts, err := client.FetchSince(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientFetchSinceGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchSince(context.Background(), nil, 10)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Equal(t, int32(defaultMaxRetries+1), calls.Load())
}

func TestClientUnauthorizedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FetchSince(context.Background(), nil, 10)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"bad count"}`)
	})

	_, err := client.FetchSince(context.Background(), nil, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400: bad count")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientLikeAndReshare(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.Like(context.Background(), "42"))
	require.NoError(t, client.Reshare(context.Background(), "42"))

	assert.Equal(t, []string{"/api/posts/42/like", "/api/posts/42/reshare"}, paths)
}

func TestClientLikeFailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.Like(context.Background(), "42")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "like post: status 500")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientPublish(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body publishRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello world", body.Text)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"77","author":{"name":"Me","handle":"me"},"text":"hello world"}`)
	})

	created, err := client.Publish(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, domain.PostID("77"), created.ID)
	assert.Equal(t, "hello world", created.Text)
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr string
		is      error
	}{
		{name: "missing base url", opts: Options{Credentials: domain.Credentials{AccessToken: "t"}}, wantErr: "api base url is required"},
		{name: "bad scheme", opts: Options{BaseURL: "ftp://feed.example", Credentials: domain.Credentials{AccessToken: "t"}}, wantErr: "http or https"},
		{name: "missing host", opts: Options{BaseURL: "https://", Credentials: domain.Credentials{AccessToken: "t"}}, wantErr: "host is required"},
		{name: "missing token", opts: Options{BaseURL: "https://feed.example"}, is: domain.ErrNotLoggedIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(context.Background(), tt.opts)
			require.Error(t, err)
			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
				return
			}
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClientSearchSendsQueryAndDecodesPosts(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "go & tea", r.URL.Query().Get("q"))
		assert.Equal(t, "50", r.URL.Query().Get("count"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"posts":[{"id":"8","author":{"name":"Ada","handle":"ada"},"text":"<i>go</i> &amp; tea"},{"id":"","text":"dropped"}]}`)
	})

	posts, err := client.Search(context.Background(), "go & tea", 50)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, domain.PostID("8"), posts[0].ID)
	assert.Equal(t, "go & tea", posts[0].Text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientSearchRejectsBlankQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})

	_, err := client.Search(context.Background(), "  ", 10)
	require.ErrorIs(t, err, errEmptyQuery)
}

func TestClientSearchUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Search(context.Background(), "go", 10)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "search posts")
}
