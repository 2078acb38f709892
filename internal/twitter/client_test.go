package twitter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		APIURL:      server.URL + "/1.1/",
		BearerToken: "token",
	}, adapter.NewHTTPClient(5*time.Second))
}

func TestClient_GetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.1/users/show.json", r.URL.Path)
		assert.Equal(t, "6253282", r.URL.Query().Get("user_id"))
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 6253282, "screen_name": "gopher", "followers_count": 7, "created_at": "Wed May 23 06:01:13 +0000 2007"}`))
	})

	author, err := c.GetUser(context.Background(), 6253282)
	require.NoError(t, err)
	assert.Equal(t, int64(6253282), author.ID)
	assert.Equal(t, "gopher", author.ScreenName)
	assert.Equal(t, 7, author.FollowersCount)
}

func TestClient_GetUserTimeline(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.1/statuses/user_timeline.json", r.URL.Path)
		query := r.URL.Query()
		assert.Equal(t, "42", query.Get("user_id"))
		assert.Equal(t, "200", query.Get("count"))
		assert.Equal(t, "99", query.Get("max_id"))
		assert.Equal(t, "extended", query.Get("tweet_mode"))

		_, _ = w.Write([]byte(`[
			{"id": 99, "full_text": "newest", "user": {"id": 42}},
			{"id": 98, "full_text": "older", "user": {"id": 42}}
		]`))
	})

	statuses, err := c.GetUserTimeline(context.Background(), 42, 99, 200)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, int64(99), statuses[0].ID)
	assert.Equal(t, "older", statuses[1].Text)
}

func TestClient_FirstPageHasNoCursor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("max_id"))
		_, _ = w.Write([]byte(`[]`))
	})

	statuses, err := c.GetUserTimeline(context.Background(), 42, 0, 200)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestClient_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"code":89,"message":"Invalid or expired token."}]}`))
	})

	_, err := c.GetUser(context.Background(), 1)
	require.Error(t, err)

	var statusErr *adapter.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}
