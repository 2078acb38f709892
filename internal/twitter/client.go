package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
)

// Client reads users and timelines from the v1.1 REST API
//
//go:generate mockgen -source=client.go -destination=../mocks/twitter_client.go -package=mocks -mock_names=Client=MockTwitterClient
type Client interface {
	// GetUser returns the profile of userID
	GetUser(ctx context.Context, userID int64) (*domain.Author, error)

	// GetUserTimeline returns up to count statuses of userID, newest first.
	// maxID bounds the page from above (inclusive); 0 starts from the newest status.
	GetUserTimeline(ctx context.Context, userID int64, maxID int64, count int) ([]*domain.Status, error)
}

// ClientConfig holds the REST client settings
type ClientConfig struct {
	APIURL            string
	BearerToken       string
	RequestsPerSecond float64
	Burst             int
}

type client struct {
	http    adapter.HTTPClient
	baseURL string
	headers http.Header
	limiter *rate.Limiter
}

// NewClient creates a REST client paced by a token bucket
func NewClient(cfg ClientConfig, httpClient adapter.HTTPClient) Client {
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+cfg.BearerToken)

	return &client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		headers: headers,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// GetUser returns the profile of userID
func (c *client) GetUser(ctx context.Context, userID int64) (*domain.Author, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(userID, 10))

	var user User
	if err := c.get(ctx, "/users/show.json", query, &user); err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return user.ToAuthor()
}

// GetUserTimeline returns one page of the user's timeline
func (c *client) GetUserTimeline(ctx context.Context, userID int64, maxID int64, count int) ([]*domain.Status, error) {
	query := url.Values{}
	query.Set("user_id", strconv.FormatInt(userID, 10))
	query.Set("tweet_mode", "extended")
	query.Set("include_rts", "true")
	if count > 0 {
		query.Set("count", strconv.Itoa(count))
	}
	if maxID > 0 {
		query.Set("max_id", strconv.FormatInt(maxID, 10))
	}

	var page []Status
	if err := c.get(ctx, "/statuses/user_timeline.json", query, &page); err != nil {
		return nil, fmt.Errorf("failed to get timeline of user %d: %w", userID, err)
	}

	statuses := make([]*domain.Status, 0, len(page))
	for i := range page {
		status, err := page[i].ToStatus()
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

func (c *client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	return c.http.GetJSON(ctx, c.baseURL+path+"?"+query.Encode(), c.headers, result)
}
