package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestHandler(t *testing.T) {
	FeedReconnects.Inc()
	QueueDepth.Set(3)
	Consumed.WithLabelValues(ResultDuplicate).Inc()
	Statuses.WithLabelValues(StatusFiltered).Inc()
	ObservePersistDuration(time.Now())

	body := scrape(t)
	assert.Contains(t, body, "tweet_indexer_feed_reconnects_total")
	assert.Contains(t, body, "tweet_indexer_queue_depth 3")
	assert.Contains(t, body, `tweet_indexer_consumed_total{result="duplicate"}`)
	assert.Contains(t, body, `tweet_indexer_statuses_total{result="filtered"}`)
	assert.Contains(t, body, "tweet_indexer_persist_duration_seconds_count")
}
