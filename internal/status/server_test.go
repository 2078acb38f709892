package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tweet-indexer/internal/consumer"
	"github.com/feral-file/ff-tweet-indexer/internal/producer"
	"github.com/feral-file/ff-tweet-indexer/internal/queue"
)

type fakeProducer struct {
	state  producer.State
	counts producer.Counts
}

func (f *fakeProducer) State() producer.State   { return f.state }
func (f *fakeProducer) Counts() producer.Counts { return f.counts }

type fakeConsumers struct {
	totals consumer.TotalsSnapshot
}

func (f *fakeConsumers) Totals() consumer.TotalsSnapshot { return f.totals }

func serve(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		state          producer.State
		expectedStatus int
		expectedBody   HealthResponse
	}{
		{producer.StateStreaming, http.StatusOK, HealthResponse{Status: "ok", Producer: "streaming"}},
		{producer.StateConnecting, http.StatusOK, HealthResponse{Status: "ok", Producer: "connecting"}},
		{producer.StateDisconnected, http.StatusServiceUnavailable, HealthResponse{Status: "stopped", Producer: "disconnected"}},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			s := New(Config{}, &fakeProducer{state: tt.state}, &fakeConsumers{}, queue.New(1))

			rec := serve(t, s, "/healthz")
			assert.Equal(t, tt.expectedStatus, rec.Code)

			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestStats(t *testing.T) {
	s := New(Config{},
		&fakeProducer{state: producer.StateStreaming, counts: producer.Counts{Total: 10, Accepted: 7}},
		&fakeConsumers{totals: consumer.TotalsSnapshot{Created: 5, Duplicate: 1, Dropped: 0, Failed: 1}},
		queue.New(50),
	)

	rec := serve(t, s, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"producer": {"state": "streaming", "total": 10, "accepted": 7},
		"queue": {"depth": 0, "capacity": 50},
		"consumers": {"created": 5, "duplicate": 1, "dropped": 0, "failed": 1}
	}`, rec.Body.String())
}

func TestMetrics(t *testing.T) {
	s := New(Config{}, &fakeProducer{}, &fakeConsumers{}, queue.New(1))

	rec := serve(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tweet_indexer_feed_reconnects_total")
}

func TestCORS(t *testing.T) {
	s := New(Config{}, &fakeProducer{state: producer.StateStreaming}, &fakeConsumers{}, queue.New(1))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
