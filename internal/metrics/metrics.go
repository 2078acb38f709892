// Package metrics holds the process-wide prometheus collectors of the pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Producer status outcomes
const (
	StatusAccepted = "accepted"
	StatusFiltered = "filtered"
)

// Consumer item outcomes
const (
	ResultCreated   = "created"
	ResultDuplicate = "duplicate"
	ResultDropped   = "dropped"
	ResultFailed    = "failed"
)

var (
	Statuses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweet_indexer_statuses_total",
		Help: "Statuses received from the feed by outcome",
	}, []string{"result"})
	Consumed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tweet_indexer_consumed_total",
		Help: "Queue items handled by consumers by outcome",
	}, []string{"result"})
	FeedReconnects = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweet_indexer_feed_reconnects_total",
		Help: "Feed reconnect attempts",
	})
	MediaFetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tweet_indexer_media_fetch_failures_total",
		Help: "Media items skipped because they could not be fetched or stored",
	})
	QueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "tweet_indexer_queue_depth",
		Help: "Statuses waiting in the ingestion queue",
	})
	PersistDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tweet_indexer_persist_duration_seconds",
		Help:    "Time spent persisting one status",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Statuses, Consumed, FeedReconnects, MediaFetchFailures, QueueDepth, PersistDuration)
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePersistDuration records how long one status took to persist
func ObservePersistDuration(start time.Time) {
	PersistDuration.Observe(time.Since(start).Seconds())
}
