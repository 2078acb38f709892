package status

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-tweet-indexer/internal/consumer"
	"github.com/feral-file/ff-tweet-indexer/internal/producer"
)

// ProducerStatus exposes the producer's state and counts
type ProducerStatus interface {
	State() producer.State
	Counts() producer.Counts
}

// ConsumerStatus exposes the consumer pool's outcome counts
type ConsumerStatus interface {
	Totals() consumer.TotalsSnapshot
}

// QueueStatus exposes the queue fill level
type QueueStatus interface {
	Len() int
	Cap() int
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	Status   string `json:"status"`
	Producer string `json:"producer"`
}

// StatsResponse is the body of GET /stats
type StatsResponse struct {
	Producer  ProducerStats           `json:"producer"`
	Queue     QueueStats              `json:"queue"`
	Consumers consumer.TotalsSnapshot `json:"consumers"`
}

// ProducerStats is the producer section of StatsResponse
type ProducerStats struct {
	State string `json:"state"`
	producer.Counts
}

// QueueStats is the queue section of StatsResponse
type QueueStats struct {
	Depth    int `json:"depth"`
	Capacity int `json:"capacity"`
}

type handler struct {
	producer  ProducerStatus
	consumers ConsumerStatus
	queue     QueueStatus
}

// Healthz reports unhealthy once the producer has stopped for good
func (h *handler) Healthz(c *gin.Context) {
	state := h.producer.State()
	if state == producer.StateDisconnected {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "stopped", Producer: state.String()})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Producer: state.String()})
}

// Stats returns the pipeline counters
func (h *handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, StatsResponse{
		Producer: ProducerStats{
			State:  h.producer.State().String(),
			Counts: h.producer.Counts(),
		},
		Queue: QueueStats{
			Depth:    h.queue.Len(),
			Capacity: h.queue.Cap(),
		},
		Consumers: h.consumers.Totals(),
	})
}
