package throughput_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/feral-file/ff-tweet-indexer/internal/mocks"
	"github.com/feral-file/ff-tweet-indexer/internal/throughput"
)

func TestReporter_Observe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	gomock.InOrder(
		clock.EXPECT().Now().Return(start),                     // NewReporter
		clock.EXPECT().Now().Return(start.Add(5*time.Second)),  // still inside the window
		clock.EXPECT().Now().Return(start.Add(10*time.Second)), // exactly the interval, still inside
		clock.EXPECT().Now().Return(start.Add(20*time.Second)), // emits
		clock.EXPECT().Now().Return(start.Add(25*time.Second)), // new window, inside
		clock.EXPECT().Now().Return(start.Add(40*time.Second)), // emits again
	)

	core, logs := observer.New(zapcore.InfoLevel)
	r := throughput.NewReporter("consumer", 10*time.Second, clock, zap.New(core), "accepted", "duplicate").
		WithQueueDepth(func() int { return 7 })

	r.Add("accepted", 30)
	r.Inc("duplicate")
	r.Inc("unknown")

	assert.Nil(t, r.Observe())
	assert.Nil(t, r.Observe())

	snapshot := r.Observe()
	require.NotNil(t, snapshot)
	assert.Equal(t, 20*time.Second, snapshot.Elapsed)
	assert.Equal(t, int64(30), snapshot.Counts["accepted"])
	assert.InDelta(t, 1.5, snapshot.Rates["accepted"], 1e-9)
	assert.InDelta(t, 0.05, snapshot.Rates["duplicate"], 1e-9)
	assert.Equal(t, 7, snapshot.QueueDepth)
	_, tracked := snapshot.Counts["unknown"]
	assert.False(t, tracked)

	r.Add("accepted", 10)
	assert.Nil(t, r.Observe())

	snapshot = r.Observe()
	require.NotNil(t, snapshot)
	assert.Equal(t, 20*time.Second, snapshot.Elapsed)
	assert.Equal(t, int64(10), snapshot.Counts["accepted"])
	assert.Equal(t, int64(0), snapshot.Counts["duplicate"])

	entries := logs.FilterMessage("Throughput").All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "consumer", fields["component"])
	assert.InDelta(t, 1.5, fields["rate_accepted"], 1e-9)
	assert.InDelta(t, 20.0, fields["elapsed_seconds"], 1e-9)
	assert.Equal(t, int64(7), fields["queue_depth"])
}

func TestReporter_NoQueueDepth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(start)
	clock.EXPECT().Now().Return(start.Add(2 * time.Second))

	core, logs := observer.New(zapcore.InfoLevel)
	r := throughput.NewReporter("producer", time.Second, clock, zap.New(core), "total")
	r.Inc("total")

	snapshot := r.Observe()
	require.NotNil(t, snapshot)
	assert.InDelta(t, 0.5, snapshot.Rates["total"], 1e-9)

	entries := logs.All()
	require.Len(t, entries, 1)
	_, ok := entries[0].ContextMap()["queue_depth"]
	assert.False(t, ok)
}
