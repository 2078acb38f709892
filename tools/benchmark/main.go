package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/producer"
	"github.com/feral-file/ff-tweet-indexer/internal/status"
)

const (
	defaultStatusURL    = "http://localhost:8080/stats"
	defaultPollInterval = 2 * time.Second // How often the stats endpoint is sampled
	requestTimeout      = 5 * time.Second
)

type Config struct {
	StatusURL    string
	PollInterval time.Duration
	Duration     time.Duration // How long to sample (0 = until interrupted)
	OutputFile   string        // Output markdown file path (optional)
	Debug        bool
}

// Sample is one poll of the ingester's stats endpoint
type Sample struct {
	At    time.Time
	Stats status.StatsResponse
}

// BenchmarkStats aggregates the samples of one run
type BenchmarkStats struct {
	StatusURL         string
	StartTime         time.Time
	EndTime           time.Time
	First             status.StatsResponse
	Last              status.StatsResponse
	Polls             int
	DisconnectedPolls int
	QueueCapacity     int
	MaxQueueDepth     int
	queueDepthSum     int64
}

// Add folds a sample into the run
func (b *BenchmarkStats) Add(s Sample) {
	if b.Polls == 0 {
		b.StartTime = s.At
		b.First = s.Stats
	}
	b.Polls++
	b.EndTime = s.At
	b.Last = s.Stats

	if s.Stats.Producer.State == producer.StateDisconnected.String() {
		b.DisconnectedPolls++
	}
	b.QueueCapacity = s.Stats.Queue.Capacity
	if s.Stats.Queue.Depth > b.MaxQueueDepth {
		b.MaxQueueDepth = s.Stats.Queue.Depth
	}
	b.queueDepthSum += int64(s.Stats.Queue.Depth)
}

// Elapsed is the time between the first and the last sample
func (b *BenchmarkStats) Elapsed() time.Duration {
	return b.EndTime.Sub(b.StartTime)
}

// AvgQueueDepth is the mean queue depth over all samples
func (b *BenchmarkStats) AvgQueueDepth() float64 {
	if b.Polls == 0 {
		return 0
	}
	return float64(b.queueDepthSum) / float64(b.Polls)
}

// Deltas is what the ingester did between the first and the last sample
type Deltas struct {
	Received  int64
	Accepted  int64
	Created   int64
	Duplicate int64
	Dropped   int64
	Failed    int64
}

// Processed is the number of items the consumers finished
func (d Deltas) Processed() int64 {
	return d.Created + d.Duplicate + d.Dropped + d.Failed
}

// Deltas returns the counter growth over the run. Counters restart with the
// ingester, so a shrinking counter means a restart and counts from zero.
func (b *BenchmarkStats) Deltas() Deltas {
	return Deltas{
		Received:  delta(b.First.Producer.Total, b.Last.Producer.Total),
		Accepted:  delta(b.First.Producer.Accepted, b.Last.Producer.Accepted),
		Created:   delta(b.First.Consumers.Created, b.Last.Consumers.Created),
		Duplicate: delta(b.First.Consumers.Duplicate, b.Last.Consumers.Duplicate),
		Dropped:   delta(b.First.Consumers.Dropped, b.Last.Consumers.Dropped),
		Failed:    delta(b.First.Consumers.Failed, b.Last.Consumers.Failed),
	}
}

func delta(first, last int64) int64 {
	if last < first {
		return last
	}
	return last - first
}

func main() {
	cfg := parseFlags()

	if cfg.StatusURL == "" {
		fmt.Println("Error: status-url is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if cfg.Duration > 0 {
		var durationCancel context.CancelFunc
		ctx, durationCancel = context.WithTimeout(ctx, cfg.Duration)
		defer durationCancel()
	}

	client := adapter.NewHTTPClient(requestTimeout)

	fmt.Printf("Sampling %s every %s\n", cfg.StatusURL, cfg.PollInterval)
	if cfg.Duration > 0 {
		fmt.Printf("Duration: %s\n", formatDuration(cfg.Duration))
	}
	fmt.Printf("\nCollecting ingester statistics...\n")

	stats := &BenchmarkStats{StatusURL: cfg.StatusURL}
	for {
		sample, err := collectSample(ctx, client, cfg.StatusURL)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			fmt.Printf("\nError collecting stats: %v\n", err)
			os.Exit(1)
		}
		stats.Add(*sample)

		if cfg.Debug {
			fmt.Printf("%s producer=%s received=%d queue=%d/%d created=%d duplicate=%d failed=%d\n",
				sample.At.Format("15:04:05"), sample.Stats.Producer.State, sample.Stats.Producer.Total,
				sample.Stats.Queue.Depth, sample.Stats.Queue.Capacity,
				sample.Stats.Consumers.Created, sample.Stats.Consumers.Duplicate, sample.Stats.Consumers.Failed)
		} else {
			d := stats.Deltas()
			fmt.Printf("\r⏳ Polling... (polls: %d, elapsed: %s, received: %d, processed: %d, queue: %d)    ",
				stats.Polls, formatDuration(stats.Elapsed()), d.Received, d.Processed(), sample.Stats.Queue.Depth)
		}

		// Use a timer so we can still respond to cancellation
		timer := time.NewTimer(cfg.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
			continue
		}
		break
	}

	if stats.Polls < 2 {
		fmt.Println("\nNot enough samples to compute rates.")
		return
	}

	fmt.Println("\n\n" + strings.Repeat("=", 80))
	fmt.Println("BENCHMARK RESULTS")
	fmt.Println(strings.Repeat("=", 80))
	printBenchmarkStats(stats)

	// Write to markdown file if specified
	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, stats); err != nil {
			fmt.Printf("\n⚠️  Warning: Failed to write markdown file: %v\n", err)
		} else {
			fmt.Printf("\n✓ Report written to: %s\n", cfg.OutputFile)
		}
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.StatusURL, "status-url", defaultStatusURL, "Stats endpoint of a running stream ingester")
	flag.DurationVar(&cfg.PollInterval, "interval", defaultPollInterval, "Time between samples")
	flag.DurationVar(&cfg.Duration, "duration", 0, "How long to sample (0 = until interrupted)")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Print every sample")

	configFile := flag.String("config", "", "Path to config file (optional)")

	flag.Parse()

	// Load from config file if specified
	if *configFile != "" {
		fileCfg, err := LoadConfig(*configFile)
		if err != nil {
			fmt.Printf("Warning: failed to load config file: %v\n", err)
		} else {
			// Override with file values if not set via flags
			if cfg.StatusURL == defaultStatusURL && fileCfg.StatusURL != "" {
				cfg.StatusURL = fileCfg.StatusURL
			}
			if cfg.PollInterval == defaultPollInterval && fileCfg.PollInterval != "" {
				if d, err := time.ParseDuration(fileCfg.PollInterval); err == nil {
					cfg.PollInterval = d
				}
			}
		}
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}

	return cfg
}

func collectSample(ctx context.Context, client adapter.HTTPClient, url string) (*Sample, error) {
	var stats status.StatsResponse
	if err := client.GetJSON(ctx, url, nil, &stats); err != nil {
		return nil, err
	}
	return &Sample{At: time.Now(), Stats: stats}, nil
}

func printBenchmarkStats(stats *BenchmarkStats) {
	d := stats.Deltas()
	elapsed := stats.Elapsed()

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("Ingester: %s\n", stats.StatusURL)
	fmt.Printf("  Status:      %s %s\n", statusEmoji(d.Created, d.Failed, stats.Last.Producer.State == producer.StateDisconnected.String()), stats.Last.Producer.State)
	fmt.Printf("  Start Time:  %s\n", stats.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("  End Time:    %s\n", stats.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Duration:    %s\n", formatDuration(elapsed))
	fmt.Printf("  Polls:       %d\n", stats.Polls)
	if stats.DisconnectedPolls > 0 {
		fmt.Printf("  Disconnected: %d polls\n", stats.DisconnectedPolls)
	}
	fmt.Println()

	fmt.Printf("Producer:\n")
	fmt.Printf("  Received:    %d (%s)\n", d.Received, formatRate(d.Received, elapsed))
	fmt.Printf("  Accepted:    %d (%s, %s)\n", d.Accepted, formatRate(d.Accepted, elapsed), percentageString(d.Accepted, d.Received))
	fmt.Println()

	fmt.Printf("Queue:\n")
	fmt.Printf("  Capacity:    %d\n", stats.QueueCapacity)
	fmt.Printf("  Max Depth:   %d\n", stats.MaxQueueDepth)
	fmt.Printf("  Avg Depth:   %.1f\n", stats.AvgQueueDepth())
	fmt.Println()

	processed := d.Processed()
	fmt.Printf("Consumers:\n")
	fmt.Printf("  Processed:   %d (%s)\n", processed, formatRate(processed, elapsed))
	fmt.Printf("  Created:     %d (%s)\n", d.Created, percentageString(d.Created, processed))
	fmt.Printf("  Duplicate:   %d (%s)\n", d.Duplicate, percentageString(d.Duplicate, processed))
	if d.Dropped > 0 {
		fmt.Printf("  Dropped:     %d (%s)\n", d.Dropped, percentageString(d.Dropped, processed))
	}
	if d.Failed > 0 {
		fmt.Printf("  Failed:      %d (%s)\n", d.Failed, percentageString(d.Failed, processed))
	}

	fmt.Println(strings.Repeat("-", 80))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

func writeMarkdownReport(filepath string, stats *BenchmarkStats) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	d := stats.Deltas()
	elapsed := stats.Elapsed()
	processed := d.Processed()

	// Write header
	_, _ = fmt.Fprintf(file, "# Ingestion Benchmark Report\n\n")
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	_, _ = fmt.Fprintf(file, "## Run\n\n")
	_, _ = fmt.Fprintf(file, "| Property | Value |\n")
	_, _ = fmt.Fprintf(file, "|----------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **Stats URL** | `%s` |\n", stats.StatusURL)
	_, _ = fmt.Fprintf(file, "| **Producer State** | %s %s |\n", statusEmoji(d.Created, d.Failed, stats.Last.Producer.State == producer.StateDisconnected.String()), stats.Last.Producer.State)
	_, _ = fmt.Fprintf(file, "| **Start Time** | %s |\n", stats.StartTime.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(file, "| **End Time** | %s |\n", stats.EndTime.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(file, "| **Duration** | %s |\n", formatDuration(elapsed))
	_, _ = fmt.Fprintf(file, "| **Polls** | %d |\n", stats.Polls)
	if stats.DisconnectedPolls > 0 {
		_, _ = fmt.Fprintf(file, "| **Disconnected Polls** | %d |\n", stats.DisconnectedPolls)
	}
	_, _ = fmt.Fprintf(file, "\n")

	_, _ = fmt.Fprintf(file, "## Throughput\n\n")
	_, _ = fmt.Fprintf(file, "| Metric | Count | Rate | Share |\n")
	_, _ = fmt.Fprintf(file, "|--------|-------|------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **Received** | %d | %s | |\n", d.Received, formatRate(d.Received, elapsed))
	_, _ = fmt.Fprintf(file, "| **Accepted** | %d | %s | %s |\n", d.Accepted, formatRate(d.Accepted, elapsed), percentageString(d.Accepted, d.Received))
	_, _ = fmt.Fprintf(file, "| **Processed** | %d | %s | |\n", processed, formatRate(processed, elapsed))
	_, _ = fmt.Fprintf(file, "| **Created** | %d | %s | %s |\n", d.Created, formatRate(d.Created, elapsed), percentageString(d.Created, processed))
	_, _ = fmt.Fprintf(file, "| **Duplicate** | %d | %s | %s |\n", d.Duplicate, formatRate(d.Duplicate, elapsed), percentageString(d.Duplicate, processed))
	if d.Dropped > 0 {
		_, _ = fmt.Fprintf(file, "| **Dropped** | %d | %s | %s |\n", d.Dropped, formatRate(d.Dropped, elapsed), percentageString(d.Dropped, processed))
	}
	if d.Failed > 0 {
		_, _ = fmt.Fprintf(file, "| **Failed** | %d | %s | %s |\n", d.Failed, formatRate(d.Failed, elapsed), percentageString(d.Failed, processed))
	}
	_, _ = fmt.Fprintf(file, "\n")

	_, _ = fmt.Fprintf(file, "## Queue\n\n")
	_, _ = fmt.Fprintf(file, "| Metric | Value |\n")
	_, _ = fmt.Fprintf(file, "|--------|-------|\n")
	_, _ = fmt.Fprintf(file, "| **Capacity** | %d |\n", stats.QueueCapacity)
	_, _ = fmt.Fprintf(file, "| **Max Depth** | %d |\n", stats.MaxQueueDepth)
	_, _ = fmt.Fprintf(file, "| **Avg Depth** | %.1f |\n", stats.AvgQueueDepth())

	return nil
}
