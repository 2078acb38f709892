// Package main provides helper functions for the benchmark CLI
package main

import (
	"fmt"
	"time"
)

// formatRate formats a rate (items per second)
func formatRate(count int64, duration time.Duration) string {
	if duration.Seconds() == 0 {
		return "N/A"
	}
	rate := float64(count) / duration.Seconds()
	return fmt.Sprintf("%.2f/s", rate)
}

// percentageString calculates and formats a percentage
func percentageString(part, total int64) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}

// statusEmoji summarizes a run: yellow while the producer is disconnected,
// red once anything failed
func statusEmoji(created, failed int64, disconnected bool) string {
	if disconnected {
		return "🟡"
	}
	if failed > 0 {
		return "❌"
	}
	if created > 0 {
		return "✅"
	}
	return "⚪"
}
