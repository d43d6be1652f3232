package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Definition
var (
	windowsFormatted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "latencylens_windows_formatted_total",
			Help: "Total number of timing windows rendered to CSV.",
		},
	)
	linesEmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "latencylens_csv_lines_emitted_total",
			Help: "Total number of CSV lines emitted downstream.",
		},
	)
	nonStatisticsMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "latencylens_non_statistics_messages_total",
			Help: "Total number of non-statistics messages, by disposition (printed or suppressed).",
		},
		[]string{"disposition"},
	)
	lastWindowTags = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "latencylens_last_window_tag_count",
			Help: "Number of tags in the most recently formatted timing window.",
		},
	)
)
