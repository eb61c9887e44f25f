// Package metrics exposes prometheus instrumentation for storage group
// operations and can dump it to a node_exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Attach outcomes.
const (
	ResultSuccess        = "success"
	ResultFailed         = "failed"
	ResultNoHLU          = "no_hlu"
	ResultRetryExhausted = "retry_exhausted"
)

var (
	attachTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vnxctl_storagegroup_attach_total",
			Help: "Attach operations by storage group and outcome",
		},
		[]string{"group", "result"},
	)

	attachConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vnxctl_storagegroup_attach_conflicts_total",
			Help: "HLU conflicts reported by the array during attach",
		},
		[]string{"group"},
	)

	detachTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vnxctl_storagegroup_detach_total",
			Help: "Detach operations by storage group and outcome",
		},
		[]string{"group", "result"},
	)

	freeHLUs = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vnxctl_storagegroup_free_hlus",
			Help: "Unassigned HLU numbers in the storage group as last seen",
		},
		[]string{"group"},
	)

	cliCalls = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vnxctl_naviseccli_duration_seconds",
			Help:    "naviseccli invocation latency",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"command", "status"},
	)
)

// RecordAttach counts one finished attach.
func RecordAttach(group, result string) {
	attachTotal.WithLabelValues(group, result).Inc()
}

// RecordConflict counts one ALU-number-in-use conflict.
func RecordConflict(group string) {
	attachConflicts.WithLabelValues(group).Inc()
}

// RecordDetach counts one finished detach.
func RecordDetach(group, result string) {
	detachTotal.WithLabelValues(group, result).Inc()
}

// SetFreeHLUs publishes the current free HLU count of a group.
func SetFreeHLUs(group string, n int) {
	freeHLUs.WithLabelValues(group).Set(float64(n))
}

// ObserveCLI records the duration of one naviseccli call.
func ObserveCLI(command, status string, seconds float64) {
	cliCalls.WithLabelValues(command, status).Observe(seconds)
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for collection by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
