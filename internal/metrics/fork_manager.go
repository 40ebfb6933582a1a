package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	forkManagerPlanTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "fork_manager",
		Name:      "plans_total",
		Help:      "Count of fork recovery plans.",
	}, []string{"status"})

	forkManagerPlanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "fork_manager",
		Name:      "plan_duration_seconds",
		Help:      "Duration of locating the common ancestor and fetching the competing branch.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	forkManagerPlanDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "fork_manager",
		Name:      "rollback_depth",
		Help:      "Number of blocks above the common ancestor.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	})

	forkManagerRevertTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "fork_manager",
		Name:      "reverted_blocks_total",
		Help:      "Count of block reverts.",
	}, []string{"status"})

	forkManagerRevertDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "fork_manager",
		Name:      "revert_duration_seconds",
		Help:      "Duration of reverting one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	forkManagerResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "fork_manager",
		Name:      "resolved_total",
		Help:      "Count of resolved forks, by whether the node switched branch.",
	}, []string{"switched"})
)

type ForkManager struct{}

func NewForkManager() *ForkManager {
	return &ForkManager{}
}

func (m ForkManager) ObservePlan(err error, depth uint64, started time.Time) {
	s := status(err)
	forkManagerPlanTotal.WithLabelValues(s).Inc()
	forkManagerPlanDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	if err == nil {
		forkManagerPlanDepth.Observe(float64(depth))
	}
}

func (m ForkManager) ObserveRevert(err error, _ uint64, started time.Time) {
	s := status(err)
	forkManagerRevertTotal.WithLabelValues(s).Inc()
	forkManagerRevertDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}

func (m ForkManager) ObserveResolved(switched bool, _ int) {
	forkManagerResolvedTotal.WithLabelValues(strconv.FormatBool(switched)).Inc()
}
