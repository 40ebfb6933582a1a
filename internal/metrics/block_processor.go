package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	blockProcessorProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_processor",
		Name:      "blocks_total",
		Help:      "Count of processed blocks by classification and result.",
	}, []string{"classification", "result"})

	blockProcessorProcessDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_processor",
		Name:      "process_duration_seconds",
		Help:      "Duration of classifying and handling one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"classification"})

	blockProcessorVerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "block_processor",
		Name:      "verify_transactions_duration_seconds",
		Help:      "Duration of verifying the transactions of one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	blockProcessorVerifiedTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "block_processor",
		Name:      "verified_transactions_total",
		Help:      "Count of transactions passed through signature verification.",
	}, []string{"status"})
)

type BlockProcessor struct{}

func NewBlockProcessor() *BlockProcessor {
	return &BlockProcessor{}
}

func (m BlockProcessor) ObserveProcess(classification, result string, started time.Time) {
	blockProcessorProcessedTotal.WithLabelValues(classification, result).Inc()
	blockProcessorProcessDuration.WithLabelValues(classification).Observe(time.Since(started).Seconds())
}

func (m BlockProcessor) ObserveVerifyTransactions(err error, transactions int, started time.Time) {
	s := status(err)
	blockProcessorVerifyDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	blockProcessorVerifiedTransactions.WithLabelValues(s).Add(float64(transactions))
}
