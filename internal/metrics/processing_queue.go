package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	processingQueuePushedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "processing_queue",
		Name:      "pushed_items_total",
		Help:      "Count of items offered to the processing queue.",
	}, []string{"status"})

	processingQueueItemDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "processing_queue",
		Name:      "item_duration_seconds",
		Help:      "Duration of handling one queued item.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	processingQueueSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "processing_queue",
		Name:      "size",
		Help:      "Number of items waiting in the processing queue.",
	})
)

// ProcessingQueue tracks the block processing queue.
type ProcessingQueue struct{}

func NewProcessingQueue() *ProcessingQueue {
	return &ProcessingQueue{}
}

func (m ProcessingQueue) ObservePush(err error, items int) {
	processingQueuePushedTotal.WithLabelValues(status(err)).Add(float64(items))
}

// ObserveItem records an item handled by the worker, labeled by where the block came from.
func (m ProcessingQueue) ObserveItem(source string, started time.Time) {
	processingQueueItemDuration.WithLabelValues(source).Observe(time.Since(started).Seconds())
}

func (m ProcessingQueue) ObserveSize(size int) {
	processingQueueSize.Set(float64(size))
}
