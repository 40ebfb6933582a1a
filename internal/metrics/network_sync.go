package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	networkSyncHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "network_sync",
		Name:      "network_height",
		Help:      "Last network height reported by the connected peers.",
	})

	networkSyncHeightChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "network_sync",
		Name:      "height_checks_total",
		Help:      "Count of network height checks.",
	}, []string{"status"})

	networkSyncHeightCheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "network_sync",
		Name:      "height_check_duration_seconds",
		Help:      "Duration of asking the peers for their height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	networkSyncChunkTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "network_sync",
		Name:      "chunks_total",
		Help:      "Count of block chunk requests.",
	}, []string{"status"})

	networkSyncChunkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "network_sync",
		Name:      "chunk_duration_seconds",
		Help:      "Duration of one block chunk request.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60},
	}, []string{"status"})

	networkSyncDownloadedBlocks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "network_sync",
		Name:      "downloaded_blocks_total",
		Help:      "Count of blocks in finished downloads.",
	}, []string{"status"})

	networkSyncDownloadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "network_sync",
		Name:      "download_duration_seconds",
		Help:      "Duration of one download round.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30, 60, 120},
	}, []string{"status"})

	networkSyncFutureCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "network_sync",
		Name:      "future_cache_size",
		Help:      "Number of blocks held for heights above the tip.",
	})
)

type NetworkSync struct{}

func NewNetworkSync() *NetworkSync {
	return &NetworkSync{}
}

func (m NetworkSync) ObserveNetworkHeight(err error, height uint64, started time.Time) {
	s := status(err)
	networkSyncHeightChecksTotal.WithLabelValues(s).Inc()
	networkSyncHeightCheckDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	if err == nil {
		networkSyncHeight.Set(float64(height))
	}
}

func (m NetworkSync) ObserveChunk(err error, _ int, started time.Time) {
	s := status(err)
	networkSyncChunkTotal.WithLabelValues(s).Inc()
	networkSyncChunkDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}

func (m NetworkSync) ObserveDownload(err error, blocks int, started time.Time) {
	s := status(err)
	networkSyncDownloadedBlocks.WithLabelValues(s).Add(float64(blocks))
	networkSyncDownloadDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
}

func (m NetworkSync) ObserveFutureCache(size int) {
	networkSyncFutureCacheSize.Set(float64(size))
}
