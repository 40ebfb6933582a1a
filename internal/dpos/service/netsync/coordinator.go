// Package netsync talks to the peer network on behalf of the event loop: it
// measures the network height, downloads missing blocks in parallel and keeps
// the blocks that arrived too early.
package netsync

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/workerpool"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sethvargo/go-retry"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	DefaultGapThreshold         uint64 = 1
	DefaultBatchSize            uint64 = 400
	DefaultMaxParallelDownloads        = 25
	DefaultDownloadTimeout             = 10 * time.Second
	DefaultMaxDownloadRetries   uint64 = 3
	DefaultRetryBackoff                = 200 * time.Millisecond
	DefaultMaxFutureGap         uint64 = 1000
	DefaultFutureCacheSize             = 512
	DefaultExclusionTTL                = 10 * time.Minute
	maxExcludedPeers                   = 1024
)

type Config struct {
	// GapThreshold is how many blocks the node may trail the network before it syncs.
	GapThreshold         uint64
	BatchSize            uint64
	MaxParallelDownloads int
	DownloadTimeout      time.Duration
	MaxDownloadRetries   uint64
	RetryBackoff         time.Duration
	// RequestsPerSecond limits block requests across all peers. Zero means unlimited.
	RequestsPerSecond int
	MaxFutureGap      uint64
	FutureCacheSize   int
	// ExclusionTTL is how long an excluded peer is left out of syncing.
	ExclusionTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.GapThreshold == 0 {
		c.GapThreshold = DefaultGapThreshold
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxParallelDownloads <= 0 {
		c.MaxParallelDownloads = DefaultMaxParallelDownloads
	}
	if c.DownloadTimeout <= 0 {
		c.DownloadTimeout = DefaultDownloadTimeout
	}
	if c.MaxDownloadRetries == 0 {
		c.MaxDownloadRetries = DefaultMaxDownloadRetries
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = DefaultRetryBackoff
	}
	if c.MaxFutureGap == 0 {
		c.MaxFutureGap = DefaultMaxFutureGap
	}
	if c.FutureCacheSize <= 0 {
		c.FutureCacheSize = DefaultFutureCacheSize
	}
	if c.ExclusionTTL <= 0 {
		c.ExclusionTTL = DefaultExclusionTTL
	}
	return c
}

type Coordinator struct {
	peers     PeerNetwork
	publisher Publisher
	metrics   Metrics
	cfg       Config
	limiter   ratelimit.Limiter
	future    *lru.Cache[uint64, model.QueueItem]
	excluded  *expirable.LRU[model.PeerID, struct{}]
	now       func() time.Time
	logger    *zap.Logger

	mu            sync.Mutex
	networkHeight uint64
	session       session
}

// session tracks one catch-up run for progress reporting.
type session struct {
	started    time.Time
	fromHeight uint64
	downloaded uint64
}

func NewCoordinator(
	peers PeerNetwork,
	publisher Publisher,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Coordinator, error) {
	switch {
	case peers == nil:
		return nil, errors.New("peer network is required")
	case publisher == nil:
		return nil, errors.New("publisher is required")
	case metrics == nil:
		return nil, errors.New("network sync metrics is required")
	}
	cfg = cfg.withDefaults()

	future, err := lru.New[uint64, model.QueueItem](cfg.FutureCacheSize)
	if err != nil {
		return nil, fmt.Errorf("init future block cache: %w", err)
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	return &Coordinator{
		peers:     peers,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		limiter:   limiter,
		future:    future,
		excluded:  expirable.NewLRU[model.PeerID, struct{}](maxExcludedPeers, nil, cfg.ExclusionTTL),
		now:       time.Now,
		logger:    logger.Named("networkSync"),
	}, nil
}

// NetworkHeight is the highest height reported by a connected peer, or by a
// cached future block when that is higher.
func (c *Coordinator) NetworkHeight(ctx context.Context) (height uint64, err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveNetworkHeight(err, height, started)
	}()

	peers, err := c.connectedPeers(ctx)
	if err != nil {
		return 0, err
	}
	if len(peers) == 0 {
		return 0, chain.ErrNoPeers
	}
	for _, p := range peers {
		height = max(height, p.Height)
	}
	height = max(height, c.futureHint())

	c.mu.Lock()
	c.networkHeight = height
	c.mu.Unlock()
	return height, nil
}

// ExcludePeer leaves peer out of height measurements and downloads until
// ExclusionTTL passes, and drops the future blocks it sent.
func (c *Coordinator) ExcludePeer(peer model.PeerID) {
	if peer == "" {
		return
	}
	c.excluded.Add(peer, struct{}{})

	var dropped int
	for _, height := range c.future.Keys() {
		if item, ok := c.future.Peek(height); ok && item.FromPeer == peer {
			c.future.Remove(height)
			dropped++
		}
	}
	if dropped > 0 {
		c.metrics.ObserveFutureCache(c.future.Len())
	}
	c.logger.Info("peer excluded from sync",
		zap.String("peer", string(peer)),
		zap.Duration("ttl", c.cfg.ExclusionTTL),
		zap.Int("future_dropped", dropped),
	)
}

// Excluded reports whether peer is currently left out of syncing.
func (c *Coordinator) Excluded(peer model.PeerID) bool {
	if peer == "" {
		return false
	}
	_, ok := c.excluded.Peek(peer)
	return ok
}

func (c *Coordinator) connectedPeers(ctx context.Context) ([]model.PeerInfo, error) {
	peers, err := c.peers.GetConnectedPeers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connected peers: %w", err)
	}
	out := make([]model.PeerInfo, 0, len(peers))
	for _, p := range peers {
		if !c.Excluded(p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}

// LastNetworkHeight returns the height measured by the last NetworkHeight call.
func (c *Coordinator) LastNetworkHeight() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.networkHeight
}

// CheckGap reports whether the network is more than GapThreshold blocks ahead of tip.
func (c *Coordinator) CheckGap(ctx context.Context, tip model.BlockHeader) (bool, uint64, error) {
	height, err := c.NetworkHeight(ctx)
	if err != nil {
		return false, 0, err
	}
	return c.Behind(tip.Height, height), height, nil
}

// Behind reports whether networkHeight is more than GapThreshold blocks above tipHeight.
func (c *Coordinator) Behind(tipHeight, networkHeight uint64) bool {
	return networkHeight > tipHeight+c.cfg.GapThreshold
}

// BeginSession resets the progress estimator and publishes SyncStarting.
func (c *Coordinator) BeginSession(from model.BlockHeader, networkHeight uint64) {
	c.mu.Lock()
	c.session = session{started: c.now(), fromHeight: from.Height}
	c.mu.Unlock()

	c.logger.Info("starting sync",
		zap.Uint64("from", from.Height),
		zap.Uint64("network_height", networkHeight),
	)
	c.publisher.Publish(events.TopicSyncStarting, events.SyncStarting{
		FromHeight:    from.Height,
		NetworkHeight: networkHeight,
	})
}

// Progress returns the blocks downloaded in the current session and the rate in blocks per millisecond.
func (c *Coordinator) Progress() (uint64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.downloaded, c.rateLocked()
}

func (c *Coordinator) rateLocked() float64 {
	elapsed := c.now().Sub(c.session.started).Milliseconds()
	if c.session.started.IsZero() || elapsed <= 0 {
		return 0
	}
	return float64(c.session.downloaded) / float64(elapsed)
}

type chunk struct {
	index int
	from  uint64
	count uint64
}

type chunkResult struct {
	blocks []model.Block
	peer   model.PeerID
}

// Download fetches the blocks after from. Chunks go to different peers in
// parallel and the contiguous, chained prefix of what arrived is returned,
// starting at from.Height+1.
func (c *Coordinator) Download(ctx context.Context, from model.BlockHeader) (items []model.QueueItem, err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveDownload(err, len(items), started)
	}()

	all, err := c.connectedPeers(ctx)
	if err != nil {
		return nil, err
	}
	peers := ahead(all, from.Height)
	if len(peers) == 0 {
		return nil, chain.ErrNoPeers
	}

	target := peers[0].Height
	chunks := c.chunks(from.Height, target)
	logger := c.logger.With(
		zap.Uint64("from", from.Height),
		zap.Uint64("target", target),
		zap.Int("chunks", len(chunks)),
		zap.Int("peers", len(peers)),
	)
	logger.Debug("downloading blocks")

	results, errs := workerpool.Map(ctx, c.cfg.MaxParallelDownloads, chunks, func(ctx context.Context, ch chunk) (chunkResult, error) {
		return c.fetchChunk(ctx, ch, peers)
	})

	// The first block may sit on another branch than from. The processor
	// classifies it as a fork candidate.
	var prevID string
	next := from.Height + 1
	now := c.now()
assemble:
	for i, ch := range chunks {
		if errs[i] != nil {
			logger.Warn("chunk failed", zap.Uint64("chunk_from", ch.from), zap.Error(errs[i]))
			break
		}
		for _, b := range results[i].blocks {
			if b.Height != next || (prevID != "" && b.PreviousBlockID != prevID) {
				logger.Warn("chunk does not chain to the previous one", zap.Uint64("chunk_from", ch.from))
				break assemble
			}
			items = append(items, model.NewQueueItem(b, results[i].peer, model.SourceDownload, now))
			prevID = b.ID
			next++
		}
		if uint64(len(results[i].blocks)) < ch.count {
			break
		}
	}

	if len(items) == 0 {
		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("%w: %w", chain.ErrDownloadFailed, err)
		}
		return nil, chain.ErrDownloadFailed
	}

	c.mu.Lock()
	c.session.downloaded += uint64(len(items))
	progress := events.SyncProgress{
		Downloaded:    c.session.downloaded,
		NetworkHeight: max(c.networkHeight, target),
		BlocksPerMs:   c.rateLocked(),
	}
	c.mu.Unlock()
	c.publisher.Publish(events.TopicSyncProgress, progress)

	logger.Debug("blocks downloaded", zap.Int("blocks", len(items)), zap.Float64("blocks_per_ms", progress.BlocksPerMs))
	return items, nil
}

// chunks splits (fromHeight, target] into at most MaxParallelDownloads chunks of BatchSize.
func (c *Coordinator) chunks(fromHeight, target uint64) []chunk {
	var out []chunk
	start := fromHeight + 1
	for len(out) < c.cfg.MaxParallelDownloads && start <= target {
		count := min(c.cfg.BatchSize, target-start+1)
		out = append(out, chunk{index: len(out), from: start, count: count})
		start += count
	}
	return out
}

// fetchChunk asks the peer assigned to ch and moves on to the next peer after
// every timeout, error or malformed answer.
func (c *Coordinator) fetchChunk(ctx context.Context, ch chunk, peers []model.PeerInfo) (chunkResult, error) {
	backoff := retry.WithMaxRetries(c.cfg.MaxDownloadRetries, retry.NewConstant(c.cfg.RetryBackoff))

	var (
		attempt int
		result  chunkResult
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		peer := peers[(ch.index+attempt)%len(peers)]
		attempt++

		started := time.Now()
		blocks, err := c.request(ctx, peer.ID, ch)
		c.metrics.ObserveChunk(err, len(blocks), started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Debug("chunk request failed",
				zap.String("peer", string(peer.ID)),
				zap.Uint64("chunk_from", ch.from),
				zap.Error(err),
			)
			return retry.RetryableError(err)
		}
		result = chunkResult{blocks: blocks, peer: peer.ID}
		return nil
	})
	if err != nil {
		return chunkResult{}, fmt.Errorf("download blocks %d-%d: %w", ch.from, ch.from+ch.count-1, err)
	}
	return result, nil
}

func (c *Coordinator) request(ctx context.Context, peer model.PeerID, ch chunk) ([]model.Block, error) {
	c.limiter.Take()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.DownloadTimeout)
	defer cancel()

	blocks, err := c.peers.RequestBlocks(ctx, peer, ch.from, ch.count)
	if err != nil {
		return nil, fmt.Errorf("request blocks from %s: %w", peer, err)
	}
	if err := validateChunk(blocks, ch); err != nil {
		return nil, fmt.Errorf("peer %s: %w", peer, err)
	}
	return blocks, nil
}

func validateChunk(blocks []model.Block, ch chunk) error {
	if len(blocks) == 0 {
		return errors.New("no blocks returned")
	}
	if uint64(len(blocks)) > ch.count {
		return fmt.Errorf("%d blocks returned, %d requested", len(blocks), ch.count)
	}
	for i, b := range blocks {
		if want := ch.from + uint64(i); b.Height != want {
			return fmt.Errorf("block %s at height %d, expected %d", b.ID, b.Height, want)
		}
		if i > 0 && b.PreviousBlockID != blocks[i-1].ID {
			return fmt.Errorf("block %s does not chain to %s", b.ID, blocks[i-1].ID)
		}
	}
	return nil
}

// ahead keeps the peers above height, highest first.
func ahead(peers []model.PeerInfo, height uint64) []model.PeerInfo {
	out := make([]model.PeerInfo, 0, len(peers))
	for _, p := range peers {
		if p.Height > height {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b model.PeerInfo) int {
		switch {
		case a.Height > b.Height:
			return -1
		case a.Height < b.Height:
			return 1
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}
