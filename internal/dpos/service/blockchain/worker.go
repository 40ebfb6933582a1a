package blockchain

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/machine"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/processor"
	"go.uber.org/zap"
)

// work is the queue consumer. It hands item to the event loop and waits until
// the loop has processed it.
func (s *Service) work(ctx context.Context, item model.QueueItem) {
	req := execRequest{item: item, done: make(chan struct{})}
	select {
	case s.exec <- req:
	case <-ctx.Done():
		return
	}
	select {
	case <-req.done:
	case <-ctx.Done():
	}
}

func (s *Service) drained() {
	s.Dispatch(machine.ProcessFinished(true))
}

// process runs on the event loop.
func (s *Service) process(ctx context.Context, item model.QueueItem) {
	result := s.processor.Process(ctx, item)
	logger := s.logger.With(
		zap.String("block", item.Block.ID),
		zap.Uint64("height", item.Block.Height),
		zap.String("peer", string(item.FromPeer)),
		zap.Stringer("result", result),
	)

	switch result {
	case processor.Accepted:
		delete(s.retries, item.Block.ID)
		s.afterAccept(item)
	case processor.Corrupted:
		s.penalize(ctx, item, "corrupted block")
	case processor.Exception:
		s.retryLater(item, logger)
	case processor.Rejected, processor.AcceptedAsFork, processor.DiscardedButBroadcastable:
	}

	if result.Broadcastable() {
		s.broadcast(ctx, item)
	}
	s.publishSnapshot()
}

// afterAccept queues the cached future block that now follows the tip.
func (s *Service) afterAccept(item model.QueueItem) {
	height := item.Block.Height
	s.sync.PruneFuture(height)
	next, ok := s.sync.TakeFuture(height + 1)
	if !ok {
		return
	}
	if err := s.queue.Push(next); err != nil {
		s.logger.Warn("cached future block not queued", zap.String("block", next.Block.ID), zap.Error(err))
	}
}

// retryLater pushes item back after a storage failure. Blocks queued behind it
// are dropped and downloaded again once it succeeds.
func (s *Service) retryLater(item model.QueueItem, logger *zap.Logger) {
	attempt := s.retries[item.Block.ID] + 1
	if attempt > s.cfg.MaxStorageRetries {
		delete(s.retries, item.Block.ID)
		s.Dispatch(machine.FatalFailure(fmt.Errorf("block %s at height %d: storage failed %d times", item.Block.ID, item.Block.Height, s.cfg.MaxStorageRetries)))
		return
	}
	s.retries[item.Block.ID] = attempt

	s.queue.PushDelayed(s.cfg.StorageRetryDelay, item)
	dropped := s.queue.Clear()
	s.state.ResetLastDownloadedBlock()
	logger.Warn("block processing failed, retrying",
		zap.Int("attempt", attempt),
		zap.Duration("delay", s.cfg.StorageRetryDelay),
		zap.Int("dropped", dropped),
	)
}

func (s *Service) broadcast(ctx context.Context, item model.QueueItem) {
	if !s.state.Started() || item.Source == model.SourceDownload || !s.slots.IsCurrentSlot(item.Block.Timestamp) {
		return
	}
	block := item.Block
	s.goAsync(ctx, func(ctx context.Context) {
		if err := s.peers.BroadcastBlock(ctx, block); err != nil {
			s.logger.Warn("broadcast failed", zap.String("block", block.ID), zap.Error(err))
		}
	})
}

func (s *Service) penalize(ctx context.Context, item model.QueueItem, reason string) {
	if item.FromPeer == "" {
		return
	}
	s.goAsync(ctx, func(ctx context.Context) {
		if err := s.peers.PenalizePeer(ctx, item.FromPeer, reason); err != nil {
			s.logger.Warn("penalize peer failed", zap.String("peer", string(item.FromPeer)), zap.Error(err))
		}
	})
}
