package blockchain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/fork"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/machine"
	"go.uber.org/zap"
)

func (s *Service) run(ctx context.Context, a machine.Action, e machine.Event) error {
	switch a {
	case machine.ActionInit:
		return s.initialize(ctx)
	case machine.ActionCheckNetwork:
		s.checkNetwork(ctx)
	case machine.ActionPublishSyncStarting:
		from, _ := s.state.LastDownloadedBlock()
		s.sync.BeginSession(from.Header(), e.NetworkHeight)
		s.resetBackoff()
	case machine.ActionDownloadBlocks:
		s.downloadBlocks(ctx)
	case machine.ActionEnqueueDownloaded:
		return s.enqueueDownloaded(ctx, e)
	case machine.ActionCheckQueueIdle:
		s.checkQueueIdle()
	case machine.ActionBlockchainReady:
		return s.blockchainReady()
	case machine.ActionStartForkRecovery:
		s.startForkRecovery(ctx, e)
	case machine.ActionRollback:
		s.rollback(ctx, e.Plan)
	case machine.ActionResumeAfterFork:
		return s.resumeAfterFork(e.Resolution)
	case machine.ActionEnqueueBlock:
		return s.enqueueBlock(e)
	case machine.ActionDisregardBlock:
		s.disregard(e.Item.Block, e.Item.FromPeer, "node is not ready for new blocks")
	case machine.ActionScheduleWakeUp:
		s.scheduleWakeUp(e.Reason)
	case machine.ActionLogFailure:
		s.logger.Warn("failure ignored in current state", zap.Stringer("state", s.State()), zap.Error(e.Reason))
	case machine.ActionStopAll:
		s.stopAll(e)
	default:
		return fmt.Errorf("unknown action %s", a)
	}
	return nil
}

func (s *Service) initialize(ctx context.Context) error {
	if err := s.loadChain(ctx); err != nil {
		s.Dispatch(machine.FatalFailure(fmt.Errorf("init chain: %w", err)))
		return err
	}
	s.Dispatch(machine.Started())
	return nil
}

func (s *Service) checkNetwork(ctx context.Context) {
	tip, ok := s.state.LastBlock()
	if !ok {
		s.Dispatch(machine.FatalFailure(chain.ErrGenesisMissing))
		return
	}
	header := tip.Header()
	s.goAsync(ctx, func(ctx context.Context) {
		gap, height, err := s.sync.CheckGap(ctx, header)
		if err != nil {
			s.dispatchFrom(ctx, machine.Failure(fmt.Errorf("check network height: %w", err)))
			return
		}
		s.dispatchFrom(ctx, machine.NetworkHeightKnown(gap, height))
	})
}

func (s *Service) downloadBlocks(ctx context.Context) {
	if s.queue.Size() >= s.cfg.QueuePauseThreshold {
		s.logger.Debug("download paused", zap.Int("queue", s.queue.Size()))
		s.Dispatch(machine.DownloadPaused())
		return
	}
	from, ok := s.state.LastDownloadedBlock()
	if !ok {
		s.Dispatch(machine.FatalFailure(chain.ErrGenesisMissing))
		return
	}
	header := from.Header()
	s.goAsync(ctx, func(ctx context.Context) {
		items, err := s.sync.Download(ctx, header)
		if err != nil {
			s.dispatchFrom(ctx, machine.Failure(fmt.Errorf("download blocks after %d: %w", header.Height, err)))
			return
		}
		s.dispatchFrom(ctx, machine.BlocksDownloaded(items))
	})
}

func (s *Service) enqueueDownloaded(ctx context.Context, e machine.Event) error {
	items := e.Items
	if len(items) == 0 {
		s.Dispatch(machine.DownloadFinished())
		return nil
	}

	from, _ := s.state.LastDownloadedBlock()
	first := items[0].Block
	if first.Height != from.Height+1 {
		// The download pointer moved while the request was in flight.
		s.logger.Debug("stale download dropped",
			zap.Uint64("first", first.Height),
			zap.Uint64("last_downloaded", from.Height),
		)
		s.Dispatch(machine.DownloadFinished())
		return nil
	}

	if err := s.queue.PushBulk(items); err != nil {
		s.Dispatch(machine.DownloadPaused())
		return fmt.Errorf("enqueue %d downloaded blocks: %w", len(items), err)
	}
	last := items[len(items)-1].Block
	s.state.SetLastDownloadedBlock(last)
	s.state.ResetNoBlockCounter()
	s.resetBackoff()

	switch {
	case last.Height >= s.sync.LastNetworkHeight():
		s.Dispatch(machine.DownloadFinished())
	case s.queue.Size() >= s.cfg.QueuePauseThreshold:
		s.Dispatch(machine.DownloadPaused())
	default:
		s.downloadBlocks(ctx)
	}
	return nil
}

func (s *Service) checkQueueIdle() {
	if s.queue.IsIdle() {
		s.Dispatch(machine.ProcessFinished(true))
	}
}

func (s *Service) blockchainReady() error {
	tip, _ := s.state.LastBlock()
	if !s.state.Started() {
		s.state.SetStarted()
		s.state.SetBootstrapping(false)
		s.logger.Info("blockchain ready", zap.Uint64("height", tip.Height), zap.String("block", tip.ID))
		s.publisher.Publish(events.TopicNodeReady, events.NodeReady{Height: tip.Height})
	}
	s.state.ResetNoBlockCounter()
	s.wake.Schedule(s.cfg.IdleInterval)
	s.resetBackoff()
	return nil
}

func (s *Service) startForkRecovery(ctx context.Context, e machine.Event) {
	item := e.Item
	s.queue.Pause()
	dropped := s.queue.Clear()
	s.wake.Stop()
	s.state.SetForkBlock(item)
	s.state.ResetLastDownloadedBlock()

	logger := s.logger.With(
		zap.String("candidate", item.Block.ID),
		zap.Uint64("height", item.Block.Height),
		zap.String("peer", string(item.FromPeer)),
	)
	logger.Info("fork recovery started", zap.Int("dropped", dropped), zap.Uint64("at_height", e.AtHeight))

	snap := s.state.Snapshot()
	if s.sync.Excluded(item.FromPeer) {
		// Its branch already lost the fork choice.
		logger.Info("fork candidate from excluded peer ignored")
		tip, _ := snap.Tip()
		s.Dispatch(machine.ForkResolved(fork.Resolution{NewTipHeight: tip.Height}))
		return
	}
	s.goAsync(ctx, func(ctx context.Context) {
		plan, err := s.forks.Plan(ctx, snap, item)
		switch {
		case err == nil:
			s.dispatchFrom(ctx, machine.ForkPlanned(plan))
		case chain.IsFatal(err):
			s.dispatchFrom(ctx, machine.Failure(fmt.Errorf("plan fork: %w", err)))
		default:
			logger.Warn("fork abandoned", zap.Error(err))
			s.sync.ExcludePeer(item.FromPeer)
			tip, _ := snap.Tip()
			s.dispatchFrom(ctx, machine.ForkResolved(fork.Resolution{NewTipHeight: tip.Height}))
		}
	})
}

func (s *Service) rollback(ctx context.Context, plan fork.Plan) {
	res, err := s.forks.Rollback(ctx, s.state, plan)
	if err != nil {
		s.Dispatch(machine.FatalFailure(fmt.Errorf("roll back to %d: %w", plan.Ancestor.Height, err)))
		return
	}
	if !plan.Switch {
		s.sync.ExcludePeer(plan.Candidate.FromPeer)
	}
	s.Dispatch(machine.ForkResolved(res))
}

func (s *Service) resumeAfterFork(res fork.Resolution) error {
	s.state.ClearForkBlock()
	s.state.ResetLastDownloadedBlock()
	s.sync.PruneFuture(res.NewTipHeight)

	var err error
	if len(res.Branch) > 0 {
		if err = s.queue.PushBulk(res.Branch); err != nil {
			err = fmt.Errorf("enqueue winning branch: %w", err)
		}
	}
	s.publisher.Publish(events.TopicForkResolved, events.ForkResolved{
		NewTipHeight: res.NewTipHeight,
		Reverted:     res.Reverted,
		Switched:     res.Switched,
	})
	s.logger.Info("fork resolved",
		zap.Uint64("tip", res.NewTipHeight),
		zap.Int("reverted", res.Reverted),
		zap.Int("branch", len(res.Branch)),
		zap.Bool("switched", res.Switched),
	)

	s.queue.Resume()
	s.checkQueueIdle()
	return err
}

func (s *Service) enqueueBlock(e machine.Event) error {
	item := e.Item
	if s.state.PingBlock(item.Block.Header(), s.now()) {
		s.logger.Debug("block received again", zap.String("block", item.Block.ID), zap.String("peer", string(item.FromPeer)))
		s.checkQueueIdle()
		return nil
	}
	if err := s.queue.Push(item); err != nil {
		s.disregard(item.Block, item.FromPeer, "processing queue is full")
		return fmt.Errorf("enqueue block %s: %w", item.Block.ID, err)
	}
	return nil
}

func (s *Service) scheduleWakeUp(reason error) {
	var d time.Duration
	if errors.Is(reason, chain.ErrDownloadFailed) || errors.Is(reason, chain.ErrNoPeers) {
		if rounds := s.state.IncrementNoBlockCounter(); rounds >= s.cfg.MaxNoBlockRounds {
			s.logger.Warn("no blocks received, the network may have halted",
				zap.Int("rounds", rounds),
				zap.Duration("next_check", s.cfg.LongWakeUpInterval),
			)
			d = s.cfg.LongWakeUpInterval
		}
	}
	if d == 0 {
		d, _ = s.backoff.Next()
	}
	s.logger.Info("network unavailable, retrying later", zap.Duration("after", d), zap.Error(reason))
	s.wake.Schedule(d)
}

func (s *Service) stopAll(e machine.Event) {
	s.wake.Stop()
	s.queue.Pause()
	if e.Kind == machine.EventFailure {
		s.fatal = e.Reason
		s.logger.Error("stopping after fatal failure", zap.Error(e.Reason))
		return
	}
	s.logger.Info("stopping")
}
