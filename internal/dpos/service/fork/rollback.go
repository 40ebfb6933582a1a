package fork

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Rollback applies plan to state. It runs on the event loop. When the local
// branch wins nothing is reverted and the candidate is disregarded. Otherwise
// blocks are reverted from the tip down to the ancestor, one at a time.
func (m *Manager) Rollback(ctx context.Context, state *chain.State, plan Plan) (Resolution, error) {
	tip, ok := state.LastBlock()
	if !ok {
		return Resolution{}, chain.ErrGenesisMissing
	}
	defer state.ClearForkBlock()

	if !plan.Switch {
		m.publisher.Publish(events.TopicBlockDisregarded, events.BlockDisregarded{
			Block:  plan.Candidate.Block,
			Peer:   plan.Candidate.FromPeer,
			Reason: "local branch wins the fork choice",
		})
		m.metrics.ObserveResolved(false, 0)
		m.logger.Info("fork resolved in favour of the local branch",
			zap.String("candidate", plan.Candidate.Block.ID),
			zap.Uint64("tip", tip.Height),
		)
		return Resolution{NewTipHeight: tip.Height}, nil
	}

	if tip.Height < plan.Ancestor.Height {
		return Resolution{}, fmt.Errorf("%w: tip %d below ancestor %d", chain.ErrUnresolvableFork, tip.Height, plan.Ancestor.Height)
	}
	depth := tip.Height - plan.Ancestor.Height
	if depth > m.cfg.MaxRollbackDepth {
		return Resolution{}, m.tooDeep(tip.Height, plan.Ancestor.Height, plan.Candidate.FromPeer)
	}

	blocks, err := m.localBranch(ctx, state, plan.Ancestor.Height, tip.Height)
	if err != nil {
		return Resolution{}, err
	}
	if blocks[0].ID != plan.Ancestor.ID {
		return Resolution{}, fmt.Errorf("%w: local block at height %d is %s, ancestor is %s",
			chain.ErrUnresolvableFork, plan.Ancestor.Height, blocks[0].ID, plan.Ancestor.ID)
	}

	state.SetRollbackRemaining(depth)
	reverted := 0
	for i := len(blocks) - 1; i > 0; i-- {
		if err := m.revert(ctx, state, blocks[i], blocks[i-1]); err != nil {
			return Resolution{NewTipHeight: blocks[i].Height, Reverted: reverted}, err
		}
		reverted++
	}
	state.ResetLastDownloadedBlock()

	m.metrics.ObserveResolved(true, reverted)
	m.logger.Info("rolled back to common ancestor",
		zap.Uint64("ancestor", plan.Ancestor.Height),
		zap.Int("reverted", reverted),
		zap.Int("branch", len(plan.Branch)),
	)
	return Resolution{
		NewTipHeight: plan.Ancestor.Height,
		Reverted:     reverted,
		Branch:       plan.Branch,
		Switched:     true,
	}, nil
}

// localBranch returns the local blocks from height from up to the tip, in ascending order.
func (m *Manager) localBranch(ctx context.Context, state *chain.State, from, to uint64) ([]model.Block, error) {
	blocks := make([]model.Block, 0, to-from+1)
	missing := false
	for h := from; h <= to; h++ {
		b, ok := state.RecentBlock(h)
		if !ok {
			missing = true
			break
		}
		blocks = append(blocks, b)
	}
	if !missing {
		return blocks, nil
	}

	stored, err := m.store.GetBlocksByHeightRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load blocks %d-%d: %w", from, to, err)
	}
	if uint64(len(stored)) != to-from+1 {
		return nil, fmt.Errorf("load blocks %d-%d: got %d blocks", from, to, len(stored))
	}
	return stored, nil
}

func (m *Manager) revert(ctx context.Context, state *chain.State, block, parent model.Block) (err error) {
	started := time.Now()
	defer func() {
		m.metrics.ObserveRevert(err, block.Height, started)
	}()
	logger := m.logger.With(zap.String("block", block.ID), zap.Uint64("height", block.Height))

	if err := m.withRetry(ctx, func(ctx context.Context) error {
		return m.ledger.Revert(ctx, block)
	}); err != nil {
		return fmt.Errorf("revert block %s at height %d: %w", block.ID, block.Height, err)
	}
	if err := m.withRetry(ctx, func(ctx context.Context) error {
		return m.store.DeleteBlock(ctx, block)
	}); err != nil {
		return fmt.Errorf("delete block %s at height %d: %w", block.ID, block.Height, err)
	}
	if err := m.pool.OnBlockReverted(ctx, block); err != nil {
		logger.Warn("transaction pool update failed", zap.Error(err))
	}

	state.SetLastBlock(parent)
	state.ForgetTransactions(block)
	state.DecrementRollbackRemaining()
	m.publisher.Publish(events.TopicBlockReverted, events.BlockReverted{Block: block})

	logger.Debug("block reverted", zap.Uint64("remaining", state.RollbackRemaining()))
	return nil
}

func (m *Manager) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(m.cfg.RevertRetries, retry.NewExponential(m.cfg.RevertBackoff))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return err
		}
		return retry.RetryableError(err)
	})
}
