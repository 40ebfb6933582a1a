package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/workerpool"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

type acceptHandler struct {
	state         *chain.State
	verifier      Verifier
	ledger        Ledger
	store         BlockStore
	pool          TransactionPool
	penalizer     PeerPenalizer
	delegates     Delegates
	slots         SlotClock
	publisher     Publisher
	metrics       Metrics
	exceptions    map[string]struct{}
	workerCount   int
	alreadyForged *alreadyForgedHandler
	now           func() time.Time
	logger        *zap.Logger
}

func (h *acceptHandler) handle(ctx context.Context, item model.QueueItem) Result {
	block := item.Block
	logger := h.logger.With(zap.String("block", block.ID), zap.Uint64("height", block.Height))

	if err := h.checkMilestone(ctx, block); err != nil {
		if errors.Is(err, chain.ErrInvalidBlock) {
			logger.Warn("block rejected", zap.Error(err))
			h.penalize(ctx, item, err)
			return Rejected
		}
		logger.Error("milestone check failed", zap.Error(err))
		return Exception
	}

	forged, err := h.forgedTransactions(ctx, block)
	if err != nil {
		logger.Error("check forged transactions failed", zap.Error(err))
		return Exception
	}
	if len(forged) > 0 {
		return h.alreadyForged.handle(item, forged)
	}

	if _, skip := h.exceptions[block.ID]; !skip {
		if err := h.verifyTransactions(ctx, block); err != nil {
			if ctx.Err() != nil {
				return Exception
			}
			logger.Warn("block rejected", zap.Error(err))
			h.penalize(ctx, item, err)
			return Rejected
		}
	}

	if err := h.ledger.Apply(ctx, block); err != nil {
		if errors.Is(err, chain.ErrInvalidBlock) {
			logger.Warn("block rejected by ledger", zap.Error(err))
			h.penalize(ctx, item, err)
			return Rejected
		}
		logger.Error("apply block failed", zap.Error(err))
		return Exception
	}

	if err := h.store.SaveBlock(ctx, block); err != nil {
		logger.Error("save block failed, reverting ledger", zap.Error(err))
		if revertErr := h.ledger.Revert(context.WithoutCancel(ctx), block); revertErr != nil {
			logger.Error("revert after failed save failed", zap.Error(revertErr))
		}
		return Exception
	}

	h.state.SetLastBlock(block)
	h.state.CacheTransactions(block)
	h.state.PushPingBlock(block.Header(), h.now())
	if h.state.Bootstrapping() {
		h.state.SetBootstrapping(false)
		logger.Info("first block after genesis applied")
	}

	if err := h.pool.OnBlockApplied(ctx, block); err != nil {
		logger.Warn("transaction pool update failed", zap.Error(err))
	}
	h.publisher.Publish(events.TopicBlockApplied, events.BlockApplied{Block: block})

	logger.Debug("block applied", zap.Int("transactions", len(block.Transactions)))
	return Accepted
}

// checkMilestone validates the block timestamp and forger against the tip and the slot clock.
func (h *acceptHandler) checkMilestone(ctx context.Context, block model.Block) error {
	tip, ok := h.state.LastBlock()
	if ok && !tip.IsGenesis() && block.Timestamp <= tip.Timestamp {
		return chain.NewVerificationError("timestamp",
			fmt.Errorf("timestamp %d not after tip timestamp %d", block.Timestamp, tip.Timestamp))
	}
	if h.slots.IsFutureSlot(block.Timestamp) {
		return chain.NewVerificationError("timestamp", fmt.Errorf("timestamp %d is in a future slot", block.Timestamp))
	}
	if h.delegates == nil {
		return nil
	}

	forger, err := h.delegates.ForgerAt(ctx, block.Height, h.slots.SlotNumber(block.Timestamp))
	if err != nil {
		return fmt.Errorf("resolve slot forger: %w", err)
	}
	if forger != block.GeneratorPublicKey {
		return chain.NewVerificationError("generator",
			fmt.Errorf("slot belongs to %s, block forged by %s", forger, block.GeneratorPublicKey))
	}
	return nil
}

func (h *acceptHandler) forgedTransactions(ctx context.Context, block model.Block) ([]string, error) {
	ids := block.TransactionIDs()
	if len(ids) == 0 {
		return nil, nil
	}
	if cached := h.state.ForgedTransactions(ids); len(cached) > 0 {
		return cached, nil
	}
	return h.store.HasTransactions(ctx, ids)
}

// verifyTransactions checks every signature on the worker pool and returns once all are done.
func (h *acceptHandler) verifyTransactions(ctx context.Context, block model.Block) (err error) {
	if len(block.Transactions) == 0 {
		return nil
	}
	started := time.Now()
	defer func() {
		h.metrics.ObserveVerifyTransactions(err, len(block.Transactions), started)
	}()

	_, errs := workerpool.Map(ctx, h.workerCount, block.Transactions,
		func(_ context.Context, tx model.Transaction) (struct{}, error) {
			return struct{}{}, h.verifier.VerifyTransaction(tx)
		})

	var result *multierror.Error
	for _, e := range errs {
		if e != nil {
			result = multierror.Append(result, e)
		}
	}
	return result.ErrorOrNil()
}

func (h *acceptHandler) penalize(ctx context.Context, item model.QueueItem, cause error) {
	if item.FromPeer == "" {
		return
	}
	if err := h.penalizer.PenalizePeer(ctx, item.FromPeer, cause.Error()); err != nil {
		h.logger.Warn("penalize peer failed", zap.String("peer", string(item.FromPeer)), zap.Error(err))
	}
}
