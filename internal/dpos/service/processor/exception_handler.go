package processor

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

// exceptionHandler deals with blocks the node already has.
type exceptionHandler struct {
	state  *chain.State
	store  BlockStore
	logger *zap.Logger
}

func (h *exceptionHandler) handle(ctx context.Context, item model.QueueItem) Result {
	block := item.Block
	logger := h.logger.With(zap.String("block", block.ID), zap.Uint64("height", block.Height))

	stored, err := h.store.HasBlock(ctx, block.ID)
	if err != nil {
		logger.Error("lookup duplicate block failed", zap.Error(err))
		return Exception
	}
	if stored {
		h.state.ResetLastDownloadedBlock()
		logger.Debug("duplicate block rejected")
		return Rejected
	}

	tip, ok := h.state.LastBlock()
	if !ok || tip.ID != block.ID {
		h.state.ResetLastDownloadedBlock()
		return Rejected
	}

	// The tip is applied but its write never landed.
	if err := h.store.SaveBlock(ctx, tip); err != nil {
		logger.Error("persist tip failed", zap.Error(err))
		return Exception
	}
	logger.Info("persisted missing tip block")
	return Accepted
}

// handleStored rejects a block at or below the tip that already sits in the
// store but has left the recent window. It reports false when item is not stored.
func (h *exceptionHandler) handleStored(ctx context.Context, item model.QueueItem) (Result, bool) {
	block := item.Block
	tip, ok := h.state.LastBlock()
	if !ok || block.Height > tip.Height {
		return Rejected, false
	}

	stored, err := h.store.HasBlock(ctx, block.ID)
	if err != nil {
		h.logger.Error("lookup ancestor block failed", zap.String("block", block.ID), zap.Error(err))
		return Exception, true
	}
	if !stored {
		return Rejected, false
	}
	h.state.ResetLastDownloadedBlock()
	h.logger.Debug("stored ancestor block rejected", zap.String("block", block.ID), zap.Uint64("height", block.Height))
	return Rejected, true
}
