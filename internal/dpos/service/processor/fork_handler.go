package processor

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

type forkHandler struct {
	state     *chain.State
	publisher Publisher
	sink      ForkSink
	logger    *zap.Logger
}

func (h *forkHandler) handle(_ context.Context, item model.QueueItem) Result {
	block := item.Block
	h.state.SetForkBlock(item)
	h.publisher.Publish(events.TopicForkDetected, events.ForkDetected{
		Block:    block,
		Peer:     item.FromPeer,
		AtHeight: block.Height,
	})
	h.sink.ForkDetected(item, block.Height)

	h.logger.Info("fork candidate detected",
		zap.String("block", block.ID),
		zap.Uint64("height", block.Height),
		zap.String("previous", block.PreviousBlockID),
		zap.String("peer", string(item.FromPeer)),
	)
	return AcceptedAsFork
}

type futureHandler struct {
	state  *chain.State
	sink   FutureBlockSink
	logger *zap.Logger
}

func (h *futureHandler) handle(_ context.Context, item model.QueueItem) Result {
	tip, _ := h.state.LastBlock()
	cached := h.sink.ObserveFutureBlock(item, tip.Height)
	h.logger.Debug("future block observed",
		zap.String("block", item.Block.ID),
		zap.Uint64("height", item.Block.Height),
		zap.Bool("cached", cached),
	)
	return DiscardedButBroadcastable
}
