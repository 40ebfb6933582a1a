package processor

import (
	"context"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

// invalidHandler drops malformed blocks. Penalizing the peer is left to the caller.
type invalidHandler struct {
	publisher Publisher
	logger    *zap.Logger
}

func (h *invalidHandler) handle(_ context.Context, item model.QueueItem, cause error) Result {
	reason := "malformed block"
	if cause != nil {
		reason = cause.Error()
	}
	h.logger.Warn("malformed block",
		zap.String("block", item.Block.ID),
		zap.Uint64("height", item.Block.Height),
		zap.String("peer", string(item.FromPeer)),
		zap.String("reason", reason),
	)
	h.publisher.Publish(events.TopicBlockDisregarded, events.BlockDisregarded{
		Block:  item.Block,
		Peer:   item.FromPeer,
		Reason: reason,
	})
	return Corrupted
}

type alreadyForgedHandler struct {
	publisher Publisher
	logger    *zap.Logger
}

func (h *alreadyForgedHandler) handle(item model.QueueItem, forged []string) Result {
	h.logger.Info("block carries already forged transactions",
		zap.String("block", item.Block.ID),
		zap.Uint64("height", item.Block.Height),
		zap.Strings("transactions", forged),
	)
	h.publisher.Publish(events.TopicBlockDisregarded, events.BlockDisregarded{
		Block:  item.Block,
		Peer:   item.FromPeer,
		Reason: "already forged transactions: " + strings.Join(forged, ","),
	})
	return DiscardedButBroadcastable
}
