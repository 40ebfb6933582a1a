package netsync

import (
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

// ObserveFutureBlock keeps item until the tip catches up with it. Blocks more
// than MaxFutureGap above tipHeight are dropped.
func (c *Coordinator) ObserveFutureBlock(item model.QueueItem, tipHeight uint64) bool {
	height := item.Block.Height
	if height <= tipHeight+1 || height > tipHeight+c.cfg.MaxFutureGap {
		c.logger.Debug("future block outside the cached range",
			zap.String("block", item.Block.ID),
			zap.Uint64("height", height),
			zap.Uint64("tip", tipHeight),
		)
		return false
	}
	c.future.Add(height, item)
	c.metrics.ObserveFutureCache(c.future.Len())
	return true
}

// TakeFuture removes and returns the cached block at height.
func (c *Coordinator) TakeFuture(height uint64) (model.QueueItem, bool) {
	item, ok := c.future.Peek(height)
	if !ok {
		return model.QueueItem{}, false
	}
	c.future.Remove(height)
	c.metrics.ObserveFutureCache(c.future.Len())
	return item, true
}

// PruneFuture drops cached blocks at or below tipHeight.
func (c *Coordinator) PruneFuture(tipHeight uint64) int {
	var pruned int
	for _, height := range c.future.Keys() {
		if height <= tipHeight {
			c.future.Remove(height)
			pruned++
		}
	}
	if pruned > 0 {
		c.metrics.ObserveFutureCache(c.future.Len())
	}
	return pruned
}

// futureHint is the highest cached future height.
func (c *Coordinator) futureHint() uint64 {
	var hint uint64
	for _, height := range c.future.Keys() {
		hint = max(hint, height)
	}
	return hint
}
