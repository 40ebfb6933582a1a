// Package audit archives chain lifecycle events.
package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/batcher"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultFlushSize         = 500
	DefaultFlushInterval     = 2 * time.Second
	DefaultRequestsPerSecond = 10
)

type Config struct {
	FlushSize         int
	FlushInterval     time.Duration
	RequestsPerSecond int
}

// Recorder turns bus events into chain_events rows and writes them in batches.
type Recorder struct {
	subscriber Subscriber
	writer     Writer
	cfg        Config
	now        func() time.Time
	logger     *zap.Logger

	mu       sync.Mutex
	ctx      context.Context
	batcher  *batcher.Batcher[model.ChainEvent]
	handlers map[string]any
	dropped  atomic.Uint64
}

func NewRecorder(subscriber Subscriber, writer Writer, cfg Config, logger *zap.Logger) (*Recorder, error) {
	switch {
	case subscriber == nil:
		return nil, errors.New("event subscriber is required")
	case writer == nil:
		return nil, errors.New("chain event writer is required")
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = DefaultFlushSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	return &Recorder{
		subscriber: subscriber,
		writer:     writer,
		cfg:        cfg,
		now:        time.Now,
		logger:     logger.Named("audit"),
	}, nil
}

// Start subscribes to the bus. Events are flushed until Stop or ctx cancellation.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.batcher != nil {
		return errors.New("audit recorder already started")
	}

	r.ctx = ctx
	r.batcher = batcher.New(r.logger, r.writer.InsertChainEvents, r.cfg.FlushSize, r.cfg.FlushInterval, r.cfg.RequestsPerSecond,
		batcher.WithFlushErrorHandler(func(err error, items []model.ChainEvent) {
			r.dropped.Add(uint64(len(items)))
		}))
	r.batcher.Start(ctx)

	r.handlers = map[string]any{
		events.TopicBlockApplied:     r.onBlockApplied,
		events.TopicBlockReverted:    r.onBlockReverted,
		events.TopicBlockDisregarded: r.onBlockDisregarded,
		events.TopicForkDetected:     r.onForkDetected,
		events.TopicForkResolved:     r.onForkResolved,
		events.TopicNodeReady:        r.onNodeReady,
	}
	for topic, fn := range r.handlers {
		if err := r.subscriber.SubscribeSerial(topic, fn); err != nil {
			return fmt.Errorf("audit %s: %w", topic, err)
		}
	}
	return nil
}

// Stop unsubscribes and flushes what is buffered.
func (r *Recorder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for topic, fn := range r.handlers {
		if err := r.subscriber.Unsubscribe(topic, fn); err != nil {
			r.logger.Warn("unsubscribe failed", zap.String("topic", topic), zap.Error(err))
		}
	}
	r.handlers = nil
	if r.batcher != nil {
		r.batcher.Stop()
	}
}

// Dropped is the number of events lost to failed writes.
func (r *Recorder) Dropped() uint64 {
	return r.dropped.Load()
}

func (r *Recorder) record(e model.ChainEvent) {
	e.ID = uuid.NewString()
	e.ObservedAt = r.now()
	if err := r.batcher.Add(r.ctx, e); err != nil {
		r.dropped.Add(1)
		r.logger.Warn("chain event not recorded", zap.String("type", string(e.Type)), zap.Error(err))
	}
}

func (r *Recorder) onBlockApplied(e events.BlockApplied) {
	r.record(model.ChainEvent{
		Type:    model.ChainEventBlockApplied,
		Height:  e.Block.Height,
		BlockID: e.Block.ID,
		Detail:  fmt.Sprintf("%d transactions", len(e.Block.Transactions)),
	})
}

func (r *Recorder) onBlockReverted(e events.BlockReverted) {
	r.record(model.ChainEvent{
		Type:    model.ChainEventBlockReverted,
		Height:  e.Block.Height,
		BlockID: e.Block.ID,
	})
}

func (r *Recorder) onBlockDisregarded(e events.BlockDisregarded) {
	r.record(model.ChainEvent{
		Type:    model.ChainEventBlockDisregarded,
		Height:  e.Block.Height,
		BlockID: e.Block.ID,
		Peer:    e.Peer,
		Detail:  e.Reason,
	})
}

func (r *Recorder) onForkDetected(e events.ForkDetected) {
	r.record(model.ChainEvent{
		Type:    model.ChainEventForkDetected,
		Height:  e.AtHeight,
		BlockID: e.Block.ID,
		Peer:    e.Peer,
		Detail:  "previous " + e.Block.PreviousBlockID,
	})
}

func (r *Recorder) onForkResolved(e events.ForkResolved) {
	r.record(model.ChainEvent{
		Type:   model.ChainEventForkResolved,
		Height: e.NewTipHeight,
		Detail: fmt.Sprintf("switched=%t reverted=%d", e.Switched, e.Reverted),
	})
}

func (r *Recorder) onNodeReady(e events.NodeReady) {
	r.record(model.ChainEvent{
		Type:   model.ChainEventNodeReady,
		Height: e.Height,
	})
}
