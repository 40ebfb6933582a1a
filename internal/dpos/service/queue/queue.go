// Package queue buffers blocks waiting to be processed and hands them one by one to a single consumer.
package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ef-ds/deque"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

var (
	ErrQueueFull = errors.New("processing queue is full")
	ErrStopped   = errors.New("processing queue is stopped")
)

// Queue is a bounded FIFO consumed by one goroutine. Items are handled in push order.
type Queue struct {
	mu       sync.Mutex
	items    deque.Deque
	capacity int
	paused   bool
	busy     bool
	started  bool
	stopped  bool
	timers   map[*time.Timer]struct{}

	wake    chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
	worker  Worker
	onDrain func()
	metrics Metrics
	logger  *zap.Logger
}

// New builds a Queue. onDrain is called from the consumer goroutine each time
// a processed item leaves the queue empty with no delayed push pending.
func New(capacity int, worker Worker, onDrain func(), metrics Metrics, logger *zap.Logger) (*Queue, error) {
	if capacity <= 0 {
		return nil, errors.New("queue capacity must be positive")
	}
	if worker == nil {
		return nil, errors.New("queue worker is required")
	}
	if metrics == nil {
		return nil, errors.New("processing queue metrics is required")
	}
	return &Queue{
		capacity: capacity,
		timers:   make(map[*time.Timer]struct{}),
		wake:     make(chan struct{}, 1),
		worker:   worker,
		onDrain:  onDrain,
		metrics:  metrics,
		logger:   logger,
	}, nil
}

// Start launches the consumer. Calling it again is a no-op.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.started || q.stopped {
		return
	}
	q.started = true
	ctx, q.cancel = context.WithCancel(ctx)
	q.done = make(chan struct{})
	go q.run(ctx)
}

// Stop waits for the item in progress and drops the rest, delayed pushes included.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	for t := range q.timers {
		t.Stop()
	}
	clear(q.timers)
	dropped := q.clearLocked()
	cancel, done := q.cancel, q.done
	q.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	q.logger.Debug("processing queue stopped", zap.Int("dropped", dropped))
}

func (q *Queue) Push(item model.QueueItem) error {
	return q.PushBulk([]model.QueueItem{item})
}

// PushBulk adds all items or none of them.
func (q *Queue) PushBulk(items []model.QueueItem) (err error) {
	defer func() {
		q.metrics.ObservePush(err, len(items))
	}()

	q.mu.Lock()
	err = q.pushLocked(items)
	size := q.items.Len()
	q.mu.Unlock()
	if err != nil {
		return err
	}

	q.metrics.ObserveSize(size)
	q.signal()
	return nil
}

func (q *Queue) pushLocked(items []model.QueueItem) error {
	switch {
	case q.stopped:
		return ErrStopped
	case q.items.Len()+len(items) > q.capacity:
		return ErrQueueFull
	}
	for _, item := range items {
		q.items.PushBack(item)
	}
	return nil
}

// PushDelayed pushes item after delay unless the queue is stopped first.
// The queue is not idle while the push is pending.
func (q *Queue) PushDelayed(delay time.Duration, item model.QueueItem) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		// One lock for both so the item is always counted by IsIdle.
		q.mu.Lock()
		delete(q.timers, t)
		err := q.pushLocked([]model.QueueItem{item})
		size := q.items.Len()
		q.mu.Unlock()

		q.metrics.ObservePush(err, 1)
		if err != nil {
			if !errors.Is(err, ErrStopped) {
				q.logger.Warn("delayed push failed", zap.String("block", item.Block.ID), zap.Error(err))
			}
			return
		}
		q.metrics.ObserveSize(size)
		q.signal()
	})
	q.timers[t] = struct{}{}
}

func (q *Queue) Pause() {
	q.mu.Lock()
	q.paused = true
	q.mu.Unlock()
}

func (q *Queue) Resume() {
	q.mu.Lock()
	q.paused = false
	q.mu.Unlock()
	q.signal()
}

func (q *Queue) Paused() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.paused
}

// Clear drops the pending items and returns how many were dropped.
// The item being processed is not affected.
func (q *Queue) Clear() int {
	q.mu.Lock()
	n := q.clearLocked()
	q.mu.Unlock()

	q.metrics.ObserveSize(0)
	return n
}

func (q *Queue) clearLocked() int {
	n := q.items.Len()
	for q.items.Len() > 0 {
		q.items.PopFront()
	}
	return n
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// IsIdle reports whether nothing is buffered, pending a delayed push or being processed.
func (q *Queue) IsIdle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len() == 0 && len(q.timers) == 0 && !q.busy
}

func (q *Queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) next() (model.QueueItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.paused || q.stopped {
		return model.QueueItem{}, false
	}
	v, ok := q.items.PopFront()
	if !ok {
		return model.QueueItem{}, false
	}
	q.busy = true
	return v.(model.QueueItem), true
}

func (q *Queue) run(ctx context.Context) {
	defer close(q.done)

	for {
		item, ok := q.next()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
				continue
			}
		}

		started := time.Now()
		q.worker(ctx, item)
		q.metrics.ObserveItem(string(item.Source), started)

		q.mu.Lock()
		q.busy = false
		drained := q.items.Len() == 0 && len(q.timers) == 0
		size := q.items.Len()
		q.mu.Unlock()
		q.metrics.ObserveSize(size)

		if ctx.Err() != nil {
			return
		}
		if drained && q.onDrain != nil {
			q.onDrain()
		}
	}
}
