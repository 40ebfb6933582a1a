// Package blockchain runs the chain synchronization state machine. A single
// event loop owns the chain state: it applies transitions, executes their
// actions and processes queued blocks. Network I/O runs on goroutines that
// report back through the inbox.
package blockchain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/machine"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/queue"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

type Config struct {
	// Nethash is the expected genesis payload hash. Empty skips the check.
	Nethash             string
	QueueCapacity       int
	QueuePauseThreshold int
	MaxStorageRetries   int
	StorageRetryDelay   time.Duration
	// MaxNoBlockRounds is how many empty download rounds make the node suspect a halted network.
	MaxNoBlockRounds   int
	WakeUpBackoff      time.Duration
	MaxWakeUpInterval  time.Duration
	LongWakeUpInterval time.Duration
	IdleInterval       time.Duration
	ReplayChunkSize    uint64
}

func (c Config) withDefaults() Config {
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = DefaultQueueCapacity
	}
	if c.QueuePauseThreshold <= 0 {
		c.QueuePauseThreshold = min(DefaultQueuePauseThreshold, c.QueueCapacity)
	}
	if c.MaxStorageRetries <= 0 {
		c.MaxStorageRetries = DefaultMaxStorageRetries
	}
	if c.StorageRetryDelay <= 0 {
		c.StorageRetryDelay = DefaultStorageRetryDelay
	}
	if c.MaxNoBlockRounds <= 0 {
		c.MaxNoBlockRounds = DefaultMaxNoBlockRounds
	}
	if c.WakeUpBackoff <= 0 {
		c.WakeUpBackoff = DefaultWakeUpBackoff
	}
	if c.MaxWakeUpInterval <= 0 {
		c.MaxWakeUpInterval = DefaultMaxWakeUpInterval
	}
	if c.LongWakeUpInterval <= 0 {
		c.LongWakeUpInterval = DefaultLongWakeUpInterval
	}
	if c.IdleInterval <= 0 {
		c.IdleInterval = DefaultIdleInterval
	}
	if c.ReplayChunkSize == 0 {
		c.ReplayChunkSize = DefaultReplayChunkSize
	}
	return c
}

// Dependencies are the collaborators of a Service. Inbox must be the fork
// sink of Processor so that forks found while processing reach the machine.
type Dependencies struct {
	State        *chain.State
	Genesis      model.Block
	Inbox        *Inbox
	Processor    Processor
	Sync         Synchronizer
	Forks        ForkResolver
	Store        BlockStore
	Ledger       Ledger
	Peers        PeerNetwork
	Slots        SlotClock
	Publisher    Publisher
	Metrics      Metrics
	QueueMetrics QueueMetrics
}

type Service struct {
	state     *chain.State
	genesis   model.Block
	inbox     *Inbox
	processor Processor
	sync      Synchronizer
	forks     ForkResolver
	store     BlockStore
	ledger    Ledger
	peers     PeerNetwork
	slots     SlotClock
	publisher Publisher
	metrics   Metrics
	queue     *queue.Queue
	wake      *clock.WakeTimer
	cfg       Config
	now       func() time.Time
	logger    *zap.Logger

	exec     chan execRequest
	snapshot atomic.Pointer[chain.Snapshot]
	current  atomic.Int32
	running  atomic.Bool
	tasks    sync.WaitGroup

	// Owned by the event loop.
	retries map[string]int
	backoff retry.Backoff
	fatal   error
}

type execRequest struct {
	item model.QueueItem
	done chan struct{}
}

func NewService(deps Dependencies, cfg Config, logger *zap.Logger) (*Service, error) {
	switch {
	case deps.State == nil:
		return nil, errors.New("chain state is required")
	case deps.Genesis.ID == "":
		return nil, errors.New("genesis block is required")
	case deps.Inbox == nil:
		return nil, errors.New("inbox is required")
	case deps.Processor == nil:
		return nil, errors.New("block processor is required")
	case deps.Sync == nil:
		return nil, errors.New("network sync is required")
	case deps.Forks == nil:
		return nil, errors.New("fork resolver is required")
	case deps.Store == nil:
		return nil, errors.New("block store is required")
	case deps.Ledger == nil:
		return nil, errors.New("ledger is required")
	case deps.Peers == nil:
		return nil, errors.New("peer network is required")
	case deps.Slots == nil:
		return nil, errors.New("slot clock is required")
	case deps.Publisher == nil:
		return nil, errors.New("publisher is required")
	case deps.Metrics == nil:
		return nil, errors.New("state machine metrics is required")
	case deps.QueueMetrics == nil:
		return nil, errors.New("processing queue metrics is required")
	}
	cfg = cfg.withDefaults()
	logger = logger.Named("blockchain")

	s := &Service{
		state:     deps.State,
		genesis:   model.NewBlock(deps.Genesis),
		inbox:     deps.Inbox,
		processor: deps.Processor,
		sync:      deps.Sync,
		forks:     deps.Forks,
		store:     deps.Store,
		ledger:    deps.Ledger,
		peers:     deps.Peers,
		slots:     deps.Slots,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
		exec:      make(chan execRequest),
		retries:   make(map[string]int),
	}
	s.wake = clock.NewWakeTimer(func() { s.Dispatch(machine.WakeUp()) })

	q, err := queue.New(cfg.QueueCapacity, s.work, s.drained, deps.QueueMetrics, logger.Named("queue"))
	if err != nil {
		return nil, fmt.Errorf("init processing queue: %w", err)
	}
	s.queue = q
	s.resetBackoff()
	s.publishSnapshot()
	return s, nil
}

// Run drives the node until Stop, a fatal failure or ctx cancellation.
// It returns the fatal failure, or ctx.Err() when ctx was canceled.
func (s *Service) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("blockchain service already running")
	}
	ctx, cancel := context.WithCancel(ctx)

	s.queue.Start(ctx)
	s.Dispatch(machine.Start())
	err := s.loop(ctx)

	s.wake.Stop()
	cancel()
	s.queue.Stop()
	s.tasks.Wait()

	s.publisher.Publish(events.TopicTerminated, events.Terminated{Err: err})
	s.logger.Info("blockchain service stopped", zap.Error(err))
	return err
}

// Stop asks the loop to terminate. The current block finishes first.
func (s *Service) Stop() {
	s.Dispatch(machine.Stop())
}

func (s *Service) Dispatch(e machine.Event) {
	s.inbox.Dispatch(e)
}

// Snapshot returns the chain state published after the last transition.
func (s *Service) Snapshot() chain.Snapshot {
	return *s.snapshot.Load()
}

// State returns the current machine state.
func (s *Service) State() machine.State {
	return machine.State(s.current.Load())
}

// HandleIncomingBlock takes a block forged locally (from empty) or received from a peer.
func (s *Service) HandleIncomingBlock(block model.Block, from model.PeerID) {
	logger := s.logger.With(
		zap.String("block", block.ID),
		zap.Uint64("height", block.Height),
		zap.String("peer", string(from)),
	)
	if s.slots.IsFutureSlot(block.Timestamp) {
		logger.Debug("block from a future slot dropped")
		s.disregard(block, from, "block is from a future slot")
		return
	}
	if !s.Snapshot().Started {
		logger.Debug("node not started, block disregarded")
		s.disregard(block, from, "node has not started")
		return
	}

	source := model.SourceGossip
	if from == "" {
		source = model.SourceLocal
	}
	s.Dispatch(machine.NewBlock(model.NewQueueItem(block, from, source, s.now())))
}

// ForceWakeup makes an idle or syncing node check the network right away.
func (s *Service) ForceWakeup() {
	s.Dispatch(machine.WakeUp())
}

// ForkBlock starts fork recovery against block as if the processor had found it.
func (s *Service) ForkBlock(block model.Block, from model.PeerID) {
	s.Dispatch(machine.ForkDetected(model.NewQueueItem(block, from, model.SourceFork, s.now()), block.Height))
}

func (s *Service) loop(ctx context.Context) error {
	for {
		if e, ok := s.inbox.pop(); ok {
			if s.handle(ctx, e) {
				return s.fatal
			}
			continue
		}

		select {
		case <-ctx.Done():
			s.handle(ctx, machine.Stop())
			return ctx.Err()
		case <-s.inbox.signal:
		case req := <-s.exec:
			s.process(ctx, req.item)
			close(req.done)
		}
	}
}

// handle runs one transition and its actions. It reports whether the machine terminated.
func (s *Service) handle(ctx context.Context, e machine.Event) bool {
	if e.Kind == machine.EventProcessFinished {
		e.Behind = s.behind()
	}
	from := s.State()
	next, actions := machine.Transition(from, e)
	s.current.Store(int32(next))
	s.metrics.ObserveTransition(from.String(), next.String(), e.Kind.String())
	s.metrics.ObserveInbox(s.inbox.Len())

	if from != next {
		s.logger.Debug("state transition",
			zap.Stringer("from", from),
			zap.Stringer("to", next),
			zap.Stringer("event", e),
		)
	}
	for _, a := range actions {
		started := time.Now()
		err := s.run(ctx, a, e)
		s.metrics.ObserveAction(a.String(), err, started)
		if err != nil {
			s.logger.Warn("action failed", zap.Stringer("action", a), zap.Error(err))
		}
	}
	s.publishSnapshot()
	return next == machine.Terminating
}

func (s *Service) behind() bool {
	tip, ok := s.state.LastBlock()
	if !ok {
		return true
	}
	return s.sync.Behind(tip.Height, s.sync.LastNetworkHeight())
}

func (s *Service) publishSnapshot() {
	snap := s.state.Snapshot()
	s.snapshot.Store(&snap)
}

// goAsync runs fn off the loop. fn reports back with Dispatch.
func (s *Service) goAsync(ctx context.Context, fn func(ctx context.Context)) {
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		fn(ctx)
	}()
}

// dispatchFrom reports the outcome of background work unless the loop is shutting down.
func (s *Service) dispatchFrom(ctx context.Context, e machine.Event) {
	if ctx.Err() != nil {
		return
	}
	s.Dispatch(e)
}

func (s *Service) disregard(block model.Block, from model.PeerID, reason string) {
	s.publisher.Publish(events.TopicBlockDisregarded, events.BlockDisregarded{
		Block:  block,
		Peer:   from,
		Reason: reason,
	})
}

func (s *Service) resetBackoff() {
	s.backoff = retry.WithCappedDuration(s.cfg.MaxWakeUpInterval, retry.NewExponential(s.cfg.WakeUpBackoff))
}
