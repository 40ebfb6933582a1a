// Package processor classifies queued blocks against the chain tip and applies,
// rejects or hands them over to fork recovery and network sync.
package processor

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

const defaultWorkerCount = 8

// Dependencies are the collaborators of a Processor. Delegates is optional.
type Dependencies struct {
	State        *chain.State
	Verifier     Verifier
	Ledger       Ledger
	Store        BlockStore
	Pool         TransactionPool
	Penalizer    PeerPenalizer
	Delegates    Delegates
	Slots        SlotClock
	Publisher    Publisher
	Forks        ForkSink
	FutureBlocks FutureBlockSink
	Metrics      Metrics
	// ExceptionBlockIDs skip block and transaction verification.
	ExceptionBlockIDs []string
	WorkerCount       int
}

// Processor runs on the event loop. It is the only writer of the chain state
// besides fork rollback.
type Processor struct {
	state      *chain.State
	verifier   Verifier
	exceptions map[string]struct{}
	metrics    Metrics
	logger     *zap.Logger

	accept        *acceptHandler
	duplicate     *exceptionHandler
	fork          *forkHandler
	future        *futureHandler
	invalid       *invalidHandler
	alreadyForged *alreadyForgedHandler
}

func NewProcessor(deps Dependencies, logger *zap.Logger) (*Processor, error) {
	switch {
	case deps.State == nil:
		return nil, errors.New("chain state is required")
	case deps.Verifier == nil:
		return nil, errors.New("verifier is required")
	case deps.Ledger == nil:
		return nil, errors.New("ledger is required")
	case deps.Store == nil:
		return nil, errors.New("block store is required")
	case deps.Pool == nil:
		return nil, errors.New("transaction pool is required")
	case deps.Penalizer == nil:
		return nil, errors.New("peer penalizer is required")
	case deps.Slots == nil:
		return nil, errors.New("slot clock is required")
	case deps.Publisher == nil:
		return nil, errors.New("publisher is required")
	case deps.Forks == nil:
		return nil, errors.New("fork sink is required")
	case deps.FutureBlocks == nil:
		return nil, errors.New("future block sink is required")
	case deps.Metrics == nil:
		return nil, errors.New("block processor metrics is required")
	}

	exceptions := make(map[string]struct{}, len(deps.ExceptionBlockIDs))
	for _, id := range deps.ExceptionBlockIDs {
		exceptions[id] = struct{}{}
	}
	workers := deps.WorkerCount
	if workers <= 0 {
		workers = defaultWorkerCount
	}

	alreadyForged := &alreadyForgedHandler{
		publisher: deps.Publisher,
		logger:    logger.Named("alreadyForgedHandler"),
	}
	return &Processor{
		state:      deps.State,
		verifier:   deps.Verifier,
		exceptions: exceptions,
		metrics:    deps.Metrics,
		logger:     logger,
		accept: &acceptHandler{
			state:         deps.State,
			verifier:      deps.Verifier,
			ledger:        deps.Ledger,
			store:         deps.Store,
			pool:          deps.Pool,
			penalizer:     deps.Penalizer,
			delegates:     deps.Delegates,
			slots:         deps.Slots,
			publisher:     deps.Publisher,
			metrics:       deps.Metrics,
			exceptions:    exceptions,
			workerCount:   workers,
			alreadyForged: alreadyForged,
			now:           time.Now,
			logger:        logger.Named("acceptHandler"),
		},
		duplicate: &exceptionHandler{
			state:  deps.State,
			store:  deps.Store,
			logger: logger.Named("exceptionHandler"),
		},
		fork: &forkHandler{
			state:     deps.State,
			publisher: deps.Publisher,
			sink:      deps.Forks,
			logger:    logger.Named("forkHandler"),
		},
		future: &futureHandler{
			state:  deps.State,
			sink:   deps.FutureBlocks,
			logger: logger.Named("futureHandler"),
		},
		invalid: &invalidHandler{
			publisher: deps.Publisher,
			logger:    logger.Named("invalidHandler"),
		},
		alreadyForged: alreadyForged,
	}, nil
}

// Process classifies item and runs the matching handler. Only Accepted moves the tip.
func (p *Processor) Process(ctx context.Context, item model.QueueItem) (result Result) {
	started := time.Now()
	c := classify(item.Block, p.state, p.verifier, p.exceptions)
	defer func() {
		p.metrics.ObserveProcess(c.kind.String(), result.String(), started)
	}()

	logger := p.logger.With(
		zap.String("block", item.Block.ID),
		zap.Uint64("height", item.Block.Height),
		zap.String("peer", string(item.FromPeer)),
		zap.String("source", string(item.Source)),
		zap.Stringer("classification", c.kind),
	)
	logger.Debug("processing block")

	switch c.kind {
	case NextInSequence:
		return p.accept.handle(ctx, item)
	case Duplicate:
		return p.duplicate.handle(ctx, item)
	case ForkCandidate:
		if result, stored := p.duplicate.handleStored(ctx, item); stored {
			c.kind = Duplicate
			return result
		}
		return p.fork.handle(ctx, item)
	case FutureGap:
		return p.future.handle(ctx, item)
	case Malformed:
		return p.invalid.handle(ctx, item, c.err)
	default:
		logger.Error("unknown classification")
		return Corrupted
	}
}
