package blockchain

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/fork"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/processor"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Processor interface {
		Process(ctx context.Context, item model.QueueItem) processor.Result
	}
	Synchronizer interface {
		CheckGap(ctx context.Context, tip model.BlockHeader) (bool, uint64, error)
		Behind(tipHeight, networkHeight uint64) bool
		LastNetworkHeight() uint64
		BeginSession(from model.BlockHeader, networkHeight uint64)
		Download(ctx context.Context, from model.BlockHeader) ([]model.QueueItem, error)
		TakeFuture(height uint64) (model.QueueItem, bool)
		PruneFuture(tipHeight uint64) int
		ExcludePeer(peer model.PeerID)
		Excluded(peer model.PeerID) bool
	}
	ForkResolver interface {
		Plan(ctx context.Context, snap chain.Snapshot, item model.QueueItem) (fork.Plan, error)
		Rollback(ctx context.Context, state *chain.State, plan fork.Plan) (fork.Resolution, error)
	}
	BlockStore interface {
		SaveBlock(ctx context.Context, block model.Block) error
		DeleteBlock(ctx context.Context, block model.Block) error
		LastBlock(ctx context.Context) (model.Block, bool, error)
		GetBlocksByHeightRange(ctx context.Context, from, to uint64) ([]model.Block, error)
	}
	Ledger interface {
		Apply(ctx context.Context, block model.Block) error
	}
	PeerNetwork interface {
		BroadcastBlock(ctx context.Context, block model.Block) error
		PenalizePeer(ctx context.Context, peer model.PeerID, reason string) error
	}
	SlotClock interface {
		IsFutureSlot(timestamp uint32) bool
		IsCurrentSlot(timestamp uint32) bool
	}
	Publisher interface {
		Publish(topic string, payload any)
	}
	Metrics interface {
		ObserveTransition(from, to, event string)
		ObserveAction(action string, err error, started time.Time)
		ObserveInbox(size int)
	}
	QueueMetrics interface {
		ObservePush(err error, items int)
		ObserveItem(source string, started time.Time)
		ObserveSize(size int)
	}
)
