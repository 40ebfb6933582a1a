package processor

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Verifier interface {
		VerifyBlock(block model.Block) error
		VerifyTransaction(tx model.Transaction) error
	}
	Ledger interface {
		Apply(ctx context.Context, block model.Block) error
		Revert(ctx context.Context, block model.Block) error
	}
	BlockStore interface {
		SaveBlock(ctx context.Context, block model.Block) error
		HasBlock(ctx context.Context, id string) (bool, error)
		HasTransactions(ctx context.Context, ids []string) ([]string, error)
	}
	TransactionPool interface {
		OnBlockApplied(ctx context.Context, block model.Block) error
	}
	PeerPenalizer interface {
		PenalizePeer(ctx context.Context, peer model.PeerID, reason string) error
	}
	Delegates interface {
		ForgerAt(ctx context.Context, height uint64, slot uint64) (string, error)
	}
	Publisher interface {
		Publish(topic string, payload any)
	}
	// SlotClock answers slot questions about block timestamps.
	SlotClock interface {
		SlotNumber(timestamp uint32) uint64
		IsFutureSlot(timestamp uint32) bool
	}
	// ForkSink receives blocks classified as fork candidates.
	ForkSink interface {
		ForkDetected(item model.QueueItem, atHeight uint64)
	}
	// FutureBlockSink receives blocks too far ahead of the tip to apply.
	FutureBlockSink interface {
		ObserveFutureBlock(item model.QueueItem, tipHeight uint64) bool
	}
	Metrics interface {
		ObserveProcess(classification, result string, started time.Time)
		ObserveVerifyTransactions(err error, transactions int, started time.Time)
	}
)
