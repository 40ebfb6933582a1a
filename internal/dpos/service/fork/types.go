package fork

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockStore interface {
		GetCommonBlock(ctx context.Context, ids []string) (model.BlockHeader, bool, error)
		GetBlocksByHeightRange(ctx context.Context, from, to uint64) ([]model.Block, error)
		DeleteBlock(ctx context.Context, block model.Block) error
	}
	PeerNetwork interface {
		RequestBlocks(ctx context.Context, peer model.PeerID, fromHeight, count uint64) ([]model.Block, error)
	}
	Ledger interface {
		Revert(ctx context.Context, block model.Block) error
	}
	TransactionPool interface {
		OnBlockReverted(ctx context.Context, block model.Block) error
	}
	Publisher interface {
		Publish(topic string, payload any)
	}
	Metrics interface {
		ObservePlan(err error, depth uint64, started time.Time)
		ObserveRevert(err error, height uint64, started time.Time)
		ObserveResolved(switched bool, reverted int)
	}
)
