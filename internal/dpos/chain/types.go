// Package chain holds the chain state owned by the event loop, the error taxonomy,
// and the contracts of the collaborators the node drives.
package chain

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

type (
	// Verifier checks structure and signatures. Implementations are stateless.
	Verifier interface {
		VerifyBlock(block model.Block) error
		VerifyTransaction(tx model.Transaction) error
	}

	// Ledger applies and reverts the effects of one block. Both calls are atomic
	// and each is the exact inverse of the other.
	Ledger interface {
		Apply(ctx context.Context, block model.Block) error
		Revert(ctx context.Context, block model.Block) error
	}

	PeerNetwork interface {
		GetConnectedPeers(ctx context.Context) ([]model.PeerInfo, error)
		GetNetworkHeight(ctx context.Context) (uint64, error)
		RequestBlocks(ctx context.Context, peer model.PeerID, fromHeight, count uint64) ([]model.Block, error)
		BroadcastBlock(ctx context.Context, block model.Block) error
		PenalizePeer(ctx context.Context, peer model.PeerID, reason string) error
	}

	TransactionPool interface {
		OnBlockApplied(ctx context.Context, block model.Block) error
		OnBlockReverted(ctx context.Context, block model.Block) error
	}

	BlockStore interface {
		SaveBlock(ctx context.Context, block model.Block) error
		DeleteBlock(ctx context.Context, block model.Block) error
		LastBlock(ctx context.Context) (model.Block, bool, error)
		HasBlock(ctx context.Context, id string) (bool, error)
		// HasTransactions returns the subset of ids already stored in some block.
		HasTransactions(ctx context.Context, ids []string) ([]string, error)
		// GetCommonBlock returns the highest stored block whose id is among ids.
		GetCommonBlock(ctx context.Context, ids []string) (model.BlockHeader, bool, error)
		GetBlocksByHeightRange(ctx context.Context, from, to uint64) ([]model.Block, error)
	}

	// Delegates resolves which delegate owns a forging slot.
	Delegates interface {
		ForgerAt(ctx context.Context, height uint64, slot uint64) (string, error)
	}

	Publisher interface {
		Publish(topic string, payload any)
	}

	// View is the read-only part of the chain state used by classification.
	View interface {
		LastBlock() (model.Block, bool)
		KnowsBlockID(id string) bool
		IsGenesisID(id string) bool
	}
)
