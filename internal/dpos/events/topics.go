package events

import "github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"

const (
	TopicBlockApplied     = "chain.block_applied"
	TopicBlockReverted    = "chain.block_reverted"
	TopicBlockDisregarded = "chain.block_disregarded"
	TopicForkDetected     = "chain.fork_detected"
	TopicForkResolved     = "chain.fork_resolved"
	TopicNodeReady        = "chain.node_ready"
	TopicSyncStarting     = "chain.sync_starting"
	TopicSyncProgress     = "chain.sync_progress"
	TopicWalletUpdated    = "wallet.updated"
	TopicTerminated       = "chain.terminated"
)

type BlockApplied struct {
	Block model.Block
}

type BlockReverted struct {
	Block model.Block
}

// BlockDisregarded is published for blocks dropped without processing.
type BlockDisregarded struct {
	Block  model.Block
	Peer   model.PeerID
	Reason string
}

type ForkDetected struct {
	Block    model.Block
	Peer     model.PeerID
	AtHeight uint64
}

type ForkResolved struct {
	NewTipHeight uint64
	Reverted     int
	Switched     bool
}

// NodeReady is published when the node reaches Idle with no gap to the network.
type NodeReady struct {
	Height uint64
}

type SyncStarting struct {
	FromHeight    uint64
	NetworkHeight uint64
}

type SyncProgress struct {
	Downloaded    uint64
	NetworkHeight uint64
	BlocksPerMs   float64
}

// WalletUpdated is published by wallet setters in the same call as the mutation.
type WalletUpdated struct {
	PublicKey string
	Field     string
	Value     any
}

// Terminated is published once when the node stops. Err is nil on a clean stop.
type Terminated struct {
	Err error
}
