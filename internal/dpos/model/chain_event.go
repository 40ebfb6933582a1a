package model

import "time"

// ChainEventType names an entry of the chain audit trail.
type ChainEventType string

var (
	ChainEventBlockApplied     ChainEventType = "block_applied"
	ChainEventBlockReverted    ChainEventType = "block_reverted"
	ChainEventBlockDisregarded ChainEventType = "block_disregarded"
	ChainEventForkDetected     ChainEventType = "fork_detected"
	ChainEventForkResolved     ChainEventType = "fork_resolved"
	ChainEventNodeReady        ChainEventType = "node_ready"
)

// ChainEvent is one row of the chain audit trail.
type ChainEvent struct {
	ID         string
	Type       ChainEventType
	Height     uint64
	BlockID    string
	Peer       PeerID
	Detail     string
	ObservedAt time.Time
}
