package model

// PeerID identifies a connected peer. The empty value means the node itself.
type PeerID string

// PeerInfo is what the peer network reports about a connected peer.
type PeerInfo struct {
	ID          PeerID
	Height      uint64
	LastBlockID string
}
