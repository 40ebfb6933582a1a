package model

import "time"

// Source tells where a queued block came from.
type Source string

var (
	SourceLocal    Source = "local"
	SourceGossip   Source = "gossip"
	SourceDownload Source = "download"
	SourceFork     Source = "fork"
)

// QueueItem wraps a block with its provenance while it waits in the processing queue.
type QueueItem struct {
	Block      Block
	FromPeer   PeerID
	ReceivedAt time.Time
	Source     Source
}

// NewQueueItem builds a QueueItem received now.
func NewQueueItem(block Block, from PeerID, source Source, now time.Time) QueueItem {
	return QueueItem{
		Block:      NewBlock(block),
		FromPeer:   from,
		ReceivedAt: now,
		Source:     source,
	}
}
