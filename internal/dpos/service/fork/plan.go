package fork

import "github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"

// Plan describes how to resolve one fork. It is computed off the event loop.
type Plan struct {
	Candidate model.QueueItem
	// Ancestor is the highest block both branches share.
	Ancestor model.BlockHeader
	// Branch holds the competing blocks above Ancestor in ascending height order.
	Branch []model.QueueItem
	// Switch is set when the competing branch wins the fork choice.
	Switch bool
	// Depth is the number of local blocks above Ancestor.
	Depth uint64
}

// Resolution is the outcome of applying a Plan to the chain state.
type Resolution struct {
	NewTipHeight uint64
	Reverted     int
	Branch       []model.QueueItem
	Switched     bool
}

// prefers reports whether the competing block wins over ours at the height
// right above the common ancestor. The smaller id wins, equal ids are the same block.
func prefers(theirs, ours model.Block) bool {
	return theirs.ID < ours.ID
}
