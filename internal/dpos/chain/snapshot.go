package chain

import "github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"

// Snapshot is an immutable copy of State published after each transition.
type Snapshot struct {
	Genesis             model.BlockHeader
	LastBlock           model.Block
	HasLastBlock        bool
	LastDownloadedBlock model.BlockHeader
	RecentBlocks        []model.Block
	RollbackRemaining   uint64
	Bootstrapping       bool
	Started             bool
	NoBlockCounter      int
	ForkPending         bool
}

func (s Snapshot) Tip() (model.Block, bool) {
	return s.LastBlock, s.HasLastBlock
}

// RecentBlock returns the block at height if it is inside the recent window.
func (s Snapshot) RecentBlock(height uint64) (model.Block, bool) {
	return recentBlock(s.RecentBlocks, height)
}

func (s Snapshot) KnowsBlockID(id string) bool {
	return knowsBlockID(s.RecentBlocks, id)
}

func (s Snapshot) IsGenesisID(id string) bool {
	return id != "" && s.Genesis.ID == id
}
