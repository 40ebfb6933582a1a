package chain

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	lru "github.com/hashicorp/golang-lru/v2"
)

// BlockPing counts how often the block currently being processed was received again.
type BlockPing struct {
	Block model.BlockHeader
	Count int
	First time.Time
	Last  time.Time
}

// State is the chain state of the node. It has a single owner, the event loop,
// and is not safe for concurrent use. Other components read a Snapshot.
type State struct {
	genesis           *model.Block
	lastBlock         *model.Block
	lastDownloaded    *model.Block
	forkBlock         *model.QueueItem
	rollbackRemaining uint64
	bootstrapping     bool
	started           bool
	noBlockCounter    int
	blockPing         *BlockPing

	// recent is contiguous by height and ends at lastBlock.
	recent        []model.Block
	maxLastBlocks int
	forged        *lru.Cache[string, uint64]
}

// NewState builds an empty State keeping maxLastBlocks recent blocks and
// remembering up to maxForgedTransactions forged transaction ids.
func NewState(maxLastBlocks, maxForgedTransactions int) (*State, error) {
	if maxLastBlocks <= 0 {
		return nil, fmt.Errorf("max last blocks must be positive, got %d", maxLastBlocks)
	}
	forged, err := lru.New[string, uint64](maxForgedTransactions)
	if err != nil {
		return nil, fmt.Errorf("init forged transactions cache: %w", err)
	}
	return &State{
		maxLastBlocks: maxLastBlocks,
		forged:        forged,
	}, nil
}

// SetGenesis records the genesis block. It can only be done once.
func (s *State) SetGenesis(block model.Block) error {
	if s.genesis != nil {
		return ErrGenesisAlreadySet
	}
	b := model.NewBlock(block)
	s.genesis = &b
	return nil
}

func (s *State) Genesis() (model.Block, bool) {
	if s.genesis == nil {
		return model.Block{}, false
	}
	return *s.genesis, true
}

func (s *State) IsGenesisID(id string) bool {
	return s.genesis != nil && s.genesis.ID == id
}

func (s *State) LastBlock() (model.Block, bool) {
	if s.lastBlock == nil {
		return model.Block{}, false
	}
	return *s.lastBlock, true
}

// SetLastBlock moves the tip to block. Recent blocks at or above its height are
// dropped first, so reverting to a parent trims the window.
func (s *State) SetLastBlock(block model.Block) {
	for len(s.recent) > 0 && s.recent[len(s.recent)-1].Height >= block.Height {
		s.recent = s.recent[:len(s.recent)-1]
	}
	if n := len(s.recent); n > 0 && s.recent[n-1].Height+1 != block.Height {
		s.recent = s.recent[:0]
	}
	s.recent = append(s.recent, block)
	if over := len(s.recent) - s.maxLastBlocks; over > 0 {
		s.recent = append(s.recent[:0:0], s.recent[over:]...)
	}
	b := block
	s.lastBlock = &b
}

// RecentBlocks returns the recent block window in ascending height order.
func (s *State) RecentBlocks() []model.Block {
	out := make([]model.Block, len(s.recent))
	copy(out, s.recent)
	return out
}

// RecentBlock returns the recent block at height, if it is still in the window.
func (s *State) RecentBlock(height uint64) (model.Block, bool) {
	return recentBlock(s.recent, height)
}

// KnowsBlockID reports whether id is the tip or one of the recent ancestors.
func (s *State) KnowsBlockID(id string) bool {
	return knowsBlockID(s.recent, id)
}

// LastDownloadedBlock falls back to the tip when nothing was downloaded past it.
func (s *State) LastDownloadedBlock() (model.Block, bool) {
	if s.lastDownloaded != nil {
		return *s.lastDownloaded, true
	}
	return s.LastBlock()
}

func (s *State) SetLastDownloadedBlock(block model.Block) {
	b := block
	s.lastDownloaded = &b
}

func (s *State) ResetLastDownloadedBlock() {
	s.lastDownloaded = nil
}

func (s *State) ForkBlock() (model.QueueItem, bool) {
	if s.forkBlock == nil {
		return model.QueueItem{}, false
	}
	return *s.forkBlock, true
}

func (s *State) SetForkBlock(item model.QueueItem) {
	it := item
	s.forkBlock = &it
}

func (s *State) ClearForkBlock() {
	s.forkBlock = nil
}

func (s *State) RollbackRemaining() uint64 {
	return s.rollbackRemaining
}

func (s *State) SetRollbackRemaining(n uint64) {
	s.rollbackRemaining = n
}

// DecrementRollbackRemaining counts one reverted block.
func (s *State) DecrementRollbackRemaining() {
	if s.rollbackRemaining > 0 {
		s.rollbackRemaining--
	}
}

func (s *State) Bootstrapping() bool {
	return s.bootstrapping
}

func (s *State) SetBootstrapping(v bool) {
	s.bootstrapping = v
}

// Started is true once the node reached the network tip for the first time.
func (s *State) Started() bool {
	return s.started
}

func (s *State) SetStarted() {
	s.started = true
}

func (s *State) NoBlockCounter() int {
	return s.noBlockCounter
}

func (s *State) IncrementNoBlockCounter() int {
	s.noBlockCounter++
	return s.noBlockCounter
}

func (s *State) ResetNoBlockCounter() {
	s.noBlockCounter = 0
}

// CacheTransactions remembers the transaction ids of an applied block.
func (s *State) CacheTransactions(block model.Block) {
	for _, tx := range block.Transactions {
		s.forged.Add(tx.ID, block.Height)
	}
}

// ForgetTransactions drops the transaction ids of a reverted block.
func (s *State) ForgetTransactions(block model.Block) {
	for _, tx := range block.Transactions {
		s.forged.Remove(tx.ID)
	}
}

// ForgedTransactions returns the ids among ids that are known to be forged.
func (s *State) ForgedTransactions(ids []string) []string {
	var out []string
	for _, id := range ids {
		if s.forged.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}

// PingBlock counts a repeated reception of the block being processed.
// It returns false when header is not that block.
func (s *State) PingBlock(header model.BlockHeader, now time.Time) bool {
	if s.blockPing == nil || s.blockPing.Block.ID != header.ID || s.blockPing.Block.Height != header.Height {
		return false
	}
	s.blockPing.Count++
	s.blockPing.Last = now
	return true
}

// PushPingBlock starts counting receptions of header.
func (s *State) PushPingBlock(header model.BlockHeader, now time.Time) {
	s.blockPing = &BlockPing{Block: header, Count: 1, First: now, Last: now}
}

func (s *State) BlockPing() (BlockPing, bool) {
	if s.blockPing == nil {
		return BlockPing{}, false
	}
	return *s.blockPing, true
}

// Snapshot copies the state for readers outside the event loop.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		RecentBlocks:      s.RecentBlocks(),
		RollbackRemaining: s.rollbackRemaining,
		Bootstrapping:     s.bootstrapping,
		Started:           s.started,
		NoBlockCounter:    s.noBlockCounter,
		ForkPending:       s.forkBlock != nil,
	}
	if s.genesis != nil {
		snap.Genesis = s.genesis.Header()
	}
	if s.lastBlock != nil {
		snap.LastBlock = *s.lastBlock
		snap.HasLastBlock = true
	}
	if b, ok := s.LastDownloadedBlock(); ok {
		snap.LastDownloadedBlock = b.Header()
	}
	return snap
}

func recentBlock(recent []model.Block, height uint64) (model.Block, bool) {
	if len(recent) == 0 {
		return model.Block{}, false
	}
	first := recent[0].Height
	if height < first || height > recent[len(recent)-1].Height {
		return model.Block{}, false
	}
	return recent[height-first], true
}

func knowsBlockID(recent []model.Block, id string) bool {
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].ID == id {
			return true
		}
	}
	return false
}
