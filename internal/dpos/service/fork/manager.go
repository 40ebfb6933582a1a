// Package fork finds the common ancestor of two competing branches, picks the
// winner and rolls the chain back to it.
package fork

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

const (
	DefaultMaxRollbackDepth uint64 = 5000
	DefaultAncestorWindow   uint64 = 100
	defaultRevertRetries    uint64 = 3
	defaultRevertBackoff           = 100 * time.Millisecond
)

type Config struct {
	MaxRollbackDepth uint64
	// AncestorWindow is how many blocks are requested per step of the peer walk.
	AncestorWindow uint64
	RevertRetries  uint64
	RevertBackoff  time.Duration
}

type Manager struct {
	store     BlockStore
	peers     PeerNetwork
	ledger    Ledger
	pool      TransactionPool
	publisher Publisher
	metrics   Metrics
	cfg       Config
	logger    *zap.Logger
}

func NewManager(
	store BlockStore,
	peers PeerNetwork,
	ledger Ledger,
	pool TransactionPool,
	publisher Publisher,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Manager, error) {
	switch {
	case store == nil:
		return nil, errors.New("block store is required")
	case peers == nil:
		return nil, errors.New("peer network is required")
	case ledger == nil:
		return nil, errors.New("ledger is required")
	case pool == nil:
		return nil, errors.New("transaction pool is required")
	case publisher == nil:
		return nil, errors.New("publisher is required")
	case metrics == nil:
		return nil, errors.New("fork manager metrics is required")
	}
	if cfg.MaxRollbackDepth == 0 {
		cfg.MaxRollbackDepth = DefaultMaxRollbackDepth
	}
	if cfg.AncestorWindow == 0 {
		cfg.AncestorWindow = DefaultAncestorWindow
	}
	if cfg.RevertRetries == 0 {
		cfg.RevertRetries = defaultRevertRetries
	}
	if cfg.RevertBackoff <= 0 {
		cfg.RevertBackoff = defaultRevertBackoff
	}
	return &Manager{
		store:     store,
		peers:     peers,
		ledger:    ledger,
		pool:      pool,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Plan locates the common ancestor of the local chain in snap and the branch
// of item, and decides which branch wins. It does not mutate anything.
func (m *Manager) Plan(ctx context.Context, snap chain.Snapshot, item model.QueueItem) (plan Plan, err error) {
	started := time.Now()
	defer func() {
		m.metrics.ObservePlan(err, plan.Depth, started)
	}()

	tip, ok := snap.Tip()
	if !ok {
		return Plan{}, chain.ErrGenesisMissing
	}
	logger := m.logger.With(
		zap.String("candidate", item.Block.ID),
		zap.Uint64("height", item.Block.Height),
		zap.Uint64("tip", tip.Height),
		zap.String("peer", string(item.FromPeer)),
	)

	ancestor, branch, err := m.findAncestor(ctx, tip, snap, item)
	if err != nil {
		return Plan{}, err
	}

	if ancestor.Height > tip.Height {
		return Plan{}, fmt.Errorf("%w: ancestor %s at height %d is above the tip", chain.ErrUnresolvableFork, ancestor.ID, ancestor.Height)
	}
	plan = Plan{
		Candidate: item,
		Ancestor:  ancestor,
		Branch:    branch,
		Depth:     tip.Height - ancestor.Height,
	}
	if plan.Depth > m.cfg.MaxRollbackDepth {
		return plan, m.tooDeep(tip.Height, ancestor.Height, item.FromPeer)
	}

	if plan.Depth == 0 {
		plan.Switch = true
		logger.Info("competing branch extends the tip", zap.Int("branch", len(branch)))
		return plan, nil
	}

	ours, err := m.blockAt(ctx, snap, ancestor.Height+1)
	if err != nil {
		return plan, fmt.Errorf("load local block above ancestor: %w", err)
	}
	plan.Switch = prefers(branch[0].Block, ours)

	logger.Info("fork planned",
		zap.Uint64("ancestor", ancestor.Height),
		zap.Uint64("depth", plan.Depth),
		zap.Bool("switch", plan.Switch),
		zap.String("ours", ours.ID),
		zap.String("theirs", branch[0].Block.ID),
	)
	return plan, nil
}

func (m *Manager) findAncestor(
	ctx context.Context,
	tip model.Block,
	snap chain.Snapshot,
	item model.QueueItem,
) (model.BlockHeader, []model.QueueItem, error) {
	candidate := item.Block
	branch := []model.QueueItem{item}
	if candidate.Height == model.GenesisHeight {
		return model.BlockHeader{}, nil, fmt.Errorf("%w: competing genesis block %s", chain.ErrUnresolvableFork, candidate.ID)
	}

	parent := candidate.PreviousBlockID
	parentHeight := candidate.Height - 1
	for {
		if header, ok := m.localAncestor(snap, parent); ok && header.Height == parentHeight {
			return header, branch, nil
		}
		header, found, err := m.store.GetCommonBlock(ctx, []string{parent})
		if err != nil {
			return model.BlockHeader{}, nil, fmt.Errorf("get common block: %w", err)
		}
		if found && header.Height == parentHeight {
			return header, branch, nil
		}

		if item.FromPeer == "" {
			return model.BlockHeader{}, nil, fmt.Errorf("%w: parent %s of local block %s is unknown",
				chain.ErrUnresolvableFork, parent, candidate.ID)
		}
		if parentHeight == model.GenesisHeight {
			return model.BlockHeader{}, nil, fmt.Errorf("%w: peer %s is on a different genesis",
				chain.ErrUnresolvableFork, item.FromPeer)
		}
		if tip.Height > parentHeight && tip.Height-parentHeight >= m.cfg.MaxRollbackDepth {
			return model.BlockHeader{}, nil, m.tooDeep(tip.Height, parentHeight, item.FromPeer)
		}

		fetched, err := m.fetchWindow(ctx, item.FromPeer, parent, parentHeight)
		if err != nil {
			return model.BlockHeader{}, nil, err
		}
		for i := len(fetched) - 1; i >= 0; i-- {
			branch = append([]model.QueueItem{model.NewQueueItem(fetched[i], item.FromPeer, model.SourceFork, item.ReceivedAt)}, branch...)
		}
		lowest := fetched[0]
		parent = lowest.PreviousBlockID
		parentHeight = lowest.Height - 1

		// A fetched block may already be part of our chain.
		ids := make([]string, 0, len(fetched))
		for _, b := range fetched {
			ids = append(ids, b.ID)
		}
		header, found, err = m.store.GetCommonBlock(ctx, ids)
		if err != nil {
			return model.BlockHeader{}, nil, fmt.Errorf("get common block: %w", err)
		}
		if found {
			for len(branch) > 0 && branch[0].Block.Height <= header.Height {
				branch = branch[1:]
			}
			return header, branch, nil
		}
	}
}

// fetchWindow asks peer for the blocks ending at height, the last of which must have id.
// The result is chained and in ascending order.
func (m *Manager) fetchWindow(ctx context.Context, peer model.PeerID, id string, height uint64) ([]model.Block, error) {
	from := uint64(1)
	if height > m.cfg.AncestorWindow {
		from = height - m.cfg.AncestorWindow + 1
	}
	blocks, err := m.peers.RequestBlocks(ctx, peer, from, height-from+1)
	if err != nil {
		return nil, fmt.Errorf("request blocks %d-%d from %s: %w", from, height, peer, err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: peer %s returned no blocks below %d", chain.ErrUnresolvableFork, peer, height+1)
	}
	for i, b := range blocks {
		if b.Height != from+uint64(i) {
			return nil, fmt.Errorf("peer %s returned block %s at height %d, expected %d", peer, b.ID, b.Height, from+uint64(i))
		}
		if i > 0 && b.PreviousBlockID != blocks[i-1].ID {
			return nil, fmt.Errorf("peer %s returned unchained block %s at height %d", peer, b.ID, b.Height)
		}
	}
	if last := blocks[len(blocks)-1]; last.Height != height || last.ID != id {
		return nil, fmt.Errorf("peer %s does not serve block %s at height %d", peer, id, height)
	}
	return blocks, nil
}

func (m *Manager) localAncestor(snap chain.Snapshot, id string) (model.BlockHeader, bool) {
	if snap.IsGenesisID(id) {
		return snap.Genesis, true
	}
	for i := len(snap.RecentBlocks) - 1; i >= 0; i-- {
		if snap.RecentBlocks[i].ID == id {
			return snap.RecentBlocks[i].Header(), true
		}
	}
	return model.BlockHeader{}, false
}

func (m *Manager) blockAt(ctx context.Context, snap chain.Snapshot, height uint64) (model.Block, error) {
	if b, ok := snap.RecentBlock(height); ok {
		return b, nil
	}
	blocks, err := m.store.GetBlocksByHeightRange(ctx, height, height)
	if err != nil {
		return model.Block{}, err
	}
	if len(blocks) == 0 {
		return model.Block{}, fmt.Errorf("block at height %d not stored", height)
	}
	return blocks[0], nil
}

func (m *Manager) tooDeep(tipHeight, ancestorHeight uint64, peer model.PeerID) error {
	return &chain.ForkTooDeepError{
		TipHeight:      tipHeight,
		AncestorHeight: ancestorHeight,
		Peer:           peer,
		Depth:          tipHeight - ancestorHeight,
		MaxDepth:       m.cfg.MaxRollbackDepth,
	}
}
