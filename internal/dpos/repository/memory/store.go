// Package memory is a BlockStore kept in process memory. It backs tests and nodes started without ClickHouse.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

type Store struct {
	mu       sync.RWMutex
	byID     map[string]model.Block
	byHeight map[uint64]string
	txBlock  map[string]string
	last     uint64
	hasLast  bool
}

func NewStore() *Store {
	return &Store{
		byID:     make(map[string]model.Block),
		byHeight: make(map[uint64]string),
		txBlock:  make(map[string]string),
	}
}

// SaveBlock stores block. Saving the block already stored at its height is a no-op;
// saving a different block over an occupied height fails.
func (s *Store) SaveBlock(ctx context.Context, block model.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byHeight[block.Height]; ok {
		if id == block.ID {
			return nil
		}
		return fmt.Errorf("height %d already holds block %s", block.Height, id)
	}

	s.byID[block.ID] = model.NewBlock(block)
	s.byHeight[block.Height] = block.ID
	for _, tx := range block.Transactions {
		s.txBlock[tx.ID] = block.ID
	}
	if !s.hasLast || block.Height > s.last {
		s.last = block.Height
		s.hasLast = true
	}
	return nil
}

func (s *Store) DeleteBlock(ctx context.Context, block model.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[block.ID]
	if !ok {
		return fmt.Errorf("block %s not found", block.ID)
	}
	delete(s.byID, stored.ID)
	delete(s.byHeight, stored.Height)
	for _, tx := range stored.Transactions {
		if s.txBlock[tx.ID] == stored.ID {
			delete(s.txBlock, tx.ID)
		}
	}
	if s.hasLast && stored.Height == s.last {
		s.recomputeLast()
	}
	return nil
}

func (s *Store) recomputeLast() {
	s.hasLast = false
	s.last = 0
	for h := range s.byHeight {
		if !s.hasLast || h > s.last {
			s.last = h
			s.hasLast = true
		}
	}
}

func (s *Store) LastBlock(ctx context.Context) (model.Block, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Block{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasLast {
		return model.Block{}, false, nil
	}
	return model.NewBlock(s.byID[s.byHeight[s.last]]), true, nil
}

func (s *Store) HasBlock(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byID[id]
	return ok, nil
}

func (s *Store) HasTransactions(ctx context.Context, ids []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []string
	for _, id := range ids {
		if _, ok := s.txBlock[id]; ok {
			found = append(found, id)
		}
	}
	return found, nil
}

func (s *Store) GetCommonBlock(ctx context.Context, ids []string) (model.BlockHeader, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.BlockHeader{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best  model.BlockHeader
		found bool
	)
	for _, id := range ids {
		b, ok := s.byID[id]
		if !ok {
			continue
		}
		if !found || b.Height > best.Height {
			best = b.Header()
			found = true
		}
	}
	return best, found, nil
}

// GetBlocksByHeightRange returns the stored blocks with from <= height <= to in ascending order.
func (s *Store) GetBlocksByHeightRange(ctx context.Context, from, to uint64) ([]model.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if from > to {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Block
	if to-from < uint64(len(s.byHeight)) {
		for h := from; ; h++ {
			if id, ok := s.byHeight[h]; ok {
				out = append(out, model.NewBlock(s.byID[id]))
			}
			if h == to {
				break
			}
		}
		return out, nil
	}
	for h, id := range s.byHeight {
		if h >= from && h <= to {
			out = append(out, model.NewBlock(s.byID[id]))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Height < out[j].Height })
	return out, nil
}
