package blockchain

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

// loadChain checks the genesis block and rebuilds the ledger from the stored
// blocks. Stored blocks that no longer chain are deleted.
func (s *Service) loadChain(ctx context.Context) error {
	if s.cfg.Nethash != "" && s.genesis.PayloadHash != s.cfg.Nethash {
		return fmt.Errorf("%w: payload hash %s, nethash %s", chain.ErrNethashMismatch, s.genesis.PayloadHash, s.cfg.Nethash)
	}
	if err := s.state.SetGenesis(s.genesis); err != nil && !errors.Is(err, chain.ErrGenesisAlreadySet) {
		return err
	}

	last, ok, err := s.store.LastBlock(ctx)
	if err != nil {
		return fmt.Errorf("load last block: %w", err)
	}
	if !ok {
		return s.saveGenesis(ctx)
	}

	logger := s.logger.With(zap.Uint64("stored_height", last.Height))
	logger.Info("replaying stored blocks")

	prev, err := s.replay(ctx, last.Height)
	if err != nil {
		return err
	}
	if prev.Height < last.Height {
		logger.Warn("stored chain is inconsistent, deleting blocks above the last valid one",
			zap.Uint64("valid_height", prev.Height),
			zap.String("valid_block", prev.ID),
		)
		if err := s.truncate(ctx, prev.Height, last.Height); err != nil {
			return err
		}
	}
	// A store holding only genesis is still a fresh network.
	s.state.SetBootstrapping(prev.Height == model.GenesisHeight)
	logger.Info("chain loaded", zap.Uint64("height", prev.Height), zap.String("block", prev.ID))
	return nil
}

func (s *Service) saveGenesis(ctx context.Context) error {
	if err := s.store.SaveBlock(ctx, s.genesis); err != nil {
		return fmt.Errorf("save genesis block: %w", err)
	}
	if err := s.ledger.Apply(ctx, s.genesis); err != nil {
		return fmt.Errorf("apply genesis block: %w", err)
	}
	s.state.SetLastBlock(s.genesis)
	s.state.SetBootstrapping(true)
	s.logger.Info("genesis block saved", zap.String("block", s.genesis.ID))
	return nil
}

// replay applies stored blocks from genesis up to height in chunks and returns
// the last block that chained and applied.
func (s *Service) replay(ctx context.Context, height uint64) (model.Block, error) {
	var (
		prev    model.Block
		started bool
	)
	for from := model.GenesisHeight; from <= height; from += s.cfg.ReplayChunkSize {
		to := min(from+s.cfg.ReplayChunkSize-1, height)
		blocks, err := s.store.GetBlocksByHeightRange(ctx, from, to)
		if err != nil {
			return model.Block{}, fmt.Errorf("load blocks %d-%d: %w", from, to, err)
		}

		for _, b := range blocks {
			if !started {
				if b.Height != model.GenesisHeight || b.ID != s.genesis.ID {
					return model.Block{}, fmt.Errorf("%w: stored genesis %s differs from %s", chain.ErrNethashMismatch, b.ID, s.genesis.ID)
				}
			} else if b.Height != prev.Height+1 || b.PreviousBlockID != prev.ID {
				s.logger.Warn("stored block does not chain",
					zap.String("block", b.ID),
					zap.Uint64("height", b.Height),
					zap.String("previous", b.PreviousBlockID),
				)
				return prev, nil
			}

			if err := s.ledger.Apply(ctx, b); err != nil {
				if !errors.Is(err, chain.ErrInvalidBlock) {
					return model.Block{}, fmt.Errorf("apply stored block %s: %w", b.ID, err)
				}
				if !started {
					return model.Block{}, fmt.Errorf("apply genesis block: %w", err)
				}
				s.logger.Warn("stored block does not apply", zap.String("block", b.ID), zap.Error(err))
				return prev, nil
			}
			s.state.SetLastBlock(b)
			s.state.CacheTransactions(b)
			prev = b
			started = true
		}
		if uint64(len(blocks)) < to-from+1 {
			break
		}
	}
	if !started {
		return model.Block{}, fmt.Errorf("%w: genesis block is not stored", chain.ErrGenesisMissing)
	}
	return prev, nil
}

// truncate deletes the stored blocks in (valid, last], highest first.
func (s *Service) truncate(ctx context.Context, valid, last uint64) error {
	blocks, err := s.store.GetBlocksByHeightRange(ctx, valid+1, last)
	if err != nil {
		return fmt.Errorf("load blocks %d-%d: %w", valid+1, last, err)
	}
	for i := len(blocks) - 1; i >= 0; i-- {
		if err := s.store.DeleteBlock(ctx, blocks[i]); err != nil {
			return fmt.Errorf("delete block %s: %w", blocks[i].ID, err)
		}
	}
	return nil
}
