package standalone

import (
	"context"
	"sync/atomic"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

var _ chain.TransactionPool = (*Pool)(nil)

// Pool stands in for the unconfirmed transaction pool. It keeps no
// transactions and only counts confirmations and returns.
type Pool struct {
	confirmed atomic.Uint64
	returned  atomic.Uint64
	logger    *zap.Logger
}

func NewPool(logger *zap.Logger) *Pool {
	return &Pool{logger: logger.Named("pool")}
}

func (p *Pool) OnBlockApplied(_ context.Context, block model.Block) error {
	p.confirmed.Add(uint64(len(block.Transactions)))
	return nil
}

// OnBlockReverted counts the reverted block transactions as returned to the pool.
func (p *Pool) OnBlockReverted(_ context.Context, block model.Block) error {
	if n := len(block.Transactions); n > 0 {
		p.returned.Add(uint64(n))
		p.logger.Debug("transactions returned", zap.String("block", block.ID), zap.Int("count", n))
	}
	return nil
}

func (p *Pool) Confirmed() uint64 { return p.confirmed.Load() }

func (p *Pool) Returned() uint64 { return p.returned.Load() }
