package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

// DeleteBlock removes block and its transactions. The block row goes first so
// a half-finished delete never leaves a block without its transactions.
func (r *Repository) DeleteBlock(ctx context.Context, block model.Block) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("delete_block", err, start)
	}()

	if err = r.conn.Exec(ctx, `DELETE FROM chain_blocks WHERE id = ?`, block.ID); err != nil {
		return fmt.Errorf("delete block %s: %w", block.ID, err)
	}
	if err = r.conn.Exec(ctx, `DELETE FROM chain_transactions WHERE block_id = ?`, block.ID); err != nil {
		return fmt.Errorf("delete transactions of block %s: %w", block.ID, err)
	}
	return nil
}
