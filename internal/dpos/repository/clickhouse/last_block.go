package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

// LastBlock returns the highest stored block.
func (r *Repository) LastBlock(ctx context.Context) (block model.Block, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("last_block", err, start)
	}()

	const query = `
SELECT` + blockColumns + `
FROM chain_blocks
ORDER BY height DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return model.Block{}, false, fmt.Errorf("query last block: %w", err)
	}
	stored, err := scanBlocks(rows)
	if err != nil {
		return model.Block{}, false, err
	}
	if len(stored) == 0 {
		return model.Block{}, false, nil
	}

	blocks, err := r.withTransactions(ctx, stored)
	if err != nil {
		return model.Block{}, false, err
	}
	return blocks[0], true, nil
}
