package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

// GetBlocksByHeightRange returns the stored blocks with from <= height <= to in ascending order.
func (r *Repository) GetBlocksByHeightRange(ctx context.Context, from, to uint64) (blocks []model.Block, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_blocks_by_height_range", err, start)
	}()

	if from > to {
		return nil, nil
	}

	const query = `
SELECT` + blockColumns + `
FROM chain_blocks
WHERE height >= ? AND height <= ?
ORDER BY height ASC`

	rows, err := r.conn.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("query blocks %d-%d: %w", from, to, err)
	}
	stored, err := scanBlocks(rows)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, nil
	}
	return r.withTransactions(ctx, stored)
}
