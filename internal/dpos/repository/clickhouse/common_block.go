package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

// GetCommonBlock returns the highest stored block whose id is among ids.
func (r *Repository) GetCommonBlock(ctx context.Context, ids []string) (header model.BlockHeader, found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_common_block", err, start)
	}()

	if len(ids) == 0 {
		return model.BlockHeader{}, false, nil
	}

	const query = `
SELECT
	id,
	height,
	previous_block_id,
	timestamp
FROM chain_blocks
WHERE id IN ?
ORDER BY height DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, ids)
	if err != nil {
		return model.BlockHeader{}, false, fmt.Errorf("query common block: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if rows.Next() {
		if err = rows.Scan(&header.ID, &header.Height, &header.PreviousBlockID, &header.Timestamp); err != nil {
			return model.BlockHeader{}, false, fmt.Errorf("scan common block: %w", err)
		}
		found = true
	}
	if err = rows.Err(); err != nil {
		return model.BlockHeader{}, false, fmt.Errorf("iterate common block: %w", err)
	}
	return header, found, nil
}
