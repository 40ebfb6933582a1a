package clickhouse

import (
	"context"
	"fmt"
	"time"
)

func (r *Repository) HasBlock(ctx context.Context, id string) (found bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("has_block", err, start)
	}()

	const query = `
SELECT count()
FROM chain_blocks
WHERE id = ?`

	rows, err := r.conn.Query(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("query block %s: %w", id, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var count uint64
	if !rows.Next() {
		return false, fmt.Errorf("block count not found")
	}
	if err = rows.Scan(&count); err != nil {
		return false, fmt.Errorf("scan block count: %w", err)
	}
	if err = rows.Err(); err != nil {
		return false, fmt.Errorf("iterate block count: %w", err)
	}
	return count > 0, nil
}
