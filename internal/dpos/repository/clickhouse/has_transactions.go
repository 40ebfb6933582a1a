package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// HasTransactions returns the ids among ids that belong to a stored block.
func (r *Repository) HasTransactions(ctx context.Context, ids []string) (found []string, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("has_transactions", err, start)
	}()

	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
SELECT DISTINCT id
FROM chain_transactions
WHERE id IN ? AND block_id IN (SELECT id FROM chain_blocks)
ORDER BY id`

	rows, err := r.conn.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query stored transactions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan transaction id: %w", err)
		}
		found = append(found, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction ids: %w", err)
	}
	return found, nil
}
