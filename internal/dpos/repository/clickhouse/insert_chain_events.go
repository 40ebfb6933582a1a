package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/google/uuid"
)

// InsertChainEvents appends rows to the chain audit trail.
func (r *Repository) InsertChainEvents(ctx context.Context, events []model.ChainEvent) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_chain_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO chain_events (
	id,
	type,
	height,
	block_id,
	peer,
	detail,
	observed_at
) VALUES`

	ids := make([]uuid.UUID, len(events))
	for i, e := range events {
		if ids[i], err = uuid.Parse(e.ID); err != nil {
			return fmt.Errorf("chain event id %q: %w", e.ID, err)
		}
	}

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare chain events batch: %w", err)
	}

	for i, e := range events {
		if err = batch.Append(
			ids[i],
			string(e.Type),
			e.Height,
			e.BlockID,
			string(e.Peer),
			e.Detail,
			e.ObservedAt.UTC(),
		); err != nil {
			return fmt.Errorf("append chain event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert chain events: %w", err)
	}
	return nil
}
