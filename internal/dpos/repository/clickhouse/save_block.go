package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

// SaveBlock stores block and its transactions. Saving the block already stored
// at its height is a no-op; a different block at an occupied height is an error.
// Transactions are written first so a stored block row always has them.
func (r *Repository) SaveBlock(ctx context.Context, block model.Block) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_block", err, start)
	}()

	existing, err := r.blockIDAtHeight(ctx, block.Height)
	if err != nil {
		return err
	}
	switch existing {
	case "":
	case block.ID:
		return nil
	default:
		return fmt.Errorf("height %d already holds block %s", block.Height, existing)
	}

	if len(block.Transactions) > 0 {
		if err = r.insertTransactions(ctx, block); err != nil {
			return err
		}
	}

	const query = `
INSERT INTO chain_blocks (
	id,
	height,
	previous_block_id,
	version,
	timestamp,
	generator_public_key,
	payload_hash,
	reward,
	total_amount,
	total_fee,
	transaction_count,
	signature
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare block batch: %w", err)
	}
	if err = batch.Append(
		block.ID,
		block.Height,
		block.PreviousBlockID,
		block.Version,
		block.Timestamp,
		block.GeneratorPublicKey,
		block.PayloadHash,
		block.Reward,
		block.TotalAmount,
		block.TotalFee,
		uint32(len(block.Transactions)),
		block.Signature,
	); err != nil {
		return fmt.Errorf("append block: %w", err)
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert block: %w", err)
	}
	return nil
}

func (r *Repository) insertTransactions(ctx context.Context, block model.Block) error {
	const query = `
INSERT INTO chain_transactions (
	id,
	block_id,
	block_height,
	position,
	sender_public_key,
	recipient_id,
	amount,
	fee,
	nonce,
	signature
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}
	for i, tx := range block.Transactions {
		if err := batch.Append(
			tx.ID,
			block.ID,
			block.Height,
			uint32(i),
			tx.SenderPublicKey,
			tx.RecipientID,
			tx.Amount,
			tx.Fee,
			tx.Nonce,
			tx.Signature,
		); err != nil {
			return fmt.Errorf("append transaction %s: %w", tx.ID, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}

func (r *Repository) blockIDAtHeight(ctx context.Context, height uint64) (id string, err error) {
	const query = `
SELECT id
FROM chain_blocks
WHERE height = ?
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, height)
	if err != nil {
		return "", fmt.Errorf("query block at height %d: %w", height, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan block id: %w", err)
		}
	}
	if err = rows.Err(); err != nil {
		return "", fmt.Errorf("iterate block ids: %w", err)
	}
	return id, nil
}
