package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

const blockColumns = `
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
	signature`

// storedBlock is a chain_blocks row. Transactions are loaded separately.
type storedBlock struct {
	block            model.Block
	transactionCount uint32
}

func scanBlocks(rows driver.Rows) (blocks []storedBlock, err error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var row storedBlock
		b := &row.block
		if err = rows.Scan(
			&b.ID,
			&b.Height,
			&b.PreviousBlockID,
			&b.Version,
			&b.Timestamp,
			&b.GeneratorPublicKey,
			&b.PayloadHash,
			&b.Reward,
			&b.TotalAmount,
			&b.TotalFee,
			&row.transactionCount,
			&b.Signature,
		); err != nil {
			return nil, fmt.Errorf("scan block: %w", err)
		}
		blocks = append(blocks, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blocks: %w", err)
	}
	return blocks, nil
}

// withTransactions attaches the stored transactions to rows in their original order.
func (r *Repository) withTransactions(ctx context.Context, rows []storedBlock) ([]model.Block, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.transactionCount > 0 {
			ids = append(ids, row.block.ID)
		}
	}

	byBlock := make(map[string][]model.Transaction, len(ids))
	if len(ids) > 0 {
		var err error
		if byBlock, err = r.loadTransactions(ctx, ids); err != nil {
			return nil, err
		}
	}

	blocks := make([]model.Block, 0, len(rows))
	for _, row := range rows {
		b := row.block
		b.Transactions = byBlock[b.ID]
		if uint32(len(b.Transactions)) != row.transactionCount {
			return nil, fmt.Errorf("block %s: stored %d transactions, expected %d", b.ID, len(b.Transactions), row.transactionCount)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func (r *Repository) loadTransactions(ctx context.Context, blockIDs []string) (byBlock map[string][]model.Transaction, err error) {
	const query = `
SELECT
	block_id,
	id,
	sender_public_key,
	recipient_id,
	amount,
	fee,
	nonce,
	signature
FROM chain_transactions
WHERE block_id IN ?
ORDER BY block_id, position`

	rows, err := r.conn.Query(ctx, query, blockIDs)
	if err != nil {
		return nil, fmt.Errorf("query block transactions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	byBlock = make(map[string][]model.Transaction, len(blockIDs))
	for rows.Next() {
		var (
			blockID string
			tx      model.Transaction
		)
		if err = rows.Scan(
			&blockID,
			&tx.ID,
			&tx.SenderPublicKey,
			&tx.RecipientID,
			&tx.Amount,
			&tx.Fee,
			&tx.Nonce,
			&tx.Signature,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		byBlock[blockID] = append(byBlock[blockID], tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return byBlock, nil
}
