// Package crypto implements block and transaction ids, signatures and their verification
// over secp256k1.
package crypto

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/safe"
)

// BlockHash returns the SHA-256 digest of the unsigned block fields.
func BlockHash(b model.Block) ([]byte, error) {
	count, err := safe.Uint32(len(b.Transactions))
	if err != nil {
		return nil, fmt.Errorf("transactions count: %w", err)
	}

	buf := make([]byte, 0, 256)
	buf = binary.BigEndian.AppendUint32(buf, b.Version)
	buf = binary.BigEndian.AppendUint32(buf, b.Timestamp)
	buf = binary.BigEndian.AppendUint64(buf, b.Height)
	if buf, err = appendString(buf, b.PreviousBlockID); err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint32(buf, count)
	buf = binary.BigEndian.AppendUint64(buf, b.TotalAmount)
	buf = binary.BigEndian.AppendUint64(buf, b.TotalFee)
	buf = binary.BigEndian.AppendUint64(buf, b.Reward)
	if buf, err = appendString(buf, b.PayloadHash); err != nil {
		return nil, err
	}
	if buf, err = appendString(buf, b.GeneratorPublicKey); err != nil {
		return nil, err
	}
	return chainhash.HashB(buf), nil
}

// BlockID returns the hex encoded block hash.
func BlockID(b model.Block) (string, error) {
	hash, err := BlockHash(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hash), nil
}

// TransactionHash returns the SHA-256 digest of the unsigned transaction fields.
func TransactionHash(tx model.Transaction) ([]byte, error) {
	var err error
	buf := make([]byte, 0, 160)
	if buf, err = appendString(buf, tx.SenderPublicKey); err != nil {
		return nil, err
	}
	if buf, err = appendString(buf, tx.RecipientID); err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint64(buf, tx.Amount)
	buf = binary.BigEndian.AppendUint64(buf, tx.Fee)
	buf = binary.BigEndian.AppendUint64(buf, tx.Nonce)
	return chainhash.HashB(buf), nil
}

func TransactionID(tx model.Transaction) (string, error) {
	hash, err := TransactionHash(tx)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hash), nil
}

// PayloadHash commits to the ordered transaction ids of a block.
func PayloadHash(txs []model.Transaction) string {
	buf := make([]byte, 0, len(txs)*64)
	for _, tx := range txs {
		buf = append(buf, tx.ID...)
	}
	return hex.EncodeToString(chainhash.HashB(buf))
}

func appendString(buf []byte, s string) ([]byte, error) {
	n, err := safe.Uint32(len(s))
	if err != nil {
		return nil, fmt.Errorf("field length: %w", err)
	}
	buf = binary.BigEndian.AppendUint32(buf, n)
	return append(buf, s...), nil
}
