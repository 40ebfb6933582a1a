package crypto

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

// PublicKeyHex returns the compressed public key of key, hex encoded.
func PublicKeyHex(key *btcec.PrivateKey) string {
	return hex.EncodeToString(key.PubKey().SerializeCompressed())
}

// SealTransaction fills the sender, id and signature of tx.
func SealTransaction(tx model.Transaction, key *btcec.PrivateKey) (model.Transaction, error) {
	tx.SenderPublicKey = PublicKeyHex(key)
	hash, err := TransactionHash(tx)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("hash transaction: %w", err)
	}
	tx.ID = hex.EncodeToString(hash)
	tx.Signature = hex.EncodeToString(ecdsa.Sign(key, hash).Serialize())
	return tx, nil
}

// SealBlock fills the totals, payload hash, generator, id and signature of b.
func SealBlock(b model.Block, key *btcec.PrivateKey) (model.Block, error) {
	b = model.NewBlock(b)
	b.TotalAmount, b.TotalFee = 0, 0
	for _, tx := range b.Transactions {
		b.TotalAmount += tx.Amount
		b.TotalFee += tx.Fee
	}
	b.PayloadHash = PayloadHash(b.Transactions)
	b.GeneratorPublicKey = PublicKeyHex(key)

	hash, err := BlockHash(b)
	if err != nil {
		return model.Block{}, fmt.Errorf("hash block: %w", err)
	}
	b.ID = hex.EncodeToString(hash)
	b.Signature = hex.EncodeToString(ecdsa.Sign(key, hash).Serialize())
	return b, nil
}
