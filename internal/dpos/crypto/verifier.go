package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/hashicorp/go-multierror"
)

var errBadSignature = errors.New("signature does not match public key")

// Verifier checks ids, payload commitments and signatures. It keeps no state.
type Verifier struct{}

func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyBlock reports every failed check of the block at once.
func (v *Verifier) VerifyBlock(b model.Block) error {
	var result error

	hash, err := BlockHash(b)
	if err != nil {
		return chain.NewVerificationError("block "+b.ID, err)
	}
	if id := hex.EncodeToString(hash); id != b.ID {
		result = multierror.Append(result, fmt.Errorf("id mismatch: have %s, computed %s", b.ID, id))
	}
	if err := verifySignature(b.GeneratorPublicKey, b.Signature, hash); err != nil {
		result = multierror.Append(result, fmt.Errorf("block signature: %w", err))
	}
	if payload := PayloadHash(b.Transactions); payload != b.PayloadHash {
		result = multierror.Append(result, fmt.Errorf("payload hash mismatch: have %s, computed %s", b.PayloadHash, payload))
	}

	var amount, fee uint64
	seen := make(map[string]struct{}, len(b.Transactions))
	for _, tx := range b.Transactions {
		amount += tx.Amount
		fee += tx.Fee
		if _, ok := seen[tx.ID]; ok {
			result = multierror.Append(result, fmt.Errorf("duplicate transaction %s", tx.ID))
		}
		seen[tx.ID] = struct{}{}
	}
	if amount != b.TotalAmount {
		result = multierror.Append(result, fmt.Errorf("total amount mismatch: have %d, computed %d", b.TotalAmount, amount))
	}
	if fee != b.TotalFee {
		result = multierror.Append(result, fmt.Errorf("total fee mismatch: have %d, computed %d", b.TotalFee, fee))
	}

	if result != nil {
		return chain.NewVerificationError("block "+b.ID, result)
	}
	return nil
}

func (v *Verifier) VerifyTransaction(tx model.Transaction) error {
	hash, err := TransactionHash(tx)
	if err != nil {
		return chain.NewVerificationError("transaction "+tx.ID, err)
	}
	if id := hex.EncodeToString(hash); id != tx.ID {
		return chain.NewVerificationError("transaction "+tx.ID, fmt.Errorf("id mismatch: computed %s", id))
	}
	if err := verifySignature(tx.SenderPublicKey, tx.Signature, hash); err != nil {
		return chain.NewVerificationError("transaction "+tx.ID, err)
	}
	return nil
}

func verifySignature(publicKeyHex, signatureHex string, hash []byte) error {
	rawKey, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return fmt.Errorf("decode public key: %w", err)
	}
	pubKey, err := btcec.ParsePubKey(rawKey)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}
	rawSig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	sig, err := ecdsa.ParseDERSignature(rawSig)
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}
	if !sig.Verify(hash, pubKey) {
		return errBadSignature
	}
	return nil
}
