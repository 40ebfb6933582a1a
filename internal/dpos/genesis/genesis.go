// Package genesis reads the genesis block of a network from its JSON file.
package genesis

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/crypto"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

type fileBlock struct {
	ID                 string            `json:"id"`
	Version            uint32            `json:"version"`
	Height             uint64            `json:"height"`
	PreviousBlock      string            `json:"previousBlock"`
	Timestamp          uint32            `json:"timestamp"`
	GeneratorPublicKey string            `json:"generatorPublicKey"`
	PayloadHash        string            `json:"payloadHash"`
	Reward             uint64            `json:"reward"`
	TotalAmount        uint64            `json:"totalAmount"`
	TotalFee           uint64            `json:"totalFee"`
	BlockSignature     string            `json:"blockSignature"`
	Transactions       []fileTransaction `json:"transactions"`
}

type fileTransaction struct {
	ID              string `json:"id"`
	SenderPublicKey string `json:"senderPublicKey"`
	RecipientID     string `json:"recipientId"`
	Amount          uint64 `json:"amount"`
	Fee             uint64 `json:"fee"`
	Nonce           uint64 `json:"nonce"`
	Signature       string `json:"signature"`
}

// Load reads and checks the genesis block stored at path.
func Load(path string) (model.Block, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Block{}, fmt.Errorf("open genesis file: %w", err)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return model.Block{}, fmt.Errorf("genesis file %s: %w", path, err)
	}
	return b, nil
}

// Decode parses a genesis block. The block must sit at genesis height without a
// parent, and its id and payload hash must match its content.
func Decode(r io.Reader) (model.Block, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var fb fileBlock
	if err := dec.Decode(&fb); err != nil {
		return model.Block{}, fmt.Errorf("decode genesis block: %w", err)
	}

	b := model.Block{
		ID:                 fb.ID,
		Version:            fb.Version,
		Height:             fb.Height,
		PreviousBlockID:    fb.PreviousBlock,
		Timestamp:          fb.Timestamp,
		GeneratorPublicKey: fb.GeneratorPublicKey,
		PayloadHash:        fb.PayloadHash,
		Reward:             fb.Reward,
		TotalAmount:        fb.TotalAmount,
		TotalFee:           fb.TotalFee,
		Signature:          fb.BlockSignature,
	}
	for _, tx := range fb.Transactions {
		b.Transactions = append(b.Transactions, model.Transaction(tx))
	}

	if !b.IsGenesis() {
		return model.Block{}, fmt.Errorf("block %s at height %d with parent %q is not a genesis block", b.ID, b.Height, b.PreviousBlockID)
	}
	id, err := crypto.BlockID(b)
	if err != nil {
		return model.Block{}, fmt.Errorf("hash genesis block: %w", err)
	}
	if id != b.ID {
		return model.Block{}, fmt.Errorf("genesis id %s does not match computed %s", b.ID, id)
	}
	if payload := crypto.PayloadHash(b.Transactions); payload != b.PayloadHash {
		return model.Block{}, fmt.Errorf("genesis payload hash %s does not match computed %s", b.PayloadHash, payload)
	}
	return b, nil
}

// Encode writes b in the genesis file format.
func Encode(w io.Writer, b model.Block) error {
	fb := fileBlock{
		ID:                 b.ID,
		Version:            b.Version,
		Height:             b.Height,
		PreviousBlock:      b.PreviousBlockID,
		Timestamp:          b.Timestamp,
		GeneratorPublicKey: b.GeneratorPublicKey,
		PayloadHash:        b.PayloadHash,
		Reward:             b.Reward,
		TotalAmount:        b.TotalAmount,
		TotalFee:           b.TotalFee,
		BlockSignature:     b.Signature,
		Transactions:       make([]fileTransaction, 0, len(b.Transactions)),
	}
	for _, tx := range b.Transactions {
		fb.Transactions = append(fb.Transactions, fileTransaction(tx))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fb); err != nil {
		return fmt.Errorf("encode genesis block: %w", err)
	}
	return nil
}
