// Package model defines domain models of the DPoS chain.
package model

// GenesisHeight is the height of the genesis block. The first forged block sits at height 1.
const GenesisHeight uint64 = 0

// Block is a candidate or applied block. Values are treated as immutable once built.
type Block struct {
	ID                 string
	Version            uint32
	Height             uint64
	PreviousBlockID    string
	Timestamp          uint32
	GeneratorPublicKey string
	PayloadHash        string
	Reward             uint64
	TotalAmount        uint64
	TotalFee           uint64
	Transactions       []Transaction
	Signature          string
}

// BlockHeader is the part of a block needed for ancestry lookups.
type BlockHeader struct {
	ID              string
	Height          uint64
	PreviousBlockID string
	Timestamp       uint32
}

// NewBlock returns a copy of b that does not share the transaction slice with the caller.
func NewBlock(b Block) Block {
	if len(b.Transactions) > 0 {
		txs := make([]Transaction, len(b.Transactions))
		copy(txs, b.Transactions)
		b.Transactions = txs
	}
	return b
}

// Header returns the header of the block.
func (b Block) Header() BlockHeader {
	return BlockHeader{
		ID:              b.ID,
		Height:          b.Height,
		PreviousBlockID: b.PreviousBlockID,
		Timestamp:       b.Timestamp,
	}
}

// IsGenesis reports whether the block sits at genesis height without a parent.
func (b Block) IsGenesis() bool {
	return b.Height == GenesisHeight && b.PreviousBlockID == ""
}

// TransactionIDs returns the ids of the block transactions in order.
func (b Block) TransactionIDs() []string {
	ids := make([]string, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		ids = append(ids, tx.ID)
	}
	return ids
}
