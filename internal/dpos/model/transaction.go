package model

// Transaction moves Amount from the sender to RecipientID, paying Fee to the block generator.
// RecipientID is the hex public key of the receiving wallet.
type Transaction struct {
	ID              string
	SenderPublicKey string
	RecipientID     string
	Amount          uint64
	Fee             uint64
	Nonce           uint64
	Signature       string
}
