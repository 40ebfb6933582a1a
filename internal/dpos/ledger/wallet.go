// Package ledger keeps wallet balances and applies or reverts the effects of blocks on them.
package ledger

import (
	"maps"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
)

const (
	AttributeForgedBlocks  = "forged_blocks"
	AttributeForgedFees    = "forged_fees"
	AttributeForgedRewards = "forged_rewards"
)

// Wallet is one account. Every setter publishes events.WalletUpdated as part of the same call.
type Wallet struct {
	publicKey  string
	balance    uint64
	nonce      uint64
	attributes map[string]uint64
	publisher  Publisher
}

func newWallet(publicKey string, publisher Publisher) *Wallet {
	return &Wallet{
		publicKey:  publicKey,
		attributes: make(map[string]uint64),
		publisher:  publisher,
	}
}

func (w *Wallet) PublicKey() string {
	return w.publicKey
}

func (w *Wallet) Balance() uint64 {
	return w.balance
}

func (w *Wallet) Nonce() uint64 {
	return w.nonce
}

func (w *Wallet) Attribute(key string) uint64 {
	return w.attributes[key]
}

func (w *Wallet) SetBalance(v uint64) {
	w.balance = v
	w.publish("balance", v)
}

func (w *Wallet) SetNonce(v uint64) {
	w.nonce = v
	w.publish("nonce", v)
}

// SetAttribute stores v under key. A zero value removes the attribute.
func (w *Wallet) SetAttribute(key string, v uint64) {
	if v == 0 {
		delete(w.attributes, key)
	} else {
		w.attributes[key] = v
	}
	w.publish(key, v)
}

func (w *Wallet) isEmpty() bool {
	return w.balance == 0 && w.nonce == 0 && len(w.attributes) == 0
}

func (w *Wallet) account() Account {
	return Account{
		PublicKey:  w.publicKey,
		Balance:    w.balance,
		Nonce:      w.nonce,
		Attributes: maps.Clone(w.attributes),
	}
}

func (w *Wallet) publish(field string, value any) {
	if w.publisher == nil {
		return
	}
	w.publisher.Publish(events.TopicWalletUpdated, events.WalletUpdated{
		PublicKey: w.publicKey,
		Field:     field,
		Value:     value,
	})
}

// Account is a detached copy of a wallet.
type Account struct {
	PublicKey  string
	Balance    uint64
	Nonce      uint64
	Attributes map[string]uint64
}
