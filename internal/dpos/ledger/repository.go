package ledger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/pkg/safe"
)

type Publisher interface {
	Publish(topic string, payload any)
}

// Repository is the in-memory wallet repository. Apply and Revert compute every
// change first and commit only when the whole block is valid, so a failed call
// leaves the wallets untouched.
type Repository struct {
	mu        sync.RWMutex
	wallets   map[string]*Wallet
	publisher Publisher
}

func NewRepository(publisher Publisher) *Repository {
	return &Repository{
		wallets:   make(map[string]*Wallet),
		publisher: publisher,
	}
}

// draft holds the values a wallet will have once a block is committed.
type draft struct {
	balance    uint64
	nonce      uint64
	attributes map[string]uint64
}

type plan struct {
	repo   *Repository
	drafts map[string]*draft
}

func (p *plan) wallet(publicKey string) *draft {
	if d, ok := p.drafts[publicKey]; ok {
		return d
	}
	d := &draft{attributes: make(map[string]uint64)}
	if w, ok := p.repo.wallets[publicKey]; ok {
		d.balance = w.balance
		d.nonce = w.nonce
		d.attributes = maps.Clone(w.attributes)
	}
	p.drafts[publicKey] = d
	return d
}

// Apply credits and debits the wallets touched by block.
// Invalid transactions fail with a chain.VerificationError.
func (r *Repository) Apply(ctx context.Context, block model.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := &plan{repo: r, drafts: make(map[string]*draft)}
	genesis := block.IsGenesis()

	for _, tx := range block.Transactions {
		if !genesis {
			sender := p.wallet(tx.SenderPublicKey)
			if tx.Nonce != sender.nonce+1 {
				return chain.NewVerificationError("transaction "+tx.ID,
					fmt.Errorf("nonce %d, expected %d", tx.Nonce, sender.nonce+1))
			}
			total, err := safe.AddUint64(tx.Amount, tx.Fee)
			if err != nil {
				return chain.NewVerificationError("transaction "+tx.ID, err)
			}
			if sender.balance, err = safe.SubUint64(sender.balance, total); err != nil {
				return chain.NewVerificationError("transaction "+tx.ID,
					fmt.Errorf("insufficient balance: %w", err))
			}
			sender.nonce++
		}

		recipient := p.wallet(tx.RecipientID)
		var err error
		if recipient.balance, err = safe.AddUint64(recipient.balance, tx.Amount); err != nil {
			return chain.NewVerificationError("transaction "+tx.ID, err)
		}
	}

	if !genesis {
		generator := p.wallet(block.GeneratorPublicKey)
		earned, err := safe.AddUint64(block.Reward, block.TotalFee)
		if err != nil {
			return chain.NewVerificationError("block "+block.ID, err)
		}
		if generator.balance, err = safe.AddUint64(generator.balance, earned); err != nil {
			return chain.NewVerificationError("block "+block.ID, err)
		}
		generator.attributes[AttributeForgedBlocks]++
		generator.attributes[AttributeForgedFees] += block.TotalFee
		generator.attributes[AttributeForgedRewards] += block.Reward
	}

	r.commit(p)
	return nil
}

// Revert undoes Apply for block, which must be the last applied block.
func (r *Repository) Revert(ctx context.Context, block model.Block) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p := &plan{repo: r, drafts: make(map[string]*draft)}
	genesis := block.IsGenesis()

	if !genesis {
		generator := p.wallet(block.GeneratorPublicKey)
		earned, err := safe.AddUint64(block.Reward, block.TotalFee)
		if err != nil {
			return fmt.Errorf("revert block %s: %w", block.ID, err)
		}
		if generator.balance, err = safe.SubUint64(generator.balance, earned); err != nil {
			return fmt.Errorf("revert block %s: generator balance: %w", block.ID, err)
		}
		for key, v := range map[string]uint64{
			AttributeForgedBlocks:  1,
			AttributeForgedFees:    block.TotalFee,
			AttributeForgedRewards: block.Reward,
		} {
			left, err := safe.SubUint64(generator.attributes[key], v)
			if err != nil {
				return fmt.Errorf("revert block %s: attribute %s: %w", block.ID, key, err)
			}
			generator.attributes[key] = left
		}
	}

	for i := len(block.Transactions) - 1; i >= 0; i-- {
		tx := block.Transactions[i]

		recipient := p.wallet(tx.RecipientID)
		var err error
		if recipient.balance, err = safe.SubUint64(recipient.balance, tx.Amount); err != nil {
			return fmt.Errorf("revert transaction %s: recipient balance: %w", tx.ID, err)
		}

		if genesis {
			continue
		}
		sender := p.wallet(tx.SenderPublicKey)
		if sender.nonce != tx.Nonce {
			return fmt.Errorf("revert transaction %s: sender nonce %d, expected %d", tx.ID, sender.nonce, tx.Nonce)
		}
		total, err := safe.AddUint64(tx.Amount, tx.Fee)
		if err != nil {
			return fmt.Errorf("revert transaction %s: %w", tx.ID, err)
		}
		if sender.balance, err = safe.AddUint64(sender.balance, total); err != nil {
			return fmt.Errorf("revert transaction %s: sender balance: %w", tx.ID, err)
		}
		sender.nonce--
	}

	r.commit(p)
	return nil
}

// commit writes the drafts through the wallet setters, in key order.
func (r *Repository) commit(p *plan) {
	keys := slices.Sorted(maps.Keys(p.drafts))
	for _, pk := range keys {
		d := p.drafts[pk]
		w, ok := r.wallets[pk]
		if !ok {
			w = newWallet(pk, r.publisher)
			r.wallets[pk] = w
		}
		if w.balance != d.balance {
			w.SetBalance(d.balance)
		}
		if w.nonce != d.nonce {
			w.SetNonce(d.nonce)
		}
		for _, key := range slices.Sorted(maps.Keys(d.attributes)) {
			if w.attributes[key] != d.attributes[key] {
				w.SetAttribute(key, d.attributes[key])
			}
		}
		if w.isEmpty() {
			delete(r.wallets, pk)
		}
	}
}

// Account returns a copy of the wallet of publicKey.
func (r *Repository) Account(publicKey string) (Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.wallets[publicKey]
	if !ok {
		return Account{}, false
	}
	return w.account(), true
}

// Accounts returns copies of every non-empty wallet keyed by public key.
func (r *Repository) Accounts() map[string]Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Account, len(r.wallets))
	for pk, w := range r.wallets {
		out[pk] = w.account()
	}
	return out
}
