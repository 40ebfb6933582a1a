package blockchain

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/crypto"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/ledger"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/repository/memory"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/fork"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/machine"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/netsync"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/processor"
	"go.uber.org/zap"
)

const genesisNethash = "nethash-test"

var testEpoch = time.Unix(1_000_000, 0)

type nopMetrics struct{}

func (nopMetrics) ObserveProcess(string, string, time.Time) {}
func (nopMetrics) ObserveVerifyTransactions(error, int, time.Time) {}
func (nopMetrics) ObservePush(error, int) {}
func (nopMetrics) ObserveItem(string, time.Time) {}
func (nopMetrics) ObserveSize(int) {}
func (nopMetrics) ObservePlan(error, uint64, time.Time) {}
func (nopMetrics) ObserveRevert(error, uint64, time.Time) {}
func (nopMetrics) ObserveResolved(bool, int) {}
func (nopMetrics) ObserveNetworkHeight(error, uint64, time.Time) {}
func (nopMetrics) ObserveChunk(error, int, time.Time) {}
func (nopMetrics) ObserveDownload(error, int, time.Time) {}
func (nopMetrics) ObserveFutureCache(int) {}
func (nopMetrics) ObserveTransition(string, string, string) {}
func (nopMetrics) ObserveAction(string, error, time.Time) {}
func (nopMetrics) ObserveInbox(int) {}

type nopPool struct{}

func (nopPool) OnBlockApplied(context.Context, model.Block) error { return nil }
func (nopPool) OnBlockReverted(context.Context, model.Block) error { return nil }

type published struct {
	topic   string
	payload any
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(topic string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{topic: topic, payload: payload})
}

func (r *recorder) payloads(topic string) []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []any
	for _, e := range r.events {
		if e.topic == topic {
			out = append(out, e.payload)
		}
	}
	return out
}

// network serves the chains of its peers from memory stores.
type network struct {
	mu        sync.Mutex
	peers     map[model.PeerID]*memory.Store
	penalized []model.PeerID
	broadcast []string
}

func newNetwork() *network {
	return &network{peers: make(map[model.PeerID]*memory.Store)}
}

func (n *network) add(t *testing.T, peer model.PeerID, blocks []model.Block) {
	t.Helper()
	store := memory.NewStore()
	for _, b := range blocks {
		if err := store.SaveBlock(context.Background(), b); err != nil {
			t.Fatalf("SaveBlock(%s) error = %v", b.ID, err)
		}
	}
	n.mu.Lock()
	n.peers[peer] = store
	n.mu.Unlock()
}

func (n *network) GetConnectedPeers(ctx context.Context) ([]model.PeerInfo, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []model.PeerInfo
	for id, store := range n.peers {
		last, ok, err := store.LastBlock(ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, model.PeerInfo{ID: id, Height: last.Height, LastBlockID: last.ID})
		}
	}
	slices.SortFunc(out, func(a, b model.PeerInfo) int {
		return compare(a.ID, b.ID)
	})
	return out, nil
}

func compare(a, b model.PeerID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (n *network) RequestBlocks(ctx context.Context, peer model.PeerID, fromHeight, count uint64) ([]model.Block, error) {
	n.mu.Lock()
	store, ok := n.peers[peer]
	n.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("peer %s is not connected", peer)
	}
	return store.GetBlocksByHeightRange(ctx, fromHeight, fromHeight+count-1)
}

func (n *network) BroadcastBlock(_ context.Context, block model.Block) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcast = append(n.broadcast, block.ID)
	return nil
}

func (n *network) PenalizePeer(_ context.Context, peer model.PeerID, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.penalized = append(n.penalized, peer)
	return nil
}

type fixture struct {
	key     *btcec.PrivateKey
	slots   *clock.Slots
	genesis model.Block
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	key, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	slots, err := clock.NewSlots(testEpoch, 10, clock.WithNow(func() time.Time {
		return testEpoch.Add(10_000 * time.Second)
	}))
	if err != nil {
		t.Fatalf("NewSlots() error = %v", err)
	}
	return &fixture{
		key:   key,
		slots: slots,
		genesis: model.Block{
			ID:          "genesis",
			Height:      model.GenesisHeight,
			PayloadHash: genesisNethash,
		},
	}
}

func (f *fixture) block(t *testing.T, prev model.Block, reward uint64) model.Block {
	t.Helper()
	return f.blockAt(t, prev, reward, uint32((prev.Height+1)*10))
}

func (f *fixture) blockAt(t *testing.T, prev model.Block, reward uint64, timestamp uint32) model.Block {
	t.Helper()
	b, err := crypto.SealBlock(model.Block{
		Version:         1,
		Height:          prev.Height + 1,
		PreviousBlockID: prev.ID,
		Timestamp:       timestamp,
		Reward:          reward,
	}, f.key)
	if err != nil {
		t.Fatalf("SealBlock() error = %v", err)
	}
	return b
}

// extend returns base followed by n new blocks on top of its last block.
func (f *fixture) extend(t *testing.T, base []model.Block, n int) []model.Block {
	t.Helper()
	out := slices.Clone(base)
	for i := 0; i < n; i++ {
		out = append(out, f.block(t, out[len(out)-1], 5))
	}
	return out
}

type harness struct {
	svc     *Service
	state   *chain.State
	store   *memory.Store
	ledger  *ledger.Repository
	network *network
	events  *recorder
	done    chan error
}

func newHarness(t *testing.T, f *fixture, net *network, stored []model.Block, cfg Config) *harness {
	t.Helper()
	logger := zap.NewNop()

	state, err := chain.NewState(100, 1000)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	store := memory.NewStore()
	for _, b := range stored {
		if err := store.SaveBlock(context.Background(), b); err != nil {
			t.Fatalf("SaveBlock(%s) error = %v", b.ID, err)
		}
	}
	rec := &recorder{}
	wallets := ledger.NewRepository(rec)
	inbox := NewInbox()

	syncer, err := netsync.NewCoordinator(net, rec, nopMetrics{}, netsync.Config{
		BatchSize:            3,
		MaxParallelDownloads: 2,
		RetryBackoff:         time.Millisecond,
	}, logger)
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}
	forks, err := fork.NewManager(store, net, wallets, nopPool{}, rec, nopMetrics{}, fork.Config{
		RevertBackoff: time.Millisecond,
	}, logger)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	proc, err := processor.NewProcessor(processor.Dependencies{
		State:        state,
		Verifier:     crypto.NewVerifier(),
		Ledger:       wallets,
		Store:        store,
		Pool:         nopPool{},
		Penalizer:    net,
		Slots:        f.slots,
		Publisher:    rec,
		Forks:        inbox,
		FutureBlocks: syncer,
		Metrics:      nopMetrics{},
	}, logger)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}

	if cfg.WakeUpBackoff == 0 {
		cfg.WakeUpBackoff = 5 * time.Millisecond
	}
	if cfg.MaxWakeUpInterval == 0 {
		cfg.MaxWakeUpInterval = 20 * time.Millisecond
	}
	if cfg.IdleInterval == 0 {
		cfg.IdleInterval = time.Hour
	}
	svc, err := NewService(Dependencies{
		State:        state,
		Genesis:      f.genesis,
		Inbox:        inbox,
		Processor:    proc,
		Sync:         syncer,
		Forks:        forks,
		Store:        store,
		Ledger:       wallets,
		Peers:        net,
		Slots:        f.slots,
		Publisher:    rec,
		Metrics:      nopMetrics{},
		QueueMetrics: nopMetrics{},
	}, cfg, logger)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	return &harness{
		svc:     svc,
		state:   state,
		store:   store,
		ledger:  wallets,
		network: net,
		events:  rec,
	}
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h.done = make(chan error, 1)
	go func() {
		h.done <- h.svc.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-h.done:
		case <-time.After(5 * time.Second):
			t.Errorf("blockchain service did not stop")
		}
	})
}

// stop stops the service and returns the error of Run.
func (h *harness) stop(t *testing.T) error {
	t.Helper()
	h.svc.Stop()
	select {
	case err := <-h.done:
		h.done <- err
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("blockchain service did not stop")
	}
	return nil
}

func (h *harness) waitFor(t *testing.T, what string, cond func(snap chain.Snapshot, state machine.State) bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond(h.svc.Snapshot(), h.svc.State()) {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	snap := h.svc.Snapshot()
	t.Fatalf("timed out waiting for %s: state %s, tip %d (%s)", what, h.svc.State(), snap.LastBlock.Height, snap.LastBlock.ID)
}

func (h *harness) waitIdleAt(t *testing.T, tip model.Block) {
	t.Helper()
	h.waitFor(t, fmt.Sprintf("idle at %d", tip.Height), func(snap chain.Snapshot, state machine.State) bool {
		return state == machine.Idle && snap.LastBlock.ID == tip.ID
	})
}

func (n *network) broadcasted() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.broadcast)
}
