// Package standalone holds the collaborators a node uses when it runs without
// a peer network: an offline peer set, a pool that only counts what it is told,
// and a fixed delegate round.
package standalone

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"go.uber.org/zap"
)

var _ chain.PeerNetwork = (*OfflineNetwork)(nil)

// OfflineNetwork is a peer network with no peers. The node stays at its stored
// tip and retries with backoff, as it would on a partitioned network.
type OfflineNetwork struct {
	logger *zap.Logger
}

func NewOfflineNetwork(logger *zap.Logger) *OfflineNetwork {
	return &OfflineNetwork{logger: logger.Named("offlineNetwork")}
}

func (n *OfflineNetwork) GetConnectedPeers(ctx context.Context) ([]model.PeerInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []model.PeerInfo{}, nil
}

func (n *OfflineNetwork) GetNetworkHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return 0, chain.ErrNoPeers
}

func (n *OfflineNetwork) RequestBlocks(_ context.Context, peer model.PeerID, fromHeight, _ uint64) ([]model.Block, error) {
	return nil, fmt.Errorf("request blocks from %s at %d: %w", peer, fromHeight, errOffline)
}

func (n *OfflineNetwork) BroadcastBlock(_ context.Context, block model.Block) error {
	n.logger.Debug("broadcast skipped", zap.String("block", block.ID), zap.Uint64("height", block.Height))
	return nil
}

func (n *OfflineNetwork) PenalizePeer(_ context.Context, peer model.PeerID, reason string) error {
	n.logger.Info("peer penalized", zap.String("peer", string(peer)), zap.String("reason", reason))
	return nil
}

var errOffline = errors.New("node runs without peers")
