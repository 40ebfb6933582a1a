package netsync

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	PeerNetwork interface {
		GetConnectedPeers(ctx context.Context) ([]model.PeerInfo, error)
		RequestBlocks(ctx context.Context, peer model.PeerID, fromHeight, count uint64) ([]model.Block, error)
	}
	Publisher interface {
		Publish(topic string, payload any)
	}
	Metrics interface {
		ObserveNetworkHeight(err error, height uint64, started time.Time)
		ObserveChunk(err error, blocks int, started time.Time)
		ObserveDownload(err error, blocks int, started time.Time)
		ObserveFutureCache(size int)
	}
)
