package queue

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObservePush(err error, items int)
		ObserveItem(source string, started time.Time)
		ObserveSize(size int)
	}
)

// Worker handles one item. It must return once ctx is canceled.
type Worker func(ctx context.Context, item model.QueueItem)
