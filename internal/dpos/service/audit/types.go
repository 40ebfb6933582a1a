package audit

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Subscriber interface {
		SubscribeSerial(topic string, fn any) error
		Unsubscribe(topic string, fn any) error
	}

	Writer interface {
		InsertChainEvents(ctx context.Context, events []model.ChainEvent) error
	}
)
