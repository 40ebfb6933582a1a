// Package transport exposes gRPC handlers.
package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the service reported by the health handler besides the
// empty name that stands for the whole server.
const ServiceName = "blockinsight7000.dpos.Node"

type Subscriber interface {
	SubscribeSerial(topic string, fn any) error
	Unsubscribe(topic string, fn any) error
}

// HealthHandler serves grpc.health.v1. The node reports NOT_SERVING until it
// has caught up with the network and again once it terminates.
type HealthHandler struct {
	server     *health.Server
	subscriber Subscriber
	logger     *zap.Logger

	mu         sync.Mutex
	subscribed bool
}

func NewHealthHandler(subscriber Subscriber, logger *zap.Logger) (*HealthHandler, error) {
	if subscriber == nil {
		return nil, errors.New("event subscriber is required")
	}
	h := &HealthHandler{
		server:     health.NewServer(),
		subscriber: subscriber,
		logger:     logger.Named("health"),
	}
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return h, nil
}

// Register adds the health service to s.
func (h *HealthHandler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.server)
}

func (h *HealthHandler) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribed {
		return nil
	}
	if err := h.subscriber.SubscribeSerial(events.TopicNodeReady, h.onNodeReady); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.TopicNodeReady, err)
	}
	if err := h.subscriber.SubscribeSerial(events.TopicTerminated, h.onTerminated); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.TopicTerminated, err)
	}
	h.subscribed = true
	return nil
}

// Stop unsubscribes and marks every service NOT_SERVING for good.
func (h *HealthHandler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribed {
		_ = h.subscriber.Unsubscribe(events.TopicNodeReady, h.onNodeReady)
		_ = h.subscriber.Unsubscribe(events.TopicTerminated, h.onTerminated)
		h.subscribed = false
	}
	h.server.Shutdown()
}

// Check answers a health probe without a network round trip.
func (h *HealthHandler) Check(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := h.server.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

func (h *HealthHandler) onNodeReady(e events.NodeReady) {
	h.logger.Info("serving", zap.Uint64("height", e.Height))
	h.set(healthpb.HealthCheckResponse_SERVING)
}

func (h *HealthHandler) onTerminated(e events.Terminated) {
	h.logger.Info("not serving", zap.Error(e.Err))
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
}

func (h *HealthHandler) set(status healthpb.HealthCheckResponse_ServingStatus) {
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
}
