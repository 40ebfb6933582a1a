package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/crypto"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/events"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/genesis"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/ledger"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/repository/memory"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/audit"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/blockchain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/fork"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/netsync"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/processor"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/standalone"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/transport"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const (
	maxLastBlocks         = 1000
	maxForgedTransactions = 100_000
)

type blockStore interface {
	chain.BlockStore
	Close() error
}

type memoryStore struct {
	*memory.Store
}

func (memoryStore) Close() error { return nil }

func run(ctx context.Context, cfg config, logger *zap.Logger) (err error) {
	epoch, err := time.Parse(time.RFC3339, cfg.Epoch)
	if err != nil {
		return fmt.Errorf("parse epoch: %w", err)
	}
	slots, err := clock.NewSlots(epoch, cfg.BlockTime)
	if err != nil {
		return fmt.Errorf("init slots: %w", err)
	}
	genesisBlock, err := genesis.Load(cfg.GenesisFile)
	if err != nil {
		return err
	}

	store, err := newBlockStore(cfg.ClickhouseDSN, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			err = multierror.Append(err, fmt.Errorf("close block store: %w", closeErr))
		}
	}()

	bus := events.NewBus(logger.Named("events"))

	if writer, ok := store.(audit.Writer); ok {
		recorder, err := audit.NewRecorder(bus, writer, audit.Config{FlushInterval: cfg.AuditFlushInterval}, logger)
		if err != nil {
			return fmt.Errorf("init audit recorder: %w", err)
		}
		// Events keep flowing until Stop, after the signal context is gone.
		if err := recorder.Start(context.WithoutCancel(ctx)); err != nil {
			return fmt.Errorf("start audit recorder: %w", err)
		}
		defer func() {
			recorder.Stop()
			if dropped := recorder.Dropped(); dropped > 0 {
				logger.Warn("chain events lost", zap.Uint64("dropped", dropped))
			}
		}()
	}

	health, err := transport.NewHealthHandler(bus, logger)
	if err != nil {
		return fmt.Errorf("init health handler: %w", err)
	}
	if err := health.Start(); err != nil {
		return fmt.Errorf("start health handler: %w", err)
	}
	defer health.Stop()
	defer bus.Wait()

	svc, err := newService(cfg, genesisBlock, slots, store, bus, logger)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		runErr := svc.Run(gctx)
		if errors.Is(runErr, context.Canceled) {
			return nil
		}
		if runErr != nil {
			return fmt.Errorf("blockchain service: %w", runErr)
		}
		// A clean stop still has to take the servers down.
		return errStopped
	})
	g.Go(func() error {
		return serveMetrics(gctx, cfg.MetricsAddr, logger)
	})
	g.Go(func() error {
		return serveHealth(gctx, cfg.HealthAddr, health, logger)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errStopped) {
		return err
	}
	return nil
}

var errStopped = errors.New("node stopped")

func newBlockStore(dsn string, logger *zap.Logger) (blockStore, error) {
	if dsn == "" {
		logger.Warn("no ClickHouse DSN, blocks are kept in memory")
		return memoryStore{memory.NewStore()}, nil
	}
	repo, err := clickhouse.NewRepository(dsn, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, fmt.Errorf("init clickhouse repository: %w", err)
	}
	return repo, nil
}

func newService(
	cfg config,
	genesisBlock model.Block,
	slots *clock.Slots,
	store blockStore,
	bus *events.Bus,
	logger *zap.Logger,
) (*blockchain.Service, error) {
	state, err := chain.NewState(maxLastBlocks, maxForgedTransactions)
	if err != nil {
		return nil, fmt.Errorf("init chain state: %w", err)
	}
	peers := standalone.NewOfflineNetwork(logger)
	pool := standalone.NewPool(logger)
	wallets := ledger.NewRepository(bus)
	inbox := blockchain.NewInbox()

	syncer, err := netsync.NewCoordinator(peers, bus, metrics.NewNetworkSync(), netsync.Config{
		GapThreshold:         cfg.GapThreshold,
		BatchSize:            cfg.BatchSize,
		MaxParallelDownloads: cfg.MaxParallelDownloads,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init network sync: %w", err)
	}
	forks, err := fork.NewManager(store, peers, wallets, pool, bus, metrics.NewForkManager(), fork.Config{
		MaxRollbackDepth: cfg.MaxRollbackDepth,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init fork manager: %w", err)
	}

	deps := processor.Dependencies{
		State:             state,
		Verifier:          crypto.NewVerifier(),
		Ledger:            wallets,
		Store:             store,
		Pool:              pool,
		Penalizer:         peers,
		Slots:             slots,
		Publisher:         bus,
		Forks:             inbox,
		FutureBlocks:      syncer,
		Metrics:           metrics.NewBlockProcessor(),
		ExceptionBlockIDs: cfg.ExceptionBlocks,
	}
	if len(cfg.Delegates) > 0 {
		delegates, err := standalone.NewStaticDelegates(cfg.Delegates)
		if err != nil {
			return nil, fmt.Errorf("init delegates: %w", err)
		}
		deps.Delegates = delegates
	}
	proc, err := processor.NewProcessor(deps, logger)
	if err != nil {
		return nil, fmt.Errorf("init block processor: %w", err)
	}

	svc, err := blockchain.NewService(blockchain.Dependencies{
		State:        state,
		Genesis:      genesisBlock,
		Inbox:        inbox,
		Processor:    proc,
		Sync:         syncer,
		Forks:        forks,
		Store:        store,
		Ledger:       wallets,
		Peers:        peers,
		Slots:        slots,
		Publisher:    bus,
		Metrics:      metrics.NewStateMachine(),
		QueueMetrics: metrics.NewProcessingQueue(),
	}, blockchain.Config{
		Nethash:       cfg.Nethash,
		QueueCapacity: cfg.QueueCapacity,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init blockchain service: %w", err)
	}
	return svc, nil
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown metrics server", zap.Error(err))
		}
	}()

	logger.Info("Starting metrics server", zap.String("addr", addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func serveHealth(ctx context.Context, addr string, health *transport.HealthHandler, logger *zap.Logger) error {
	grpcZap.ReplaceGrpcLoggerV2(logger)

	interceptors := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(interceptors...)),
		grpc.StreamInterceptor(grpcMiddleware.ChainStreamServer(
			grpcRecovery.StreamServerInterceptor(),
			grpcPrometheus.StreamServerInterceptor,
		)),
	)
	health.Register(grpcServer)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	logger.Info("Starting gRPC health server", zap.String("addr", addr))
	if err := grpcServer.Serve(socket); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc server: %w", err)
	}
	return nil
}
