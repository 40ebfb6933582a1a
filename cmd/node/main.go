// Package main runs a DPoS chain synchronization node.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	GenesisFile   string `long:"genesis-file" env:"DPOS_NODE_GENESIS_FILE" description:"path to the genesis block JSON" required:"true"`
	Nethash       string `long:"nethash" env:"DPOS_NODE_NETHASH" description:"expected genesis payload hash, empty skips the check"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"DPOS_NODE_CLICKHOUSE_DSN" description:"ClickHouse DSN, empty keeps blocks in memory"`
	MetricsAddr   string `long:"metrics-addr" env:"DPOS_NODE_METRICS_ADDR" description:"prometheus listen addr" default:":2112"`
	HealthAddr    string `long:"health-addr" env:"DPOS_NODE_HEALTH_ADDR" description:"gRPC health listen addr" default:":8000"`

	Epoch     string   `long:"epoch" env:"DPOS_NODE_EPOCH" description:"network epoch (RFC 3339)" default:"2017-03-21T13:00:00Z"`
	BlockTime uint32   `long:"block-time" env:"DPOS_NODE_BLOCK_TIME" description:"seconds per forging slot" default:"8"`
	Delegates []string `long:"delegates" env:"DPOS_NODE_DELEGATES" env-delim:"," description:"forging round of delegate public keys, empty skips the forger check"`

	MaxRollbackDepth     uint64   `long:"max-rollback-depth" env:"DPOS_NODE_MAX_ROLLBACK_DEPTH" description:"deepest fork the node rolls back" default:"5000"`
	GapThreshold         uint64   `long:"gap-threshold" env:"DPOS_NODE_GAP_THRESHOLD" description:"blocks the node may trail the network before it syncs" default:"1"`
	BatchSize            uint64   `long:"batch-size" env:"DPOS_NODE_BATCH_SIZE" description:"blocks per download request" default:"400"`
	MaxParallelDownloads int      `long:"max-parallel-downloads" env:"DPOS_NODE_MAX_PARALLEL_DOWNLOADS" description:"concurrent download requests" default:"25"`
	QueueCapacity        int      `long:"queue-capacity" env:"DPOS_NODE_QUEUE_CAPACITY" description:"processing queue capacity" default:"10000"`
	ExceptionBlocks      []string `long:"exception-blocks" env:"DPOS_NODE_EXCEPTION_BLOCKS" env-delim:"," description:"block ids accepted without verification"`

	AuditFlushInterval time.Duration `long:"audit-flush-interval" env:"DPOS_NODE_AUDIT_FLUSH_INTERVAL" description:"chain event flush interval" default:"2s"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("dpos node failed", zap.Error(err))
	}
}
