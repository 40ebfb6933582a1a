package blockchain

import "time"

const (
	DefaultQueueCapacity       = 10_000
	DefaultQueuePauseThreshold = 5_000
	DefaultMaxStorageRetries   = 5
	DefaultStorageRetryDelay   = 2 * time.Second
	DefaultMaxNoBlockRounds    = 5
	DefaultWakeUpBackoff       = 1 * time.Second
	DefaultMaxWakeUpInterval   = 30 * time.Second
	DefaultLongWakeUpInterval  = 1 * time.Minute
	DefaultIdleInterval        = 10 * time.Second

	DefaultReplayChunkSize uint64 = 1000
)
