// Package machine is the transition table of the chain synchronization state
// machine. It performs no side effects: Transition returns the next state and
// the actions the event loop has to run.
package machine

import "fmt"

type State int

const (
	Uninitialized State = iota
	Init
	SyncingWithNetwork
	DownloadingBlocks
	ProcessingQueue
	ForkRecovery
	Idle
	Terminating
)

// States lists every State in declaration order.
func States() []State {
	return []State{
		Uninitialized,
		Init,
		SyncingWithNetwork,
		DownloadingBlocks,
		ProcessingQueue,
		ForkRecovery,
		Idle,
		Terminating,
	}
}

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Init:
		return "init"
	case SyncingWithNetwork:
		return "syncing_with_network"
	case DownloadingBlocks:
		return "downloading_blocks"
	case ProcessingQueue:
		return "processing_queue"
	case ForkRecovery:
		return "fork_recovery"
	case Idle:
		return "idle"
	case Terminating:
		return "terminating"
	}
	return fmt.Sprintf("state(%d)", int(s))
}
