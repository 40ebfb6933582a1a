package machine

import "fmt"

// Action is a side effect requested by a transition.
type Action int

const (
	// ActionInit loads the genesis block, rebuilds the ledger and verifies the stored chain.
	ActionInit Action = iota
	ActionCheckNetwork
	ActionPublishSyncStarting
	ActionDownloadBlocks
	ActionEnqueueDownloaded
	ActionCheckQueueIdle
	ActionBlockchainReady
	// ActionStartForkRecovery clears and pauses the queue and plans the fork off the loop.
	ActionStartForkRecovery
	ActionRollback
	// ActionResumeAfterFork pushes the winning branch, resumes the queue and checks for idle.
	ActionResumeAfterFork
	ActionEnqueueBlock
	ActionDisregardBlock
	ActionScheduleWakeUp
	ActionLogFailure
	ActionStopAll
)

// Actions lists every Action in declaration order.
func Actions() []Action {
	return []Action{
		ActionInit,
		ActionCheckNetwork,
		ActionPublishSyncStarting,
		ActionDownloadBlocks,
		ActionEnqueueDownloaded,
		ActionCheckQueueIdle,
		ActionBlockchainReady,
		ActionStartForkRecovery,
		ActionRollback,
		ActionResumeAfterFork,
		ActionEnqueueBlock,
		ActionDisregardBlock,
		ActionScheduleWakeUp,
		ActionLogFailure,
		ActionStopAll,
	}
}

func (a Action) String() string {
	switch a {
	case ActionInit:
		return "init"
	case ActionCheckNetwork:
		return "check_network"
	case ActionPublishSyncStarting:
		return "publish_sync_starting"
	case ActionDownloadBlocks:
		return "download_blocks"
	case ActionEnqueueDownloaded:
		return "enqueue_downloaded"
	case ActionCheckQueueIdle:
		return "check_queue_idle"
	case ActionBlockchainReady:
		return "blockchain_ready"
	case ActionStartForkRecovery:
		return "start_fork_recovery"
	case ActionRollback:
		return "rollback"
	case ActionResumeAfterFork:
		return "resume_after_fork"
	case ActionEnqueueBlock:
		return "enqueue_block"
	case ActionDisregardBlock:
		return "disregard_block"
	case ActionScheduleWakeUp:
		return "schedule_wake_up"
	case ActionLogFailure:
		return "log_failure"
	case ActionStopAll:
		return "stop_all"
	}
	return fmt.Sprintf("action(%d)", int(a))
}
