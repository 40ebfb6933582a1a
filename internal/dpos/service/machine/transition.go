package machine

import "fmt"

// Transition returns the state after e and the actions to run, in order.
// Events a state does not react to leave it unchanged with no actions.
func Transition(s State, e Event) (State, []Action) {
	if s == Terminating {
		return s, nil
	}
	switch e.Kind {
	case EventStop:
		return Terminating, []Action{ActionStopAll}
	case EventFailure:
		if e.Fatal {
			return Terminating, []Action{ActionStopAll}
		}
	}

	switch s {
	case Uninitialized:
		return uninitialized(e)
	case Init:
		return initializing(e)
	case SyncingWithNetwork:
		return syncing(e)
	case DownloadingBlocks:
		return downloading(e)
	case ProcessingQueue:
		return processing(e)
	case ForkRecovery:
		return forkRecovery(e)
	case Idle:
		return idle(e)
	}
	panic(fmt.Sprintf("unknown state %d", int(s)))
}

func uninitialized(e Event) (State, []Action) {
	const s = Uninitialized
	switch e.Kind {
	case EventStart:
		return Init, []Action{ActionInit}
	case EventNewBlock:
		return s, []Action{ActionDisregardBlock}
	case EventFailure:
		return s, []Action{ActionLogFailure}
	case EventStarted, EventNetworkHeightKnown, EventBlocksDownloaded, EventDownloadFinished,
		EventDownloadPaused, EventProcessFinished, EventForkDetected, EventForkPlanned,
		EventForkResolved, EventWakeUp:
		return s, nil
	}
	return unhandled(s, e)
}

func initializing(e Event) (State, []Action) {
	const s = Init
	switch e.Kind {
	case EventStarted:
		return SyncingWithNetwork, []Action{ActionCheckNetwork}
	case EventNewBlock:
		return s, []Action{ActionDisregardBlock}
	case EventFailure:
		return s, []Action{ActionLogFailure}
	case EventStart, EventNetworkHeightKnown, EventBlocksDownloaded, EventDownloadFinished,
		EventDownloadPaused, EventProcessFinished, EventForkDetected, EventForkPlanned,
		EventForkResolved, EventWakeUp:
		return s, nil
	}
	return unhandled(s, e)
}

func syncing(e Event) (State, []Action) {
	const s = SyncingWithNetwork
	switch e.Kind {
	case EventNetworkHeightKnown:
		if e.Gap {
			return DownloadingBlocks, []Action{ActionPublishSyncStarting, ActionDownloadBlocks}
		}
		return Idle, []Action{ActionBlockchainReady}
	case EventWakeUp:
		return s, []Action{ActionCheckNetwork}
	case EventForkDetected:
		return ForkRecovery, []Action{ActionStartForkRecovery}
	case EventNewBlock:
		return s, []Action{ActionEnqueueBlock}
	case EventFailure:
		return s, []Action{ActionScheduleWakeUp}
	case EventStart, EventStarted, EventBlocksDownloaded, EventDownloadFinished,
		EventDownloadPaused, EventProcessFinished, EventForkPlanned, EventForkResolved:
		return s, nil
	}
	return unhandled(s, e)
}

func downloading(e Event) (State, []Action) {
	const s = DownloadingBlocks
	switch e.Kind {
	case EventBlocksDownloaded:
		return s, []Action{ActionEnqueueDownloaded}
	case EventDownloadFinished:
		return ProcessingQueue, []Action{ActionCheckQueueIdle}
	case EventDownloadPaused:
		return ProcessingQueue, nil
	case EventForkDetected:
		return ForkRecovery, []Action{ActionStartForkRecovery}
	case EventNewBlock:
		return s, []Action{ActionEnqueueBlock}
	case EventFailure:
		return SyncingWithNetwork, []Action{ActionScheduleWakeUp}
	case EventStart, EventStarted, EventNetworkHeightKnown, EventProcessFinished,
		EventForkPlanned, EventForkResolved, EventWakeUp:
		return s, nil
	}
	return unhandled(s, e)
}

func processing(e Event) (State, []Action) {
	const s = ProcessingQueue
	switch e.Kind {
	case EventProcessFinished:
		if e.Behind {
			return SyncingWithNetwork, []Action{ActionCheckNetwork}
		}
		return Idle, []Action{ActionBlockchainReady}
	case EventForkDetected:
		return ForkRecovery, []Action{ActionStartForkRecovery}
	case EventNewBlock:
		return s, []Action{ActionEnqueueBlock}
	case EventFailure:
		return s, []Action{ActionLogFailure}
	case EventStart, EventStarted, EventNetworkHeightKnown, EventBlocksDownloaded,
		EventDownloadFinished, EventDownloadPaused, EventForkPlanned, EventForkResolved,
		EventWakeUp:
		return s, nil
	}
	return unhandled(s, e)
}

func forkRecovery(e Event) (State, []Action) {
	const s = ForkRecovery
	switch e.Kind {
	case EventForkPlanned:
		return s, []Action{ActionRollback}
	case EventForkResolved:
		return ProcessingQueue, []Action{ActionResumeAfterFork}
	case EventNewBlock:
		return s, []Action{ActionDisregardBlock}
	case EventFailure:
		return s, []Action{ActionLogFailure}
	case EventStart, EventStarted, EventNetworkHeightKnown, EventBlocksDownloaded,
		EventDownloadFinished, EventDownloadPaused, EventProcessFinished, EventForkDetected,
		EventWakeUp:
		return s, nil
	}
	return unhandled(s, e)
}

func idle(e Event) (State, []Action) {
	const s = Idle
	switch e.Kind {
	case EventWakeUp:
		return SyncingWithNetwork, []Action{ActionCheckNetwork}
	case EventNewBlock:
		return ProcessingQueue, []Action{ActionEnqueueBlock}
	case EventForkDetected:
		return ForkRecovery, []Action{ActionStartForkRecovery}
	case EventFailure:
		return s, []Action{ActionLogFailure}
	case EventStart, EventStarted, EventNetworkHeightKnown, EventBlocksDownloaded,
		EventDownloadFinished, EventDownloadPaused, EventProcessFinished, EventForkPlanned,
		EventForkResolved:
		return s, nil
	}
	return unhandled(s, e)
}

func unhandled(s State, e Event) (State, []Action) {
	panic(fmt.Sprintf("state %s has no rule for event %s", s, e.Kind))
}
