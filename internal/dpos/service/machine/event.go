package machine

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/chain"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/fork"
)

type EventKind int

const (
	EventStart EventKind = iota
	EventStarted
	EventNetworkHeightKnown
	EventBlocksDownloaded
	EventDownloadFinished
	EventDownloadPaused
	EventProcessFinished
	EventNewBlock
	EventForkDetected
	EventForkPlanned
	EventForkResolved
	EventWakeUp
	EventFailure
	EventStop
)

// EventKinds lists every EventKind in declaration order.
func EventKinds() []EventKind {
	return []EventKind{
		EventStart,
		EventStarted,
		EventNetworkHeightKnown,
		EventBlocksDownloaded,
		EventDownloadFinished,
		EventDownloadPaused,
		EventProcessFinished,
		EventNewBlock,
		EventForkDetected,
		EventForkPlanned,
		EventForkResolved,
		EventWakeUp,
		EventFailure,
		EventStop,
	}
}

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventStarted:
		return "started"
	case EventNetworkHeightKnown:
		return "network_height_known"
	case EventBlocksDownloaded:
		return "blocks_downloaded"
	case EventDownloadFinished:
		return "download_finished"
	case EventDownloadPaused:
		return "download_paused"
	case EventProcessFinished:
		return "process_finished"
	case EventNewBlock:
		return "new_block"
	case EventForkDetected:
		return "fork_detected"
	case EventForkPlanned:
		return "fork_planned"
	case EventForkResolved:
		return "fork_resolved"
	case EventWakeUp:
		return "wake_up"
	case EventFailure:
		return "failure"
	case EventStop:
		return "stop"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one input of the state machine. Only the fields of its Kind are set.
type Event struct {
	Kind EventKind

	// NetworkHeightKnown
	Gap           bool
	NetworkHeight uint64

	// BlocksDownloaded
	Items []model.QueueItem

	// ProcessFinished
	QueueIdle bool
	Behind    bool

	// NewBlock, ForkDetected
	Item     model.QueueItem
	AtHeight uint64

	// ForkPlanned
	Plan fork.Plan

	// ForkResolved
	Resolution fork.Resolution

	// Failure
	Fatal  bool
	Reason error
}

func (e Event) String() string {
	switch e.Kind {
	case EventNetworkHeightKnown:
		return fmt.Sprintf("%s{gap=%v height=%d}", e.Kind, e.Gap, e.NetworkHeight)
	case EventBlocksDownloaded:
		return fmt.Sprintf("%s{blocks=%d}", e.Kind, len(e.Items))
	case EventProcessFinished:
		return fmt.Sprintf("%s{idle=%v behind=%v}", e.Kind, e.QueueIdle, e.Behind)
	case EventNewBlock, EventForkDetected:
		return fmt.Sprintf("%s{block=%s height=%d}", e.Kind, e.Item.Block.ID, e.Item.Block.Height)
	case EventFailure:
		return fmt.Sprintf("%s{fatal=%v reason=%v}", e.Kind, e.Fatal, e.Reason)
	}
	return e.Kind.String()
}

func Start() Event            { return Event{Kind: EventStart} }
func Started() Event          { return Event{Kind: EventStarted} }
func DownloadFinished() Event { return Event{Kind: EventDownloadFinished} }
func DownloadPaused() Event   { return Event{Kind: EventDownloadPaused} }
func WakeUp() Event           { return Event{Kind: EventWakeUp} }
func Stop() Event             { return Event{Kind: EventStop} }

func NetworkHeightKnown(gap bool, height uint64) Event {
	return Event{Kind: EventNetworkHeightKnown, Gap: gap, NetworkHeight: height}
}

func BlocksDownloaded(items []model.QueueItem) Event {
	return Event{Kind: EventBlocksDownloaded, Items: items}
}

// ProcessFinished is dispatched when the queue drains. Behind is filled in by the loop.
func ProcessFinished(queueIdle bool) Event {
	return Event{Kind: EventProcessFinished, QueueIdle: queueIdle}
}

func NewBlock(item model.QueueItem) Event {
	return Event{Kind: EventNewBlock, Item: item}
}

func ForkDetected(item model.QueueItem, atHeight uint64) Event {
	return Event{Kind: EventForkDetected, Item: item, AtHeight: atHeight}
}

func ForkPlanned(plan fork.Plan) Event {
	return Event{Kind: EventForkPlanned, Plan: plan}
}

func ForkResolved(res fork.Resolution) Event {
	return Event{Kind: EventForkResolved, Resolution: res}
}

// Failure classifies err with chain.IsFatal.
func Failure(err error) Event {
	return Event{Kind: EventFailure, Fatal: chain.IsFatal(err), Reason: err}
}

func FatalFailure(err error) Event {
	return Event{Kind: EventFailure, Fatal: true, Reason: err}
}
