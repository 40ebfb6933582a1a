package processor

// Result is the outcome of processing one queued block.
type Result int

const (
	Accepted Result = iota
	AcceptedAsFork
	Rejected
	DiscardedButBroadcastable
	Exception
	Corrupted
)

func (r Result) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case AcceptedAsFork:
		return "accepted_as_fork"
	case Rejected:
		return "rejected"
	case DiscardedButBroadcastable:
		return "discarded_but_broadcastable"
	case Exception:
		return "exception"
	case Corrupted:
		return "corrupted"
	default:
		return "unknown"
	}
}

// Broadcastable reports whether a block with this result may be relayed to peers.
func (r Result) Broadcastable() bool {
	return r == Accepted || r == DiscardedButBroadcastable
}
