package blockchain

import (
	"sync"

	"github.com/ef-ds/deque"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/model"
	"github.com/goodnatureofminers/blockinsight7000-node/internal/dpos/service/machine"
)

// Inbox is the unbounded event queue of the state machine. Dispatch never
// blocks and events come out in arrival order.
type Inbox struct {
	mu     sync.Mutex
	events deque.Deque
	signal chan struct{}
}

func NewInbox() *Inbox {
	return &Inbox{signal: make(chan struct{}, 1)}
}

func (i *Inbox) Dispatch(e machine.Event) {
	i.mu.Lock()
	i.events.PushBack(e)
	i.mu.Unlock()

	select {
	case i.signal <- struct{}{}:
	default:
	}
}

// ForkDetected forwards a fork found by the block processor to the state machine.
func (i *Inbox) ForkDetected(item model.QueueItem, atHeight uint64) {
	i.Dispatch(machine.ForkDetected(item, atHeight))
}

func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.events.Len()
}

func (i *Inbox) pop() (machine.Event, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, ok := i.events.PopFront()
	if !ok {
		return machine.Event{}, false
	}
	return v.(machine.Event), true
}
