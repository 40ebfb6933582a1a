package clock

import (
	"errors"
	"time"
)

// Slots maps wall time to forging slots. Timestamps are seconds since the network epoch.
type Slots struct {
	epoch     time.Time
	blockTime uint32
	now       func() time.Time
}

// SlotsOption customizes Slots.
type SlotsOption func(*Slots)

// WithNow replaces the wall clock.
func WithNow(now func() time.Time) SlotsOption {
	return func(s *Slots) {
		s.now = now
	}
}

func NewSlots(epoch time.Time, blockTime uint32, opts ...SlotsOption) (*Slots, error) {
	if blockTime == 0 {
		return nil, errors.New("block time must be positive")
	}
	s := &Slots{epoch: epoch, blockTime: blockTime, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Slots) BlockTime() time.Duration {
	return time.Duration(s.blockTime) * time.Second
}

// Time returns the current network timestamp.
func (s *Slots) Time() uint32 {
	return s.TimeAt(s.now())
}

// TimeAt converts t to a network timestamp, clamping times before the epoch to zero.
func (s *Slots) TimeAt(t time.Time) uint32 {
	d := t.Sub(s.epoch)
	if d < 0 {
		return 0
	}
	return uint32(d / time.Second)
}

func (s *Slots) SlotNumber(timestamp uint32) uint64 {
	return uint64(timestamp / s.blockTime)
}

func (s *Slots) CurrentSlot() uint64 {
	return s.SlotNumber(s.Time())
}

// SlotTime returns the first timestamp of slot.
func (s *Slots) SlotTime(slot uint64) uint64 {
	return slot * uint64(s.blockTime)
}

// IsFutureSlot reports whether timestamp falls in a slot that has not started yet.
func (s *Slots) IsFutureSlot(timestamp uint32) bool {
	return s.SlotNumber(timestamp) > s.CurrentSlot()
}

// IsCurrentSlot reports whether timestamp falls in the slot happening now.
func (s *Slots) IsCurrentSlot(timestamp uint32) bool {
	return s.SlotNumber(timestamp) == s.CurrentSlot()
}
