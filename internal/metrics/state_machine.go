package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	stateMachineTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "state_machine",
		Name:      "transitions_total",
		Help:      "Count of state transitions.",
	}, []string{"from", "to", "event"})

	stateMachineActionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "state_machine",
		Name:      "actions_total",
		Help:      "Count of executed actions.",
	}, []string{"action", "status"})

	stateMachineActionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "state_machine",
		Name:      "action_duration_seconds",
		Help:      "Duration of running an action on the event loop.",
		Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"action", "status"})

	stateMachineInboxSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "state_machine",
		Name:      "inbox_size",
		Help:      "Number of events waiting for the event loop.",
	})
)

// StateMachine tracks the blockchain event loop.
type StateMachine struct{}

func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

func (m StateMachine) ObserveTransition(from, to, event string) {
	stateMachineTransitionsTotal.WithLabelValues(from, to, event).Inc()
}

func (m StateMachine) ObserveAction(action string, err error, started time.Time) {
	s := status(err)
	stateMachineActionsTotal.WithLabelValues(action, s).Inc()
	stateMachineActionDuration.WithLabelValues(action, s).Observe(time.Since(started).Seconds())
}

func (m StateMachine) ObserveInbox(size int) {
	stateMachineInboxSize.Set(float64(size))
}
