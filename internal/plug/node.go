package plug

import (
	"context"
	"time"
)

// Periods configures the three gates, in milliseconds. Zero values fall back
// to the defaults.
type Periods struct {
	DiscoveryMs int64
	TelemetryMs int64
	DebounceMs  int64
}

// Ports are the external capabilities consumed by the node.
type Ports struct {
	Radio   Radio
	Outputs Outputs
	Button  Button
	Sensor  Sensor
}

// Node owns all mutable plug state: the plug state, the resolved coordinator
// and the three gates. It is driven by a single goroutine and is not safe for
// concurrent use.
type Node struct {
	ports Ports
	timer *TimeTracker

	state       State
	coordinator Address

	discoveryGate *Gate
	telemetryGate *Gate
	debounceGate  *Gate

	counts     EventCounts
	iterations uint64
	events     []Event
}

// NewNode creates a node in its boot state: plug ON, coordinator unresolved,
// all gates unfired.
func NewNode(ports Ports, clock func() int64, periods Periods) *Node {
	if periods.DiscoveryMs <= 0 {
		periods.DiscoveryMs = DefaultDiscoveryPeriodMs
	}
	if periods.TelemetryMs <= 0 {
		periods.TelemetryMs = DefaultTelemetryPeriodMs
	}
	if periods.DebounceMs <= 0 {
		periods.DebounceMs = DefaultDebouncePeriodMs
	}
	return &Node{
		ports:         ports,
		timer:         NewTimeTracker(clock),
		state:         StateOn,
		discoveryGate: NewGate(periods.DiscoveryMs),
		telemetryGate: NewGate(periods.TelemetryMs),
		debounceGate:  NewGate(periods.DebounceMs),
	}
}

// Step runs one iteration of the loop in its fixed order and returns the
// events it produced. State changed by the receiver or the button is applied
// to the outputs on the next Step.
func (n *Node) Step() []Event {
	n.events = nil
	n.timer.Sample()
	n.iterations++

	n.pollDiscovery()
	n.applyOutputs()
	n.pollTelemetry()
	n.pollCommand()
	n.pollButton()

	n.count()
	return n.events
}

// Run calls Step once per tick until ctx is cancelled, handing each
// iteration's events to handle. It never returns because of a port failure.
func (n *Node) Run(ctx context.Context, tick <-chan time.Time, handle func([]Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
			events := n.Step()
			if handle != nil {
				handle(events)
			}
		}
	}
}

func (n *Node) emit(e Event) {
	e.Time = n.timer.Now()
	e.State = n.state
	n.events = append(n.events, e)
}

func (n *Node) count() {
	for _, e := range n.events {
		switch e.Type {
		case EventCoordinatorDiscovered, EventDiscoveryMiss:
			n.counts.DiscoveryAttempts++
		case EventDiscoveryFailed:
			n.counts.DiscoveryAttempts++
			n.counts.DiscoveryFailures++
		case EventTelemetrySent:
			n.counts.TelemetrySent++
		case EventTelemetryFailed:
			n.counts.TelemetryFailed++
		case EventCommandReceived:
			switch e.Payload {
			case CommandOn:
				n.counts.CommandsOn++
			case CommandOff:
				n.counts.CommandsOff++
			default:
				n.counts.CommandsIgnored++
			}
		case EventReceiveFailed:
			n.counts.ReceiveFailures++
		case EventButtonToggled:
			n.counts.Toggles++
		case EventButtonReadFailed:
			n.counts.ButtonReadFailures++
		case EventActuationFailed:
			n.counts.ActuationFailures++
		}
	}
}

// State returns the current plug state.
func (n *Node) State() State {
	return n.state
}

// Coordinator returns the resolved coordinator address, or nil while unresolved.
func (n *Node) Coordinator() Address {
	return n.coordinator
}

// Resolved reports whether a coordinator has been discovered.
func (n *Node) Resolved() bool {
	return n.coordinator != nil
}

// Now returns the clock sample of the latest iteration, ms.
func (n *Node) Now() int64 {
	return n.timer.Now()
}

// Iterations returns the number of completed Steps.
func (n *Node) Iterations() uint64 {
	return n.iterations
}

// EventCountsSnapshot returns a copy of the event counters.
func (n *Node) EventCountsSnapshot() EventCounts {
	return n.counts
}
