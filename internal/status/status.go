// Package status provides a thread-safe status tracker for the smart-plug daemon.
// The poll loop writes it; HTTP handlers read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/smart-plug/internal/plug"
)

// Config contains daemon configuration for display.
type Config struct {
	NodeID      string
	Address     string
	PollMs      int64
	DiscoveryMs int64
	TelemetryMs int64
	DebounceMs  int64
	Broker      string
	Prefix      string
	HTTPAddr    string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	State          plug.State
	Coordinator    plug.Address
	Counts         plug.EventCounts
	Iterations     uint64
	LastTelemetry  string
	LastCommand    string
	StartTime      time.Time
	Now            time.Time
	RadioConnected bool
	Config         Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			State:     plug.StateOn,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update copies the node's state after an iteration.
// Called from the run loop on every tick.
func (t *Tracker) Update(n *plug.Node, events []plug.Event) {
	t.mu.Lock()
	t.snap.State = n.State()
	if t.snap.Coordinator == nil && n.Resolved() {
		t.snap.Coordinator = cloneAddress(n.Coordinator())
	}
	t.snap.Counts = n.EventCountsSnapshot()
	t.snap.Iterations = n.Iterations()
	for _, e := range events {
		switch e.Type {
		case plug.EventTelemetrySent:
			t.snap.LastTelemetry = e.Payload
		case plug.EventCommandReceived:
			t.snap.LastCommand = e.Payload
		}
	}
	t.mu.Unlock()
}

// SetRadioConnected sets the broker connection status.
func (t *Tracker) SetRadioConnected(connected bool) {
	t.mu.Lock()
	t.snap.RadioConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	if s.Coordinator != nil {
		s.Coordinator = cloneAddress(s.Coordinator)
	}
	s.Now = time.Now()
	return s
}

func cloneAddress(a plug.Address) plug.Address {
	c := make(plug.Address, len(a))
	copy(c, a)
	return c
}
