package plug

// Default gate periods in milliseconds.
const (
	DefaultDiscoveryPeriodMs = 10000
	DefaultTelemetryPeriodMs = 1000
	DefaultDebouncePeriodMs  = 1000
)

// Gate is a re-armable cooldown. A zero LastFiredAt means the gate has never
// fired, so the first expiry happens once the clock itself exceeds Period.
type Gate struct {
	LastFiredAt int64 // ms
	Period      int64 // ms
}

// NewGate returns an unfired gate with the given period in milliseconds.
func NewGate(periodMs int64) *Gate {
	return &Gate{Period: periodMs}
}

// TimeTracker samples the clock once per iteration so that every gate
// evaluated in that iteration sees the same "now".
//
// Times are int64 milliseconds from a monotonic source; that range does not
// wrap during any realistic device lifetime.
type TimeTracker struct {
	clock   func() int64
	current int64
}

// NewTimeTracker creates a tracker reading from clock. The current sample
// starts at 0 until Sample is called.
func NewTimeTracker(clock func() int64) *TimeTracker {
	return &TimeTracker{clock: clock}
}

// Sample records the current clock value. A clock that steps backwards is
// ignored so the sample never decreases.
func (t *TimeTracker) Sample() int64 {
	if now := t.clock(); now > t.current {
		t.current = now
	}
	return t.current
}

// Now returns the most recent sample.
func (t *TimeTracker) Now() int64 {
	return t.current
}

// Expired reports whether more than the gate's period has passed between its
// last firing and the current sample.
func (t *TimeTracker) Expired(g *Gate) bool {
	return t.current-g.LastFiredAt > g.Period
}

// Rearm marks the gate as fired at the current sample.
func (t *TimeTracker) Rearm(g *Gate) {
	if t.current > g.LastFiredAt {
		g.LastFiredAt = t.current
	}
}
