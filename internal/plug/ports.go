package plug

// Discoverer scans the radio network for peers.
// Implementations must return within bounded time.
type Discoverer interface {
	Discover() ([]Peer, error)
}

// Transmitter sends a payload to a single node.
type Transmitter interface {
	Transmit(dest Address, payload string) error
}

// Receiver returns at most one queued inbound message without blocking.
// ok is false when nothing is queued.
type Receiver interface {
	Receive() (msg Message, ok bool, err error)
}

// Radio bundles the three radio capabilities the loop consumes.
type Radio interface {
	Discoverer
	Transmitter
	Receiver
}

// Outputs drives the plug's digital outputs.
type Outputs interface {
	Set(pin Pin, on bool) error
}

// Button reads the logical level of the push button (true = pressed).
type Button interface {
	Pressed() (bool, error)
}

// Sensor produces the telemetry payload appended to outbound frames.
// ok is false when no reading is available.
type Sensor interface {
	Read() (payload string, ok bool)
}
