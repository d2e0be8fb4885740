// Package plug contains the smart-plug control core: plug state, timeout
// gates and the cooperative poll loop that drives discovery, telemetry,
// command reception, button debouncing and actuation.
// This package has NO direct hardware or network dependencies. Every external
// capability is injected through the port interfaces in ports.go and time is
// injected as a millisecond clock.
package plug

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// State represents the logical state of the plug.
type State int

const (
	StateOn  State = 0
	StateOff State = 1
)

// Ordinal returns the wire representation of the state ("0" for ON, "1" for OFF).
func (s State) Ordinal() int {
	return int(s)
}

func (s State) String() string {
	switch s {
	case StateOn:
		return "ON"
	case StateOff:
		return "OFF"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Toggle returns the opposite state.
func (s State) Toggle() State {
	if s == StateOn {
		return StateOff
	}
	return StateOn
}

// Address is an opaque radio node identifier, in practice a 64-bit EUI.
type Address []byte

// ParseAddress decodes a hex string such as "0013a20041a7b3c1".
func ParseAddress(s string) (Address, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse address %q: %w", s, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("parse address: empty")
	}
	return Address(b), nil
}

// String returns the lower-case hex form of the address.
func (a Address) String() string {
	return hex.EncodeToString(a)
}

// Equal reports whether two addresses identify the same node.
func (a Address) Equal(b Address) bool {
	return string(a) == string(b)
}

// CoordinatorNodeID is the node identifier a coordinator advertises.
const CoordinatorNodeID = "coordinator"

// Command payloads accepted from the radio.
const (
	CommandOn  = "on"
	CommandOff = "off"
)

// Peer is a node returned by a discovery scan.
type Peer struct {
	NodeID  string
	Address Address
}

// Message is a single inbound radio frame.
type Message struct {
	Sender  Address
	Payload []byte
}

// Pin identifies one of the plug's digital outputs.
type Pin int

const (
	PinRelay Pin = iota
	PinRed
	PinGreen
	PinBlue
)

func (p Pin) String() string {
	switch p {
	case PinRelay:
		return "relay"
	case PinRed:
		return "red"
	case PinGreen:
		return "green"
	case PinBlue:
		return "blue"
	}
	return fmt.Sprintf("Pin(%d)", int(p))
}

// EventType identifies something that happened during a loop iteration.
type EventType string

const (
	EventCoordinatorDiscovered EventType = "COORDINATOR_DISCOVERED"
	EventDiscoveryMiss         EventType = "DISCOVERY_MISS"
	EventDiscoveryFailed       EventType = "DISCOVERY_FAILED"
	EventTelemetrySent         EventType = "TELEMETRY_SENT"
	EventTelemetryFailed       EventType = "TELEMETRY_FAILED"
	EventCommandReceived       EventType = "COMMAND_RECEIVED"
	EventReceiveFailed         EventType = "RECEIVE_FAILED"
	EventButtonToggled         EventType = "BUTTON_TOGGLED"
	EventButtonReadFailed      EventType = "BUTTON_READ_FAILED"
	EventActuationFailed       EventType = "ACTUATION_FAILED"
)

// Event reports the outcome of a gated action or a received message.
type Event struct {
	Type    EventType
	Time    int64 // clock sample of the iteration, ms
	State   State // plug state after the action
	Peer    Address
	Payload string
	Err     error
}

// EventCounts tracks the number of each event kind since startup.
type EventCounts struct {
	Toggles            int
	CommandsOn         int
	CommandsOff        int
	CommandsIgnored    int
	TelemetrySent      int
	TelemetryFailed    int
	DiscoveryAttempts  int
	DiscoveryFailures  int
	ReceiveFailures    int
	ButtonReadFailures int
	ActuationFailures  int
}
