package radio

import (
	"github.com/sweeney/smart-plug/internal/plug"
)

// Frame is a transmitted telemetry frame.
type Frame struct {
	Dest    plug.Address
	Payload string
}

var _ Client = (*FakeRadio)(nil)

// FakeRadio records transmitted frames and serves scripted peers and
// inbound messages for test assertions.
type FakeRadio struct {
	// Peers is returned by Discover.
	Peers []plug.Peer

	// DiscoverCalls counts Discover invocations.
	DiscoverCalls int

	// Sent contains all frames that were transmitted.
	Sent []Frame

	// Inbox holds messages waiting to be received, oldest first.
	Inbox []plug.Message

	// DiscoverError, if set, will be returned by Discover.
	DiscoverError error

	// TransmitError, if set, will be returned by Transmit.
	TransmitError error

	// ReceiveError, if set, will be returned by Receive.
	ReceiveError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakeRadio creates a FakeRadio for testing.
func NewFakeRadio() *FakeRadio {
	return &FakeRadio{}
}

// Discover returns the scripted peers.
func (f *FakeRadio) Discover() ([]plug.Peer, error) {
	f.DiscoverCalls++
	if f.DiscoverError != nil {
		return nil, f.DiscoverError
	}
	return f.Peers, nil
}

// Transmit records the frame.
func (f *FakeRadio) Transmit(dest plug.Address, payload string) error {
	if f.TransmitError != nil {
		return f.TransmitError
	}
	f.Sent = append(f.Sent, Frame{Dest: dest, Payload: payload})
	return nil
}

// Receive pops the oldest queued message.
func (f *FakeRadio) Receive() (plug.Message, bool, error) {
	if f.ReceiveError != nil {
		return plug.Message{}, false, f.ReceiveError
	}
	if len(f.Inbox) == 0 {
		return plug.Message{}, false, nil
	}
	msg := f.Inbox[0]
	f.Inbox = f.Inbox[1:]
	return msg, true, nil
}

// Deliver queues an inbound message.
func (f *FakeRadio) Deliver(sender plug.Address, payload string) {
	f.Inbox = append(f.Inbox, plug.Message{Sender: sender, Payload: []byte(payload)})
}

// Close marks the radio as closed.
func (f *FakeRadio) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake radio is "connected".
func (f *FakeRadio) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded frames, queued messages and errors.
func (f *FakeRadio) Reset() {
	f.Sent = nil
	f.Inbox = nil
	f.DiscoverCalls = 0
	f.Closed = false
	f.DiscoverError = nil
	f.TransmitError = nil
	f.ReceiveError = nil
	f.Connected = false
}
