package plug

import "errors"

// scriptClock returns the scripted times in order, repeating the last one.
type scriptClock struct {
	times []int64
	i     int
}

func (c *scriptClock) now() int64 {
	t := c.times[c.i]
	if c.i < len(c.times)-1 {
		c.i++
	}
	return t
}

// manualClock returns whatever T is set to.
type manualClock struct{ T int64 }

func (c *manualClock) now() int64 { return c.T }

type testRadio struct {
	peers        []Peer
	discoverErr  error
	discoverCall int

	transmitErr error
	sent        []sentFrame

	inbox      []Message
	receiveErr error
}

type sentFrame struct {
	dest    Address
	payload string
}

func (r *testRadio) Discover() ([]Peer, error) {
	r.discoverCall++
	if r.discoverErr != nil {
		return nil, r.discoverErr
	}
	return r.peers, nil
}

func (r *testRadio) Transmit(dest Address, payload string) error {
	if r.transmitErr != nil {
		return r.transmitErr
	}
	r.sent = append(r.sent, sentFrame{dest: dest, payload: payload})
	return nil
}

func (r *testRadio) Receive() (Message, bool, error) {
	if r.receiveErr != nil {
		return Message{}, false, r.receiveErr
	}
	if len(r.inbox) == 0 {
		return Message{}, false, nil
	}
	m := r.inbox[0]
	r.inbox = r.inbox[1:]
	return m, true, nil
}

type pinWrite struct {
	pin Pin
	on  bool
}

type testOutputs struct {
	writes []pinWrite
	levels map[Pin]bool
	err    error
}

func (o *testOutputs) Set(pin Pin, on bool) error {
	if o.err != nil {
		return o.err
	}
	if o.levels == nil {
		o.levels = make(map[Pin]bool)
	}
	o.writes = append(o.writes, pinWrite{pin, on})
	o.levels[pin] = on
	return nil
}

type testButton struct {
	pressed bool
	err     error
	reads   int
}

func (b *testButton) Pressed() (bool, error) {
	b.reads++
	return b.pressed, b.err
}

type testSensor struct {
	payload string
	absent  bool
}

func (s *testSensor) Read() (string, bool) {
	if s.absent {
		return "", false
	}
	return s.payload, true
}

var errRadio = errors.New("radio timeout")

var coordAddr = Address{0x00, 0x13, 0xa2, 0x00, 0x41, 0xa7, 0xb3, 0xc1}

type harness struct {
	clock   *manualClock
	radio   *testRadio
	outputs *testOutputs
	button  *testButton
	sensor  *testSensor
	node    *Node
}

func newHarness() *harness {
	h := &harness{
		clock:   &manualClock{},
		radio:   &testRadio{},
		outputs: &testOutputs{},
		button:  &testButton{},
		sensor:  &testSensor{payload: "Sensor Payload"},
	}
	h.node = NewNode(Ports{
		Radio:   h.radio,
		Outputs: h.outputs,
		Button:  h.button,
		Sensor:  h.sensor,
	}, h.clock.now, Periods{})
	return h
}

func (h *harness) stepAt(t int64) []Event {
	h.clock.T = t
	return h.node.Step()
}

func hasEvent(events []Event, typ EventType) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}
