package plug

// ApplyCommand returns the state that results from an inbound payload.
// Matching is exact and case-sensitive; anything else leaves s unchanged.
func ApplyCommand(s State, payload string) State {
	switch payload {
	case CommandOn:
		return StateOn
	case CommandOff:
		return StateOff
	}
	return s
}

// pollCommand consumes at most one queued message per iteration.
func (n *Node) pollCommand() {
	msg, ok, err := n.ports.Radio.Receive()
	if err != nil {
		n.emit(Event{Type: EventReceiveFailed, Err: &ReceiveError{Err: err}})
		return
	}
	if !ok {
		return
	}

	payload := string(msg.Payload)
	n.state = ApplyCommand(n.state, payload)
	n.emit(Event{Type: EventCommandReceived, Peer: msg.Sender, Payload: payload})
}
