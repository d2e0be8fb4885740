package plug

// OutputLevels is the full set of output levels for one plug state.
type OutputLevels struct {
	Relay bool
	Red   bool
	Green bool
	Blue  bool
}

// OutputsFor maps a state to its output levels. ON energizes the relay with
// the indicator dark; OFF de-energizes the relay and lights red.
func OutputsFor(s State) OutputLevels {
	if s == StateOff {
		return OutputLevels{Red: true}
	}
	return OutputLevels{Relay: true}
}

// applyOutputs re-asserts every output from the current state. It runs every
// iteration, so a failed write is retried on the next one.
func (n *Node) applyOutputs() {
	lv := OutputsFor(n.state)
	writes := [...]struct {
		pin Pin
		on  bool
	}{
		{PinRed, lv.Red},
		{PinBlue, lv.Blue},
		{PinGreen, lv.Green},
		{PinRelay, lv.Relay},
	}
	for _, w := range writes {
		if err := n.ports.Outputs.Set(w.pin, w.on); err != nil {
			n.emit(Event{Type: EventActuationFailed, Err: &ActuationError{Pin: w.pin, Err: err}})
		}
	}
}
