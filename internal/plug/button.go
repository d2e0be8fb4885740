package plug

import "fmt"

// pollButton toggles the state when the debounce gate has expired and the
// button reads pressed. The gate only re-arms on a toggle, so a button held
// down toggles once per debounce period.
func (n *Node) pollButton() {
	if !n.timer.Expired(n.debounceGate) {
		return
	}

	pressed, err := n.ports.Button.Pressed()
	if err != nil {
		n.emit(Event{Type: EventButtonReadFailed, Err: fmt.Errorf("read button: %w", err)})
		return
	}
	if !pressed {
		return
	}

	n.timer.Rearm(n.debounceGate)
	n.state = n.state.Toggle()
	n.emit(Event{Type: EventButtonToggled})
}
