package plug

import "strconv"

// FormatTelemetry builds the outbound frame payload "<state-ordinal>,<sensor>".
func FormatTelemetry(s State, sensorPayload string) string {
	return strconv.Itoa(s.Ordinal()) + "," + sensorPayload
}

func (n *Node) pollTelemetry() {
	if n.coordinator == nil || !n.timer.Expired(n.telemetryGate) {
		return
	}
	n.timer.Rearm(n.telemetryGate)

	reading, ok := n.ports.Sensor.Read()
	if !ok || reading == "" {
		return
	}

	payload := FormatTelemetry(n.state, reading)
	if err := n.ports.Radio.Transmit(n.coordinator, payload); err != nil {
		n.emit(Event{
			Type:    EventTelemetryFailed,
			Peer:    n.coordinator,
			Payload: payload,
			Err:     &TransmissionError{Dest: n.coordinator, Err: err},
		})
		return
	}
	n.emit(Event{Type: EventTelemetrySent, Peer: n.coordinator, Payload: payload})
}
