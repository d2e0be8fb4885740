package plug

import "fmt"

// DiscoveryError reports a failed coordinator scan. Recoverable: the next
// attempt happens when the discovery gate expires again.
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string { return fmt.Sprintf("discover: %v", e.Err) }
func (e *DiscoveryError) Unwrap() error { return e.Err }

// TransmissionError reports a failed telemetry send. Failed frames are not queued.
type TransmissionError struct {
	Dest Address
	Err  error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("transmit to %s: %v", e.Dest, e.Err)
}
func (e *TransmissionError) Unwrap() error { return e.Err }

// ReceiveError reports a failure of the receive capability itself.
type ReceiveError struct {
	Err error
}

func (e *ReceiveError) Error() string { return fmt.Sprintf("receive: %v", e.Err) }
func (e *ReceiveError) Unwrap() error { return e.Err }

// ActuationError reports a failed output write.
type ActuationError struct {
	Pin Pin
	Err error
}

func (e *ActuationError) Error() string { return fmt.Sprintf("set %s: %v", e.Pin, e.Err) }
func (e *ActuationError) Unwrap() error { return e.Err }
