package gpio

import (
	"errors"

	"github.com/sweeney/smart-plug/internal/plug"
)

// Write records a single output write.
type Write struct {
	Pin plug.Pin
	On  bool
}

var _ Controller = (*FakeController)(nil)

// FakeController is a test double that records output writes and returns
// scripted button levels.
type FakeController struct {
	// Presses contains scripted button levels to return.
	// Each call to Pressed() consumes the next sample.
	Presses []bool

	// index tracks current position in Presses
	index int

	// Writes contains every output write in order.
	Writes []Write

	// Levels holds the last level written to each output.
	Levels map[plug.Pin]bool

	// Closed tracks if Close was called
	Closed bool

	// SetError, if set, will be returned by Set()
	SetError error

	// ReadError, if set, will be returned by Pressed()
	ReadError error
}

// NewFakeController creates a FakeController with the given button samples.
func NewFakeController(presses []bool) *FakeController {
	return &FakeController{
		Presses: presses,
		Levels:  make(map[plug.Pin]bool),
	}
}

// Set records the write.
func (f *FakeController) Set(pin plug.Pin, on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	if f.Levels == nil {
		f.Levels = make(map[plug.Pin]bool)
	}
	f.Writes = append(f.Writes, Write{Pin: pin, On: on})
	f.Levels[pin] = on
	return nil
}

// Pressed returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeController) Pressed() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Presses) == 0 {
		return false, errors.New("no samples configured")
	}

	pressed := f.Presses[f.index]
	if f.index < len(f.Presses)-1 {
		f.index++
	}

	return pressed, nil
}

// Close marks the controller as closed.
func (f *FakeController) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the button samples and clears recorded writes.
func (f *FakeController) Reset() {
	f.index = 0
	f.Writes = nil
	f.Levels = make(map[plug.Pin]bool)
	f.Closed = false
}
