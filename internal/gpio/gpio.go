// Package gpio provides the plug's digital outputs and button input with
// hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"fmt"

	"github.com/sweeney/smart-plug/internal/plug"
)

// Controller drives the relay and indicator outputs and reads the button.
type Controller interface {
	// Set drives an output to the given logical level.
	Set(pin plug.Pin, on bool) error

	// Pressed returns the logical button level (true = pressed).
	// The button is wired active-high with a pull-down.
	Pressed() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultChip is the GPIO character device used when none is configured.
const DefaultChip = "gpiochip0"

// Pins maps the plug's lines to BCM offsets.
type Pins struct {
	Relay  int `yaml:"relay"`
	Red    int `yaml:"red"`
	Green  int `yaml:"green"`
	Blue   int `yaml:"blue"`
	Button int `yaml:"button"`
}

// DefaultPins matches the reference board: relay D12, LEDs D2/D3/D4, button D10.
var DefaultPins = Pins{
	Relay:  12,
	Red:    2,
	Green:  3,
	Blue:   4,
	Button: 10,
}

// Offset returns the BCM offset wired to an output.
func (p Pins) Offset(pin plug.Pin) (int, bool) {
	switch pin {
	case plug.PinRelay:
		return p.Relay, true
	case plug.PinRed:
		return p.Red, true
	case plug.PinGreen:
		return p.Green, true
	case plug.PinBlue:
		return p.Blue, true
	}
	return 0, false
}

// Validate rejects negative offsets and lines wired to more than one
// function. A partially filled block leaves the rest at line 0 and fails here.
func (p Pins) Validate() error {
	lines := map[int]string{}
	for _, l := range []struct {
		name   string
		offset int
	}{
		{"relay", p.Relay},
		{"red", p.Red},
		{"green", p.Green},
		{"blue", p.Blue},
		{"button", p.Button},
	} {
		if l.offset < 0 {
			return fmt.Errorf("%s: negative offset %d", l.name, l.offset)
		}
		if other, ok := lines[l.offset]; ok {
			return fmt.Errorf("%s and %s share line %d", other, l.name, l.offset)
		}
		lines[l.offset] = l.name
	}
	return nil
}

// Outputs lists every output pin in request order.
var Outputs = []plug.Pin{plug.PinRelay, plug.PinRed, plug.PinGreen, plug.PinBlue}
