//go:build linux

package gpio

import (
	"fmt"

	"github.com/sweeney/smart-plug/internal/plug"
	"github.com/warthog618/go-gpiocdev"
)

var _ Controller = (*RealController)(nil)

// RealController drives actual hardware using Linux GPIO character device.
type RealController struct {
	chip    *gpiocdev.Chip
	outputs map[plug.Pin]*gpiocdev.Line
	button  *gpiocdev.Line
}

// NewRealController requests the output lines and the button line on chip.
// The relay starts energized and the LEDs dark, matching the boot state.
func NewRealController(chipName string, pins Pins) (*RealController, error) {
	if chipName == "" {
		chipName = DefaultChip
	}
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	c := &RealController{
		chip:    chip,
		outputs: make(map[plug.Pin]*gpiocdev.Line, len(Outputs)),
	}

	for _, pin := range Outputs {
		offset, _ := pins.Offset(pin)
		initial := 0
		if pin == plug.PinRelay {
			initial = 1
		}
		line, err := chip.RequestLine(offset, gpiocdev.AsOutput(initial))
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", pin, offset, err)
		}
		c.outputs[pin] = line
	}

	button, err := chip.RequestLine(pins.Button, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pins.Button, err)
	}
	c.button = button

	return c, nil
}

// Set drives an output line.
func (c *RealController) Set(pin plug.Pin, on bool) error {
	line, ok := c.outputs[pin]
	if !ok {
		return fmt.Errorf("unknown output %s", pin)
	}
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s: %w", pin, err)
	}
	return nil
}

// Pressed reads the button line. Raw active (1) = pressed.
func (c *RealController) Pressed() (bool, error) {
	raw, err := c.button.Value()
	if err != nil {
		return false, fmt.Errorf("read button pin: %w", err)
	}
	return raw == 1, nil
}

// Close releases GPIO resources.
// Reconfigures every line to input with pull-down (matching Pi boot defaults)
// before closing so the relay is not left driven after exit.
func (c *RealController) Close() error {
	var errs []error

	for _, pin := range Outputs {
		line := c.outputs[pin]
		if line == nil {
			continue
		}
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", pin, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", pin, err))
		}
	}
	if c.button != nil {
		if err := c.button.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pin: %w", err))
		}
	}
	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
