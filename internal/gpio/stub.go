//go:build !linux

package gpio

import (
	"errors"

	"github.com/sweeney/smart-plug/internal/plug"
)

var _ Controller = (*RealController)(nil)

// RealController is not available on non-Linux platforms.
type RealController struct{}

// NewRealController returns an error on non-Linux platforms.
func NewRealController(chipName string, pins Pins) (*RealController, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Set is not implemented on non-Linux platforms.
func (c *RealController) Set(pin plug.Pin, on bool) error {
	return errors.New("gpio: not supported")
}

// Pressed is not implemented on non-Linux platforms.
func (c *RealController) Pressed() (bool, error) {
	return false, errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (c *RealController) Close() error {
	return nil
}
