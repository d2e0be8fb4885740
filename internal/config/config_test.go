package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweeney/smart-plug/internal/gpio"
	"github.com/sweeney/smart-plug/internal/plug"
	"github.com/sweeney/smart-plug/internal/sensor"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plug.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "smart-plug", cfg.Node.ID)
	assert.Equal(t, "plugnet", cfg.Radio.Prefix)
	assert.Equal(t, gpio.DefaultPins, cfg.GPIO.Pins)
	assert.Equal(t, 10*time.Second, cfg.Timing.Discovery)
	assert.Equal(t, time.Second, cfg.Timing.Telemetry)
	assert.Equal(t, time.Second, cfg.Timing.Debounce)
	assert.Equal(t, plug.Periods{DiscoveryMs: 10000, TelemetryMs: 1000, DebounceMs: 1000}, cfg.Periods())
	assert.Equal(t, sensor.Static("Sensor Payload"), cfg.SensorSource())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
node:
  id: kitchen-plug
  address: "0013A20041000002"
radio:
  broker: tcp://10.0.0.5:1883
  prefix: home
  timeout: 250ms
  inbox: 4
gpio:
  chip: gpiochip1
  pins:
    relay: 17
    red: 22
    green: 23
    blue: 24
    button: 27
timing:
  telemetry: 5s
  poll: 20ms
sensor:
  file: /sys/class/thermal/thermal_zone0/temp
http:
  addr: ":8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "kitchen-plug", cfg.Node.ID)
	assert.Equal(t, "0013a20041000002", cfg.NodeAddress().String())
	assert.Equal(t, gpio.Pins{Relay: 17, Red: 22, Green: 23, Blue: 24, Button: 27}, cfg.GPIO.Pins)
	assert.Equal(t, 5*time.Second, cfg.Timing.Telemetry)
	assert.Equal(t, 10*time.Second, cfg.Timing.Discovery, "unset periods keep defaults")
	assert.Equal(t, ":8080", cfg.HTTP.Addr)

	opts := cfg.RadioOptions()
	assert.Equal(t, "home", opts.Prefix)
	assert.Equal(t, "kitchen-plug", opts.NodeID)
	assert.Equal(t, 250*time.Millisecond, opts.Timeout)
	assert.Equal(t, 4, opts.InboxSize)

	src, ok := cfg.SensorSource().(*sensor.File)
	require.True(t, ok, "file sensor expected")
	assert.Equal(t, "/sys/class/thermal/thermal_zone0/temp", src.Path)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "node: [unclosed"},
		{"bad address", "node:\n  address: not-hex\n"},
		{"reserved id", "node:\n  id: coordinator\n"},
		{"negative period", "timing:\n  debounce: -1s\n"},
		{"poll too slow", "timing:\n  poll: 2s\n"},
		{"negative inbox", "radio:\n  inbox: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsPartialPins(t *testing.T) {
	_, err := Load(writeConfig(t, "gpio:\n  pins:\n    button: 17\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gpio.pins")
	assert.Contains(t, err.Error(), "share line 0")
}

func TestLoadRejectsSubMillisecondPeriods(t *testing.T) {
	_, err := Load(writeConfig(t, "timing:\n  debounce: 900us\n  poll: 100us\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timing.debounce")

	cfg, err := Load(writeConfig(t, "timing:\n  debounce: 1ms\n  poll: 100us\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.Periods().DebounceMs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
