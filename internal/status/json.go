package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/smart-plug/internal/plug"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	State         string     `json:"state"`
	Relay         bool       `json:"relay"`
	Coordinator   string     `json:"coordinator,omitempty"`
	LastTelemetry string     `json:"last_telemetry,omitempty"`
	LastCommand   string     `json:"last_command,omitempty"`
	Iterations    uint64     `json:"iterations"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Radio         RadioJSON  `json:"radio"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// RadioJSON reports broker connection state.
type RadioJSON struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
	Prefix    string `json:"prefix"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Toggles            int `json:"toggles"`
	CommandsOn         int `json:"commands_on"`
	CommandsOff        int `json:"commands_off"`
	CommandsIgnored    int `json:"commands_ignored"`
	TelemetrySent      int `json:"telemetry_sent"`
	TelemetryFailed    int `json:"telemetry_failed"`
	DiscoveryAttempts  int `json:"discovery_attempts"`
	DiscoveryFailures  int `json:"discovery_failures"`
	ReceiveFailures    int `json:"receive_failures"`
	ButtonReadFailures int `json:"button_read_failures"`
	ActuationFailures  int `json:"actuation_failures"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	NodeID      string `json:"node_id"`
	Address     string `json:"address"`
	PollMs      int64  `json:"poll_ms"`
	DiscoveryMs int64  `json:"discovery_ms"`
	TelemetryMs int64  `json:"telemetry_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HTTPAddr    string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		State:         snap.State.String(),
		Relay:         plug.OutputsFor(snap.State).Relay,
		LastTelemetry: snap.LastTelemetry,
		LastCommand:   snap.LastCommand,
		Iterations:    snap.Iterations,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Radio: RadioJSON{
			Connected: snap.RadioConnected,
			Broker:    snap.Config.Broker,
			Prefix:    snap.Config.Prefix,
		},
		Counts: CountsJSON{
			Toggles:            snap.Counts.Toggles,
			CommandsOn:         snap.Counts.CommandsOn,
			CommandsOff:        snap.Counts.CommandsOff,
			CommandsIgnored:    snap.Counts.CommandsIgnored,
			TelemetrySent:      snap.Counts.TelemetrySent,
			TelemetryFailed:    snap.Counts.TelemetryFailed,
			DiscoveryAttempts:  snap.Counts.DiscoveryAttempts,
			DiscoveryFailures:  snap.Counts.DiscoveryFailures,
			ReceiveFailures:    snap.Counts.ReceiveFailures,
			ButtonReadFailures: snap.Counts.ButtonReadFailures,
			ActuationFailures:  snap.Counts.ActuationFailures,
		},
		Config: ConfigJSON{
			NodeID:      snap.Config.NodeID,
			Address:     snap.Config.Address,
			PollMs:      snap.Config.PollMs,
			DiscoveryMs: snap.Config.DiscoveryMs,
			TelemetryMs: snap.Config.TelemetryMs,
			DebounceMs:  snap.Config.DebounceMs,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
	if snap.Coordinator != nil {
		inner.Coordinator = snap.Coordinator.String()
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint.
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}
