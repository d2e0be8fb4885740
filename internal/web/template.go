package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/smart-plug/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Smart Plug</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.pending { color: orange; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Smart Plug {{.Config.NodeID}}</h1>

<h2>State</h2>
<table>
<tr><th>Plug</th><td id="plug-state" class="{{if eq .State.String "ON"}}on{{else}}off{{end}}">{{.State}}</td></tr>
<tr><th>Coordinator</th>{{if .Coordinator}}<td>{{.Coordinator}}</td>{{else}}<td class="pending">searching</td>{{end}}</tr>
<tr><th>Last telemetry</th><td>{{.LastTelemetry}}</td></tr>
<tr><th>Last command</th><td>{{.LastCommand}}</td></tr>
</table>

<h2>Radio</h2>
<table>
<tr><th>Broker</th><td class="{{if .RadioConnected}}connected{{else}}disconnected{{end}}">{{.Config.Broker}} ({{if .RadioConnected}}connected{{else}}disconnected{{end}})</td></tr>
<tr><th>Prefix</th><td>{{.Config.Prefix}}</td></tr>
<tr><th>Address</th><td>{{.Config.Address}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>Button toggles</th><td>{{.Counts.Toggles}}</td></tr>
<tr><th>Commands on / off / ignored</th><td>{{.Counts.CommandsOn}} / {{.Counts.CommandsOff}} / {{.Counts.CommandsIgnored}}</td></tr>
<tr><th>Telemetry sent / failed</th><td>{{.Counts.TelemetrySent}} / {{.Counts.TelemetryFailed}}</td></tr>
<tr><th>Discovery attempts / failed</th><td>{{.Counts.DiscoveryAttempts}} / {{.Counts.DiscoveryFailures}}</td></tr>
<tr><th>Actuation failures</th><td>{{.Counts.ActuationFailures}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Iterations</th><td>{{.Iterations}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Telemetry</th><td>{{.Config.TelemetryMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Discovery</th><td>{{.Config.DiscoveryMs}}ms</td></tr>
</table>

<p><a href="/index.json">JSON</a> · <a href="/metrics">metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
